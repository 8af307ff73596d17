package handler

import (
	"mime"
	"net/http"
	"strconv"
)

type blobResponse struct {
	contentType string
	body        []byte
	disposition string
}

func (b blobResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	h := w.Header()
	h.Set("Content-Type", b.contentType)
	h.Set("Content-Length", strconv.Itoa(len(b.body)))
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "no-store")
	if b.disposition != "" {
		h.Set("Content-Disposition", b.disposition)
	}
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(b.body)
	return err
}

// Blob writes body inline with the given content type.
func Blob(contentType string, body []byte) Response {
	return blobResponse{contentType: contentType, body: body}
}

// Attachment writes body as a file download named filename.
func Attachment(filename, contentType string, body []byte) Response {
	return blobResponse{
		contentType: contentType,
		body:        body,
		disposition: mime.FormatMediaType("attachment", map[string]string{"filename": filename}),
	}
}
