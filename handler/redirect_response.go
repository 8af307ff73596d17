package handler

import (
	"net/http"
)

type redirectResponse struct {
	url  string
	code int
}

func (r redirectResponse) Render(w http.ResponseWriter, req *http.Request) error {
	if IsDataStar(req) {
		return NewSSE(w, req).Redirect(r.url)
	}
	http.Redirect(w, req, r.url, r.code)
	return nil
}

// Redirect sends the client to url with 303 See Other, or a datastar
// redirect for datastar requests.
func Redirect(url string) Response {
	return redirectResponse{url: url, code: http.StatusSeeOther}
}

type emptyResponse int

func (e emptyResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.WriteHeader(int(e))
	return nil
}

// Empty responds 204 No Content.
func Empty() Response { return emptyResponse(http.StatusNoContent) }
