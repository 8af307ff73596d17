package file

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"
)

// Object describes a stored artifact.
type Object struct {
	Key         string
	Size        int64
	ContentType string
	// Location is the absolute path for local storage and empty for S3.
	Location string
}

// Storage keeps exported artifacts under slash separated keys.
type Storage interface {
	// Put writes body under key, replacing any previous object.
	Put(ctx context.Context, key, contentType string, body []byte) (*Object, error)
	// Delete removes a single object.
	Delete(ctx context.Context, key string) error
	// Exists reports whether an object is stored under key.
	Exists(ctx context.Context, key string) bool
	// URL returns the public URL for a key.
	URL(key string) string
}

// DetectMIMEType sniffs the content type from the first 512 bytes.
func DetectMIMEType(data []byte) string {
	return http.DetectContentType(data[:min(len(data), 512)])
}

// ValidateMIMEType checks the sniffed content type against the allowed list.
// No types means any type is allowed.
func ValidateMIMEType(data []byte, allowed ...string) error {
	if len(allowed) == 0 {
		return nil
	}
	mt := DetectMIMEType(data)
	if slices.Contains(allowed, mt) {
		return nil
	}
	return fmt.Errorf("MIME type %s not in allowed types %v: %w", mt, allowed, ErrMIMETypeNotAllowed)
}

// ReadUpload reads an uploaded file, refusing anything over maxBytes.
// The declared header size is checked first; the stream is capped as well
// since streamed uploads may report a size of 0.
func ReadUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh == nil {
		return nil, fmt.Errorf("%w: no file", ErrFailedToOpenFile)
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, fmt.Errorf("file size %d bytes exceeds %d bytes limit: %w", fh.Size, maxBytes, ErrFileTooLarge)
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if maxBytes > 0 {
		r = io.LimitReader(f, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("file exceeds %d bytes limit: %w", maxBytes, ErrFileTooLarge)
	}
	return data, nil
}

// SanitizeFilename removes any path components and dangerous characters from
// a filename. Returns "unnamed" for empty or special directory references.
//
// Example:
//
//	safe := file.SanitizeFilename("../../../etc/passwd") // Returns "passwd"
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}

	return filename
}

// cleanKey normalizes a key for object stores and rejects traversal.
func cleanKey(key string) (string, error) {
	key = strings.TrimPrefix(filepath.ToSlash(key), "/")
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, key)
	}
	return key, nil
}
