package binder

import "net/http"

// Query binds `query` tagged fields from the URL query string.
// Comma separated and repeated parameters both fill slices.
func Query() Func {
	return func(r *http.Request, v any) error {
		return bindValues(v, "query", r.URL.Query(), ErrInvalidQuery)
	}
}
