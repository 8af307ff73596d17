package binder

import (
	"fmt"
	"net/http"
)

// Form binds `form` tagged fields from url-encoded or multipart bodies.
// Other content types are not applicable.
func Form() Func {
	return func(r *http.Request, v any) error {
		switch mediaType(r) {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidForm, err)
			}
			return bindValues(v, "form", r.PostForm, ErrInvalidForm)
		case "multipart/form-data":
			if err := parseMultipart(r); err != nil {
				return err
			}
			return bindValues(v, "form", r.MultipartForm.Value, ErrInvalidForm)
		case "":
			return fmt.Errorf("%w: expected a form body", ErrMissingContentType)
		default:
			return ErrNotApplicable
		}
	}
}
