package binder

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// JSON decodes an application/json body into the request struct.
// Datastar requests are left to Signals.
//
//	type saveRequest struct {
//		Data   *signature.Data  `json:"data"`
//		Config *signature.Style `json:"config"`
//	}
func JSON() Func {
	return func(r *http.Request, v any) error {
		if fromDatastar(r) {
			return ErrNotApplicable
		}
		switch mt := mediaType(r); mt {
		case "":
			return fmt.Errorf("%w: expected application/json", ErrMissingContentType)
		case "application/json":
		default:
			return fmt.Errorf("%w: got %s, expected application/json", ErrUnsupportedMediaType, mt)
		}

		dec := json.NewDecoder(r.Body)
		if err := dec.Decode(v); err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, tooLarge.Limit)
			case errors.Is(err, io.EOF):
				return fmt.Errorf("%w: empty body", ErrInvalidJSON)
			default:
				return fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
		}
		var extra json.RawMessage
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: unexpected data after JSON object", ErrInvalidJSON)
		}
		return nil
	}
}
