package binder

import (
	"fmt"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"
)

// Signals decodes datastar signals into the request struct using their
// json tags. GET requests carry them in the datastar query parameter,
// other methods in the body. Requests sent by anything other than
// datastar are not applicable.
func Signals() Func {
	return func(r *http.Request, v any) error {
		if !fromDatastar(r) {
			return ErrNotApplicable
		}
		if err := datastar.ReadSignals(r, v); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidSignals, err)
		}
		return nil
	}
}

func fromDatastar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true" || r.URL.Query().Has("datastar")
}
