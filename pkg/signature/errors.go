package signature

import "errors"

var (
	// ErrNotFound is returned when a saved signature does not exist.
	ErrNotFound = errors.New("signature not found")
	// ErrMissingPayload is returned when a request carries no data or no config.
	ErrMissingPayload = errors.New("missing required data")
)
