package binder

import "errors"

var (
	// ErrNotApplicable tells the handler to skip a binder for this request.
	ErrNotApplicable = errors.New("binder not applicable")

	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrMissingContentType   = errors.New("missing content type")
	ErrInvalidJSON          = errors.New("invalid JSON")
	ErrInvalidForm          = errors.New("invalid form data")
	ErrInvalidQuery         = errors.New("invalid query parameter")
	ErrInvalidPath          = errors.New("invalid path parameter")
	ErrInvalidSignals       = errors.New("invalid datastar signals")
	ErrMissingFile          = errors.New("missing file")
	ErrBodyTooLarge         = errors.New("request body too large")
)
