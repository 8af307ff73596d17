package style

import "errors"

var (
	ErrInvalidDeclarations = errors.New("invalid style declarations")
	ErrInvalidColor        = errors.New("invalid color")
	ErrInvalidLength       = errors.New("invalid length")
	ErrInvalidGradient     = errors.New("invalid gradient")
)
