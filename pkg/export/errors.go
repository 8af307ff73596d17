package export

import "errors"

var (
	ErrUnsupportedKind = errors.New("export: artifact kind cannot be delivered this way")
	ErrNoClipboard     = errors.New("export: no clipboard configured")
	ErrNoSink          = errors.New("export: no download destination configured")
	ErrPanic           = errors.New("export: operation panicked")
)
