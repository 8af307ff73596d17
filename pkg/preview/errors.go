package preview

import "errors"

var (
	ErrUnknownSection    = errors.New("unknown preview section")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrInvalidMode       = errors.New("invalid preview mode")
)
