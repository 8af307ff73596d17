package ratelimiter

import "errors"

var (
	// ErrInvalidConfig is returned by New for a non-positive burst or interval.
	ErrInvalidConfig = errors.New("ratelimiter: invalid configuration")

	// ErrInvalidTokenCount is returned by AllowN for a non-positive count.
	ErrInvalidTokenCount = errors.New("ratelimiter: invalid token count")
)
