// Package ratelimiter throttles expensive operations with an in-memory token
// bucket per key.
//
// Every key starts with Burst tokens. Each call spends tokens and one token
// comes back per Interval, never above Burst. A call that would drive the
// bucket below zero is denied and the Result tells when to retry:
//
//	l, err := ratelimiter.New(ratelimiter.Config{Burst: 10, Interval: 3 * time.Second})
//	res, err := l.Allow(ctx, clientIP)
//	if !res.Allowed() {
//		w.Header().Set("Retry-After", strconv.Itoa(int(res.RetryAfter().Seconds())))
//	}
//
// Buckets untouched for an hour are dropped by a background sweep that
// Close stops.
package ratelimiter
