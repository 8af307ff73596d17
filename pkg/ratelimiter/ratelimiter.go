package ratelimiter

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// Config sizes every bucket of a Limiter.
type Config struct {
	Burst    int           // tokens a fresh bucket holds
	Interval time.Duration // time to regain one token
}

func (c Config) validate() error {
	if c.Burst <= 0 {
		return fmt.Errorf("%w: burst must be positive, got %d", ErrInvalidConfig, c.Burst)
	}
	if c.Interval <= 0 {
		return fmt.Errorf("%w: interval must be positive, got %v", ErrInvalidConfig, c.Interval)
	}
	return nil
}

// Result is the state of a bucket after a call.
type Result struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Allowed reports whether the call was let through.
func (r Result) Allowed() bool { return r.Remaining >= 0 }

// RetryAfter is how long a denied caller should wait, or zero.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed() {
		return 0
	}
	return max(time.Until(r.ResetAt), 0)
}

// SetHeaders writes the X-RateLimit headers, plus Retry-After on denial.
func (r Result) SetHeaders(h http.Header) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(r.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(max(r.Remaining, 0)))
	h.Set("X-RateLimit-Reset", strconv.FormatInt(r.ResetAt.Unix(), 10))
	if !r.Allowed() {
		secs := int((r.RetryAfter() + time.Second - 1) / time.Second)
		h.Set("Retry-After", strconv.Itoa(max(secs, 1)))
	}
}

type bucket struct {
	tokens     int
	lastRefill time.Time
	lastSeen   time.Time
}

// Limiter holds one token bucket per key.
type Limiter struct {
	cfg Config
	now func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket

	stop     chan struct{}
	stopOnce sync.Once
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// staleAfter is how long an idle bucket is kept.
const staleAfter = time.Hour

// New validates cfg and starts the sweep of idle buckets.
func New(cfg Config, opts ...Option) (*Limiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	l := &Limiter{
		cfg:     cfg,
		now:     time.Now,
		buckets: make(map[string]*bucket),
		stop:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.sweep(5 * time.Minute)
	return l, nil
}

// Allow spends one token of key.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	return l.AllowN(ctx, key, 1)
}

// AllowN spends n tokens of key. A denied call spends nothing and reports
// a negative Remaining.
func (l *Limiter) AllowN(ctx context.Context, key string, n int) (Result, error) {
	if n <= 0 {
		return Result{}, fmt.Errorf("%w: must be positive, got %d", ErrInvalidTokenCount, n)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &bucket{tokens: l.cfg.Burst, lastRefill: now}
		l.buckets[key] = b
	}
	// Capped so a long idle period cannot overflow the token count.
	intervals := min(int64(now.Sub(b.lastRefill)/l.cfg.Interval), int64(l.cfg.Burst))
	if intervals > 0 {
		b.tokens = min(b.tokens+int(intervals), l.cfg.Burst)
		b.lastRefill = b.lastRefill.Add(time.Duration(intervals) * l.cfg.Interval)
	}
	if b.tokens >= l.cfg.Burst {
		b.lastRefill = now
	}
	b.lastSeen = now

	remaining := b.tokens - n
	if remaining >= 0 {
		b.tokens = remaining
	}
	return Result{
		Limit:     l.cfg.Burst,
		Remaining: remaining,
		ResetAt:   b.lastRefill.Add(l.cfg.Interval),
	}, nil
}

// Reset forgets key.
func (l *Limiter) Reset(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

// Close stops the sweep. It is safe to call more than once.
func (l *Limiter) Close() {
	l.stopOnce.Do(func() { close(l.stop) })
}

func (l *Limiter) sweep(every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			l.mu.Lock()
			now := l.now()
			for k, b := range l.buckets {
				if now.Sub(b.lastSeen) > staleAfter {
					delete(l.buckets, k)
				}
			}
			l.mu.Unlock()
		case <-l.stop:
			return
		}
	}
}
