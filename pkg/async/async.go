package async

import (
	"context"
	"errors"
	"time"
)

// ErrTimeout is returned by AwaitTimeout when the future is still pending.
var ErrTimeout = errors.New("async: timed out waiting for result")

// Future is the pending result of a function started by Go.
type Future[T any] struct {
	done   chan struct{}
	result T
	err    error
}

// Go starts fn in a goroutine.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.result, f.err = fn(ctx)
	}()
	return f
}

// Await blocks until the function returns.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitTimeout is Await bounded by d.
func (f *Future[T]) AwaitTimeout(d time.Duration) (T, error) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-f.done:
		return f.result, f.err
	case <-t.C:
		var zero T
		return zero, ErrTimeout
	}
}

// Done reports whether the function has returned.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll awaits every future and returns the results in order together
// with all errors joined.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))
	errs := make([]error, 0, len(futures))
	for i, f := range futures {
		res, err := f.Await()
		results[i] = res
		errs = append(errs, err)
	}
	return results, errors.Join(errs...)
}
