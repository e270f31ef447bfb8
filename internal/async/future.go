// Package async provides Future, the single result type used for remote
// calls issued in the background. It replaces completion callbacks: callers
// that care about the outcome Await it, callers that don't simply drop it.
package async

import (
	"context"
	"sync"
)

// Future holds the eventual result of a background computation.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go runs fn in a new goroutine and returns its Future.
func Go[T any](ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.val, f.err = fn(ctx)
	}()
	return f
}

// Resolved returns an already completed Future.
func Resolved[T any](val T, err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{}), val: val, err: err}
	close(f.done)
	return f
}

// Done is closed once the result is available.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the result is ready or ctx is done. Giving up on ctx
// does not stop the underlying computation.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.val, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Then chains fn onto f; fn runs only if f succeeded.
func Then[T, U any](ctx context.Context, f *Future[T], fn func(ctx context.Context, v T) (U, error)) *Future[U] {
	return Go(ctx, func(ctx context.Context) (U, error) {
		v, err := f.Await(ctx)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(ctx, v)
	})
}

// Tracker counts in-flight futures so their owner can wait for them on
// shutdown.
type Tracker struct {
	wg sync.WaitGroup
}

// Track registers f and releases it once it completes.
func Track[T any](t *Tracker, f *Future[T]) *Future[T] {
	t.wg.Add(1)
	go func() {
		<-f.done
		t.wg.Done()
	}()
	return f
}

// Wait blocks until every tracked future has completed or ctx is done.
func (t *Tracker) Wait(ctx context.Context) error {
	ch := make(chan struct{})
	go func() {
		t.wg.Wait()
		close(ch)
	}()
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
