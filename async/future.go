package async

import (
	"sync"
	"time"
)

// Future is a single-shot result that completes exactly once.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
	once sync.Once
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Resolved returns an already-completed Future.
func Resolved[T any](v T, err error) *Future[T] {
	f := newFuture[T]()
	f.complete(v, err)
	return f
}

// Go runs fn in a goroutine and completes the Future when fn returns.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := newFuture[T]()
	go func() {
		v, err := fn()
		f.complete(v, err)
	}()
	return f
}

// Await blocks until completion and returns the result.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.val, f.err
}

// AwaitTimeout waits up to d for completion. ok is false on timeout; the
// underlying operation is not cancelled.
func (f *Future[T]) AwaitTimeout(d time.Duration) (v T, ok bool, err error) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-f.done:
		return f.val, true, f.err
	case <-timer.C:
		return v, false, nil
	}
}

// Done returns a channel closed when the Future completes.
func (f *Future[T]) Done() <-chan struct{} { return f.done }

// Then calls cb with the result on its own goroutine once the Future
// completes, error first. cb never runs on the caller's goroutine.
func (f *Future[T]) Then(cb func(err error, v T)) {
	go func() {
		<-f.done
		cb(f.err, f.val)
	}()
}

// Map applies fn to a successful value. Errors pass through unchanged.
func Map[T, U any](in *Future[T], fn func(T) (U, error)) *Future[U] {
	return Go(func() (U, error) {
		v, err := in.Await()
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

// complete sets the result exactly once and closes done.
func (f *Future[T]) complete(v T, err error) {
	f.once.Do(func() {
		f.val, f.err = v, err
		close(f.done)
	})
}
