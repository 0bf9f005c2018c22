// Package async runs store calls off the caller's path and hands back a
// Future the caller reads once the work is done.
package async

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Future is the pending result of a function started by Go.
type Future[T any] struct {
	done chan struct{}
	val  T
	err  error
}

// Go starts fn on g. When g was built with errgroup.WithContext and ctx is
// the context it returned, the first failing function cancels the rest.
func Go[T any](g *errgroup.Group, ctx context.Context, fn func(ctx context.Context) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	g.Go(func() error {
		defer close(f.done)
		f.val, f.err = fn(ctx)
		return f.err
	})
	return f
}

// Result blocks until fn has returned and reports its outcome.
func (f *Future[T]) Result() (T, error) {
	<-f.done
	return f.val, f.err
}
