// Package dataflow provides small channel-based pipeline stages. Every stage
// stops when its context is cancelled.
package dataflow

import (
	"context"
	"sync"
)

// Stream is a read-only channel of messages.
type Stream[T any] <-chan T

// Sequence emits start, start+step, start+2*step... until ctx is done. The
// consumer decides when it has seen enough and cancels.
func Sequence(ctx context.Context, start, step int) Stream[int] {
	out := make(chan int)
	go func() {
		defer close(out)
		for n := start; ; n += step {
			select {
			case <-ctx.Done():
				return
			case out <- n:
			}
		}
	}()
	return out
}

// ForEach executes fn for every item in the stream and blocks until the
// stream is exhausted, fn fails or ctx is cancelled. The first error stops
// every worker and is returned once they have all returned.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(context.Context, T) error, opts ...Option) error {
	cfg := applyOptions(opts)
	parent := ctx
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				if err := fn(ctx, msg); err != nil {
					errOnce.Do(func() {
						firstErr = err
						cancel()
					})
					return
				}
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return parent.Err()
}
