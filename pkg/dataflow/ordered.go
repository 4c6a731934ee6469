package dataflow

import (
	"context"
	"sync"
)

// Result carries the outcome of one item of MapOrdered.
type Result[T any] struct {
	Value T
	Err   error
}

type indexed[T any] struct {
	seq int
	Result[T]
}

// MapOrdered runs fn concurrently but emits results in input order. Errors
// are delivered to the consumer in place of the value; they are never
// dropped. Once ctx is cancelled no new item starts, and the output closes
// only after every in-flight fn has returned, so a consumer that cancels and
// then drains the stream knows no call is still running.
func MapOrdered[In, Out any](ctx context.Context, input Stream[In], fn func(context.Context, In) (Out, error), opts ...Option) Stream[Result[Out]] {
	cfg := applyOptions(opts)

	type job struct {
		seq int
		msg In
	}
	jobs := make(chan job)
	done := make(chan indexed[Out], cfg.workers)
	out := make(chan Result[Out])

	go func() {
		defer close(jobs)
		seq := 0
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-input:
				if !ok {
					return
				}
				select {
				case <-ctx.Done():
					return
				case jobs <- job{seq: seq, msg: msg}:
				}
				seq++
			}
		}
	}()

	var wg sync.WaitGroup
	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go func() {
			defer wg.Done()
			for j := range jobs {
				res, err := fn(ctx, j.msg)
				select {
				case <-ctx.Done():
					return
				case done <- indexed[Out]{seq: j.seq, Result: Result[Out]{Value: res, Err: err}}:
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	// Reorder buffer. After cancellation it keeps discarding until done is
	// closed.
	go func() {
		defer close(out)
		pending := make(map[int]Result[Out])
		next := 0
		stopped := false
		for r := range done {
			if stopped {
				continue
			}
			pending[r.seq] = r.Result
			for !stopped {
				res, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				select {
				case <-ctx.Done():
					stopped = true
				case out <- res:
				}
			}
		}
	}()

	return out
}
