package workerpool

import (
	"context"
	"sync"
)

type Task func(ctx context.Context) error

type Result struct {
	Err error
}

// Pool runs submitted tasks on a fixed number of goroutines. Call Run
// before submitting and Close once all tasks are submitted.
type Pool struct {
	workers int
	tasks   chan Task
	wg      sync.WaitGroup
}

func New(workers, buffer int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	return &Pool{
		workers: workers,
		tasks:   make(chan Task, buffer),
	}
}

// Submit blocks until a worker accepts t or ctx is done.
func (p *Pool) Submit(ctx context.Context, t Task) error {
	if p == nil || t == nil {
		return nil
	}
	select {
	case p.tasks <- t:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) Close() {
	if p == nil {
		return
	}
	close(p.tasks)
}

// Run starts the workers. The returned channel yields one Result per
// finished task and is closed when every worker has exited.
func (p *Pool) Run(ctx context.Context) <-chan Result {
	if p == nil {
		out := make(chan Result)
		close(out)
		return out
	}
	out := make(chan Result, p.workers)

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-p.tasks:
					if !ok {
						return
					}
					err := t(ctx)
					select {
					case <-ctx.Done():
						return
					case out <- Result{Err: err}:
					}
				}
			}
		}()
	}

	go func() {
		p.wg.Wait()
		close(out)
	}()

	return out
}

// Each calls fn for every index in [0, n) on up to workers goroutines and
// returns the first error. Remaining work is cancelled after a failure.
func Each(ctx context.Context, workers, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := New(workers, workers)
	results := p.Run(ctx)

	go func() {
		defer p.Close()
		for i := 0; i < n; i++ {
			if err := p.Submit(ctx, func(ctx context.Context) error { return fn(ctx, i) }); err != nil {
				return
			}
		}
	}()

	var first error
	for r := range results {
		if r.Err != nil && first == nil {
			first = r.Err
			cancel()
		}
	}
	if first != nil {
		return first
	}
	return ctx.Err()
}
