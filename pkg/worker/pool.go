/*
Package worker provides an ordered worker pool with optional rate limiting.

The scanner uses it to read file contents while the directory walk itself
stays sequential. Results come back in submission order, so callers get a
deterministic sequence whatever the worker count.

Basic usage:

	pool, err := worker.NewPool[int](worker.Config{Workers: 4})
	if err != nil {
		return err
	}
	pool.Start(ctx)

	pool.Submit(worker.Task[int]{
		ID: 1,
		Execute: func(ctx context.Context) (int, error) {
			return 42, nil
		},
	})

	results, err := pool.Wait()
*/
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

// Pool runs tasks on a fixed set of goroutines.
type Pool[T any] interface {
	// Start launches the workers. Tasks observe ctx.
	Start(context.Context) error

	// Submit queues a task. It blocks while the queue is full.
	Submit(Task[T]) error

	// Wait closes the queue, waits for every task and returns the results
	// in submission order.
	Wait() ([]Result[T], error)

	// GetStats returns current statistics about the pool
	GetStats() Stats

	// Stop cancels outstanding work and releases the workers
	Stop() error
}

type queued[T any] struct {
	Task[T]
	order int
}

type pool[T any] struct {
	config  Config
	limiter *rate.Limiter

	tasks   chan queued[T]
	results chan Result[T]
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
	closed  bool
	stopped bool
	next    int

	collected    []Result[T]
	collectWg    sync.WaitGroup
	closeResults sync.Once

	startTime time.Time
	active    atomic.Int32
	completed atomic.Int64
	failed    atomic.Int64
}

// NewPool creates a new worker pool with the given configuration
func NewPool[T any](config Config) (Pool[T], error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &pool[T]{
		config:  config,
		limiter: limiter,
		tasks:   make(chan queued[T], config.Workers*2),
		results: make(chan Result[T], config.Workers*2),
	}, nil
}

func validateConfig(config Config) error {
	if config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}
	return nil
}

func (p *pool[T]) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("pool already started")
	}

	p.ctx, p.cancel = context.WithCancel(ctx)
	p.started = true
	p.startTime = time.Now()

	// Results are drained concurrently so Submit never deadlocks on a full
	// results channel.
	p.collectWg.Add(1)
	go func() {
		defer p.collectWg.Done()
		for r := range p.results {
			p.collected = append(p.collected, r)
		}
	}()

	for i := 0; i < p.config.Workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}

	return nil
}

func (p *pool[T]) Submit(task Task[T]) error {
	p.mu.Lock()
	if !p.started || p.closed {
		p.mu.Unlock()
		return fmt.Errorf("pool not accepting tasks")
	}
	order := p.next
	p.next++
	p.mu.Unlock()

	select {
	case <-p.ctx.Done():
		return fmt.Errorf("pool is shutting down: %w", p.ctx.Err())
	case p.tasks <- queued[T]{Task: task, order: order}:
		return nil
	}
}

func (p *pool[T]) Wait() ([]Result[T], error) {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil, fmt.Errorf("pool not started")
	}
	if p.closed {
		p.mu.Unlock()
		return nil, fmt.Errorf("pool already drained")
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	p.closeResults.Do(func() { close(p.results) })
	p.collectWg.Wait()

	results := p.collected
	p.collected = nil
	sort.Slice(results, func(i, j int) bool {
		return results[i].order < results[j].order
	})

	if err := p.ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}

func (p *pool[T]) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || !p.started {
		p.stopped = true
		return nil
	}
	p.stopped = true
	p.cancel()

	if !p.closed {
		p.closed = true
		close(p.tasks)
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		p.closeResults.Do(func() { close(p.results) })
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(500 * time.Millisecond):
		return fmt.Errorf("shutdown timed out")
	}
}

func (p *pool[T]) GetStats() Stats {
	p.mu.Lock()
	started, closed, stopped, submitted := p.started, p.closed, p.stopped, p.next
	p.mu.Unlock()

	var status Status
	switch {
	case stopped:
		status = StatusStopped
	case !started:
		status = StatusNew
	case closed:
		status = StatusDrained
	default:
		status = StatusRunning
	}

	var uptime time.Duration
	if started {
		uptime = time.Since(p.startTime)
	}

	return Stats{
		Workers:   p.config.Workers,
		Active:    int(p.active.Load()),
		Queued:    len(p.tasks),
		Submitted: submitted,
		Succeeded: int(p.completed.Load()),
		Failed:    int(p.failed.Load()),
		Status:    status,
		Uptime:    uptime,
	}
}

func (p *pool[T]) worker() {
	defer p.wg.Done()

	for q := range p.tasks {
		p.active.Add(1)
		result := p.run(q)
		p.active.Add(-1)

		if result.Err != nil {
			p.failed.Add(1)
		} else {
			p.completed.Add(1)
		}
		p.results <- result
	}
}

func (p *pool[T]) run(q queued[T]) Result[T] {
	result := Result[T]{ID: q.ID, order: q.order}

	if err := p.ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	if p.limiter != nil {
		if err := p.limiter.Wait(p.ctx); err != nil {
			result.Err = fmt.Errorf("rate limiter error: %w", err)
			return result
		}
	}

	value, err := q.Execute(p.ctx)
	if err != nil {
		result.Err = fmt.Errorf("task %d failed: %w", q.ID, err)
		return result
	}
	result.Value = value
	return result
}
