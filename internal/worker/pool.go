// Package worker runs analysis jobs on a bounded pool of goroutines.
package worker

import (
	"context"
	"sync"
)

// Job is a unit of work executed by the pool
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is what a job produces
type Result interface {
	GetError() error
}

// Pool runs jobs on a fixed number of workers
type Pool struct {
	workers    int
	jobQueue   chan Job
	results    chan Result
	wg         sync.WaitGroup
	ctx        context.Context
	cancelFunc context.CancelFunc
}

// NewPool creates a pool bound to parent; cancelling parent stops the workers
func NewPool(parent context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(parent)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan Job, workers*2),
		results:    make(chan Result, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start launches the workers
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. It returns false once the pool's context is done.
func (p *Pool) Submit(job Job) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case <-p.ctx.Done():
		return false
	case p.jobQueue <- job:
		return true
	}
}

// Run starts the pool, submits every job and returns all results in
// completion order. Results are drained while jobs are submitted, so any
// number of jobs fits the bounded queues. The pool is spent afterwards.
func (p *Pool) Run(jobs []Job) []Result {
	defer p.cancelFunc()
	p.Start()

	var (
		results []Result
		done    = make(chan struct{})
	)
	go func() {
		defer close(done)
		for result := range p.results {
			results = append(results, result)
		}
	}()

	for _, job := range jobs {
		if !p.Submit(job) {
			break
		}
	}
	close(p.jobQueue)
	p.wg.Wait()
	close(p.results)
	<-done

	return results
}
