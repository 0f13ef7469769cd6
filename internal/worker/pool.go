// Package worker runs independent jobs on a bounded pool of goroutines.
package worker

import (
	"context"
	"sort"
	"sync"
)

// Job represents a unit of work to be executed
type Job interface {
	Execute(ctx context.Context) Result
}

// Result represents the result of a job execution
type Result interface {
	GetError() error
}

// Skipper is implemented by jobs that can describe themselves as not run.
// The pool calls Skip for every job it drops because its context ended.
type Skipper interface {
	Skip(err error) Result
}

// skippedResult is the result of a dropped job that does not implement Skipper
type skippedResult struct {
	err error
}

func (r *skippedResult) GetError() error {
	return r.err
}

func skip(job Job, err error) Result {
	if s, ok := job.(Skipper); ok {
		return s.Skip(err)
	}
	return &skippedResult{err: err}
}

type indexedJob struct {
	index int
	job   Job
}

type indexedResult struct {
	index  int
	result Result
}

// Pool manages a pool of workers that execute jobs concurrently.
// Results are returned in submission order regardless of completion order.
type Pool struct {
	workers    int
	jobQueue   chan indexedJob
	results    chan indexedResult
	collected  []indexedResult
	submitted  int
	wg         sync.WaitGroup
	collectWG  sync.WaitGroup
	mu         sync.Mutex
	closed     bool
	ctx        context.Context
	cancelFunc context.CancelFunc
	closeOnce  sync.Once
	queueOnce  sync.Once
}

// NewPool creates a new worker pool with the specified number of workers
func NewPool(workers int) *Pool {
	return NewPoolWithContext(context.Background(), workers)
}

// NewPoolWithContext creates a pool whose jobs are cancelled with ctx
func NewPoolWithContext(ctx context.Context, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(ctx)

	return &Pool{
		workers:    workers,
		jobQueue:   make(chan indexedJob, workers*2), // Buffered to prevent blocking
		results:    make(chan indexedResult, workers*2),
		ctx:        ctx,
		cancelFunc: cancel,
	}
}

// Start starts the worker pool
func (p *Pool) Start() {
	p.collectWG.Add(1)
	go p.collect()

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// worker is the worker goroutine that processes jobs.
// Queued jobs left behind when the context ends are drained by Wait or Shutdown.
func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case ij, ok := <-p.jobQueue:
			if !ok {
				return
			}
			if err := p.ctx.Err(); err != nil {
				p.results <- indexedResult{index: ij.index, result: skip(ij.job, err)}
				continue
			}
			result := ij.job.Execute(p.ctx)
			p.results <- indexedResult{index: ij.index, result: result}
		}
	}
}

// drainQueue records a skipped result for every job still queued
func (p *Pool) drainQueue() {
	err := p.ctx.Err()
	if err == nil {
		err = context.Canceled
	}
	for {
		select {
		case ij, ok := <-p.jobQueue:
			if !ok {
				return
			}
			p.results <- indexedResult{index: ij.index, result: skip(ij.job, err)}
		default:
			return
		}
	}
}

// collect drains results as they arrive so workers never block on a full channel
func (p *Pool) collect() {
	defer p.collectWG.Done()
	for r := range p.results {
		p.collected = append(p.collected, r)
	}
}

// Submit submits a job to the pool for execution.
// Once the context has ended the job is not run and gets a skipped result.
// Jobs submitted after Wait or Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	index := p.submitted
	p.submitted++
	p.mu.Unlock()

	if err := p.ctx.Err(); err != nil {
		p.submitSkipped(index, job, err)
		return
	}

	select {
	case <-p.ctx.Done():
		p.submitSkipped(index, job, p.ctx.Err())
	case p.jobQueue <- indexedJob{index: index, job: job}:
	}
}

// submitSkipped records a skipped result directly, unless results are closed
func (p *Pool) submitSkipped(index int, job Job, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.results <- indexedResult{index: index, result: skip(job, err)}
}

// Wait waits for all jobs to complete and returns their results in
// submission order. Every submitted job has a result; jobs dropped by
// cancellation carry the context error.
func (p *Pool) Wait() []Result {
	p.closeQueue()
	p.wg.Wait()
	p.drainQueue()
	p.closeResults()
	p.collectWG.Wait()
	p.cancelFunc()

	sort.Slice(p.collected, func(i, j int) bool {
		return p.collected[i].index < p.collected[j].index
	})

	results := make([]Result, len(p.collected))
	for i, r := range p.collected {
		results[i] = r.result
	}
	return results
}

// Shutdown cancels running jobs and stops the workers
func (p *Pool) Shutdown() {
	p.cancelFunc()
	p.wg.Wait()
	p.drainQueue()
	p.closeResults()
	p.collectWG.Wait()
}

func (p *Pool) closeQueue() {
	p.queueOnce.Do(func() {
		close(p.jobQueue)
	})
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		p.mu.Lock()
		p.closed = true
		close(p.results)
		p.mu.Unlock()
	})
}
