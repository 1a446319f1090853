package core

import (
	"context"
	"runtime"
	"sync"

	"mazecaster/internal/mathutil"
)

// WorkerPool manages a fixed set of goroutines that split index ranges
// between them. The renderer uses it to spread columns across cores.
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start initializes and starts all worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

// worker is the goroutine that processes jobs from the queue
func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit adds a job to the worker queue
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.jobQueue <- job
}

// Wait waits for all currently queued jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool. It is safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// ParallelFor runs fn for every index in [start, end) and returns once all
// calls have finished.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) {
	wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor with cancellation checked between
// indices. Contiguous chunks keep neighbouring columns on one worker.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) {
	if start >= end {
		return
	}

	chunkSize := mathutil.IntMax(1, (end-start+wp.numWorkers-1)/wp.numWorkers)

	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := mathutil.IntMin(i+chunkSize, end)
		wp.Submit(func() {
			for j := chunkStart; j < chunkEnd; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					fn(j)
				}
			}
		})
	}
	wp.Wait()
}
