package worker

import (
	"context"
	"sync"

	"github.com/quizdojo/reward-engine/internal/logger"
)

// Job is a unit of background work.
type Job interface {
	Process(ctx context.Context) error
}

// Pool runs queued jobs on a fixed set of workers.
type Pool struct {
	jobQueue chan Job
	quit     chan struct{}
	workers  int
	wg       sync.WaitGroup
}

// NewPool creates a pool with the given worker count and queue capacity.
// Call Start before enqueueing.
func NewPool(workers int, queueSize int) *Pool {
	return &Pool{
		jobQueue: make(chan Job, queueSize),
		quit:     make(chan struct{}),
		workers:  workers,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.quit:
			return
		case job := <-p.jobQueue:
			ctx := context.Background()
			if err := job.Process(ctx); err != nil {
				// A failed job must not take the worker down with it.
				logger.FromContext(ctx).Error(LogMsgWorkerJobFailed, "error", err)
			}
		}
	}
}

// Enqueue adds a job to the queue. Blocks while the queue is full.
func (p *Pool) Enqueue(job Job) {
	p.jobQueue <- job
}

// Stop signals the workers to exit and waits for them.
func (p *Pool) Stop() {
	close(p.quit)
	p.wg.Wait()
}
