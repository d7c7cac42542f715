package scheduler

import (
	"sync"
	"time"

	"github.com/quizdojo/reward-engine/internal/worker"
)

// Scheduler enqueues jobs to a worker pool at fixed intervals.
type Scheduler struct {
	pool *worker.Pool
	quit chan struct{}
	wg   sync.WaitGroup
}

// New creates a scheduler that hands jobs to the given pool.
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval. The ticker goroutine
// starts immediately; the first run happens one interval from now. Enqueue
// blocks if the pool's queue is full, which delays subsequent ticks rather
// than dropping them.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-s.quit:
				return
			case <-ticker.C:
				s.pool.Enqueue(job)
			}
		}
	}()
}

// Stop cancels all scheduled jobs and waits for their goroutines.
func (s *Scheduler) Stop() {
	close(s.quit)
	s.wg.Wait()
}
