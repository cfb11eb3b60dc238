package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// JobFunc is the unit of scheduled work. The context is cancelled when the
// scheduler stops.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	fn       JobFunc
}

// Scheduler fires each registered job on its own interval. Every job gets a
// dedicated goroutine and runs once immediately on Start, then on every tick.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []job
	started bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// AddJob registers a job. Registration after Start has no effect.
func (s *Scheduler) AddJob(name string, interval time.Duration, fn JobFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, job{name: name, interval: interval, fn: fn})
	slog.Info("Scheduled job registered", "job", name, "interval", interval)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return
	}
	s.started = true

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop cancels the job context and blocks until in-flight runs return.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	s.run(j)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.run(j)
		}
	}
}

func (s *Scheduler) run(j job) {
	start := time.Now()
	if err := j.fn(s.ctx); err != nil {
		slog.Error("Scheduled job failed", "job", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Scheduled job finished", "job", j.name, "duration", time.Since(start))
}

// RunOnce executes every registered job a single time with the given
// context, independent of the tick loop.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	jobs := make([]job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	for _, j := range jobs {
		if err := j.fn(ctx); err != nil {
			slog.Error("Scheduled job failed", "job", j.name, "error", err)
		}
	}
}
