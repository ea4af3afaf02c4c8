// Package scheduler runs the engine's background jobs: a small fixed set of
// independently-timed tasks under one supervisor. Each job carries its own
// failure boundary; a panicking or erroring job logs and waits for its next
// tick, it never halts its siblings or the process.
package scheduler

import (
	"context"
	"sync"
	"time"

	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
)

// Job is one independently-ticking scheduled task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Supervisor starts and stops a set of jobs together.
type Supervisor struct {
	jobs    []Job
	logger  logger.Logger
	metrics *metrics.Metrics

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewSupervisor creates a supervisor over the given jobs.
func NewSupervisor(jobs []Job, logger logger.Logger, metrics *metrics.Metrics) *Supervisor {
	return &Supervisor{
		jobs:    jobs,
		logger:  logger,
		metrics: metrics,
	}
}

// Start launches one goroutine per job. Jobs fire on their own tickers; no
// job blocks another.
func (s *Supervisor) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, job)
	}
	s.logger.Info("Scheduler started", "jobs", len(s.jobs))
}

// Stop cancels all pending timers and waits for job loops to exit. In-flight
// provider calls are not aborted; they finish and their results are
// discarded.
func (s *Supervisor) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.logger.Info("Scheduler stopped")
}

func (s *Supervisor) runLoop(ctx context.Context, job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	s.logger.Info("Job scheduled", "job", job.Name, "interval", job.Interval)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Job loop stopped", "job", job.Name)
			return
		case <-ticker.C:
			s.runOnce(ctx, job)
		}
	}
}

// runOnce is the per-tick failure boundary.
func (s *Supervisor) runOnce(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.JobRuns.WithLabelValues(job.Name, "panic").Inc()
			s.logger.Error("Job panicked", "job", job.Name, "panic", r)
		}
	}()

	start := time.Now()
	err := job.Run(ctx)
	s.metrics.JobDuration.WithLabelValues(job.Name).Observe(time.Since(start).Seconds())

	if err != nil {
		s.metrics.JobRuns.WithLabelValues(job.Name, "error").Inc()
		s.logger.Error("Job run failed", "job", job.Name, "error", err)
		return
	}
	s.metrics.JobRuns.WithLabelValues(job.Name, "ok").Inc()
	s.logger.Debug("Job run completed", "job", job.Name, "took", time.Since(start))
}
