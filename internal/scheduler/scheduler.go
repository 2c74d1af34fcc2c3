// Package scheduler runs the periodic jobs inside the server process. Each job sleeps until its
// next fire time; a run that is still in progress when the next one is due is skipped.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one periodic task.
type Job struct {
	Name string
	// Next returns the first fire time strictly after t.
	Next func(t time.Time) time.Time
	Run  func(ctx context.Context, now time.Time) error

	running sync.Mutex
}

// Scheduler fires its jobs until the context passed to Start is cancelled.
type Scheduler struct {
	jobs   []*Job
	logger *slog.Logger
	now    func() time.Time
	after  func(time.Duration) <-chan time.Time
	wg     sync.WaitGroup
}

// New creates a scheduler for the given jobs.
func New(logger *slog.Logger, jobs ...*Job) *Scheduler {
	return &Scheduler{
		jobs:   jobs,
		logger: logger,
		now:    time.Now,
		after:  time.After,
	}
}

// Start launches one goroutine per job and returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, job)
	}
	s.logger.Info("Scheduler started", slog.Int("jobs", len(s.jobs)))
}

// Wait blocks until every job loop and in-flight run has returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job *Job) {
	defer s.wg.Done()
	for {
		next := job.Next(s.now())
		s.logger.Debug("Job scheduled", slog.String("job", job.Name), slog.Time("next_run", next))

		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler stopping job", slog.String("job", job.Name))
			return
		case fired := <-s.after(next.Sub(s.now())):
			s.wg.Add(1)
			go func() {
				defer s.wg.Done()
				s.fire(ctx, job, fired)
			}()
		}
	}
}

// fire runs the job once unless a previous run is still going. It reports whether the job ran.
func (s *Scheduler) fire(ctx context.Context, job *Job, now time.Time) bool {
	if !job.running.TryLock() {
		s.logger.Warn("Skipping job run, previous run still in progress", slog.String("job", job.Name))
		return false
	}
	defer job.running.Unlock()

	started := time.Now()
	s.logger.Info("Job started", slog.String("job", job.Name))
	if err := job.Run(ctx, now); err != nil {
		s.logger.Error("Job failed",
			slog.String("job", job.Name),
			slog.String("error", err.Error()),
			slog.Duration("duration", time.Since(started)))
		return true
	}
	s.logger.Info("Job finished", slog.String("job", job.Name), slog.Duration("duration", time.Since(started)))
	return true
}

// Daily fires every day at hour:00 in loc.
func Daily(hour int, loc *time.Location) func(time.Time) time.Time {
	return func(t time.Time) time.Time {
		local := t.In(loc)
		next := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
		if !next.After(local) {
			next = next.AddDate(0, 0, 1)
		}
		return next
	}
}

// Monthly fires at 00:00 on the first of each month in loc.
func Monthly(loc *time.Location) func(time.Time) time.Time {
	return func(t time.Time) time.Time {
		local := t.In(loc)
		return time.Date(local.Year(), local.Month()+1, 1, 0, 0, 0, 0, loc)
	}
}
