package scheduler

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestDaily(t *testing.T) {
	doha, err := time.LoadLocation("Asia/Qatar")
	require.NoError(t, err)
	next := Daily(6, doha)

	before := time.Date(2024, 3, 15, 5, 30, 0, 0, doha)
	assert.Equal(t, time.Date(2024, 3, 15, 6, 0, 0, 0, doha), next(before))

	atHour := time.Date(2024, 3, 15, 6, 0, 0, 0, doha)
	assert.Equal(t, time.Date(2024, 3, 16, 6, 0, 0, 0, doha), next(atHour))

	// 23:30 UTC on the 14th is already 02:30 on the 15th in Doha
	utc := time.Date(2024, 3, 14, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 6, 0, 0, 0, doha), next(utc))
}

func TestMonthly(t *testing.T) {
	next := Monthly(time.UTC)

	assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), next(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), next(time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), next(time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)))
}

func TestFire_SkipsOverlappingRun(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var runs atomic.Int32
	job := &Job{
		Name: "slow",
		Next: Monthly(time.UTC),
		Run: func(ctx context.Context, now time.Time) error {
			runs.Add(1)
			close(started)
			<-release
			return nil
		},
	}
	s := New(discardLogger(), job)

	done := make(chan bool)
	go func() { done <- s.fire(context.Background(), job, time.Now()) }()
	<-started

	assert.False(t, s.fire(context.Background(), job, time.Now()))
	close(release)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), runs.Load())
}

func TestScheduler_RunsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var runs atomic.Int32
	job := &Job{
		Name: "tick",
		Next: func(t time.Time) time.Time { return t.Add(time.Hour) },
		Run: func(ctx context.Context, now time.Time) error {
			if runs.Add(1) == 1 {
				cancel()
			}
			return nil
		},
	}
	s := New(discardLogger(), job)
	var waited []time.Duration
	s.after = func(d time.Duration) <-chan time.Time {
		waited = append(waited, d)
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}

	s.Start(ctx)
	finished := make(chan struct{})
	go func() {
		s.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	assert.GreaterOrEqual(t, runs.Load(), int32(1))
	require.NotEmpty(t, waited)
	assert.InDelta(t, time.Hour.Seconds(), waited[0].Seconds(), 1)
}
