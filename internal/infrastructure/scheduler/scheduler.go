package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Ticker runs a Job on a fixed interval until its context is cancelled.
type Ticker struct {
	name     string
	interval time.Duration
	job      Job
	logger   zerolog.Logger
	skip     []error
}

// Option configures a Ticker.
type Option func(*Ticker)

// WithQuietErrors makes errors matching any of errs log at debug level.
// BOD uses it for ErrBatchInProgress.
func WithQuietErrors(errs ...error) Option {
	return func(t *Ticker) { t.skip = append(t.skip, errs...) }
}

// NewTicker creates a Ticker. A non-positive interval disables it.
func NewTicker(name string, interval time.Duration, job Job, logger zerolog.Logger, opts ...Option) *Ticker {
	t := &Ticker{
		name:     name,
		interval: interval,
		job:      job,
		logger:   logger.With().Str("scheduler", name).Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Enabled reports whether the ticker has a positive interval.
func (t *Ticker) Enabled() bool { return t.interval > 0 }

// Start blocks running the job every interval. It returns ctx.Err() on
// cancellation, or nil immediately when disabled.
func (t *Ticker) Start(ctx context.Context) error {
	if !t.Enabled() {
		t.logger.Debug().Msg("scheduler disabled")
		return nil
	}

	t.logger.Info().Dur("interval", t.interval).Msg("scheduler started")

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			t.runOnce(ctx)
		}
	}
}

func (t *Ticker) runOnce(ctx context.Context) {
	start := time.Now()
	err := t.job(ctx)
	if err == nil {
		t.logger.Info().Dur("took", time.Since(start)).Msg("scheduled run finished")
		return
	}

	for _, quiet := range t.skip {
		if errors.Is(err, quiet) {
			t.logger.Debug().Err(err).Msg("scheduled run skipped")
			return
		}
	}
	t.logger.Error().Err(err).Msg("scheduled run failed")
}
