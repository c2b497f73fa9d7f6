// Package scheduler runs periodic background maintenance on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/property-search/internal/metrics"
)

// TokenSweeper drops an access token once it has expired.
type TokenSweeper interface {
	ClearExpired() bool
}

// Scheduler manages the periodic token expiry sweep.
type Scheduler struct {
	cron   *cron.Cron
	tokens TokenSweeper
	log    *slog.Logger
}

// New creates a Scheduler that sweeps expired tokens every sweepInterval.
func New(tokens TokenSweeper, sweepInterval time.Duration, log *slog.Logger) (*Scheduler, error) {
	if sweepInterval <= 0 {
		return nil, errors.New("token sweep interval must be positive")
	}

	c := cron.New()

	s := &Scheduler{
		cron:   c,
		tokens: tokens,
		log:    log,
	}

	if _, err := c.AddFunc("@every "+sweepInterval.String(), s.SweepTokens); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins running scheduled tasks.
func (s *Scheduler) Start() {
	s.log.Info("scheduler started")
	s.cron.Start()
}

// Stop stops the scheduler. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scheduler stopping")
	return s.cron.Stop()
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

// SweepTokens clears the held access token if it has expired.
func (s *Scheduler) SweepTokens() {
	if !s.tokens.ClearExpired() {
		return
	}
	metrics.TokenInvalidationsTotal.WithLabelValues("expired").Inc()
	s.log.Info("cleared expired Boom access token")
}
