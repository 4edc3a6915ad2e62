package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopworks/catalogsync/domain/record"
	"github.com/shopworks/catalogsync/domain/tracking"
)

// Scheduler drives the poll loop: list candidate records, process each one
// sequentially, sleep, repeat. Per-record failures are swallowed by the
// Processor; a failure to fetch the candidate list itself is fatal and
// propagates out of Run for an external supervisor to handle.
type Scheduler struct {
	records   record.Store
	processor *Processor
	tracker   *tracking.Tracker
	interval  time.Duration
	logger    *slog.Logger
}

// NewScheduler creates a new Scheduler.
func NewScheduler(
	records record.Store,
	processor *Processor,
	tracker *tracking.Tracker,
	interval time.Duration,
	logger *slog.Logger,
) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		records:   records,
		processor: processor,
		tracker:   tracker,
		interval:  interval,
		logger:    logger,
	}
}

// Run polls until the context is cancelled or a candidate-list fetch fails.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("poll loop started", slog.Duration("interval", s.interval))

	for {
		if err := s.RunCycle(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.interval):
		}
	}
}

// RunCycle performs one full pass over the candidate records. Cancellation
// is checked between records so shutdown does not wait for the whole set.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	records, err := s.records.List(ctx)
	if err != nil {
		return fmt.Errorf("list candidate records: %w", err)
	}

	stats := tracking.NewCycleStats()

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}

		stats.RecordSeen()

		switch outcome := s.processor.Process(ctx, rec); outcome.State() {
		case StateSyncedNew:
			stats.RecordIngested()
		case StateSyncedFromCatalog:
			stats.RecordReconciled()
		case StateInsertedUnindexed:
			stats.RecordUnindexed()
		case StateSkipped:
			stats.RecordSkipped()
		case StateFailed:
			stats.RecordFailed()
		}
	}

	stats.Finish()
	if s.tracker != nil {
		s.tracker.Observe(stats)
	}

	s.logger.Info("cycle complete",
		slog.Int("seen", stats.Seen()),
		slog.Int("ingested", stats.Ingested()),
		slog.Int("reconciled", stats.Reconciled()),
		slog.Int("unindexed", stats.Unindexed()),
		slog.Int("skipped", stats.Skipped()),
		slog.Int("failed", stats.Failed()),
		slog.Duration("elapsed", stats.FinishedAt().Sub(stats.StartedAt())),
	)
	return nil
}
