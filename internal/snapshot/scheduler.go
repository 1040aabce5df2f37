// Package snapshot periodically samples the budget grand total so clients
// can chart how the budget moves over time.
package snapshot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/swiftgentle/jobcost/internal/store"
	"github.com/swiftgentle/jobcost/pkg/budget"
)

// Recorder is the storage the scheduler reads the budget from and writes
// snapshots to. *store.Store satisfies it.
type Recorder interface {
	LoadBudget(ctx context.Context) (budget.Departments, error)
	RecordSnapshot(ctx context.Context, total float64) (store.Snapshot, error)
}

// Scheduler records a budget snapshot on every tick of a cron schedule.
type Scheduler struct {
	schedule cron.Schedule
	spec     string
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler parses a standard 5-field cron expression. An empty
// expression yields a disabled scheduler whose Start returns immediately.
func NewScheduler(spec string, recorder Recorder, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Scheduler{
		spec:     strings.TrimSpace(spec),
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
	if s.spec == "" {
		return s, nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(s.spec)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot schedule %q: %w", s.spec, err)
	}
	s.schedule = schedule
	return s, nil
}

// Enabled reports whether the scheduler has a schedule to run.
func (s *Scheduler) Enabled() bool {
	return s.schedule != nil
}

// Start blocks, recording a snapshot at every scheduled time until ctx is
// cancelled. A failed tick is logged and does not stop the loop.
func (s *Scheduler) Start(ctx context.Context) {
	if !s.Enabled() {
		s.logger.Info("budget snapshots disabled", zap.String("op", "snapshot.Start"))
		return
	}

	for {
		now := s.now()
		next := s.schedule.Next(now)
		wait := next.Sub(now)
		s.logger.Debug("next budget snapshot scheduled",
			zap.String("op", "snapshot.Start"),
			zap.String("schedule", s.spec),
			zap.Time("next", next),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("budget snapshots stopped", zap.String("op", "snapshot.Start"))
			return
		case <-timer.C:
		}

		if _, err := s.Tick(ctx); err != nil {
			s.logger.Error("budget snapshot failed",
				zap.String("op", "snapshot.Start"),
				zap.Error(err),
			)
		}
	}
}

// Tick loads the current budget and records its grand total.
func (s *Scheduler) Tick(ctx context.Context) (store.Snapshot, error) {
	departments, err := s.recorder.LoadBudget(ctx)
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("load budget: %w", err)
	}

	snap, err := s.recorder.RecordSnapshot(ctx, budget.GrandTotal(departments))
	if err != nil {
		return store.Snapshot{}, fmt.Errorf("record snapshot: %w", err)
	}
	s.logger.Info("budget snapshot recorded",
		zap.String("op", "snapshot.Tick"),
		zap.Float64("total", snap.Total),
	)
	return snap, nil
}
