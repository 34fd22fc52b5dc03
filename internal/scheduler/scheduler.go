package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/kakarot0105/JobBot/internal/model"
)

// RunFunc executes one full search-and-deliver cycle for every recipient.
type RunFunc func(ctx context.Context) error

// Scheduler triggers the daily run on a cron spec. Every trigger is gated
// by the run marker: if the task already completed today (UTC), the trigger
// is skipped, so restarts within a day never double-deliver a run.
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	taskName string
	store    model.Store
	run      RunFunc
	logger   *slog.Logger
}

// New creates a scheduler for the given cron spec (standard 5-field syntax
// or @-descriptors like "@daily").
func New(spec, taskName string, store model.Store, run RunFunc, logger *slog.Logger) (*Scheduler, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}
	return &Scheduler{
		cron:     cron.New(),
		spec:     spec,
		taskName: taskName,
		store:    store,
		run:      run,
		logger:   logger,
	}, nil
}

// Run starts the cron loop and blocks until ctx is cancelled. One trigger
// fires immediately on startup so a freshly booted daemon catches up on a
// missed day instead of waiting for the next tick.
func (s *Scheduler) Run(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.trigger(ctx) }); err != nil {
		return fmt.Errorf("register schedule %q: %w", s.spec, err)
	}

	s.logger.Info("starting scheduler", "spec", s.spec, "task", s.taskName)
	s.cron.Start()

	s.trigger(ctx)

	<-ctx.Done()
	s.logger.Info("shutting down scheduler")
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	return nil
}

// trigger runs one cycle unless today's marker already exists. The marker is
// written only after the run completes, so a failed run stays eligible for
// the next trigger.
func (s *Scheduler) trigger(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	ran, err := s.store.HasRunToday(s.taskName)
	if err != nil {
		s.logger.Error("run marker check failed", "task", s.taskName, "error", err)
		return
	}
	if ran {
		s.logger.Info("already ran today, skipping", "task", s.taskName)
		return
	}

	if err := s.run(ctx); err != nil {
		s.logger.Error("run failed", "task", s.taskName, "error", err)
		return
	}

	if err := s.store.MarkRun(s.taskName); err != nil {
		s.logger.Error("marking run failed", "task", s.taskName, "error", err)
	}
}
