// Package scheduler wires up the cron job that periodically re-runs vacancy
// collection for the configured default query.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	"hhradar/internal/service"
)

// Scheduler wraps robfig/cron and manages the periodic collection loop.
type Scheduler struct {
	cron   *cron.Cron
	svc    *service.Service
	query  string
	count  int
	spec   string // cron spec, e.g. "@every 6h"
	logger *slog.Logger
}

// New creates a Scheduler that collects query every intervalHours hours.
func New(svc *service.Service, query string, count, intervalHours int, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLogger(cron.DefaultLogger)),
		svc:    svc,
		query:  query,
		count:  count,
		spec:   fmt.Sprintf("@every %dh", intervalHours),
		logger: logger,
	}
}

// Start registers the job and starts the scheduler. Also runs one collection
// immediately so the table is populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCollection(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.logger.Info("cron started", "spec", s.spec, "query", s.query)

	// Run immediately on startup (non-blocking)
	go s.runCollection(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("cron stopped")
}

func (s *Scheduler) runCollection(ctx context.Context) {
	s.logger.Info("scheduled collection started", "query", s.query, "count", s.count)

	res := s.svc.Collect(ctx, service.CollectRequest{Query: s.query, Count: s.count})

	s.logger.Info("scheduled collection complete",
		"found", res.Found, "saved", res.Saved, "updated", res.Updated,
		"skipped", res.Skipped, "message", res.Message)
}
