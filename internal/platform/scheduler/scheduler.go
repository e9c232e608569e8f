// Package scheduler runs the periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"

	portssvc "github.com/foliotrack/folio_backend/internal/core/ports/services"
	"github.com/foliotrack/folio_backend/internal/middleware"
)

// Scheduler owns the cron runner and the jobs registered on it.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a scheduler with the price refresh job registered on spec
// (standard 5-field cron syntax).
func New(spec string, securitySvc portssvc.SecuritySvcFacade, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New()

	jobLogger := logger.With(slog.String("job", "price_refresh"))
	_, err := c.AddFunc(spec, func() {
		ctx := middleware.WithLogger(context.Background(), jobLogger)
		if err := securitySvc.RefreshAllPrices(ctx); err != nil {
			jobLogger.Error("Scheduled price refresh failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to register price refresh job with spec %q: %w", spec, err)
	}

	return &Scheduler{cron: c, logger: logger}, nil
}

// Start launches the cron runner in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Scheduler started")
}

// Stop stops the runner and waits for any in-flight job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}
