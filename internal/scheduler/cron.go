package scheduler

import (
	"context"

	"github.com/amaumene/popcornarr/internal/providers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// scrapeSchedule runs the full catalog pass every six hours
const scrapeSchedule = "0 */6 * * *"

// Scheduler runs the provider sequence on a fixed schedule. Sources run
// one at a time; each provider bounds its own internal fan-out.
type Scheduler struct {
	cron      *cron.Cron
	providers []providers.Provider
	logger    *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(provs []providers.Provider, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		providers: provs,
		logger:    logger,
	}
}

// Start starts the scheduler and kicks off an immediate first run
func (s *Scheduler) Start() error {
	s.logger.Info("Starting scheduler")

	if _, err := s.cron.AddFunc(scrapeSchedule, s.runScrape); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	go s.runScrape()
	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runScrape executes one full pass over every source in series. A failing
// source is logged inside Execute and never stops the walk.
func (s *Scheduler) runScrape() {
	s.logger.WithField("sources", len(s.providers)).Info("Running scheduled scrape")
	ctx := context.Background()

	for _, provider := range s.providers {
		providers.Execute(ctx, provider, s.logger)
	}

	s.logger.Info("Scrape run completed")
}
