package scheduler

import (
	"context"
	"net/url"

	"github.com/mkramos/gamestore-backend/internal/app/service"
	"github.com/mkramos/gamestore-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SyncScheduler runs the catalog populate pipeline on a cron schedule
type SyncScheduler struct {
	cron            *cron.Cron
	populateService service.PopulateService
	schedule        string
}

func NewSyncScheduler(populateService service.PopulateService, schedule string) *SyncScheduler {
	return &SyncScheduler{
		cron:            cron.New(),
		populateService: populateService,
		schedule:        schedule,
	}
}

// Start registers the sync job. An empty schedule disables periodic sync.
func (s *SyncScheduler) Start() error {
	if s.schedule == "" {
		logger.Info("Catalog sync scheduler disabled (no schedule configured)", nil)
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled catalog sync", nil)

		result, err := s.populateService.Populate(context.Background(), url.Values{})
		if err != nil {
			logger.Error("Scheduled catalog sync failed", err)
			return
		}

		logger.Info("Scheduled catalog sync finished", map[string]interface{}{
			"created": len(result.Created),
			"skipped": len(result.Skipped),
			"failed":  len(result.Failed),
		})
	})

	if err != nil {
		logger.Error("Failed to add cron job for catalog sync", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog sync scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})

	return nil
}

// Stop stops the scheduler
func (s *SyncScheduler) Stop() {
	logger.Info("Stopping catalog sync scheduler...", nil)
	s.cron.Stop()
	logger.Info("Catalog sync scheduler stopped", nil)
}
