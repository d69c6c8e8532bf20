package scheduler

import (
	"context"

	"github.com/rmorales-dev/tienda-sync/internal/service"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
	"github.com/robfig/cron/v3"
)

// RefreshScheduler periodically re-runs the full catalog reconciliation
// to keep the local cache warm for offline use. Each run is a single
// attempt; a failed run just leaves the cache as it was.
type RefreshScheduler struct {
	cron           *cron.Cron
	catalogService service.CatalogService
	schedule       string
}

func NewRefreshScheduler(catalogService service.CatalogService, schedule string) *RefreshScheduler {
	return &RefreshScheduler{
		cron:           cron.New(),
		catalogService: catalogService,
		schedule:       schedule,
	}
}

// Start registers and starts the refresh job.
func (s *RefreshScheduler) Start() error {
	_, err := s.cron.AddFunc(s.schedule, func() {
		logger.Info("Starting scheduled catalog refresh", nil)

		products, err := s.catalogService.ListProducts(context.Background())
		if err != nil {
			logger.Error("Scheduled catalog refresh failed", err)
			return
		}

		logger.Info("Scheduled catalog refresh completed", map[string]interface{}{
			"count": len(products),
		})
	})
	if err != nil {
		logger.Error("Failed to add catalog refresh cron job", err)
		return err
	}

	s.cron.Start()
	logger.Info("Catalog refresh scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

// Stop stops the scheduler.
func (s *RefreshScheduler) Stop() {
	logger.Info("Stopping catalog refresh scheduler...", nil)
	s.cron.Stop()
}
