package scheduler

import (
	"context"
	"time"

	"brewstock/internal/monitoring"
	"brewstock/internal/utils"
	"brewstock/internal/utils/mailing"
	"brewstock/pkg/catalog"
	"brewstock/pkg/inventory"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs the recurring background jobs: the low stock digest mail and
// the upstream catalog sync.
type Scheduler struct {
	cron             *cron.Cron
	inventoryService inventory.InventoryService
	catalogService   catalog.CatalogService
	metrics          *monitoring.Metrics
	logger           *zap.Logger
}

func NewScheduler(
	inventoryService inventory.InventoryService,
	catalogService catalog.CatalogService,
	metrics *monitoring.Metrics,
	logger *zap.Logger,
) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:             cron.New(),
		inventoryService: inventoryService,
		catalogService:   catalogService,
		metrics:          metrics,
		logger:           logger,
	}
}

func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	spec := utils.GetConfig("LOW_STOCK_CRON")
	if spec == "" {
		// Every day at 07:00
		spec = "0 7 * * *"
	}
	if _, err := s.cron.AddFunc(spec, s.sendLowStockAlert); err != nil {
		s.logger.Error("failed to schedule low stock alert", zap.Error(err))
	}

	// Hourly catalog sync keeps sellables and resellable inventory fresh
	if _, err := s.cron.AddFunc("0 * * * *", s.syncCatalog); err != nil {
		s.logger.Error("failed to schedule catalog sync", zap.Error(err))
	}

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) sendLowStockAlert() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	items, err := s.inventoryService.LowStockReport(ctx)
	if err != nil {
		s.logger.Error("failed to build low stock report", zap.Error(err))
		return
	}
	if len(items) == 0 {
		return
	}

	recipient := utils.GetConfig("ALERT_RECIPIENT")
	if recipient == "" {
		s.logger.Warn("low stock items found but no alert recipient configured",
			zap.Int("items", len(items)))
		return
	}

	body := mailing.LowStockAlertBody(items)
	if err := mailing.SendMail(recipient, "Low stock report", body); err != nil {
		s.logger.Error("failed to send low stock alert", zap.Error(err))
		return
	}

	s.metrics.LowStockAlerts.Inc()
	s.logger.Info("low stock alert sent", zap.Int("items", len(items)))
}

func (s *Scheduler) syncCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := s.catalogService.Sync(ctx)
	if err != nil {
		s.logger.Error("catalog sync failed", zap.Error(err))
		return
	}

	s.metrics.CatalogSyncs.Inc()
	s.logger.Info("catalog sync complete",
		zap.Int("sellables", result.SellablesUpserted),
		zap.Int("inventory_items", result.ItemsUpserted))
}
