// internal/workers/notifications_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

// LatestAlertsTTL bounds how long a sweep result is served after the worker stops
const LatestAlertsTTL = 24 * time.Hour

// AlertProcessor sweeps the inventory for stock and expiry alerts
type AlertProcessor struct {
	views  ports.AnalyticsService
	cache  ports.CacheRepository
	logger *slog.Logger
}

// NewAlertProcessor creates a new alert processor. cache may be nil, in which
// case sweeps are only logged.
func NewAlertProcessor(views ports.AnalyticsService, cache ports.CacheRepository, logger *slog.Logger) *AlertProcessor {
	return &AlertProcessor{
		views:  views,
		cache:  cache,
		logger: logger.With(slog.String("processor", "alerts")),
	}
}

// ScanAlerts handles alerts:scan. The result is stored under the latest alerts
// key for GET /notifications/latest.
func (p *AlertProcessor) ScanAlerts(ctx context.Context, _ *asynq.Task) error {
	n, err := p.views.Notifications(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute notifications: %w", err)
	}

	for _, a := range n.Expiring {
		if a.Expired {
			p.logger.WarnContext(ctx, "item expired",
				slog.String("item_id", a.ID),
				slog.String("name", a.Name),
				slog.Time("expiry_date", a.ExpiryDate))
		}
	}
	critical := 0
	for _, a := range n.LowStock {
		if a.Critical {
			critical++
			p.logger.WarnContext(ctx, "item at critical stock",
				slog.String("item_id", a.ID),
				slog.String("name", a.Name),
				slog.Int("quantity", a.Quantity))
		}
	}

	if p.cache != nil {
		if err := p.cache.SetWithTTL(ctx, ports.LatestAlertsKey, n, LatestAlertsTTL); err != nil {
			return fmt.Errorf("failed to store alert sweep: %w", err)
		}
	}

	p.logger.InfoContext(ctx, "alert sweep complete",
		slog.Int("low_stock", len(n.LowStock)),
		slog.Int("critical", critical),
		slog.Int("expiring", len(n.Expiring)),
		slog.Int("expired", n.ExpiredCount()))
	return nil
}
