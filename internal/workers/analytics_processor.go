// internal/workers/analytics_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

// Warmer runs a set of cache warmers and reports how many succeeded
type Warmer interface {
	Warmup(ctx context.Context, warmers map[string]func(context.Context) error) int
}

// AnalyticsProcessor rebuilds the cached analysis views
type AnalyticsProcessor struct {
	views       ports.AnalyticsService
	invalidator ports.CacheInvalidator
	warmer      Warmer
	logger      *slog.Logger
}

// NewAnalyticsProcessor creates a new analytics processor
func NewAnalyticsProcessor(views ports.AnalyticsService, invalidator ports.CacheInvalidator, warmer Warmer, logger *slog.Logger) *AnalyticsProcessor {
	return &AnalyticsProcessor{
		views:       views,
		invalidator: invalidator,
		warmer:      warmer,
		logger:      logger.With(slog.String("processor", "analytics")),
	}
}

// Warmers returns the views the refresh recomputes, keyed by name
func (p *AnalyticsProcessor) Warmers() map[string]func(context.Context) error {
	return map[string]func(context.Context) error{
		"abc": func(ctx context.Context) error {
			_, err := p.views.ABCSummary(ctx)
			return err
		},
		"dashboard": func(ctx context.Context) error {
			_, err := p.views.Dashboard(ctx)
			return err
		},
		"notifications": func(ctx context.Context) error {
			_, err := p.views.Notifications(ctx)
			return err
		},
		"dead_stock": func(ctx context.Context) error {
			_, err := p.views.DeadStock(ctx)
			return err
		},
		"analytics": func(ctx context.Context) error {
			_, err := p.views.Analytics(ctx)
			return err
		},
	}
}

// RefreshAnalytics handles analytics:refresh. Stale views are dropped first so
// the warmers recompute from the current inventory.
func (p *AnalyticsProcessor) RefreshAnalytics(ctx context.Context, _ *asynq.Task) error {
	start := time.Now()

	if p.invalidator != nil {
		if err := p.invalidator.InvalidateInventoryCache(ctx, ""); err != nil {
			p.logger.WarnContext(ctx, "failed to drop stale views", slog.String("error", err.Error()))
		}
	}

	warmers := p.Warmers()
	warmed := p.warmer.Warmup(ctx, warmers)
	if warmed == 0 {
		return errors.New("no analysis view could be refreshed")
	}

	p.logger.InfoContext(ctx, "analytics refreshed",
		slog.Int("views", warmed),
		slog.Int("failed", len(warmers)-warmed),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// ReportProcessor renders reports in the background and stores them
type ReportProcessor struct {
	reports ports.ReportService
	logger  *slog.Logger
}

// NewReportProcessor creates a new report processor
func NewReportProcessor(reports ports.ReportService, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		reports: reports,
		logger:  logger.With(slog.String("processor", "report")),
	}
}

// GenerateReport handles report:generate
func (p *ReportProcessor) GenerateReport(ctx context.Context, t *asynq.Task) error {
	var payload ReportPayload
	if err := decodePayload(t, &payload); err != nil {
		return err
	}

	stored, err := p.reports.Generate(ctx, payload.Kind)
	if err != nil {
		return fmt.Errorf("failed to generate %s report: %w", payload.Kind, err)
	}

	p.logger.InfoContext(ctx, "report generated",
		slog.String("kind", string(payload.Kind)),
		slog.String("key", stored.Key),
		slog.String("download_url", stored.DownloadURL),
		slog.Int("size", stored.Size),
		slog.String("request_id", payload.RequestID))
	return nil
}
