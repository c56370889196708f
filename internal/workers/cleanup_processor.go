// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/core/services"
)

// CleanupProcessor removes stored reports past their retention
type CleanupProcessor struct {
	reports          ports.ReportService
	defaultRetention time.Duration
	logger           *slog.Logger
}

// NewCleanupProcessor creates a new cleanup processor. defaultRetention applies
// to tasks that carry no retention of their own.
func NewCleanupProcessor(reports ports.ReportService, defaultRetention time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		reports:          reports,
		defaultRetention: defaultRetention,
		logger:           logger.With(slog.String("processor", "cleanup")),
	}
}

// CleanupReports handles cleanup:reports
func (p *CleanupProcessor) CleanupReports(ctx context.Context, t *asynq.Task) error {
	retention := p.defaultRetention
	if len(t.Payload()) > 0 {
		var payload CleanupPayload
		if err := decodePayload(t, &payload); err != nil {
			return err
		}
		if payload.Retention > 0 {
			retention = payload.Retention
		}
	}
	if retention <= 0 {
		return fmt.Errorf("report retention must be positive: %w", asynq.SkipRetry)
	}

	deleted, err := p.reports.Cleanup(ctx, retention)
	if errors.Is(err, services.ErrStorageDisabled) {
		p.logger.DebugContext(ctx, "report storage disabled, nothing to clean")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to clean up reports: %w", err)
	}

	p.logger.InfoContext(ctx, "old reports removed",
		slog.Int("files_deleted", deleted),
		slog.Duration("retention", retention))
	return nil
}
