package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

// XLSXContentType is the MIME type of every exported workbook
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const reportsPrefix = "reports/"

// ErrStorageDisabled is returned when report storage has not been configured
var ErrStorageDisabled = errors.New("report storage is not configured")

// ReportService renders workbooks from the analytics views and stores them
type ReportService struct {
	analytics ports.AnalyticsService
	renderer  ports.WorkbookRenderer
	storage   ports.FileStorage
	urlTTL    time.Duration
	clock     func() time.Time
	logger    *slog.Logger
}

var _ ports.ReportService = (*ReportService)(nil)

// NewReportService creates a report service. storage may be nil when only
// direct downloads are needed.
func NewReportService(
	analytics ports.AnalyticsService,
	renderer ports.WorkbookRenderer,
	storage ports.FileStorage,
	urlTTL time.Duration,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{
		analytics: analytics,
		renderer:  renderer,
		storage:   storage,
		urlTTL:    urlTTL,
		clock:     time.Now,
		logger:    logger.With(slog.String("service", "reports")),
	}
}

// WithClock replaces the time source used for file names and retention
func (s *ReportService) WithClock(clock func() time.Time) *ReportService {
	s.clock = clock
	return s
}

// Export renders the workbook for kind
func (s *ReportService) Export(ctx context.Context, kind domain.ReportKind) (*ports.ReportFile, error) {
	now := s.clock()

	data, err := s.render(ctx, kind, now)
	if err != nil {
		return nil, err
	}

	return &ports.ReportFile{
		Kind:        kind,
		Filename:    kind.Filename(now.Format(domain.DateLayout)),
		ContentType: XLSXContentType,
		Data:        data,
	}, nil
}

func (s *ReportService) render(ctx context.Context, kind domain.ReportKind, now time.Time) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch kind {
	case domain.ReportInventory:
		items, lerr := s.analytics.ClassifiedItems(ctx)
		if lerr != nil {
			return nil, lerr
		}
		data, err = s.renderer.Inventory(items, now)
	case domain.ReportABC:
		summary, lerr := s.analytics.ABCSummary(ctx)
		if lerr != nil {
			return nil, lerr
		}
		data, err = s.renderer.ABC(*summary)
	case domain.ReportDeadStock:
		rows, lerr := s.analytics.DeadStock(ctx)
		if lerr != nil {
			return nil, lerr
		}
		data, err = s.renderer.DeadStock(rows)
	case domain.ReportProfitMargins:
		rows, lerr := s.analytics.ProfitMargins(ctx)
		if lerr != nil {
			return nil, lerr
		}
		data, err = s.renderer.ProfitMargins(rows)
	case domain.ReportStockAging:
		rows, lerr := s.analytics.StockAging(ctx)
		if lerr != nil {
			return nil, lerr
		}
		data, err = s.renderer.StockAging(rows)
	case domain.ReportSupplierPerformance:
		rows, lerr := s.analytics.SupplierPerformance(ctx)
		if lerr != nil {
			return nil, lerr
		}
		data, err = s.renderer.SupplierPerformance(rows)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownReport, kind)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to render %s workbook: %w", kind, err)
	}
	return data, nil
}

// Generate renders the workbook for kind and uploads it under reports/<kind>/
func (s *ReportService) Generate(ctx context.Context, kind domain.ReportKind) (*ports.StoredReport, error) {
	if s.storage == nil {
		return nil, ErrStorageDisabled
	}

	file, err := s.Export(ctx, kind)
	if err != nil {
		return nil, err
	}

	now := s.clock()
	key := fmt.Sprintf("%s%s/%s-%s.xlsx", reportsPrefix, kind, now.Format(domain.DateLayout), uuid.NewString())

	location, err := s.storage.Upload(ctx, key, bytes.NewReader(file.Data), file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload report: %w", err)
	}

	report := &ports.StoredReport{
		Kind:        kind,
		Key:         key,
		Location:    location,
		Size:        len(file.Data),
		GeneratedAt: now,
	}

	url, err := s.storage.GetPresignedURL(ctx, key, s.urlTTL)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to presign report URL",
			slog.String("key", key),
			slog.String("error", err.Error()))
	} else {
		report.DownloadURL = url
	}

	s.logger.InfoContext(ctx, "report generated",
		slog.String("kind", string(kind)),
		slog.String("key", key),
		slog.Int("size", report.Size))

	return report, nil
}

// Cleanup deletes stored reports older than retention and returns how many were removed
func (s *ReportService) Cleanup(ctx context.Context, retention time.Duration) (int, error) {
	if s.storage == nil {
		return 0, ErrStorageDisabled
	}

	cutoff := s.clock().Add(-retention)
	keys, err := s.storage.ListOlderThan(ctx, reportsPrefix, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stored reports: %w", err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	if err := s.storage.DeleteMultiple(ctx, keys); err != nil {
		return 0, fmt.Errorf("failed to delete stored reports: %w", err)
	}

	s.logger.InfoContext(ctx, "old reports removed",
		slog.Int("count", len(keys)),
		slog.Time("cutoff", cutoff))

	return len(keys), nil
}
