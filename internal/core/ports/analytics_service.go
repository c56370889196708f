package ports

import (
	"context"
	"time"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// AnalyticsService serves the read-side views computed over the whole inventory.
type AnalyticsService interface {
	ClassifiedItems(ctx context.Context) ([]domain.InventoryItem, error)
	ABCSummary(ctx context.Context) (*analysis.ABCSummary, error)
	DeadStock(ctx context.Context) ([]analysis.DeadStockItem, error)
	Notifications(ctx context.Context) (*analysis.Notifications, error)
	ProfitMargins(ctx context.Context) ([]analysis.ProfitMarginRow, error)
	StockAging(ctx context.Context) ([]analysis.StockAgingRow, error)
	SupplierPerformance(ctx context.Context) ([]analysis.SupplierPerformanceRow, error)
	Analytics(ctx context.Context) (*analysis.AnalyticsSummary, error)
	Dashboard(ctx context.Context) (*analysis.Dashboard, error)
}

// ReportService renders report workbooks and manages stored copies.
type ReportService interface {
	Export(ctx context.Context, kind domain.ReportKind) (*ReportFile, error)
	Generate(ctx context.Context, kind domain.ReportKind) (*StoredReport, error)
	Cleanup(ctx context.Context, retention time.Duration) (int, error)
}
