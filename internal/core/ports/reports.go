package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// ReportFile is a rendered workbook ready to be sent or stored
type ReportFile struct {
	Kind        domain.ReportKind
	Filename    string
	ContentType string
	Data        []byte
}

// StoredReport points at a workbook saved to object storage
type StoredReport struct {
	Kind        domain.ReportKind `json:"kind"`
	Key         string            `json:"key"`
	Location    string            `json:"location"`
	DownloadURL string            `json:"download_url,omitempty"`
	Size        int               `json:"size"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// WorkbookRenderer turns report rows into spreadsheet bytes.
type WorkbookRenderer interface {
	Inventory(items []domain.InventoryItem, now time.Time) ([]byte, error)
	ABC(summary analysis.ABCSummary) ([]byte, error)
	DeadStock(rows []analysis.DeadStockItem) ([]byte, error)
	ProfitMargins(rows []analysis.ProfitMarginRow) ([]byte, error)
	StockAging(rows []analysis.StockAgingRow) ([]byte, error)
	SupplierPerformance(rows []analysis.SupplierPerformanceRow) ([]byte, error)
}

// FileStorage is the object storage port used for generated reports.
type FileStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
	ListOlderThan(ctx context.Context, prefix string, cutoff time.Time) ([]string, error)
	DeleteMultiple(ctx context.Context, keys []string) error
}
