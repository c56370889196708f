// internal/core/ports/inventory_service.go
package ports

import (
	"context"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// InventoryService defines the application service port for inventory.
// This interface is implemented by the application service.
type InventoryService interface {
	CreateItem(ctx context.Context, item *domain.InventoryItem) error
	GetItem(ctx context.Context, id string) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, id string, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, params ListParams) (*ListResult, error)
	ImportItems(ctx context.Context, items []domain.InventoryItem) (int, error)

	ScanItem(ctx context.Context, raw []byte) (*ScanResult, error)
	AssignLocation(ctx context.Context, id string, location *string) (*domain.InventoryItem, error)
	GenerateQR(ctx context.Context, payload domain.QRPayload) ([]byte, error)

	ListSuppliers(ctx context.Context) ([]domain.Supplier, error)
	SaveSupplier(ctx context.Context, supplier *domain.Supplier) error
}

// ListParams holds parameters for listing inventory
type ListParams struct {
	Search     string
	Status     string
	Location   string
	SupplierID string
	SortBy     string
	SortOrder  string
	Page       int
	PageSize   int
}

// ListResult holds the result of listing inventory
type ListResult struct {
	Items      []*domain.InventoryItem `json:"items"`
	Page       int                     `json:"page"`
	PageSize   int                     `json:"page_size"`
	TotalCount int64                   `json:"total_count"`
	TotalPages int                     `json:"total_pages"`
}

// ScanResult reports what a QR scan did to the inventory
type ScanResult struct {
	Item    *domain.InventoryItem `json:"item"`
	Created bool                  `json:"created"`
}
