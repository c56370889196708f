// internal/core/ports/inventory_repository.go
package ports

import (
	"context"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// InventoryRepository defines the persistence port for inventory.
// This interface is implemented by the database adapter.
type InventoryRepository interface {
	Save(ctx context.Context, item *domain.InventoryItem) error
	SaveBatch(ctx context.Context, items []domain.InventoryItem) error
	Update(ctx context.Context, item *domain.InventoryItem) error
	FindByID(ctx context.Context, id string) (*domain.InventoryItem, error)
	// FindByIDForUpdate locks the row for the rest of the enclosing transaction.
	FindByIDForUpdate(ctx context.Context, id string) (*domain.InventoryItem, error)
	FindAll(ctx context.Context, params ListParams) ([]*domain.InventoryItem, int64, error)
	ListAll(ctx context.Context) ([]domain.InventoryItem, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	Exists(ctx context.Context, id string) (bool, error)
	// WithinTransaction runs fn against a repository bound to a single transaction.
	WithinTransaction(ctx context.Context, fn func(repo InventoryRepository) error) error
}

// SupplierRepository defines the persistence port for suppliers.
type SupplierRepository interface {
	Save(ctx context.Context, supplier *domain.Supplier) error
	SaveBatch(ctx context.Context, suppliers []domain.Supplier) error
	FindByID(ctx context.Context, id string) (*domain.Supplier, error)
	FindAll(ctx context.Context) ([]domain.Supplier, error)
}
