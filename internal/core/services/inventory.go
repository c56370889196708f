// internal/core/services/inventory.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
	importBatchSize = 100
)

// InventoryService handles inventory business logic
type InventoryService struct {
	repo      ports.InventoryRepository
	suppliers ports.SupplierRepository
	cache     ports.CacheInvalidator
	clock     func() time.Time
	logger    *slog.Logger
}

// Statically assert that *InventoryService implements the InventoryService interface.
var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service. cache may be nil.
func NewInventoryService(
	repo ports.InventoryRepository,
	suppliers ports.SupplierRepository,
	cache ports.CacheInvalidator,
	logger *slog.Logger,
) *InventoryService {
	return &InventoryService{
		repo:      repo,
		suppliers: suppliers,
		cache:     cache,
		clock:     time.Now,
		logger:    logger.With(slog.String("service", "inventory")),
	}
}

// WithClock replaces the time source used for movement and audit dates
func (s *InventoryService) WithClock(clock func() time.Time) *InventoryService {
	s.clock = clock
	return s
}

// CreateItem validates and stores a new item
func (s *InventoryService) CreateItem(ctx context.Context, item *domain.InventoryItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	item.PrepareForStorage(s.clock())

	if err := s.repo.Save(ctx, item); err != nil {
		return fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.InfoContext(ctx, "created inventory item",
		slog.String("item_id", item.ID),
		slog.String("name", item.Name),
		slog.Int("quantity", item.Quantity))

	s.invalidate(ctx, item.ID)
	return nil
}

// GetItem retrieves an item by its QR id
func (s *InventoryService) GetItem(ctx context.Context, id string) (*domain.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}
	return item, nil
}

// UpdateItem replaces the stored fields of an existing item
func (s *InventoryService) UpdateItem(ctx context.Context, id string, item *domain.InventoryItem) error {
	item.ID = id

	if err := item.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get inventory item: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}

	item.CreatedAt = existing.CreatedAt
	if item.DateAdded.IsZero() {
		item.DateAdded = existing.DateAdded
	}
	item.PrepareForStorage(s.clock())

	if err := s.repo.Update(ctx, item); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.InfoContext(ctx, "updated inventory item", slog.String("item_id", id))

	s.invalidate(ctx, id)
	return nil
}

// DeleteItem removes an item permanently
func (s *InventoryService) DeleteItem(ctx context.Context, id string) error {
	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check item existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.InfoContext(ctx, "deleted inventory item", slog.String("item_id", id))

	s.invalidate(ctx, id)
	return nil
}

// ListItems retrieves inventory items with filtering and pagination
func (s *InventoryService) ListItems(ctx context.Context, params ports.ListParams) (*ports.ListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	items, totalCount, err := s.repo.FindAll(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory items: %w", err)
	}

	totalPages := int(totalCount) / params.PageSize
	if int(totalCount)%params.PageSize > 0 {
		totalPages++
	}

	if items == nil {
		items = []*domain.InventoryItem{}
	}

	return &ports.ListResult{
		Items:      items,
		Page:       params.Page,
		PageSize:   params.PageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
	}, nil
}

// ImportItems validates and upserts items in batches, returning how many were written
func (s *InventoryService) ImportItems(ctx context.Context, items []domain.InventoryItem) (int, error) {
	if len(items) == 0 {
		s.logger.InfoContext(ctx, "no items to import")
		return 0, nil
	}

	now := s.clock()
	for i := range items {
		if err := items[i].Validate(); err != nil {
			return 0, fmt.Errorf("validation failed for row %d: %w", i+1, err)
		}
		items[i].PrepareForStorage(now)
	}

	for start := 0; start < len(items); start += importBatchSize {
		end := min(start+importBatchSize, len(items))
		if err := s.repo.SaveBatch(ctx, items[start:end]); err != nil {
			return start, fmt.Errorf("failed to save batch %d-%d: %w", start, end, err)
		}
	}

	s.logger.InfoContext(ctx, "imported inventory items", slog.Int("count", len(items)))

	s.invalidate(ctx, "")
	return len(items), nil
}

// ScanItem applies a scanned label: a known id gains one unit and picks up
// any newer label details, an unknown id becomes a new item with quantity 1.
func (s *InventoryService) ScanItem(ctx context.Context, raw []byte) (*ports.ScanResult, error) {
	decoded := domain.DecodeQRPayload(raw)
	if !decoded.OK() {
		s.logger.WarnContext(ctx, "rejected QR payload",
			slog.String("reason", decoded.Err.Reason),
			slog.Int("violations", len(decoded.Err.Violations)))
		return nil, decoded.Err
	}
	payload := decoded.Payload
	now := s.clock()

	var result *ports.ScanResult
	err := s.repo.WithinTransaction(ctx, func(repo ports.InventoryRepository) error {
		existing, err := repo.FindByIDForUpdate(ctx, payload.ID)
		if err != nil {
			return fmt.Errorf("failed to load scanned item: %w", err)
		}

		if existing != nil {
			applyScan(existing, payload, now)
			existing.UpdatedAt = now
			if err := repo.Update(ctx, existing); err != nil {
				return fmt.Errorf("failed to update scanned item: %w", err)
			}
			result = &ports.ScanResult{Item: existing}
			return nil
		}

		item := newScannedItem(payload, now)
		if err := repo.Save(ctx, item); err != nil {
			return fmt.Errorf("failed to save scanned item: %w", err)
		}
		result = &ports.ScanResult{Item: item, Created: true}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "scanned inventory item",
		slog.String("item_id", result.Item.ID),
		slog.Bool("created", result.Created),
		slog.Int("quantity", result.Item.Quantity))

	s.invalidate(ctx, result.Item.ID)
	return result, nil
}

func applyScan(item *domain.InventoryItem, p *domain.QRPayload, now time.Time) {
	item.Quantity++
	moved := now
	item.LastMovementDate = &moved

	if p.ExpiryDate != nil {
		item.ExpiryDate = p.ExpiryDate
	}
	if p.UnitCost != nil {
		item.UnitCost = decimal.NewNullDecimal(*p.UnitCost)
	}
	if p.UnitPrice != nil {
		item.UnitPrice = decimal.NewNullDecimal(*p.UnitPrice)
	}
	if p.SupplierID != nil {
		item.SupplierID = p.SupplierID
	}
	if p.PurchaseDate != nil {
		item.PurchaseDate = p.PurchaseDate
	}
}

func newScannedItem(p *domain.QRPayload, now time.Time) *domain.InventoryItem {
	moved := now
	purchased := now
	if p.PurchaseDate != nil {
		purchased = *p.PurchaseDate
	}

	item := &domain.InventoryItem{
		ID:               p.ID,
		Name:             p.Name,
		Quantity:         1,
		Status:           domain.StatusInStock,
		ExpiryDate:       p.ExpiryDate,
		SupplierID:       p.SupplierID,
		PurchaseDate:     &purchased,
		DateAdded:        now,
		LastMovementDate: &moved,
	}
	if p.UnitCost != nil {
		item.UnitCost = decimal.NewNullDecimal(*p.UnitCost)
	}
	if p.UnitPrice != nil {
		item.UnitPrice = decimal.NewNullDecimal(*p.UnitPrice)
	}
	item.PrepareForStorage(now)
	return item
}

// AssignLocation sets or clears where an item is kept. Movement dates are untouched.
func (s *InventoryService) AssignLocation(ctx context.Context, id string, location *string) (*domain.InventoryItem, error) {
	var updated *domain.InventoryItem
	err := s.repo.WithinTransaction(ctx, func(repo ports.InventoryRepository) error {
		item, err := repo.FindByIDForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load item: %w", err)
		}
		if item == nil {
			return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
		}

		item.Location = domain.NormalizeLocation(location)
		item.UpdatedAt = s.clock()
		if err := repo.Update(ctx, item); err != nil {
			return fmt.Errorf("failed to update location: %w", err)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	loc := ""
	if updated.Location != nil {
		loc = *updated.Location
	}
	s.logger.InfoContext(ctx, "assigned item location",
		slog.String("item_id", id),
		slog.String("location", loc))

	s.invalidate(ctx, id)
	return updated, nil
}

// GenerateQR encodes label content. A supplier id must refer to a known supplier.
func (s *InventoryService) GenerateQR(ctx context.Context, payload domain.QRPayload) ([]byte, error) {
	if payload.SupplierID != nil && s.suppliers != nil {
		supplier, err := s.suppliers.FindByID(ctx, *payload.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up supplier: %w", err)
		}
		if supplier == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrSupplierNotFound, *payload.SupplierID)
		}
	}

	data, err := domain.EncodeQRPayload(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR payload: %w", err)
	}
	return data, nil
}

// ListSuppliers returns every known supplier
func (s *InventoryService) ListSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.suppliers.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list suppliers: %w", err)
	}
	if suppliers == nil {
		suppliers = []domain.Supplier{}
	}
	return suppliers, nil
}

// SaveSupplier creates or replaces a supplier
func (s *InventoryService) SaveSupplier(ctx context.Context, supplier *domain.Supplier) error {
	if err := supplier.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := s.clock()
	if supplier.CreatedAt.IsZero() {
		supplier.CreatedAt = now
	}
	supplier.UpdatedAt = now

	if err := s.suppliers.Save(ctx, supplier); err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	s.logger.InfoContext(ctx, "saved supplier", slog.String("supplier_id", supplier.ID))

	s.invalidate(ctx, "")
	return nil
}

// invalidate drops cached views after a write. Cache failures are logged, not returned.
func (s *InventoryService) invalidate(ctx context.Context, itemID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateInventoryCache(ctx, itemID); err != nil {
		s.logger.WarnContext(ctx, "failed to invalidate inventory cache",
			slog.String("item_id", itemID),
			slog.String("error", err.Error()))
	}
}

// IsNotFound reports whether err means the requested record does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, domain.ErrItemNotFound) || errors.Is(err, domain.ErrSupplierNotFound)
}
