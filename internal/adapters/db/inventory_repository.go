// internal/adapters/db/inventory_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

const inventoryTable = "inventory_items"

var inventoryColumns = []string{
	"id", "name", "quantity", "location", "expiry_date", "status",
	"unit_cost", "unit_price", "date_added", "last_movement_date",
	"supplier_id", "purchase_date", "created_at", "updated_at",
}

// sortColumns maps the accepted sort_by values onto columns
var sortColumns = map[string]string{
	"name":          "name",
	"quantity":      "quantity",
	"status":        "status",
	"location":      "location",
	"expiry_date":   "expiry_date",
	"date_added":    "date_added",
	"last_movement": "last_movement_date",
	"unit_cost":     "unit_cost",
	"unit_price":    "unit_price",
	"updated_at":    "updated_at",
}

// inventoryRepository implements ports.InventoryRepository
type inventoryRepository struct {
	db     *Database
	q      querier
	inTx   bool
	logger *slog.Logger
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *Database, logger *slog.Logger) ports.InventoryRepository {
	return &inventoryRepository{
		db:     db,
		q:      db.Pool(),
		logger: logger.With(slog.String("repository", "inventory")),
	}
}

// WithinTransaction runs fn with a repository bound to one transaction. Nested
// calls reuse the outer transaction.
func (r *inventoryRepository) WithinTransaction(ctx context.Context, fn func(repo ports.InventoryRepository) error) error {
	if r.inTx {
		return fn(r)
	}
	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(&inventoryRepository{db: r.db, q: tx, inTx: true, logger: r.logger})
	})
}

func itemArgs(item *domain.InventoryItem) []interface{} {
	return []interface{}{
		item.ID, item.Name, item.Quantity, item.Location, item.ExpiryDate, string(item.Status),
		item.UnitCost, item.UnitPrice, item.DateAdded, item.LastMovementDate,
		item.SupplierID, item.PurchaseDate, item.CreatedAt, item.UpdatedAt,
	}
}

var insertItemSQL = `
	INSERT INTO inventory_items (` + strings.Join(inventoryColumns, ", ") + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

// Save creates a new inventory item
func (r *inventoryRepository) Save(ctx context.Context, item *domain.InventoryItem) error {
	if _, err := r.q.Exec(ctx, insertItemSQL, itemArgs(item)...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrItemExists, item.ID)
		}
		return fmt.Errorf("failed to save inventory item: %w", err)
	}

	r.logger.DebugContext(ctx, "inventory item saved", slog.String("id", item.ID))
	return nil
}

// SaveBatch upserts items by id in a single transaction
func (r *inventoryRepository) SaveBatch(ctx context.Context, items []domain.InventoryItem) error {
	if len(items) == 0 {
		return nil
	}

	query := insertItemSQL + `
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		quantity = EXCLUDED.quantity,
		location = EXCLUDED.location,
		expiry_date = EXCLUDED.expiry_date,
		status = EXCLUDED.status,
		unit_cost = EXCLUDED.unit_cost,
		unit_price = EXCLUDED.unit_price,
		last_movement_date = EXCLUDED.last_movement_date,
		supplier_id = EXCLUDED.supplier_id,
		purchase_date = EXCLUDED.purchase_date,
		updated_at = EXCLUDED.updated_at`

	batch := &pgx.Batch{}
	for i := range items {
		batch.Queue(query, itemArgs(&items[i])...)
	}

	return r.WithinTransaction(ctx, func(repo ports.InventoryRepository) error {
		txRepo := repo.(*inventoryRepository)
		if err := sendBatch(ctx, txRepo.q, batch); err != nil {
			var be *BatchError
			if errors.As(err, &be) {
				return fmt.Errorf("failed to save item %s: %w", items[be.Index].ID, be.Err)
			}
			return fmt.Errorf("failed to save inventory batch: %w", err)
		}

		r.logger.InfoContext(ctx, "inventory batch saved", slog.Int("count", len(items)))
		return nil
	})
}

// Update overwrites every mutable column of an existing item
func (r *inventoryRepository) Update(ctx context.Context, item *domain.InventoryItem) error {
	query := `
		UPDATE inventory_items SET
			name = $2, quantity = $3, location = $4, expiry_date = $5, status = $6,
			unit_cost = $7, unit_price = $8, date_added = $9, last_movement_date = $10,
			supplier_id = $11, purchase_date = $12, updated_at = $13
		WHERE id = $1`

	tag, err := r.q.Exec(ctx, query,
		item.ID, item.Name, item.Quantity, item.Location, item.ExpiryDate, string(item.Status),
		item.UnitCost, item.UnitPrice, item.DateAdded, item.LastMovementDate,
		item.SupplierID, item.PurchaseDate, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, item.ID)
	}

	r.logger.DebugContext(ctx, "inventory item updated", slog.String("id", item.ID))
	return nil
}

// FindByID retrieves an inventory item by id, returning nil when it does not exist
func (r *inventoryRepository) FindByID(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return r.findOne(ctx, id, false)
}

// FindByIDForUpdate is FindByID with a row lock held until the transaction ends
func (r *inventoryRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.InventoryItem, error) {
	return r.findOne(ctx, id, r.inTx)
}

func (r *inventoryRepository) findOne(ctx context.Context, id string, lock bool) (*domain.InventoryItem, error) {
	qb := psql.Select(inventoryColumns...).From(inventoryTable).Where(squirrel.Eq{"id": id})
	if lock {
		qb = qb.Suffix("FOR UPDATE")
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	item, err := ScanOne(r.q.QueryRow(ctx, query, args...), scanItem)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return item, nil
}

// FindAll retrieves a filtered, sorted page of items and the total match count
func (r *inventoryRepository) FindAll(ctx context.Context, params ports.ListParams) ([]*domain.InventoryItem, int64, error) {
	conds := listConditions(params)

	countSQL, countArgs, err := psql.Select("COUNT(*)").From(inventoryTable).Where(conds).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := r.q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory items: %w", err)
	}

	qb := psql.Select(inventoryColumns...).
		From(inventoryTable).
		Where(conds).
		OrderBy(orderBy(params.SortBy, params.SortOrder)...)

	if params.PageSize > 0 {
		qb = qb.Limit(uint64(params.PageSize))
		if params.Page > 1 {
			qb = qb.Offset(uint64((params.Page - 1) * params.PageSize))
		}
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query inventory items: %w", err)
	}

	items, err := ScanMany(rows, scanItemRows)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan inventory items: %w", err)
	}

	return items, total, nil
}

func listConditions(params ports.ListParams) squirrel.And {
	conds := squirrel.And{}
	if s := strings.TrimSpace(params.Search); s != "" {
		pattern := "%" + s + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"name": pattern},
			squirrel.ILike{"id": pattern},
		})
	}
	if params.Status != "" {
		conds = append(conds, squirrel.Eq{"status": params.Status})
	}
	if l := strings.TrimSpace(params.Location); l != "" {
		conds = append(conds, squirrel.ILike{"location": "%" + l + "%"})
	}
	if params.SupplierID != "" {
		conds = append(conds, squirrel.Eq{"supplier_id": params.SupplierID})
	}
	return conds
}

func orderBy(sortBy, sortOrder string) []string {
	column, ok := sortColumns[sortBy]
	if !ok {
		return []string{"date_added DESC", "id"}
	}
	direction := "ASC"
	if strings.EqualFold(sortOrder, "desc") {
		direction = "DESC"
	}
	return []string{fmt.Sprintf("%s %s NULLS LAST", column, direction), "id"}
}

// ListAll returns every item ordered by id
func (r *inventoryRepository) ListAll(ctx context.Context) ([]domain.InventoryItem, error) {
	query, args, err := psql.Select(inventoryColumns...).From(inventoryTable).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory items: %w", err)
	}

	items, err := ScanMany(rows, scanItemRows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan inventory items: %w", err)
	}

	out := make([]domain.InventoryItem, len(items))
	for i, item := range items {
		out[i] = *item
	}
	return out, nil
}

// Delete removes an item
func (r *inventoryRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM inventory_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrItemNotFound, id)
	}

	r.logger.InfoContext(ctx, "inventory item deleted", slog.String("id", id))
	return nil
}

// Count returns the total number of inventory items
func (r *inventoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM inventory_items`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count inventory items: %w", err)
	}
	return count, nil
}

// Exists checks if an inventory item exists
func (r *inventoryRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM inventory_items WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return exists, nil
}

func scanItem(row pgx.Row) (*domain.InventoryItem, error) {
	var (
		item   domain.InventoryItem
		status string
	)
	err := row.Scan(
		&item.ID, &item.Name, &item.Quantity, &item.Location, &item.ExpiryDate, &status,
		&item.UnitCost, &item.UnitPrice, &item.DateAdded, &item.LastMovementDate,
		&item.SupplierID, &item.PurchaseDate, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Status = domain.ItemStatus(status)
	return &item, nil
}

func scanItemRows(rows pgx.Rows) (*domain.InventoryItem, error) {
	return scanItem(rows)
}
