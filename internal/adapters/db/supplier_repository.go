package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

const upsertSupplierSQL = `
	INSERT INTO suppliers (
		id, name, contact_email, performance_rating, lead_time_days,
		on_time_delivery_rate, created_at, updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (id) DO UPDATE SET
		name = EXCLUDED.name,
		contact_email = EXCLUDED.contact_email,
		performance_rating = EXCLUDED.performance_rating,
		lead_time_days = EXCLUDED.lead_time_days,
		on_time_delivery_rate = EXCLUDED.on_time_delivery_rate,
		updated_at = EXCLUDED.updated_at`

const selectSupplierSQL = `
	SELECT id, name, contact_email, performance_rating, lead_time_days,
		on_time_delivery_rate, created_at, updated_at
	FROM suppliers`

type supplierRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSupplierRepository creates a supplier repository
func NewSupplierRepository(db *Database, logger *slog.Logger) ports.SupplierRepository {
	return &supplierRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "supplier")),
	}
}

func supplierArgs(s *domain.Supplier) []interface{} {
	return []interface{}{
		s.ID, s.Name, s.ContactEmail, s.PerformanceRating, s.LeadTimeDays,
		s.OnTimeDeliveryRate, s.CreatedAt, s.UpdatedAt,
	}
}

// Save inserts or updates a supplier by id
func (r *supplierRepository) Save(ctx context.Context, supplier *domain.Supplier) error {
	if _, err := r.db.Exec(ctx, upsertSupplierSQL, supplierArgs(supplier)...); err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}
	r.logger.DebugContext(ctx, "supplier saved", slog.String("id", supplier.ID))
	return nil
}

// SaveBatch upserts suppliers in a single transaction
func (r *supplierRepository) SaveBatch(ctx context.Context, suppliers []domain.Supplier) error {
	if len(suppliers) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range suppliers {
		batch.Queue(upsertSupplierSQL, supplierArgs(&suppliers[i])...)
	}

	return r.db.Transaction(ctx, func(tx pgx.Tx) error {
		if err := sendBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("failed to save supplier batch: %w", err)
		}
		return nil
	})
}

// FindByID returns the supplier or nil when it does not exist
func (r *supplierRepository) FindByID(ctx context.Context, id string) (*domain.Supplier, error) {
	supplier, err := ScanOne(r.db.QueryRow(ctx, selectSupplierSQL+` WHERE id = $1`, id), scanSupplier)
	if err != nil {
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}
	return supplier, nil
}

// FindAll returns every supplier ordered by id
func (r *supplierRepository) FindAll(ctx context.Context) ([]domain.Supplier, error) {
	rows, err := r.db.Query(ctx, selectSupplierSQL+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}

	found, err := ScanMany(rows, func(rows pgx.Rows) (*domain.Supplier, error) {
		return scanSupplier(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan suppliers: %w", err)
	}

	out := make([]domain.Supplier, len(found))
	for i, s := range found {
		out[i] = *s
	}
	return out, nil
}

func scanSupplier(row pgx.Row) (*domain.Supplier, error) {
	var s domain.Supplier
	err := row.Scan(
		&s.ID, &s.Name, &s.ContactEmail, &s.PerformanceRating, &s.LeadTimeDays,
		&s.OnTimeDeliveryRate, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
