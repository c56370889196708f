package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestInventoryItem_Validate(t *testing.T) {
	tests := []struct {
		name      string
		item      *domain.InventoryItem
		wantError bool
		field     string
	}{
		{
			name: "valid_item_with_all_fields",
			item: &domain.InventoryItem{
				ID:        "QR12345",
				Name:      "Wireless Mouse",
				Quantity:  5,
				Status:    domain.StatusCritical,
				UnitCost:  decimal.NewNullDecimal(decimal.NewFromFloat(15)),
				UnitPrice: decimal.NewNullDecimal(decimal.NewFromFloat(29.99)),
			},
		},
		{
			name: "zero_quantity_is_allowed",
			item: &domain.InventoryItem{ID: "QR1", Name: "Empty Bin", Quantity: 0},
		},
		{
			name:      "missing_id",
			item:      &domain.InventoryItem{Name: "Test Item", Quantity: 1},
			wantError: true,
			field:     "id",
		},
		{
			name:      "blank_name",
			item:      &domain.InventoryItem{ID: "QR1", Name: "   ", Quantity: 1},
			wantError: true,
			field:     "name",
		},
		{
			name:      "negative_quantity",
			item:      &domain.InventoryItem{ID: "QR1", Name: "Test", Quantity: -1},
			wantError: true,
			field:     "quantity",
		},
		{
			name: "negative_unit_cost",
			item: &domain.InventoryItem{
				ID: "QR1", Name: "Test", Quantity: 1,
				UnitCost: decimal.NewNullDecimal(decimal.NewFromInt(-3)),
			},
			wantError: true,
			field:     "unit_cost",
		},
		{
			name: "negative_unit_price",
			item: &domain.InventoryItem{
				ID: "QR1", Name: "Test", Quantity: 1,
				UnitPrice: decimal.NewNullDecimal(decimal.NewFromInt(-3)),
			},
			wantError: true,
			field:     "unit_price",
		},
		{
			name:      "unknown_status",
			item:      &domain.InventoryItem{ID: "QR1", Name: "Test", Status: "Sold"},
			wantError: true,
			field:     "status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidItem))
			var vErr *domain.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestInventoryItem_PrepareForStorage(t *testing.T) {
	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

	item := &domain.InventoryItem{
		ID:         "  QR1 ",
		Name:       " Keyboard ",
		Location:   strPtr("   "),
		SupplierID: strPtr(""),
	}
	item.PrepareForStorage(now)

	assert.Equal(t, "QR1", item.ID)
	assert.Equal(t, "Keyboard", item.Name)
	assert.Nil(t, item.Location)
	assert.Nil(t, item.SupplierID)
	assert.Equal(t, domain.StatusInStock, item.Status)
	assert.Equal(t, now, item.DateAdded)
	assert.Equal(t, now, item.CreatedAt)
	assert.Equal(t, now, item.UpdatedAt)

	added := now.AddDate(0, 0, -3)
	existing := &domain.InventoryItem{ID: "QR2", Name: "Mouse", DateAdded: added, CreatedAt: added}
	existing.PrepareForStorage(now)
	assert.Equal(t, added, existing.DateAdded)
	assert.Equal(t, added, existing.CreatedAt)
	assert.Equal(t, now, existing.UpdatedAt)
}

func TestNormalizeLocation(t *testing.T) {
	tests := []struct {
		name     string
		input    *string
		expected *string
	}{
		{name: "nil_stays_nil", input: nil, expected: nil},
		{name: "blank_becomes_nil", input: strPtr(" \t "), expected: nil},
		{name: "trims_whitespace", input: strPtr("  Aisle 3, Shelf B "), expected: strPtr("Aisle 3, Shelf B")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, domain.NormalizeLocation(tt.input))
		})
	}
}

func TestInventoryItem_StockValueAndActivity(t *testing.T) {
	added := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	moved := added.AddDate(0, 1, 0)

	item := domain.InventoryItem{ID: "QR1", Name: "Paper", Quantity: 4, DateAdded: added}
	assert.True(t, item.StockValue().IsZero())
	assert.Equal(t, added, item.LastActivity())

	item.UnitCost = decimal.NewNullDecimal(decimal.RequireFromString("4.50"))
	item.LastMovementDate = &moved
	assert.Equal(t, "18", item.StockValue().String())
	assert.Equal(t, moved, item.LastActivity())
}

func TestInventoryItem_Clone(t *testing.T) {
	expiry := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	original := domain.InventoryItem{ID: "QR1", Name: "Milk", Location: strPtr("Cold Storage 1"), ExpiryDate: &expiry}

	clone := original.Clone()
	*clone.Location = "Moved"
	*clone.ExpiryDate = expiry.AddDate(0, 0, 1)

	assert.Equal(t, "Cold Storage 1", *original.Location)
	assert.Equal(t, expiry, *original.ExpiryDate)
}

func TestABCCategory_Rank(t *testing.T) {
	assert.Equal(t, 1, domain.CategoryA.Rank())
	assert.Equal(t, 2, domain.CategoryB.Rank())
	assert.Equal(t, 3, domain.CategoryC.Rank())
	assert.Equal(t, 0, domain.ABCCategory("").Rank())
}

func TestSupplier_Validate(t *testing.T) {
	rating := 4.5
	badRating := 7.0
	rate := 1.2

	assert.NoError(t, (&domain.Supplier{ID: "SUP001", Name: "Global Electronics Ltd.", PerformanceRating: &rating}).Validate())
	assert.Error(t, (&domain.Supplier{Name: "No ID"}).Validate())
	assert.Error(t, (&domain.Supplier{ID: "SUP001", Name: "X", PerformanceRating: &badRating}).Validate())
	assert.Error(t, (&domain.Supplier{ID: "SUP001", Name: "X", OnTimeDeliveryRate: &rate}).Validate())
}

func TestParseReportKind(t *testing.T) {
	kind, err := domain.ParseReportKind("stock-aging")
	require.NoError(t, err)
	assert.Equal(t, domain.ReportStockAging, kind)
	assert.Equal(t, "stock-aging-2024-06-15.xlsx", kind.Filename("2024-06-15"))

	_, err = domain.ParseReportKind("pdf")
	assert.ErrorIs(t, err, domain.ErrUnknownReport)
}
