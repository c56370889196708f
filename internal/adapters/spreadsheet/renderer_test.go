package spreadsheet_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/swifttrack-be/internal/adapters/spreadsheet"
	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/test/helpers"
)

func cellValue(t *testing.T, sheet *xlsx.Sheet, row, col int) string {
	t.Helper()
	cell, err := sheet.Cell(row, col)
	require.NoError(t, err)
	return cell.Value
}

func sampleItems() []domain.InventoryItem {
	return []domain.InventoryItem{
		{
			ID:         "QR12345",
			Name:       "Wireless Mouse",
			Quantity:   150,
			Location:   helpers.StringPtr("A1-B2"),
			Status:     domain.StatusInStock,
			UnitCost:   helpers.Money(25.5),
			UnitPrice:  helpers.Money(39.99),
			DateAdded:  helpers.Days(-10),
			SupplierID: helpers.StringPtr("SUP001"),
		},
		{
			ID:         "QR67890",
			Name:       "Yogurt",
			Quantity:   3,
			Status:     domain.StatusInStock,
			ExpiryDate: helpers.TimePtr(helpers.Days(-1)),
			DateAdded:  helpers.Days(-20),
		},
	}
}

func TestRenderer_FormatMoney(t *testing.T) {
	r := spreadsheet.NewRenderer("en-US", "USD")

	assert.Equal(t, "USD 1,234.50", r.FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "USD 0.00", r.FormatMoney(decimal.Zero))
	assert.Equal(t, "12,000", r.FormatCount(12000))
}

func TestRenderer_UnknownLocaleFallsBack(t *testing.T) {
	r := spreadsheet.NewRenderer("not a locale!", "")

	assert.Equal(t, "USD 10.00", r.FormatMoney(decimal.NewFromInt(10)))
}

func TestRenderer_Inventory(t *testing.T) {
	r := spreadsheet.NewRenderer("en-US", "USD")

	data, err := r.Inventory(sampleItems(), helpers.FixedNow)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)
	assert.Equal(t, "Inventory", file.Sheets[0].Name)
	assert.Equal(t, "Summary", file.Sheets[1].Name)

	sheet := file.Sheets[0]
	assert.Equal(t, "ID", cellValue(t, sheet, 0, 0))
	assert.Equal(t, "QR12345", cellValue(t, sheet, 1, 0))
	assert.Equal(t, "150", cellValue(t, sheet, 1, 2))
	assert.Equal(t, "A1-B2", cellValue(t, sheet, 1, 3))
	// the expired item reports its effective status
	assert.Equal(t, string(domain.StatusExpired), cellValue(t, sheet, 2, 4))
	assert.Equal(t, "2025-06-14", cellValue(t, sheet, 2, 9))

	summary := file.Sheets[1]
	assert.Equal(t, "2", cellValue(t, summary, 2, 1))
	assert.Equal(t, "USD 3,825.00", cellValue(t, summary, 3, 1))
}

func TestRenderer_ABC(t *testing.T) {
	r := spreadsheet.NewRenderer("en-US", "USD")

	items := analysis.ClassifyABC([]domain.InventoryItem{
		{ID: "QR1", Name: "Laptop", Quantity: 70, UnitCost: helpers.Money(10)},
		{ID: "QR2", Name: "Cable", Quantity: 20, UnitCost: helpers.Money(10)},
		{ID: "QR3", Name: "Sticker", Quantity: 100, UnitCost: helpers.Money(0.1)},
	})
	summary := analysis.SummarizeABC(items)

	data, err := r.ABC(summary)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 2)

	tiers := file.Sheets[0]
	assert.Equal(t, "ABC Summary", tiers.Name)
	assert.Equal(t, "A", cellValue(t, tiers, 1, 0))
	assert.Equal(t, "Total", cellValue(t, tiers, 1+len(summary.Categories), 0))

	rows := file.Sheets[1]
	assert.Equal(t, "Items", rows.Name)
	assert.Equal(t, "QR1", cellValue(t, rows, 1, 0))
	assert.Equal(t, "A", cellValue(t, rows, 1, 5))
}

func TestRenderer_SheetsPerReport(t *testing.T) {
	r := spreadsheet.NewRenderer("en-US", "USD")
	items := sampleItems()
	suppliers := []domain.Supplier{{ID: "SUP001", Name: "TechCorp"}}

	tests := []struct {
		name   string
		render func() ([]byte, error)
		sheet  string
	}{
		{
			name: "dead_stock",
			render: func() ([]byte, error) {
				return r.DeadStock(analysis.FindDeadStock(items, helpers.FixedNow, 5))
			},
			sheet: "Dead Stock",
		},
		{
			name:   "profit_margins",
			render: func() ([]byte, error) { return r.ProfitMargins(analysis.ProfitMargins(items)) },
			sheet:  "Profit Margins",
		},
		{
			name:   "stock_aging",
			render: func() ([]byte, error) { return r.StockAging(analysis.StockAging(items, helpers.FixedNow)) },
			sheet:  "Stock Aging",
		},
		{
			name: "supplier_performance",
			render: func() ([]byte, error) {
				return r.SupplierPerformance(analysis.SupplierPerformance(items, suppliers))
			},
			sheet: "Supplier Performance",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := tt.render()
			require.NoError(t, err)

			file, err := xlsx.OpenBinary(data)
			require.NoError(t, err)
			require.Len(t, file.Sheets, 1)
			assert.Equal(t, tt.sheet, file.Sheets[0].Name)
		})
	}
}
