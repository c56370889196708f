package spreadsheet_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/swifttrack-be/internal/adapters/spreadsheet"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/test/helpers"
)

func buildWorkbook(t *testing.T, rows ...[]string) []byte {
	t.Helper()
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Import")
	require.NoError(t, err)

	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func TestReadInventory_MapsHeaderAliases(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"QR Code", "Item_Name", "QTY", "Location", "Unit Cost", "Price", "Expiry Date", "Supplier", "Notes"},
		[]string{"QR12345", "Wireless Mouse", "150", "A1-B2", "$1,250.50", "39.99", "2025-12-31", "SUP001", "ignored"},
		[]string{"", "", "", "", "", "", "", "", ""},
		[]string{"QR67890", "USB Cable", "1,200", "", "", "", "", "", ""},
	)

	items, err := spreadsheet.ReadInventoryBytes(data)
	require.NoError(t, err)
	require.Len(t, items, 2)

	mouse := items[0]
	assert.Equal(t, "QR12345", mouse.ID)
	assert.Equal(t, "Wireless Mouse", mouse.Name)
	assert.Equal(t, 150, mouse.Quantity)
	require.NotNil(t, mouse.Location)
	assert.Equal(t, "A1-B2", *mouse.Location)
	assert.Equal(t, "1250.5", mouse.UnitCost.Decimal.String())
	assert.Equal(t, "39.99", mouse.UnitPrice.Decimal.String())
	require.NotNil(t, mouse.ExpiryDate)
	assert.Equal(t, "2025-12-31", mouse.ExpiryDate.Format(domain.DateLayout))
	require.NotNil(t, mouse.SupplierID)
	assert.Equal(t, "SUP001", *mouse.SupplierID)

	cable := items[1]
	assert.Equal(t, 1200, cable.Quantity)
	assert.Nil(t, cable.Location)
	assert.False(t, cable.UnitCost.Valid)
	assert.Nil(t, cable.ExpiryDate)
}

func TestReadInventory_ReaderAt(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"id", "name", "quantity"},
		[]string{"QR1", "Widget", "4"},
	)

	items, err := spreadsheet.ReadInventory(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)
}

func TestReadInventory_CollectsRowErrors(t *testing.T) {
	data := buildWorkbook(t,
		[]string{"ID", "Name", "Quantity", "Unit Cost", "Expiry Date"},
		[]string{"QR1", "Widget", "2.5", "", ""},
		[]string{"QR2", "Gadget", "3", "-4", ""},
		[]string{"QR3", "Gizmo", "1", "", "someday"},
		[]string{"QR4", "", "1", "", ""},
		[]string{"QR5", "Fine", "1", "", ""},
	)

	items, err := spreadsheet.ReadInventoryBytes(data)
	assert.Nil(t, items)

	var importErr *spreadsheet.ImportError
	require.True(t, errors.As(err, &importErr))
	assert.ErrorIs(t, err, domain.ErrInvalidItem)

	rows := make([]int, 0, len(importErr.Rows))
	for _, r := range importErr.Rows {
		rows = append(rows, r.Row)
	}
	assert.Equal(t, []int{2, 3, 4, 5}, rows)
	assert.Contains(t, importErr.Rows[0].Message, "whole number")
	assert.Contains(t, importErr.Rows[1].Message, "unit_cost")
	assert.Contains(t, importErr.Rows[2].Message, "expiry date")
	assert.Contains(t, importErr.Rows[3].Message, "name")
}

func TestReadInventory_MissingHeader(t *testing.T) {
	tests := []struct {
		name string
		rows [][]string
	}{
		{name: "no_rows", rows: nil},
		{name: "no_id_column", rows: [][]string{{"Name", "Quantity"}, {"Widget", "1"}}},
		{name: "no_name_column", rows: [][]string{{"ID", "Quantity"}, {"QR1", "1"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := buildWorkbook(t, tt.rows...)
			_, err := spreadsheet.ReadInventoryBytes(data)
			assert.ErrorIs(t, err, spreadsheet.ErrNoHeader)
		})
	}
}

func TestReadInventory_NotAWorkbook(t *testing.T) {
	_, err := spreadsheet.ReadInventoryBytes([]byte("id,name\nQR1,Widget\n"))
	assert.ErrorIs(t, err, spreadsheet.ErrNotWorkbook)
}

func TestReadInventory_RoundTripsExport(t *testing.T) {
	r := spreadsheet.NewRenderer("en-US", "USD")
	original := sampleItems()

	data, err := r.Inventory(original, helpers.FixedNow)
	require.NoError(t, err)

	items, err := spreadsheet.ReadInventoryBytes(data)
	require.NoError(t, err)
	require.Len(t, items, len(original))

	for i, item := range items {
		assert.Equal(t, original[i].ID, item.ID)
		assert.Equal(t, original[i].Name, item.Name)
		assert.Equal(t, original[i].Quantity, item.Quantity)
		assert.Equal(t, original[i].DateAdded.Format(domain.DateLayout), item.DateAdded.Format(domain.DateLayout))
	}
	assert.True(t, items[0].UnitCost.Decimal.Equal(original[0].UnitCost.Decimal))
	assert.Equal(t, domain.StatusExpired, items[1].Status)
}
