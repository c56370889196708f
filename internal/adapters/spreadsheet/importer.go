package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
	"golang.org/x/text/cases"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// ErrNoHeader is returned when the first sheet has no id and name columns
var ErrNoHeader = errors.New("workbook has no header row with id and name columns")

// ErrNotWorkbook is returned when the upload cannot be opened as xlsx
var ErrNotWorkbook = errors.New("file is not an xlsx workbook")

// RowError describes why a spreadsheet row could not be read
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportError collects every rejected row of an import
type ImportError struct {
	Rows []RowError
}

func (e *ImportError) Error() string {
	parts := make([]string, 0, min(len(e.Rows), 5))
	for i, r := range e.Rows {
		if i == 5 {
			parts = append(parts, fmt.Sprintf("and %d more", len(e.Rows)-5))
			break
		}
		parts = append(parts, fmt.Sprintf("row %d: %s", r.Row, r.Message))
	}
	return "invalid import rows: " + strings.Join(parts, "; ")
}

func (e *ImportError) Unwrap() error {
	return domain.ErrInvalidItem
}

type column int

const (
	colID column = iota
	colName
	colQuantity
	colLocation
	colStatus
	colExpiry
	colUnitCost
	colUnitPrice
	colDateAdded
	colLastMovement
	colSupplier
	colPurchaseDate
)

var headerAliases = map[string]column{
	"id":                 colID,
	"qr":                 colID,
	"qr code":            colID,
	"item id":            colID,
	"name":               colName,
	"item name":          colName,
	"quantity":           colQuantity,
	"qty":                colQuantity,
	"location":           colLocation,
	"status":             colStatus,
	"expiry date":        colExpiry,
	"expiry":             colExpiry,
	"expiration date":    colExpiry,
	"unit cost":          colUnitCost,
	"cost":               colUnitCost,
	"unit price":         colUnitPrice,
	"price":              colUnitPrice,
	"date added":         colDateAdded,
	"last movement":      colLastMovement,
	"last movement date": colLastMovement,
	"supplier id":        colSupplier,
	"supplier":           colSupplier,
	"purchase date":      colPurchaseDate,
}

var folder = cases.Fold()

func normalizeHeader(s string) string {
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(folder.String(s)), " ")
}

// ReadInventory parses the first sheet of an xlsx workbook. The first row names
// the columns; blank rows are skipped. Every invalid row is reported together
// in an *ImportError.
func ReadInventory(r io.ReaderAt, size int64) ([]domain.InventoryItem, error) {
	file, err := xlsx.OpenReaderAt(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWorkbook, err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrNoHeader
	}
	return readSheet(file.Sheets[0])
}

// ReadInventoryBytes is ReadInventory over an in-memory workbook
func ReadInventoryBytes(data []byte) ([]domain.InventoryItem, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotWorkbook, err)
	}
	if len(file.Sheets) == 0 {
		return nil, ErrNoHeader
	}
	return readSheet(file.Sheets[0])
}

func readSheet(sheet *xlsx.Sheet) ([]domain.InventoryItem, error) {
	var (
		columns  map[column]int
		items    []domain.InventoryItem
		rowErrs  []RowError
		rowIndex int
	)

	err := sheet.ForEachRow(func(row *xlsx.Row) error {
		rowIndex++
		cells := rowValues(row)

		if columns == nil {
			columns = mapHeader(cells)
			return nil
		}
		if isBlank(cells) {
			return nil
		}

		item, err := parseRow(row, cells, columns)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Row: rowIndex, Message: err.Error()})
			return nil
		}
		items = append(items, *item)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if columns == nil {
		return nil, ErrNoHeader
	}
	if _, ok := columns[colID]; !ok {
		return nil, ErrNoHeader
	}
	if _, ok := columns[colName]; !ok {
		return nil, ErrNoHeader
	}
	if len(rowErrs) > 0 {
		return nil, &ImportError{Rows: rowErrs}
	}
	return items, nil
}

func rowValues(row *xlsx.Row) []string {
	out := make([]string, 0, row.Sheet.MaxCol)
	for i := 0; i < row.Sheet.MaxCol; i++ {
		out = append(out, strings.TrimSpace(row.GetCell(i).String()))
	}
	return out
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}

func mapHeader(cells []string) map[column]int {
	columns := make(map[column]int)
	for i, h := range cells {
		if col, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, seen := columns[col]; !seen {
				columns[col] = i
			}
		}
	}
	return columns
}

func parseRow(row *xlsx.Row, cells []string, columns map[column]int) (*domain.InventoryItem, error) {
	get := func(c column) string {
		i, ok := columns[c]
		if !ok || i >= len(cells) {
			return ""
		}
		return cells[i]
	}

	item := &domain.InventoryItem{
		ID:     get(colID),
		Name:   get(colName),
		Status: domain.ItemStatus(get(colStatus)),
	}

	if q := get(colQuantity); q != "" {
		n, err := strconv.ParseFloat(strings.ReplaceAll(q, ",", ""), 64)
		if err != nil || n != float64(int(n)) {
			return nil, fmt.Errorf("quantity %q is not a whole number", q)
		}
		item.Quantity = int(n)
	}
	if loc := get(colLocation); loc != "" {
		item.Location = &loc
	}
	if s := get(colSupplier); s != "" {
		item.SupplierID = &s
	}

	var err error
	if item.UnitCost, err = parseMoney(get(colUnitCost)); err != nil {
		return nil, fmt.Errorf("unit cost: %w", err)
	}
	if item.UnitPrice, err = parseMoney(get(colUnitPrice)); err != nil {
		return nil, fmt.Errorf("unit price: %w", err)
	}

	dates := []struct {
		col  column
		name string
		dest **time.Time
	}{
		{colExpiry, "expiry date", &item.ExpiryDate},
		{colLastMovement, "last movement", &item.LastMovementDate},
		{colPurchaseDate, "purchase date", &item.PurchaseDate},
	}
	for _, d := range dates {
		t, err := parseCellDate(row, columns, d.col, get(d.col))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", d.name, err)
		}
		*d.dest = t
	}
	added, err := parseCellDate(row, columns, colDateAdded, get(colDateAdded))
	if err != nil {
		return nil, fmt.Errorf("date added: %w", err)
	}
	if added != nil {
		item.DateAdded = *added
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

func parseMoney(s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	clean := strings.NewReplacer("$", "", ",", "", "€", "", "£", "").Replace(s)
	d, err := decimal.NewFromString(strings.TrimSpace(clean))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%q is not a number", s)
	}
	return decimal.NewNullDecimal(d), nil
}

// parseCellDate accepts text dates and cells Excel stores as date serials
func parseCellDate(row *xlsx.Row, columns map[column]int, col column, text string) (*time.Time, error) {
	if text == "" {
		return nil, nil
	}
	if t, err := domain.ParseDate(text); err == nil {
		return &t, nil
	}

	if i, ok := columns[col]; ok {
		if cell := row.GetCell(i); cell != nil && cell.IsTime() {
			t, err := cell.GetTime(false)
			if err == nil {
				return &t, nil
			}
		}
	}
	return nil, fmt.Errorf("%q is not a date", text)
}
