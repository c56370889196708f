// Package spreadsheet renders report workbooks and reads inventory imports
// using tealeg/xlsx.
package spreadsheet

import (
	"bytes"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

const (
	moneyFormat   = "#,##0.00"
	percentFormat = "0.00"
	headerFill    = "FFD9E1F2"
	colWidth      = 16
)

// Renderer builds xlsx workbooks for every report kind
type Renderer struct {
	printer  *message.Printer
	currency string
}

var _ ports.WorkbookRenderer = (*Renderer)(nil)

// NewRenderer creates a renderer that formats summary figures for locale.
// An unknown locale falls back to en-US.
func NewRenderer(locale, currency string) *Renderer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	if currency == "" {
		currency = "USD"
	}
	return &Renderer{
		printer:  message.NewPrinter(tag),
		currency: currency,
	}
}

// FormatMoney renders an amount with grouping for the configured locale, e.g. "USD 1,234.50"
func (r *Renderer) FormatMoney(d decimal.Decimal) string {
	return r.printer.Sprintf("%s %.2f", r.currency, d.Round(2).InexactFloat64())
}

// FormatCount renders an integer with locale grouping
func (r *Renderer) FormatCount(n int) string {
	return r.printer.Sprintf("%d", n)
}

type sheetWriter struct {
	sheet *xlsx.Sheet
}

func newSheet(file *xlsx.File, name string, headers ...string) (*sheetWriter, error) {
	sheet, err := file.AddSheet(name)
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet %q: %w", name, err)
	}

	row := sheet.AddRow()
	for _, h := range headers {
		cell := row.AddCell()
		cell.SetString(h)
		style := cell.GetStyle()
		style.Font.Bold = true
		style.Fill.PatternType = "solid"
		style.Fill.FgColor = headerFill
		style.ApplyFont = true
		style.ApplyFill = true
	}
	if len(headers) > 0 {
		sheet.SetColWidth(1, len(headers), colWidth)
	}
	return &sheetWriter{sheet: sheet}, nil
}

func (w *sheetWriter) row() *rowWriter {
	return &rowWriter{row: w.sheet.AddRow()}
}

type rowWriter struct {
	row *xlsx.Row
}

func (r *rowWriter) str(s string) *rowWriter {
	r.row.AddCell().SetString(s)
	return r
}

func (r *rowWriter) optStr(s *string) *rowWriter {
	if s == nil {
		return r.str("")
	}
	return r.str(*s)
}

func (r *rowWriter) num(n int) *rowWriter {
	r.row.AddCell().SetInt(n)
	return r
}

func (r *rowWriter) money(d decimal.Decimal) *rowWriter {
	r.row.AddCell().SetFloatWithFormat(d.Round(2).InexactFloat64(), moneyFormat)
	return r
}

func (r *rowWriter) optMoney(d decimal.NullDecimal) *rowWriter {
	if !d.Valid {
		return r.str("")
	}
	return r.money(d.Decimal)
}

func (r *rowWriter) percent(f float64) *rowWriter {
	r.row.AddCell().SetFloatWithFormat(f, percentFormat)
	return r
}

func (r *rowWriter) optFloat(f *float64) *rowWriter {
	if f == nil {
		return r.str("")
	}
	r.row.AddCell().SetFloat(*f)
	return r
}

func (r *rowWriter) date(t time.Time) *rowWriter {
	if t.IsZero() {
		return r.str("")
	}
	return r.str(t.Format(domain.DateLayout))
}

func (r *rowWriter) optDate(t *time.Time) *rowWriter {
	if t == nil {
		return r.str("")
	}
	return r.date(*t)
}

func write(file *xlsx.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Inventory renders the full inventory with effective status and ABC tier,
// plus a summary sheet.
func (r *Renderer) Inventory(items []domain.InventoryItem, now time.Time) ([]byte, error) {
	file := xlsx.NewFile()

	w, err := newSheet(file, "Inventory",
		"ID", "Name", "Quantity", "Location", "Status", "ABC Category",
		"Unit Cost", "Unit Price", "Stock Value", "Expiry Date", "Date Added",
		"Last Movement", "Supplier ID", "Purchase Date")
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, item := range items {
		value := item.StockValue()
		total = total.Add(value)

		w.row().
			str(item.ID).
			str(item.Name).
			num(item.Quantity).
			optStr(item.Location).
			str(string(analysis.EffectiveStatus(item, now))).
			str(string(item.ABCCategory)).
			optMoney(item.UnitCost).
			optMoney(item.UnitPrice).
			money(value).
			optDate(item.ExpiryDate).
			date(item.DateAdded).
			optDate(item.LastMovementDate).
			optStr(item.SupplierID).
			optDate(item.PurchaseDate)
	}

	summary, err := newSheet(file, "Summary", "Metric", "Value")
	if err != nil {
		return nil, err
	}
	summary.row().str("Generated").str(now.Format(time.RFC3339))
	summary.row().str("Items").str(r.FormatCount(len(items)))
	summary.row().str("Total stock value").str(r.FormatMoney(total))

	return write(file)
}

// ABC renders the tier breakdown and the classified table
func (r *Renderer) ABC(summary analysis.ABCSummary) ([]byte, error) {
	file := xlsx.NewFile()

	tiers, err := newSheet(file, "ABC Summary", "Category", "Items", "Value", "Value %", "Formatted Value")
	if err != nil {
		return nil, err
	}
	for _, c := range summary.Categories {
		tiers.row().
			str(string(c.Category)).
			num(c.ItemCount).
			money(c.Value).
			percent(c.ValuePercent).
			str(r.FormatMoney(c.Value))
	}
	tiers.row().str("Total").num(len(summary.Rows)).money(summary.TotalValue).percent(100).str(r.FormatMoney(summary.TotalValue))

	rows, err := newSheet(file, "Items", "ID", "Name", "Quantity", "Unit Cost", "Total Value", "ABC Category")
	if err != nil {
		return nil, err
	}
	for _, row := range summary.Rows {
		rows.row().
			str(row.ID).
			str(row.Name).
			num(row.Quantity).
			money(row.UnitCost).
			money(row.TotalValue).
			str(string(row.ABCCategory))
	}

	return write(file)
}

// DeadStock renders items idle past the threshold
func (r *Renderer) DeadStock(items []analysis.DeadStockItem) ([]byte, error) {
	file := xlsx.NewFile()

	w, err := newSheet(file, "Dead Stock",
		"ID", "Name", "Quantity", "Location", "Last Activity",
		"Days Since Last Movement", "Tied Up Value", "ABC Category")
	if err != nil {
		return nil, err
	}

	tied := decimal.Zero
	for _, item := range items {
		tied = tied.Add(item.TiedUpValue)
		w.row().
			str(item.ID).
			str(item.Name).
			num(item.Quantity).
			optStr(item.Location).
			date(item.LastActivity).
			num(item.DaysSinceLastMovement).
			money(item.TiedUpValue).
			str(string(item.ABCCategory))
	}
	w.row().str("Total").str("").str("").str("").str("").str("").money(tied).str(r.FormatMoney(tied))

	return write(file)
}

// ProfitMargins renders per-unit margins
func (r *Renderer) ProfitMargins(rows []analysis.ProfitMarginRow) ([]byte, error) {
	file := xlsx.NewFile()

	w, err := newSheet(file, "Profit Margins", "ID", "Name", "Unit Cost", "Unit Price", "Margin", "Margin %")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		w.row().
			str(row.ID).
			str(row.Name).
			money(row.UnitCost).
			money(row.UnitPrice).
			money(row.MarginAbsolute).
			percent(row.MarginPercentage.InexactFloat64())
	}

	return write(file)
}

// StockAging renders days in stock per item
func (r *Renderer) StockAging(rows []analysis.StockAgingRow) ([]byte, error) {
	file := xlsx.NewFile()

	w, err := newSheet(file, "Stock Aging", "ID", "Name", "Purchase Date", "Days In Stock", "Quantity", "Total Value")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		w.row().
			str(row.ID).
			str(row.Name).
			date(row.PurchaseDate).
			num(row.DaysInStock).
			num(row.Quantity).
			money(row.TotalValue)
	}

	return write(file)
}

// SupplierPerformance renders per-supplier figures
func (r *Renderer) SupplierPerformance(rows []analysis.SupplierPerformanceRow) ([]byte, error) {
	file := xlsx.NewFile()

	w, err := newSheet(file, "Supplier Performance",
		"Supplier ID", "Supplier", "Items Supplied", "Total Purchase Value",
		"Average Lead Time", "On-Time Delivery Rate", "Quality Rating")
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		w.row().
			str(row.SupplierID).
			str(row.SupplierName).
			num(row.ItemsSuppliedCount).
			money(row.TotalPurchaseValue).
			optFloat(row.AverageLeadTime).
			optFloat(row.OnTimeDeliveryRate).
			optFloat(row.QualityRating)
	}

	return write(file)
}
