package domain

import (
	"errors"
	"fmt"
)

// ReportKind names a report that can be viewed, exported or generated in the background
type ReportKind string

const (
	ReportInventory           ReportKind = "inventory"
	ReportABC                 ReportKind = "abc"
	ReportDeadStock           ReportKind = "dead-stock"
	ReportProfitMargins       ReportKind = "profit-margins"
	ReportStockAging          ReportKind = "stock-aging"
	ReportSupplierPerformance ReportKind = "supplier-performance"
)

// ReportKinds lists every kind in menu order
var ReportKinds = []ReportKind{
	ReportInventory,
	ReportABC,
	ReportDeadStock,
	ReportProfitMargins,
	ReportStockAging,
	ReportSupplierPerformance,
}

// ErrUnknownReport is returned for report kinds outside ReportKinds
var ErrUnknownReport = errors.New("unknown report kind")

// ParseReportKind validates a kind taken from a URL or task payload
func ParseReportKind(s string) (ReportKind, error) {
	for _, k := range ReportKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownReport, s)
}

// Filename returns the download name for a report generated on the given date
func (k ReportKind) Filename(date string) string {
	return fmt.Sprintf("%s-%s.xlsx", k, date)
}
