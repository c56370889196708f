package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// ProfitMarginRow is one line of the profit margin report
type ProfitMarginRow struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	UnitCost         decimal.Decimal `json:"unit_cost"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	MarginAbsolute   decimal.Decimal `json:"profit_margin_absolute"`
	MarginPercentage decimal.Decimal `json:"profit_margin_percentage"`
}

// ProfitMargins reports per-unit margin for items that carry both a cost and a
// price, highest percentage first.
func ProfitMargins(items []domain.InventoryItem) []ProfitMarginRow {
	rows := []ProfitMarginRow{}
	for _, item := range items {
		if !item.UnitCost.Valid || !item.UnitPrice.Valid {
			continue
		}
		cost, price := item.UnitCost.Decimal, item.UnitPrice.Decimal
		abs := price.Sub(cost)
		pct := decimal.Zero
		if price.IsPositive() {
			pct = abs.Div(price).Mul(hundred)
		}
		rows = append(rows, ProfitMarginRow{
			ID:               item.ID,
			Name:             item.Name,
			UnitCost:         cost,
			UnitPrice:        price,
			MarginAbsolute:   abs.Round(2),
			MarginPercentage: pct.Round(2),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].MarginPercentage.GreaterThan(rows[j].MarginPercentage)
	})
	return rows
}

// StockAgingRow is one line of the stock aging report
type StockAgingRow struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	PurchaseDate time.Time       `json:"purchase_date"`
	DaysInStock  int             `json:"days_in_stock"`
	Quantity     int             `json:"quantity"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// StockAging reports how long purchased stock has been held, oldest first.
// Items without a purchase date are skipped.
func StockAging(items []domain.InventoryItem, now time.Time) []StockAgingRow {
	today := StartOfDay(now)
	rows := []StockAgingRow{}
	for _, item := range items {
		if item.PurchaseDate == nil {
			continue
		}
		rows = append(rows, StockAgingRow{
			ID:           item.ID,
			Name:         item.Name,
			PurchaseDate: *item.PurchaseDate,
			DaysInStock:  WholeDaysBetween(StartOfDay(*item.PurchaseDate), today),
			Quantity:     item.Quantity,
			TotalValue:   item.StockValue().Round(2),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].DaysInStock > rows[j].DaysInStock
	})
	return rows
}

// SupplierPerformanceRow summarizes what one supplier provided
type SupplierPerformanceRow struct {
	SupplierID         string          `json:"supplier_id"`
	SupplierName       string          `json:"supplier_name"`
	ItemsSuppliedCount int             `json:"items_supplied_count"`
	TotalPurchaseValue decimal.Decimal `json:"total_purchase_value"`
	AverageLeadTime    *float64        `json:"average_lead_time"`
	OnTimeDeliveryRate *float64        `json:"on_time_delivery_rate"`
	QualityRating      *float64        `json:"quality_rating"`
}

type supplierTally struct {
	id, name        string
	itemCount       int
	totalValue      decimal.Decimal
	leadTimes       []int
	onTime, deliver int
	quality         *float64
}

// SupplierPerformance rolls items up by supplier. Every known supplier gets a
// row even without items; items pointing at an unknown supplier get a
// placeholder row. Delivery history is simulated as ten deliveries at the
// supplier's recorded on-time rate.
func SupplierPerformance(items []domain.InventoryItem, suppliers []domain.Supplier) []SupplierPerformanceRow {
	known := make(map[string]domain.Supplier, len(suppliers))
	tallies := make(map[string]*supplierTally, len(suppliers))
	order := make([]string, 0, len(suppliers))

	for _, s := range suppliers {
		if _, dup := tallies[s.ID]; dup {
			continue
		}
		known[s.ID] = s
		t := &supplierTally{id: s.ID, name: s.Name, totalValue: decimal.Zero, quality: s.PerformanceRating}
		if s.OnTimeDeliveryRate != nil && *s.OnTimeDeliveryRate > 0 {
			t.onTime = int(math.Floor(*s.OnTimeDeliveryRate*10 + 0.5))
			t.deliver = 10
		}
		tallies[s.ID] = t
		order = append(order, s.ID)
	}

	for _, item := range items {
		if item.SupplierID == nil || *item.SupplierID == "" {
			continue
		}
		id := *item.SupplierID
		t, ok := tallies[id]
		if !ok {
			t = &supplierTally{id: id, name: fmt.Sprintf("Unknown (ID: %s)", id), totalValue: decimal.Zero}
			tallies[id] = t
			order = append(order, id)
		}
		t.itemCount++
		t.totalValue = t.totalValue.Add(item.StockValue())
		if s, ok := known[id]; ok && s.LeadTimeDays != nil && *s.LeadTimeDays > 0 {
			t.leadTimes = append(t.leadTimes, *s.LeadTimeDays)
		}
	}

	rows := make([]SupplierPerformanceRow, 0, len(order))
	for _, id := range order {
		t := tallies[id]
		row := SupplierPerformanceRow{
			SupplierID:         t.id,
			SupplierName:       t.name,
			ItemsSuppliedCount: t.itemCount,
			TotalPurchaseValue: t.totalValue.Round(2),
		}
		if len(t.leadTimes) > 0 {
			sum := 0
			for _, lt := range t.leadTimes {
				sum += lt
			}
			avg := roundTo(float64(sum)/float64(len(t.leadTimes)), 1)
			row.AverageLeadTime = &avg
		}
		if t.deliver > 0 && t.onTime > 0 {
			rate := roundTo(float64(t.onTime)/float64(t.deliver)*100, 1)
			row.OnTimeDeliveryRate = &rate
		}
		if t.quality != nil && *t.quality != 0 {
			q := *t.quality
			row.QualityRating = &q
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		qi, qj := derefOrZero(rows[i].QualityRating), derefOrZero(rows[j].QualityRating)
		if qi != qj {
			return qi > qj
		}
		return rows[i].TotalPurchaseValue.GreaterThan(rows[j].TotalPurchaseValue)
	})
	return rows
}

func derefOrZero(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}

// roundTo rounds half away from zero to the given number of decimal places
func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
