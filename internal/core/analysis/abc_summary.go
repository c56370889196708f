package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// CategoryBreakdown aggregates one ABC tier
type CategoryBreakdown struct {
	Category     domain.ABCCategory `json:"category"`
	ItemCount    int                `json:"item_count"`
	Value        decimal.Decimal    `json:"value"`
	ValuePercent float64            `json:"value_percent"`
}

// ABCRow is one line of the ABC table
type ABCRow struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Quantity    int                `json:"quantity"`
	UnitCost    decimal.Decimal    `json:"unit_cost"`
	TotalValue  decimal.Decimal    `json:"total_value"`
	ABCCategory domain.ABCCategory `json:"abc_category"`
}

// ABCSummary is the aggregate view over a classified collection
type ABCSummary struct {
	TotalValue decimal.Decimal     `json:"total_value"`
	Categories []CategoryBreakdown `json:"categories"`
	Rows       []ABCRow            `json:"rows"`
}

// SummarizeABC aggregates already classified items per tier. Empty tiers are
// left out of Categories. Rows is ordered by tier, then value descending.
func SummarizeABC(classified []domain.InventoryItem) ABCSummary {
	counts := make(map[domain.ABCCategory]int, 3)
	values := make(map[domain.ABCCategory]decimal.Decimal, 3)
	total := decimal.Zero

	rows := make([]ABCRow, 0, len(classified))
	for _, item := range classified {
		value := item.StockValue()
		total = total.Add(value)
		if item.ABCCategory != "" {
			counts[item.ABCCategory]++
			values[item.ABCCategory] = values[item.ABCCategory].Add(value)
		}

		cost := decimal.Zero
		if item.UnitCost.Valid {
			cost = item.UnitCost.Decimal
		}
		rows = append(rows, ABCRow{
			ID:          item.ID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			UnitCost:    cost,
			TotalValue:  value,
			ABCCategory: item.ABCCategory,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rows[i].ABCCategory.Rank(), rows[j].ABCCategory.Rank()
		if ri != rj {
			// unclassified rows sort last
			if ri == 0 {
				return false
			}
			if rj == 0 {
				return true
			}
			return ri < rj
		}
		return rows[i].TotalValue.GreaterThan(rows[j].TotalValue)
	})

	categories := make([]CategoryBreakdown, 0, len(domain.ABCCategories))
	for _, c := range domain.ABCCategories {
		v := values[c]
		if counts[c] == 0 && !v.IsPositive() {
			continue
		}
		pct := 0.0
		if total.IsPositive() {
			pct = v.Div(total).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
		categories = append(categories, CategoryBreakdown{
			Category:     c,
			ItemCount:    counts[c],
			Value:        v,
			ValuePercent: pct,
		})
	}

	return ABCSummary{
		TotalValue: total,
		Categories: categories,
		Rows:       rows,
	}
}
