// Package analysis holds the pure inventory computations behind the dashboards,
// alerts and reports. Nothing here performs I/O or reads the wall clock; functions
// that compare dates take the current time as an argument.
package analysis

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// Cumulative value shares that close the A and B tiers
const (
	ThresholdA = 0.80
	ThresholdB = 0.95
)

// DefaultUnitCost stands in for an unknown unit cost when ranking by value
var DefaultUnitCost = decimal.NewFromInt(1)

// ClassifiedItem carries the per-item figures behind an ABC assignment
type ClassifiedItem struct {
	Item              domain.InventoryItem `json:"item"`
	EffectiveUnitCost float64              `json:"effective_unit_cost"`
	ConsumptionValue  float64              `json:"consumption_value"`
	CumulativeShare   float64              `json:"cumulative_share"`
}

// ClassifyABC assigns every item to tier A, B or C by its share of total
// consumption value. The result has the same length and order as items, each
// element a copy with UnitCost set to the effective cost and ABCCategory set.
// items is not modified.
func ClassifyABC(items []domain.InventoryItem) []domain.InventoryItem {
	detailed := ClassifyABCDetailed(items)
	out := make([]domain.InventoryItem, len(detailed))
	for i, d := range detailed {
		out[i] = d.Item
	}
	return out
}

// ClassifyABCDetailed is ClassifyABC plus the consumption value and cumulative
// share each assignment was based on.
func ClassifyABCDetailed(items []domain.InventoryItem) []ClassifiedItem {
	out := make([]ClassifiedItem, len(items))
	if len(items) == 0 {
		return out
	}

	for i, item := range items {
		cost := DefaultUnitCost
		if item.UnitCost.Valid {
			cost = item.UnitCost.Decimal
		}
		// Negative inputs would push the running share outside [0, 1].
		if cost.IsNegative() {
			cost = decimal.Zero
		}
		qty := item.Quantity
		if qty < 0 {
			qty = 0
		}

		c := item.Clone()
		c.UnitCost = decimal.NewNullDecimal(cost)

		unitCost := cost.InexactFloat64()
		value := float64(qty) * unitCost

		out[i] = ClassifiedItem{
			Item:              c,
			EffectiveUnitCost: unitCost,
			ConsumptionValue:  value,
		}
	}

	ranked := make([]int, len(out))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return out[ranked[a]].ConsumptionValue > out[ranked[b]].ConsumptionValue
	})

	// Summed in rank order so the final running sum equals total exactly.
	total := 0.0
	for _, idx := range ranked {
		total += out[idx].ConsumptionValue
	}
	if total == 0 {
		for i := range out {
			out[i].Item.ABCCategory = domain.CategoryC
		}
		return out
	}

	cumulative := 0.0
	for _, idx := range ranked {
		entry := &out[idx]
		cumulative += entry.ConsumptionValue
		entry.CumulativeShare = cumulative / total

		switch {
		case entry.ConsumptionValue == 0:
			entry.Item.ABCCategory = domain.CategoryC
		case entry.CumulativeShare <= ThresholdA:
			entry.Item.ABCCategory = domain.CategoryA
		case entry.CumulativeShare <= ThresholdB:
			entry.Item.ABCCategory = domain.CategoryB
		default:
			entry.Item.ABCCategory = domain.CategoryC
		}
	}

	return out
}
