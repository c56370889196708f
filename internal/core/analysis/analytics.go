package analysis

import (
	"math"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// DefaultCarryingCostRate is the yearly holding cost as a share of average inventory value
const DefaultCarryingCostRate = 0.20

const (
	simulatedRestockLevel = 50
	recentMovementDays    = 30
	velocityChartSize     = 10
	velocityMaxNameLength = 20
)

// VelocityPoint is one item's simulated sell-through rate
type VelocityPoint struct {
	Name     string  `json:"name"`
	Velocity float64 `json:"velocity"`
	Value    float64 `json:"value"`
}

// CategoryValue is the stock value held in one ABC tier
type CategoryValue struct {
	Category domain.ABCCategory `json:"category"`
	Value    float64            `json:"value"`
}

// AnalyticsSummary holds the KPI figures for the analytics dashboard. Sales
// figures are simulated from quantities and movement dates; there is no sales ledger.
type AnalyticsSummary struct {
	TotalInventoryValue       float64         `json:"total_inventory_value"`
	AverageInventoryValue     float64         `json:"average_inventory_value"`
	CostOfGoodsSold           float64         `json:"cost_of_goods_sold"`
	StockTurnoverRate         float64         `json:"stock_turnover_rate"`
	TotalCarryingCost         float64         `json:"total_carrying_cost"`
	CarryingCostRate          float64         `json:"carrying_cost_rate"`
	OverallSalesVelocity      float64         `json:"overall_sales_velocity"`
	SalesVelocity             []VelocityPoint `json:"sales_velocity"`
	CategoryValueDistribution []CategoryValue `json:"category_value_distribution"`
}

// ComputeAnalytics derives turnover, carrying cost and velocity figures.
// Day counts are fractional here, unlike the whole-day alert rules.
func ComputeAnalytics(items []domain.InventoryItem, now time.Time, carryingRate float64) AnalyticsSummary {
	out := AnalyticsSummary{
		CarryingCostRate:          carryingRate,
		SalesVelocity:             []VelocityPoint{},
		CategoryValueDistribution: []CategoryValue{},
	}
	if len(items) == 0 {
		return out
	}

	var (
		total, cogs     float64
		unitsSold       float64
		daysInSystemSum float64
		categoryValue   = map[domain.ABCCategory]float64{}
	)

	for _, item := range items {
		cost := 0.0
		if item.UnitCost.Valid {
			cost = item.UnitCost.Decimal.InexactFloat64()
		}
		value := cost * float64(item.Quantity)
		total += value
		if item.ABCCategory != "" {
			categoryValue[item.ABCCategory] += value
		}

		daysSinceAdded := 0.0
		if !item.DateAdded.IsZero() {
			daysSinceAdded = fractionalDays(item.DateAdded, now)
		}
		daysSinceMove := 0.0
		if item.LastMovementDate != nil {
			daysSinceMove = fractionalDays(*item.LastMovementDate, now)
		}
		activity := math.Max(1, daysSinceAdded)

		sold := 1.0
		if item.Quantity < simulatedRestockLevel {
			sold = float64(simulatedRestockLevel - item.Quantity)
		}
		if daysSinceMove > 0 && daysSinceMove <= recentMovementDays {
			cogs += cost * sold
			unitsSold += sold
		}
		daysInSystemSum += activity

		window := daysSinceMove
		if window == 0 {
			window = activity
		}
		velocity := sold / math.Max(1, window)
		if velocity > 0 && utf8.RuneCountInString(item.Name) < velocityMaxNameLength {
			out.SalesVelocity = append(out.SalesVelocity, VelocityPoint{
				Name:     item.Name,
				Velocity: roundTo(velocity, 2),
				Value:    value,
			})
		}
	}

	avg := total / 2
	out.TotalInventoryValue = total
	out.AverageInventoryValue = avg
	out.CostOfGoodsSold = cogs
	if cogs > 0 && avg > 0 {
		out.StockTurnoverRate = roundTo(cogs/avg, 2)
	}
	out.TotalCarryingCost = roundTo(avg*carryingRate, 2)
	out.OverallSalesVelocity = roundTo(unitsSold/math.Max(1, daysInSystemSum/float64(len(items))), 2)

	for _, c := range domain.ABCCategories {
		if v := categoryValue[c]; v > 0 {
			out.CategoryValueDistribution = append(out.CategoryValueDistribution, CategoryValue{Category: c, Value: v})
		}
	}

	sort.SliceStable(out.SalesVelocity, func(i, j int) bool {
		return out.SalesVelocity[i].Velocity > out.SalesVelocity[j].Velocity
	})
	if len(out.SalesVelocity) > velocityChartSize {
		out.SalesVelocity = out.SalesVelocity[:velocityChartSize]
	}

	return out
}
