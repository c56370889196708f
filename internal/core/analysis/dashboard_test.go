package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

func TestEffectiveStatus(t *testing.T) {
	tests := []struct {
		name     string
		item     domain.InventoryItem
		expected domain.ItemStatus
	}{
		{name: "expired_wins_over_quantity", item: domain.InventoryItem{Quantity: 500, ExpiryDate: daysFromNow(-1)}, expected: domain.StatusExpired},
		{name: "critical_at_five", item: domain.InventoryItem{Quantity: 5}, expected: domain.StatusCritical},
		{name: "critical_at_zero", item: domain.InventoryItem{Quantity: 0}, expected: domain.StatusCritical},
		{name: "low_at_twenty", item: domain.InventoryItem{Quantity: 20}, expected: domain.StatusLowStock},
		{name: "in_stock_above_twenty", item: domain.InventoryItem{Quantity: 21, ExpiryDate: daysFromNow(3)}, expected: domain.StatusInStock},
		{name: "stored_status_is_ignored", item: domain.InventoryItem{Quantity: 100, Status: domain.StatusCritical}, expected: domain.StatusInStock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, analysis.EffectiveStatus(tt.item, fixedNow))
		})
	}
}

func dashboardFixture() []domain.InventoryItem {
	added := *daysFromNow(-30)
	return []domain.InventoryItem{
		{ID: "s4", Name: "Unranked", Quantity: 100, DateAdded: added},
		{ID: "s1", Name: "Beta", Quantity: 100, ABCCategory: domain.CategoryB, DateAdded: added, LastMovementDate: daysFromNow(-2)},
		{ID: "l", Name: "Low", Quantity: 15, ABCCategory: domain.CategoryB, DateAdded: added},
		{ID: "s2", Name: "alpha", Quantity: 100, ABCCategory: domain.CategoryB, DateAdded: added, LastMovementDate: daysFromNow(-2)},
		{ID: "c1", Name: "Crit One", Quantity: 3, ABCCategory: domain.CategoryA, DateAdded: added, LastMovementDate: daysFromNow(-1)},
		{ID: "s3", Name: "Star", Quantity: 100, ABCCategory: domain.CategoryA, DateAdded: added, LastMovementDate: daysFromNow(-10)},
		{ID: "e", Name: "Gone Off", Quantity: 50, ABCCategory: domain.CategoryC, DateAdded: added, ExpiryDate: daysFromNow(-1)},
		{ID: "c2", Name: "Crit Two", Quantity: 4, ABCCategory: domain.CategoryA, DateAdded: added, ExpiryDate: daysFromNow(10)},
	}
}

func TestBuildDashboard(t *testing.T) {
	dash := analysis.BuildDashboard(dashboardFixture(), fixedNow, analysis.DefaultNotificationOptions())

	assert.Equal(t, []string{"e", "c2", "c1", "l", "s3", "s2", "s1", "s4"},
		ids(dash.Items, func(r analysis.DashboardRow) string { return r.ID }))
	assert.Equal(t, fixedNow, dash.GeneratedAt)

	assert.Equal(t, 1, dash.StatusCounts[string(domain.StatusExpired)])
	assert.Equal(t, 2, dash.StatusCounts[string(domain.StatusCritical)])
	assert.Equal(t, 1, dash.StatusCounts[string(domain.StatusLowStock)])
	assert.Equal(t, 4, dash.StatusCounts[string(domain.StatusInStock)])

	require.Len(t, dash.Items, 8)
	assert.True(t, dash.Items[1].NearExpiry)
	assert.False(t, dash.Items[0].NearExpiry)

	assert.Equal(t, 3, dash.LowStockAlerts)
	assert.Equal(t, 2, dash.ExpiryAlerts)
}

func TestPredictTopSellers(t *testing.T) {
	top := analysis.PredictTopSellers(dashboardFixture(), fixedNow)

	assert.Equal(t, []string{"s1", "s2", "s3"},
		ids(top, func(i domain.InventoryItem) string { return i.ID }))
}

func TestPredictTopSellers_PrefersCategoryAOnTies(t *testing.T) {
	moved := daysFromNow(-1)
	items := []domain.InventoryItem{
		{ID: "b_big", Quantity: 500, ABCCategory: domain.CategoryB, LastMovementDate: moved},
		{ID: "a_small", Quantity: 6, ABCCategory: domain.CategoryA, LastMovementDate: moved},
		{ID: "b_small", Quantity: 10, ABCCategory: domain.CategoryB, LastMovementDate: moved},
		{ID: "c_item", Quantity: 900, ABCCategory: domain.CategoryC, LastMovementDate: moved},
	}

	top := analysis.PredictTopSellers(items, fixedNow)

	assert.Equal(t, []string{"a_small", "b_big", "b_small"},
		ids(top, func(i domain.InventoryItem) string { return i.ID }))
}

func TestComputeAnalytics(t *testing.T) {
	items := []domain.InventoryItem{
		{ID: "1", Name: "Fast Mover", Quantity: 10, UnitCost: cost(5), ABCCategory: domain.CategoryA,
			DateAdded: *daysFromNow(-20), LastMovementDate: daysFromNow(-5)},
		{ID: "2", Name: "Bulk Paper", Quantity: 100, UnitCost: cost(2), ABCCategory: domain.CategoryB,
			DateAdded: *daysFromNow(-100)},
		{ID: "3", Name: "An Item With A Very Long Name", Quantity: 0, ABCCategory: domain.CategoryC,
			DateAdded: *daysFromNow(-10), LastMovementDate: daysFromNow(-40)},
	}

	summary := analysis.ComputeAnalytics(items, fixedNow, analysis.DefaultCarryingCostRate)

	assert.InDelta(t, 250.0, summary.TotalInventoryValue, 1e-9)
	assert.InDelta(t, 125.0, summary.AverageInventoryValue, 1e-9)
	assert.InDelta(t, 200.0, summary.CostOfGoodsSold, 1e-9)
	assert.Equal(t, 1.6, summary.StockTurnoverRate)
	assert.Equal(t, 25.0, summary.TotalCarryingCost)
	assert.Equal(t, 0.92, summary.OverallSalesVelocity)

	require.Len(t, summary.CategoryValueDistribution, 2)
	assert.Equal(t, domain.CategoryA, summary.CategoryValueDistribution[0].Category)
	assert.InDelta(t, 50.0, summary.CategoryValueDistribution[0].Value, 1e-9)
	assert.Equal(t, domain.CategoryB, summary.CategoryValueDistribution[1].Category)

	require.Len(t, summary.SalesVelocity, 2)
	assert.Equal(t, "Fast Mover", summary.SalesVelocity[0].Name)
	assert.Equal(t, 8.0, summary.SalesVelocity[0].Velocity)
	assert.Equal(t, 0.01, summary.SalesVelocity[1].Velocity)
}

func TestComputeAnalytics_EmptyInventory(t *testing.T) {
	summary := analysis.ComputeAnalytics(nil, fixedNow, analysis.DefaultCarryingCostRate)

	assert.Zero(t, summary.TotalInventoryValue)
	assert.Zero(t, summary.StockTurnoverRate)
	assert.Empty(t, summary.SalesVelocity)
	assert.Empty(t, summary.CategoryValueDistribution)
}
