package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

func daysFromNow(n int) *time.Time {
	t := fixedNow.AddDate(0, 0, n)
	return &t
}

func ids[T any](rows []T, id func(T) string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = id(r)
	}
	return out
}

func TestDateHelpers(t *testing.T) {
	startOfToday := analysis.StartOfDay(fixedNow)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), startOfToday)

	assert.False(t, analysis.IsExpired(nil, fixedNow))
	assert.False(t, analysis.IsExpired(&startOfToday, fixedNow))
	yesterday := startOfToday.Add(-time.Second)
	assert.True(t, analysis.IsExpired(&yesterday, fixedNow))

	assert.Equal(t, 10, analysis.DaysUntil(*daysFromNow(10), fixedNow))
	assert.Equal(t, 1, analysis.DaysUntil(fixedNow.Add(2*time.Hour), fixedNow))
	assert.Equal(t, 0, analysis.DaysUntil(startOfToday, fixedNow))

	assert.Equal(t, 5, analysis.DaysSince(*daysFromNow(-5), fixedNow))
	assert.Equal(t, 5, analysis.DaysSince(*daysFromNow(5), fixedNow))
	assert.Equal(t, 1, analysis.DaysSince(fixedNow.Add(-time.Hour), fixedNow))

	assert.Equal(t, 2, analysis.WholeDaysBetween(fixedNow.Add(-60*time.Hour), fixedNow))
}

func TestBuildNotifications(t *testing.T) {
	startOfToday := analysis.StartOfDay(fixedNow)
	items := []domain.InventoryItem{
		{ID: "low", Name: "Wireless Mouse", Quantity: 5},
		{ID: "empty", Name: "Out of stock", Quantity: 0},
		{ID: "expired", Name: "Expired Product", Quantity: 3, ExpiryDate: daysFromNow(-5)},
		{ID: "soon", Name: "Organic Milk", Quantity: 100, ExpiryDate: daysFromNow(10)},
		{ID: "later", Name: "Coffee Beans", Quantity: 100, ExpiryDate: daysFromNow(40)},
		{ID: "today", Name: "Yogurt", Quantity: 50, ExpiryDate: &startOfToday},
		{ID: "threshold", Name: "Organic Eggs", Quantity: 20},
	}

	result := analysis.BuildNotifications(items, fixedNow, analysis.DefaultNotificationOptions())

	assert.Equal(t, []string{"low", "threshold"},
		ids(result.LowStock, func(a analysis.LowStockAlert) string { return a.ID }))
	assert.Equal(t, []string{"expired", "today", "soon"},
		ids(result.Expiring, func(a analysis.ExpiryAlert) string { return a.ID }))

	require.Len(t, result.Expiring, 3)
	assert.True(t, result.Expiring[0].Expired)
	assert.False(t, result.Expiring[1].Expired)
	assert.Equal(t, 0, result.Expiring[1].DaysUntil)
	assert.Equal(t, 10, result.Expiring[2].DaysUntil)
	assert.Equal(t, 20, result.LowStock[1].Threshold)
	assert.True(t, result.LowStock[0].Critical)
	assert.False(t, result.LowStock[1].Critical)
	assert.Equal(t, 5, result.Total())
	assert.Equal(t, 1, result.ExpiredCount())
}

func TestBuildNotifications_CustomThresholds(t *testing.T) {
	items := []domain.InventoryItem{
		{ID: "a", Name: "A", Quantity: 8},
		{ID: "b", Name: "B", Quantity: 100, ExpiryDate: daysFromNow(40)},
	}

	result := analysis.BuildNotifications(items, fixedNow, analysis.NotificationOptions{LowStockThreshold: 5, NearExpiryDays: 60})

	assert.Empty(t, result.LowStock)
	require.Len(t, result.Expiring, 1)
	assert.Equal(t, "b", result.Expiring[0].ID)
}

func TestBuildNotifications_EmptyInput(t *testing.T) {
	result := analysis.BuildNotifications(nil, fixedNow, analysis.DefaultNotificationOptions())

	assert.NotNil(t, result.LowStock)
	assert.NotNil(t, result.Expiring)
	assert.Zero(t, result.Total())
}

func TestFindDeadStock(t *testing.T) {
	items := []domain.InventoryItem{
		{ID: "idle", Name: "Printer Paper", Quantity: 10, DateAdded: *daysFromNow(-365), LastMovementDate: daysFromNow(-120)},
		{ID: "never_moved", Name: "Office Chair", Quantity: 2, DateAdded: *daysFromNow(-200)},
		{ID: "recent", Name: "Keyboard", Quantity: 75, DateAdded: *daysFromNow(-200), LastMovementDate: daysFromNow(-30)},
		{ID: "empty", Name: "Laptop Stand", Quantity: 0, DateAdded: *daysFromNow(-200), LastMovementDate: daysFromNow(-150)},
		{ID: "expired", Name: "Expired Product", Quantity: 10, DateAdded: *daysFromNow(-100), LastMovementDate: daysFromNow(-100), ExpiryDate: daysFromNow(-5)},
		{ID: "boundary", Name: "Notebooks", Quantity: 5, DateAdded: *daysFromNow(-250), LastMovementDate: daysFromNow(-90)},
	}

	result := analysis.FindDeadStock(items, fixedNow, domain.DefaultDeadStockDays)

	assert.Equal(t, []string{"never_moved", "idle"},
		ids(result, func(d analysis.DeadStockItem) string { return d.ID }))
	require.Len(t, result, 2)
	assert.Equal(t, 200, result[0].DaysSinceLastMovement)
	assert.Equal(t, 120, result[1].DaysSinceLastMovement)
	assert.Equal(t, *daysFromNow(-200), result[0].LastActivity)
}

func TestFindDeadStock_NoCandidates(t *testing.T) {
	result := analysis.FindDeadStock([]domain.InventoryItem{}, fixedNow, 90)

	assert.NotNil(t, result)
	assert.Empty(t, result)
}
