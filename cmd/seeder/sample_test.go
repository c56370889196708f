package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

var now = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func TestBuildItems(t *testing.T) {
	items := buildItems(now)
	require.Len(t, items, len(sampleItems))

	statuses := make(map[string]domain.ItemStatus, len(items))
	for _, item := range items {
		require.NoError(t, item.Validate(), item.ID)
		statuses[item.ID] = item.Status
	}

	assert.Equal(t, domain.StatusCritical, statuses["QR12345"])
	assert.Equal(t, domain.StatusCritical, statuses["QR77889"])
	assert.Equal(t, domain.StatusCritical, statuses["QR00200"])
	assert.Equal(t, domain.StatusLowStock, statuses["QR11223"])
	assert.Equal(t, domain.StatusLowStock, statuses["QR00300"])
	assert.Equal(t, domain.StatusExpired, statuses["QR00600"])
	assert.Equal(t, domain.StatusInStock, statuses["QR67890"])

	milk := items[2]
	require.NotNil(t, milk.ExpiryDate)
	assert.Equal(t, now.AddDate(0, 0, 15), *milk.ExpiryDate)
	assert.Equal(t, now.AddDate(0, 0, -5), milk.DateAdded)
}

func TestBuildSuppliers(t *testing.T) {
	suppliers := buildSuppliers(now)
	require.Len(t, suppliers, 4)
	for _, s := range suppliers {
		assert.NoError(t, s.Validate(), s.ID)
	}

	known := map[string]bool{}
	for _, s := range suppliers {
		known[s.ID] = true
	}
	for _, item := range buildItems(now) {
		require.NotNil(t, item.SupplierID)
		assert.True(t, known[*item.SupplierID], item.ID)
	}
}

func TestBuildRandomItems(t *testing.T) {
	a := buildRandomItems(25, 7, now)
	b := buildRandomItems(25, 7, now)
	require.Len(t, a, 25)
	assert.Equal(t, a, b)

	assert.Equal(t, "RND00001", a[0].ID)
	for _, item := range a {
		assert.NoError(t, item.Validate(), item.ID)
		assert.False(t, item.LastActivity().Before(item.DateAdded), item.ID)
	}

	assert.NotEqual(t, a, buildRandomItems(25, 8, now))
}
