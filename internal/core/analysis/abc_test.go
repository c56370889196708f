package analysis_test

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

var fixedNow = time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)

func cost(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

func item(id string, qty int, unitCost *float64) domain.InventoryItem {
	it := domain.InventoryItem{ID: id, Name: "Item " + id, Quantity: qty, DateAdded: fixedNow.AddDate(0, 0, -10)}
	if unitCost != nil {
		it.UnitCost = cost(*unitCost)
	}
	return it
}

func f(v float64) *float64 { return &v }

func categories(items []domain.InventoryItem) []domain.ABCCategory {
	out := make([]domain.ABCCategory, len(items))
	for i, it := range items {
		out[i] = it.ABCCategory
	}
	return out
}

func TestClassifyABC(t *testing.T) {
	tests := []struct {
		name     string
		items    []domain.InventoryItem
		expected []domain.ABCCategory
	}{
		{
			name:     "empty_input",
			items:    []domain.InventoryItem{},
			expected: []domain.ABCCategory{},
		},
		{
			name:     "zero_total_value_is_all_c",
			items:    []domain.InventoryItem{item("1", 0, f(5)), item("2", 3, f(0))},
			expected: []domain.ABCCategory{domain.CategoryC, domain.CategoryC},
		},
		{
			name:     "single_dominant_item_crosses_c_boundary",
			items:    []domain.InventoryItem{item("1", 100, f(10)), item("2", 1, f(1))},
			expected: []domain.ABCCategory{domain.CategoryC, domain.CategoryC},
		},
		{
			name:     "balanced_80_15_5",
			items:    []domain.InventoryItem{item("1", 1, f(80)), item("2", 1, f(15)), item("3", 1, f(5))},
			expected: []domain.ABCCategory{domain.CategoryA, domain.CategoryB, domain.CategoryC},
		},
		{
			name:     "balanced_case_in_reverse_input_order",
			items:    []domain.InventoryItem{item("3", 1, f(5)), item("2", 1, f(15)), item("1", 1, f(80))},
			expected: []domain.ABCCategory{domain.CategoryC, domain.CategoryB, domain.CategoryA},
		},
		{
			name:     "missing_cost_alone_is_c",
			items:    []domain.InventoryItem{item("1", 2, nil)},
			expected: []domain.ABCCategory{domain.CategoryC},
		},
		{
			name: "zero_value_item_forced_to_c",
			items: []domain.InventoryItem{
				item("zero", 0, f(100)),
				item("big", 1, f(40)),
				item("mid", 1, f(40)),
				item("small", 1, f(20)),
			},
			expected: []domain.ABCCategory{domain.CategoryC, domain.CategoryA, domain.CategoryA, domain.CategoryC},
		},
		{
			name: "ties_keep_input_order",
			items: []domain.InventoryItem{
				item("1", 1, f(45)),
				item("2", 1, f(45)),
				item("3", 1, f(10)),
			},
			// cumulative shares: 0.45 (A), 0.90 (B), 1.00 (C)
			expected: []domain.ABCCategory{domain.CategoryA, domain.CategoryB, domain.CategoryC},
		},
		{
			name: "fractional_costs_sum_in_rank_order",
			items: []domain.InventoryItem{
				item("1", 1, f(8.1)),
				item("2", 1, f(0.4)),
				item("3", 1, f(5.2)),
				item("4", 1, f(0.3)),
			},
			// 8.1 + 5.2 = 13.3 of 14 lands exactly on the B boundary
			expected: []domain.ABCCategory{domain.CategoryA, domain.CategoryC, domain.CategoryB, domain.CategoryC},
		},
		{
			name: "negative_values_are_clamped_to_zero",
			items: []domain.InventoryItem{
				item("neg_qty", -10, f(5)),
				item("neg_cost", 10, f(-5)),
				item("real", 1, f(10)),
			},
			expected: []domain.ABCCategory{domain.CategoryC, domain.CategoryC, domain.CategoryC},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analysis.ClassifyABC(tt.items)

			require.Len(t, result, len(tt.items))
			assert.Equal(t, tt.expected, categories(result))
			for i := range tt.items {
				assert.Equal(t, tt.items[i].ID, result[i].ID)
			}
		})
	}
}

func TestClassifyABC_DefaultsMissingCost(t *testing.T) {
	input := []domain.InventoryItem{item("1", 2, nil), item("2", 3, f(0))}

	result := analysis.ClassifyABC(input)

	require.True(t, result[0].UnitCost.Valid)
	assert.True(t, decimal.NewFromInt(1).Equal(result[0].UnitCost.Decimal))
	require.True(t, result[1].UnitCost.Valid)
	assert.True(t, result[1].UnitCost.Decimal.IsZero())
}

func TestClassifyABC_DoesNotMutateInput(t *testing.T) {
	location := "Aisle 1"
	input := []domain.InventoryItem{item("1", 2, nil), item("2", 5, f(3))}
	input[0].Location = &location

	result := analysis.ClassifyABC(input)
	*result[0].Location = "Elsewhere"

	assert.False(t, input[0].UnitCost.Valid)
	assert.Empty(t, input[0].ABCCategory)
	assert.Empty(t, input[1].ABCCategory)
	assert.Equal(t, "Aisle 1", location)
	assert.Equal(t, "Aisle 1", *input[0].Location)
}

func TestClassifyABC_Detailed(t *testing.T) {
	input := []domain.InventoryItem{item("1", 1, f(15)), item("2", 1, f(80)), item("3", 1, f(5))}

	result := analysis.ClassifyABCDetailed(input)

	require.Len(t, result, 3)
	assert.InDelta(t, 15.0, result[0].ConsumptionValue, 1e-9)
	assert.InDelta(t, 0.95, result[0].CumulativeShare, 1e-9)
	assert.InDelta(t, 0.80, result[1].CumulativeShare, 1e-9)
	assert.InDelta(t, 1.0, result[2].CumulativeShare, 1e-9)
	assert.Equal(t, 5.0, result[2].EffectiveUnitCost)
}

func TestClassifyABC_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		t.Run(fmt.Sprintf("random_%02d", run), func(t *testing.T) {
			n := rng.Intn(30)
			input := make([]domain.InventoryItem, n)
			for i := range input {
				var c *float64
				if rng.Intn(4) != 0 {
					c = f(float64(rng.Intn(10000)) / 100)
				}
				input[i] = item(fmt.Sprintf("QR%03d", i), rng.Intn(200), c)
			}

			first := analysis.ClassifyABC(input)
			require.Len(t, first, n)
			for i, it := range first {
				assert.Equal(t, input[i].ID, it.ID)
				assert.Contains(t, domain.ABCCategories, it.ABCCategory)
				require.True(t, it.UnitCost.Valid)
				assert.False(t, it.UnitCost.Decimal.IsNegative())
			}

			stripped := make([]domain.InventoryItem, n)
			for i, it := range first {
				stripped[i] = it
				stripped[i].ABCCategory = ""
			}
			second := analysis.ClassifyABC(stripped)
			assert.Equal(t, categories(first), categories(second))

			again := analysis.ClassifyABC(input)
			assert.Equal(t, categories(first), categories(again))

			maxShare, total := 0.0, 0.0
			for _, d := range analysis.ClassifyABCDetailed(input) {
				total += d.ConsumptionValue
				maxShare = max(maxShare, d.CumulativeShare)
			}
			if total > 0 {
				assert.Equal(t, 1.0, maxShare)
			}
		})
	}
}
