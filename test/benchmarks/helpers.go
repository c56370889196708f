// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/test/helpers"
)

var benchLocations = []string{"Aisle 1, Shelf A", "Aisle 3, Shelf B", "Cold Storage 1", "Pantry", "Tech Storage"}

// createBenchmarkInventory builds n items with a long-tailed value spread, a
// mix of perishables and some stale stock, dated around helpers.FixedNow.
func createBenchmarkInventory(n int) []domain.InventoryItem {
	items := make([]domain.InventoryItem, n)
	for i := range items {
		qty := 1 + (i*37)%400
		cost := decimal.NewFromInt(int64(1 + (i*i)%997)).Shift(-1)
		loc := benchLocations[i%len(benchLocations)]

		item := domain.InventoryItem{
			ID:               fmt.Sprintf("BENCH%06d", i),
			Name:             fmt.Sprintf("Benchmark Item %d", i),
			Quantity:         qty,
			Location:         &loc,
			Status:           domain.StatusInStock,
			UnitCost:         decimal.NewNullDecimal(cost),
			UnitPrice:        decimal.NewNullDecimal(cost.Mul(decimal.NewFromFloat(1.6))),
			DateAdded:        helpers.Days(-(i % 500)),
			LastMovementDate: helpers.TimePtr(helpers.Days(-(i % 150))),
			SupplierID:       helpers.StringPtr(fmt.Sprintf("SUP00%d", 1+i%4)),
		}
		if i%5 == 0 {
			item.ExpiryDate = helpers.TimePtr(helpers.Days(i%90 - 10))
		}
		items[i] = item
	}
	return items
}

// createQRPayloads renders n label payloads, every fourth one malformed
func createQRPayloads(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		if i%4 == 3 {
			out[i] = []byte(fmt.Sprintf(`{"id":"","name":%d}`, i))
			continue
		}
		out[i] = []byte(fmt.Sprintf(
			`{"id":"QR%05d","name":"Item %d","expiryDate":"2025-07-%02d","unitCost":%d.5,"supplierId":"SUP001"}`,
			i, i, 1+i%28, i%40))
	}
	return out
}
