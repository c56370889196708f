package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

type sampleItem struct {
	id         string
	name       string
	quantity   int
	location   string
	expiryDays *int // relative to now, nil for non-perishables
	cost       string
	price      string
	addedDays  int
	movedDays  int
	supplier   string
	boughtDays int
}

func days(n int) *int { return &n }

var sampleSuppliers = []struct {
	id, name, email string
	rating          float64
	leadTime        int
	onTime          float64
}{
	{"SUP001", "Global Electronics Ltd.", "sales@globalelec.com", 4.5, 14, 0.95},
	{"SUP002", "Office Supreme Inc.", "orders@officesupreme.com", 4.2, 7, 0.92},
	{"SUP003", "Fresh Produce Co.", "fresh@produceco.com", 4.8, 2, 0.98},
	{"SUP004", "Tech Parts Direct", "support@techparts.com", 3.9, 21, 0.88},
}

var sampleItems = []sampleItem{
	{"QR12345", "Wireless Mouse", 5, "Aisle 3, Shelf B", nil, "15", "29.99", -100, -5, "SUP001", -110},
	{"QR67890", "Keyboard", 75, "Aisle 1, Shelf A", nil, "30", "59.99", -200, -10, "SUP001", -210},
	{"QR11223", "Organic Milk", 20, "Cold Storage 1", days(15), "2", "3.99", -5, -2, "SUP003", -7},
	{"QR44556", "Printer Paper (Ream)", 500, "Warehouse Back, Rack 5", nil, "4.5", "8.99", -365, -120, "SUP002", -370},
	{"QR77889", "Hand Sanitizer (500ml)", 3, "Office Supply Closet", days(20), "3", "6.99", -30, -1, "SUP002", -35},
	{"QR00100", "Laptop Stand", 150, "Aisle 2, Shelf C", nil, "25", "49.99", -180, -95, "SUP004", -190},
	{"QR00200", "Coffee Beans (1kg)", 5, "Pantry", days(180), "12", "24.99", -60, -3, "SUP003", -65},
	{"QR00300", "Office Chair", 10, "Storage Room", nil, "90", "179.99", -400, -150, "SUP004", -410},
	{"QR00400", "External SSD 1TB", 30, "Tech Storage", nil, "70", "119.99", -90, -30, "SUP001", -95},
	{"QR00500", "Notebooks (Pack of 5)", 200, "Stationery Cabinet", nil, "6", "12.99", -250, -100, "SUP002", -255},
	{"QR00600", "Expired Product (Test)", 10, "Disposal Area", days(-5), "10", "19.99", -100, -100, "SUP004", -105},
	{"QR00700", "New Product Fast Mover", 50, "Hot Items Shelf", days(365), "20", "39.99", -10, -1, "SUP001", -12},
}

func buildSuppliers(now time.Time) []domain.Supplier {
	out := make([]domain.Supplier, 0, len(sampleSuppliers))
	for _, s := range sampleSuppliers {
		rating, lead, onTime := s.rating, s.leadTime, s.onTime
		out = append(out, domain.Supplier{
			ID:                 s.id,
			Name:               s.name,
			ContactEmail:       s.email,
			PerformanceRating:  &rating,
			LeadTimeDays:       &lead,
			OnTimeDeliveryRate: &onTime,
			CreatedAt:          now,
			UpdatedAt:          now,
		})
	}
	return out
}

// buildItems turns the sample rows into items dated relative to now. Stored
// statuses are derived the same way the dashboard derives them.
func buildItems(now time.Time) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(sampleItems))
	for _, s := range sampleItems {
		location, supplier := s.location, s.supplier
		item := domain.InventoryItem{
			ID:               s.id,
			Name:             s.name,
			Quantity:         s.quantity,
			Location:         &location,
			UnitCost:         decimal.NewNullDecimal(decimal.RequireFromString(s.cost)),
			UnitPrice:        decimal.NewNullDecimal(decimal.RequireFromString(s.price)),
			DateAdded:        now.AddDate(0, 0, s.addedDays),
			LastMovementDate: at(now, s.movedDays),
			SupplierID:       &supplier,
			PurchaseDate:     at(now, s.boughtDays),
		}
		if s.expiryDays != nil {
			item.ExpiryDate = at(now, *s.expiryDays)
		}
		item.Status = analysis.EffectiveStatus(item, now)
		item.PrepareForStorage(now)
		out = append(out, item)
	}
	return out
}

var randomNames = []string{
	"Cable Ties", "USB-C Hub", "Desk Lamp", "Sticky Notes", "Whiteboard Marker",
	"Green Tea", "Monitor Arm", "Label Printer", "Packing Tape", "Safety Gloves",
}

var randomLocations = []string{
	"Aisle 1, Shelf C", "Aisle 4, Shelf A", "Overflow Rack 2", "Receiving Bay", "Back Office",
}

// buildRandomItems generates n extra items with ids RND00001 and up. The same
// seed always yields the same items.
func buildRandomItems(n int, seed uint64, now time.Time) []domain.InventoryItem {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	out := make([]domain.InventoryItem, 0, n)
	for i := 1; i <= n; i++ {
		s := sampleSuppliers[rng.IntN(len(sampleSuppliers))].id
		loc := randomLocations[rng.IntN(len(randomLocations))]
		cost := decimal.NewFromInt(int64(rng.IntN(20000) + 100)).Shift(-2)
		markup := decimal.NewFromFloat(1.2 + rng.Float64())
		added := -rng.IntN(400) - 1

		item := domain.InventoryItem{
			ID:               fmt.Sprintf("RND%05d", i),
			Name:             fmt.Sprintf("%s #%d", randomNames[rng.IntN(len(randomNames))], i),
			Quantity:         rng.IntN(300),
			Location:         &loc,
			UnitCost:         decimal.NewNullDecimal(cost),
			UnitPrice:        decimal.NewNullDecimal(cost.Mul(markup).Round(2)),
			DateAdded:        now.AddDate(0, 0, added),
			LastMovementDate: at(now, added+rng.IntN(-added+1)),
			SupplierID:       &s,
			PurchaseDate:     at(now, added-rng.IntN(14)),
		}
		if rng.IntN(4) == 0 {
			item.ExpiryDate = at(now, rng.IntN(200)-20)
		}
		item.Status = analysis.EffectiveStatus(item, now)
		item.PrepareForStorage(now)
		out = append(out, item)
	}
	return out
}

func at(now time.Time, offsetDays int) *time.Time {
	t := now.AddDate(0, 0, offsetDays)
	return &t
}
