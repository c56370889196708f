package benchmarks

import (
	"context"
	"fmt"
	"testing"

	"github.com/ammerola/swifttrack-be/internal/adapters/db"
	"github.com/ammerola/swifttrack-be/internal/adapters/spreadsheet"
	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/core/services"
	"github.com/ammerola/swifttrack-be/test/helpers"
)

var benchSizes = []int{100, 1_000, 10_000}

func BenchmarkClassifyABC(b *testing.B) {
	for _, n := range benchSizes {
		items := createBenchmarkInventory(n)
		b.Run(fmt.Sprintf("items_%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = analysis.ClassifyABC(items)
			}
		})
	}
}

func BenchmarkSummarizeABC(b *testing.B) {
	classified := analysis.ClassifyABC(createBenchmarkInventory(10_000))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = analysis.SummarizeABC(classified)
	}
}

func BenchmarkViews(b *testing.B) {
	items := createBenchmarkInventory(5_000)
	classified := analysis.ClassifyABC(items)
	opts := analysis.DefaultNotificationOptions()

	b.Run("Dashboard", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = analysis.BuildDashboard(classified, helpers.FixedNow, opts)
		}
	})

	b.Run("Notifications", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = analysis.BuildNotifications(items, helpers.FixedNow, opts)
		}
	})

	b.Run("DeadStock", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = analysis.FindDeadStock(items, helpers.FixedNow, domain.DefaultDeadStockDays)
		}
	})

	b.Run("Analytics", func(b *testing.B) {
		b.ReportAllocs()
		for i := 0; i < b.N; i++ {
			_ = analysis.ComputeAnalytics(items, helpers.FixedNow, analysis.DefaultCarryingCostRate)
		}
	})
}

func BenchmarkDecodeQRPayload(b *testing.B) {
	payloads := createQRPayloads(64)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = domain.DecodeQRPayload(payloads[i%len(payloads)])
	}
}

func BenchmarkInventoryWorkbook(b *testing.B) {
	items := createBenchmarkInventory(1_000)
	renderer := spreadsheet.NewRenderer("en-US", "USD")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := renderer.Inventory(items, helpers.FixedNow); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInventoryOperations(b *testing.B) {
	testDB := helpers.SetupTestDB(b)

	repo := db.NewInventoryRepository(testDB.Database, helpers.TestLogger())
	suppliers := db.NewSupplierRepository(testDB.Database, helpers.TestLogger())
	service := services.NewInventoryService(repo, suppliers, nil, helpers.TestLogger())
	ctx := context.Background()

	seed := createBenchmarkInventory(1_000)
	if _, err := service.ImportItems(ctx, seed); err != nil {
		b.Fatal(err)
	}

	b.Run("Get", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_, _ = service.GetItem(ctx, seed[i%len(seed)].ID)
		}
	})

	b.Run("List", func(b *testing.B) {
		params := ports.ListParams{Page: 1, PageSize: 50, SortBy: "quantity", SortOrder: "desc"}
		for i := 0; i < b.N; i++ {
			_, _ = service.ListItems(ctx, params)
		}
	})

	b.Run("Search", func(b *testing.B) {
		params := ports.ListParams{Search: "Item 9", Page: 1, PageSize: 50}
		for i := 0; i < b.N; i++ {
			_, _ = service.ListItems(ctx, params)
		}
	})

	b.Run("Create", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			item := helpers.CreateTestInventoryItem(func(item *domain.InventoryItem) {
				item.ID = fmt.Sprintf("CREATE%08d", i)
			})
			_ = service.CreateItem(ctx, item)
		}
	})

	b.Run("Classify", func(b *testing.B) {
		views := services.NewAnalyticsService(repo, suppliers, nil, services.DefaultAnalyticsOptions(), helpers.TestLogger())
		for i := 0; i < b.N; i++ {
			_, _ = views.ABCSummary(ctx)
		}
	})
}
