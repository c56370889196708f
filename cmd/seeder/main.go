package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ammerola/swifttrack-be/internal/adapters/db"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
	"github.com/ammerola/swifttrack-be/internal/pkg/logger"
	"github.com/ammerola/swifttrack-be/migrations"
)

func main() {
	var (
		logLevel = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
		dryRun   = flag.Bool("dry-run", false, "Preview changes without modifying database")
		reset    = flag.Bool("reset", false, "Delete all inventory and suppliers before seeding")
		migrate  = flag.Bool("migrate", true, "Apply pending migrations first")
		random   = flag.Int("random", 0, "Number of extra randomly generated items")
		seed     = flag.Uint64("seed", 42, "Seed for the random items")
	)
	flag.Parse()

	log := logger.SetupLogger(*logLevel, "json").Logger
	slog.SetDefault(log)

	if err := run(log, *dryRun, *reset, *migrate, *random, *seed); err != nil {
		log.Error("Seed operation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(log *slog.Logger, dryRun, reset, migrate bool, random int, seed uint64) error {
	now := time.Now().UTC()
	suppliers := buildSuppliers(now)
	items := buildItems(now)
	if random > 0 {
		items = append(items, buildRandomItems(random, seed, now)...)
	}

	if dryRun {
		printSummary(suppliers, items)
		fmt.Println("\n[DRY RUN] No changes were made to the database")
		return nil
	}

	cfg, err := config.Load(log)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	ctx := context.Background()
	database, err := db.NewDatabase(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConnections:  4,
		MinConnections:  1,
		MaxConnLifetime: cfg.Database.MaxConnLifetime,
		MaxConnIdleTime: cfg.Database.MaxConnIdleTime,
		ConnectTimeout:  cfg.Database.ConnectTimeout,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if migrate {
		if err := db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
			DatabaseURL:    cfg.GetDatabaseURL(),
			EmbeddedSource: migrations.FS,
		}, log, 3); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	if reset {
		if _, err := database.Exec(ctx, "TRUNCATE inventory_items, suppliers"); err != nil {
			return fmt.Errorf("failed to reset tables: %w", err)
		}
		log.Warn("Existing inventory and suppliers deleted")
	}

	if err := db.NewSupplierRepository(database, log).SaveBatch(ctx, suppliers); err != nil {
		return fmt.Errorf("failed to save suppliers: %w", err)
	}
	if err := db.NewInventoryRepository(database, log).SaveBatch(ctx, items); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}

	printSummary(suppliers, items)
	log.Info("Seed operation completed",
		slog.Int("suppliers", len(suppliers)),
		slog.Int("items", len(items)),
		slog.Int("random_items", random))
	return nil
}

func printSummary(suppliers []domain.Supplier, items []domain.InventoryItem) {
	counts := make(map[domain.ItemStatus]int)
	for _, item := range items {
		counts[item.Status]++
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("SEEDING SUMMARY")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("Suppliers: %d\n", len(suppliers))
	fmt.Printf("Items:     %d\n", len(items))
	for _, status := range []domain.ItemStatus{
		domain.StatusInStock, domain.StatusLowStock, domain.StatusCritical, domain.StatusExpired,
	} {
		fmt.Printf("  - %-10s %d\n", status, counts[status])
	}
}
