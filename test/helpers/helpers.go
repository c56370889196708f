// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/swifttrack-be/internal/adapters/db"
	redis_a "github.com/ammerola/swifttrack-be/internal/adapters/redis_adapter"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
	"github.com/ammerola/swifttrack-be/migrations"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
	Cache  *redis_a.Cache
}

// FixedNow is the reference instant used by time-dependent tests
var FixedNow = time.Date(2025, time.June, 15, 10, 30, 0, 0, time.UTC)

// Days returns FixedNow shifted by n days
func Days(n int) time.Time {
	return FixedNow.AddDate(0, 0, n)
}

// TimePtr returns a pointer to t
func TimePtr(t time.Time) *time.Time {
	return &t
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// Money builds a valid NullDecimal from a float literal
func Money(v float64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromFloat(v))
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container with the schema applied. It
// skips the test in -short mode.
func SetupTestDB(t testing.TB) *TestDB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping Postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=swifttrack_test",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "swifttrack_test",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	err = db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{
		DatabaseURL:    dbConfig.URL(),
		EmbeddedSource: migrations.FS,
	}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis starts an in-memory Redis and a cache bound to it
func SetupTestRedis(t testing.TB) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
		Cache:  redis_a.NewCache(client, time.Hour, TestLogger()),
	}
}

// SetupMockDB creates a sqlmock-backed *sql.DB for SQL shape tests
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return mock, sqlDB
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "swifttrack-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "swifttrack_test",
			SSLMode:        "disable",
			MaxConnections: 10,
			MinConnections: 2,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			DB:       0,
			TTL:      time.Hour,
			PoolSize: 10,
		},
		Storage: config.StorageConfig{
			Driver:          "local",
			LocalDir:        os.TempDir(),
			LocalBaseURL:    "http://localhost:8080/files",
			PresignTTL:      time.Hour,
			ReportRetention: 30 * 24 * time.Hour,
			MaxUploadMB:     5,
		},
		Inventory: config.InventoryConfig{
			LowStockThreshold:      domain.DefaultLowStockThreshold,
			CriticalStockThreshold: domain.DefaultCriticalStockThreshold,
			NearExpiryDays:         domain.DefaultNearExpiryDays,
			DeadStockDays:          domain.DefaultDeadStockDays,
			CarryingCostRate:       0.20,
			CacheTTL:               time.Minute,
			Currency:               "USD",
			Locale:                 "en-US",
		},
		Scheduler: config.SchedulerConfig{
			Enabled:        true,
			Timezone:       "UTC",
			AlertScanSpec:  "*/15 * * * *",
			ReportsSpec:    "0 2 * * *",
			CleanupSpec:    "0 3 * * 0",
			NightlyReports: []string{"inventory", "abc"},
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			RateLimitBurst:    100,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:           "localhost",
			Port:           "8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			RequestTimeout: 5 * time.Second,
		},
	}
}

// CreateTestInventoryItem creates a test inventory item
func CreateTestInventoryItem(overrides ...func(*domain.InventoryItem)) *domain.InventoryItem {
	added := Days(-40)
	moved := Days(-3)
	item := &domain.InventoryItem{
		ID:               "QR12345",
		Name:             "Organic Apples",
		Quantity:         150,
		Location:         StringPtr("Aisle 3, Shelf B"),
		ExpiryDate:       TimePtr(Days(20)),
		Status:           domain.StatusInStock,
		UnitCost:         Money(0.5),
		UnitPrice:        Money(1.2),
		DateAdded:        added,
		LastMovementDate: &moved,
		SupplierID:       StringPtr("SUP001"),
		PurchaseDate:     TimePtr(Days(-41)),
		CreatedAt:        added,
		UpdatedAt:        moved,
	}

	for _, override := range overrides {
		override(item)
	}

	return item
}

// CreateTestInventoryItems creates count items with distinct ids and stock values
func CreateTestInventoryItems(count int) []domain.InventoryItem {
	items := make([]domain.InventoryItem, count)
	for i := 0; i < count; i++ {
		items[i] = *CreateTestInventoryItem(func(item *domain.InventoryItem) {
			item.ID = fmt.Sprintf("QRTEST%04d", i+1)
			item.Name = fmt.Sprintf("Test Item %d", i+1)
			item.Quantity = 10 + i*7%90
			item.UnitCost = Money(float64(1 + i%13))
			item.UnitPrice = Money(float64(2 + i%13))
		})
	}
	return items
}

// CreateTestSuppliers returns the four reference suppliers
func CreateTestSuppliers() []domain.Supplier {
	rating := func(v float64) *float64 { return &v }
	days := func(v int) *int { return &v }

	return []domain.Supplier{
		{ID: "SUP001", Name: "Fresh Farms Co.", ContactEmail: "orders@freshfarms.example", PerformanceRating: rating(4.5), LeadTimeDays: days(3), OnTimeDeliveryRate: rating(0.92), CreatedAt: FixedNow, UpdatedAt: FixedNow},
		{ID: "SUP002", Name: "Dairy Delights", ContactEmail: "supply@dairydelights.example", PerformanceRating: rating(4.2), LeadTimeDays: days(2), OnTimeDeliveryRate: rating(0.88), CreatedAt: FixedNow, UpdatedAt: FixedNow},
		{ID: "SUP003", Name: "Bakery Supplies Inc.", ContactEmail: "sales@bakerysupplies.example", PerformanceRating: rating(3.8), LeadTimeDays: days(5), OnTimeDeliveryRate: rating(0.75), CreatedAt: FixedNow, UpdatedAt: FixedNow},
		{ID: "SUP004", Name: "Pantry Staples Ltd.", ContactEmail: "hello@pantrystaples.example", PerformanceRating: rating(4.8), LeadTimeDays: days(7), OnTimeDeliveryRate: rating(0.97), CreatedAt: FixedNow, UpdatedAt: FixedNow},
	}
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables empties every application table
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), "TRUNCATE TABLE inventory_items, suppliers")
	require.NoError(t, err, "Failed to truncate tables")
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")
	require.NoError(t, file.Close())

	return file.Name()
}
