// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/swifttrack-be/internal/adapters/db"
	redis_a "github.com/ammerola/swifttrack-be/internal/adapters/redis_adapter"
	"github.com/ammerola/swifttrack-be/internal/adapters/spreadsheet"
	"github.com/ammerola/swifttrack-be/internal/adapters/storage"
	"github.com/ammerola/swifttrack-be/internal/core/services"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
	"github.com/ammerola/swifttrack-be/internal/pkg/logger"
	"github.com/ammerola/swifttrack-be/internal/workers"
)

func main() {
	// Setup logger
	slogger := logger.SetupLogger("info", "json").Logger

	// Load configuration
	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat,
		logger.WithSampling(cfg.App.LogSampleRate),
		logger.WithFileOutput(cfg.App.LogFile, cfg.App.LogLevel),
	).Logger
	slog.SetDefault(slogger)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	// Initialize database
	ctx := context.Background()
	database, err := initDatabase(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	// Analysis cache shared with the API
	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)
	cacheManager := redis_a.NewCacheManager(cache, slogger)

	store, err := storage.New(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize report storage", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories and services
	inventoryRepo := db.NewInventoryRepository(database, slogger)
	supplierRepo := db.NewSupplierRepository(database, slogger)
	analyticsService := services.NewAnalyticsService(inventoryRepo, supplierRepo, cache, services.AnalyticsOptionsFromConfig(cfg.Inventory), slogger)
	reportService := services.NewReportService(
		analyticsService,
		spreadsheet.NewRenderer(cfg.Inventory.Locale, cfg.Inventory.Currency),
		store,
		cfg.Storage.PresignTTL,
		slogger,
	)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	// Create Asynq server
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency:              cfg.Asynq.Concurrency,
			Queues:                   cfg.Asynq.Queues,
			StrictPriority:           cfg.Asynq.StrictPriority,
			ErrorHandler:             asynq.ErrorHandlerFunc(handleError),
			RetryDelayFunc:           exponentialBackoff,
			ShutdownTimeout:          cfg.Asynq.ShutdownTimeout,
			HealthCheckFunc:          healthCheck,
			HealthCheckInterval:      cfg.Asynq.HealthCheckInterval,
			DelayedTaskCheckInterval: cfg.Asynq.DelayedTaskCheckTime,
			Logger:                   newAsynqLogger(slogger),
		},
	)

	// Create task handlers
	mux := asynq.NewServeMux()

	reportProcessor := workers.NewReportProcessor(reportService, slogger)
	mux.HandleFunc(workers.TypeGenerateReport, reportProcessor.GenerateReport)

	alertProcessor := workers.NewAlertProcessor(analyticsService, cache, slogger)
	mux.HandleFunc(workers.TypeAlertScan, alertProcessor.ScanAlerts)

	analyticsProcessor := workers.NewAnalyticsProcessor(analyticsService, cacheManager, cacheManager, slogger)
	mux.HandleFunc(workers.TypeRefreshAnalytics, analyticsProcessor.RefreshAnalytics)

	cleanupProcessor := workers.NewCleanupProcessor(reportService, cfg.Storage.ReportRetention, slogger)
	mux.HandleFunc(workers.TypeCleanupReports, cleanupProcessor.CleanupReports)

	// Periodic jobs are submitted through a regular client
	var scheduler *workers.Scheduler
	if cfg.Scheduler.Enabled {
		client := asynq.NewClient(redisOpt)
		defer client.Close()

		scheduler, err = workers.NewScheduler(cfg.Scheduler, cfg.Storage.ReportRetention, client, slogger)
		if err != nil {
			slogger.Error("failed to create scheduler", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Handle shutdown gracefully
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	if scheduler != nil {
		scheduler.Start()
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.Bool("scheduler", scheduler != nil))

	// Wait for shutdown signal
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	// Gracefully shutdown
	if scheduler != nil {
		stopCtx, cancel := context.WithTimeout(context.Background(), cfg.Asynq.ShutdownTimeout)
		scheduler.Stop(stopCtx)
		cancel()
	}
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func initDatabase(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*db.Database, error) {
	dbConfig := &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}

	return db.NewDatabase(ctx, dbConfig, logger)
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.String("payload", string(task.Payload())),
		slog.String("error", err.Error()))
}

func exponentialBackoff(n int, e error, t *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", slog.String("error", err.Error()))
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
