package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
)

// AnalyticsOptions holds the thresholds the read-side views are computed with
type AnalyticsOptions struct {
	Notifications    analysis.NotificationOptions
	DeadStockDays    int
	CarryingCostRate float64
	CacheTTL         time.Duration
}

// DefaultAnalyticsOptions returns the thresholds the app ships with
func DefaultAnalyticsOptions() AnalyticsOptions {
	return AnalyticsOptions{
		Notifications:    analysis.DefaultNotificationOptions(),
		DeadStockDays:    domain.DefaultDeadStockDays,
		CarryingCostRate: analysis.DefaultCarryingCostRate,
		CacheTTL:         5 * time.Minute,
	}
}

// AnalyticsOptionsFromConfig overlays the configured thresholds on the
// defaults. Zero values keep the default.
func AnalyticsOptionsFromConfig(inv config.InventoryConfig) AnalyticsOptions {
	opts := DefaultAnalyticsOptions()
	if inv.LowStockThreshold > 0 {
		opts.Notifications.LowStockThreshold = inv.LowStockThreshold
	}
	if inv.CriticalStockThreshold > 0 {
		opts.Notifications.CriticalStockThreshold = inv.CriticalStockThreshold
	}
	if inv.NearExpiryDays > 0 {
		opts.Notifications.NearExpiryDays = inv.NearExpiryDays
	}
	if inv.DeadStockDays > 0 {
		opts.DeadStockDays = inv.DeadStockDays
	}
	if inv.CarryingCostRate > 0 {
		opts.CarryingCostRate = inv.CarryingCostRate
	}
	if inv.CacheTTL > 0 {
		opts.CacheTTL = inv.CacheTTL
	}
	return opts
}

// AnalyticsService computes dashboards, alerts and reports over the whole inventory
type AnalyticsService struct {
	items     ports.InventoryRepository
	suppliers ports.SupplierRepository
	cache     ports.CacheRepository
	opts      AnalyticsOptions
	clock     func() time.Time
	logger    *slog.Logger
}

var _ ports.AnalyticsService = (*AnalyticsService)(nil)

// NewAnalyticsService creates the service. cache may be nil, in which case
// every view is computed on demand.
func NewAnalyticsService(
	items ports.InventoryRepository,
	suppliers ports.SupplierRepository,
	cache ports.CacheRepository,
	opts AnalyticsOptions,
	logger *slog.Logger,
) *AnalyticsService {
	return &AnalyticsService{
		items:     items,
		suppliers: suppliers,
		cache:     cache,
		opts:      opts,
		clock:     time.Now,
		logger:    logger.With(slog.String("service", "analytics")),
	}
}

// WithClock replaces the time source the views are evaluated against
func (s *AnalyticsService) WithClock(clock func() time.Time) *AnalyticsService {
	s.clock = clock
	return s
}

type snapshot struct {
	classified []domain.InventoryItem
	suppliers  []domain.Supplier
}

// load reads items, and suppliers when asked, in parallel and classifies the items
func (s *AnalyticsService) load(ctx context.Context, withSuppliers bool) (*snapshot, error) {
	var (
		items     []domain.InventoryItem
		suppliers []domain.Supplier
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.items.ListAll(gctx)
		if err != nil {
			return fmt.Errorf("failed to load inventory: %w", err)
		}
		return nil
	})
	if withSuppliers {
		g.Go(func() error {
			var err error
			suppliers, err = s.suppliers.FindAll(gctx)
			if err != nil {
				return fmt.Errorf("failed to load suppliers: %w", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &snapshot{
		classified: analysis.ClassifyABC(items),
		suppliers:  suppliers,
	}, nil
}

// cached serves key from the cache, computing and storing it on a miss
func cached[T any](ctx context.Context, s *AnalyticsService, key string, compute func() (T, error)) (T, error) {
	if s.cache == nil {
		return compute()
	}

	var out T
	err := s.cache.GetOrSet(ctx, key, &out, func() (interface{}, error) {
		return compute()
	}, s.opts.CacheTTL)
	return out, err
}

func (s *AnalyticsService) dayKey(kind string) string {
	return ports.BuildKey(ports.PrefixAnalysis, kind, s.clock().Format(domain.DateLayout))
}

// ClassifiedItems returns every item with its ABC category and effective unit cost.
// It is never cached.
func (s *AnalyticsService) ClassifiedItems(ctx context.Context) ([]domain.InventoryItem, error) {
	snap, err := s.load(ctx, false)
	if err != nil {
		return nil, err
	}
	return snap.classified, nil
}

// ABCSummary returns the per-category breakdown and the classified table
func (s *AnalyticsService) ABCSummary(ctx context.Context) (*analysis.ABCSummary, error) {
	summary, err := cached(ctx, s, ports.BuildKey(ports.PrefixAnalysis, "abc"), func() (analysis.ABCSummary, error) {
		snap, err := s.load(ctx, false)
		if err != nil {
			return analysis.ABCSummary{}, err
		}
		return analysis.SummarizeABC(snap.classified), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build ABC summary: %w", err)
	}
	return &summary, nil
}

// DeadStock lists items idle for longer than the configured number of days
func (s *AnalyticsService) DeadStock(ctx context.Context) ([]analysis.DeadStockItem, error) {
	rows, err := cached(ctx, s, s.dayKey("dead-stock"), func() ([]analysis.DeadStockItem, error) {
		snap, err := s.load(ctx, false)
		if err != nil {
			return nil, err
		}
		return analysis.FindDeadStock(snap.classified, s.clock(), s.opts.DeadStockDays), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find dead stock: %w", err)
	}
	return rows, nil
}

// Notifications returns low stock and expiry alerts as of today
func (s *AnalyticsService) Notifications(ctx context.Context) (*analysis.Notifications, error) {
	alerts, err := cached(ctx, s, s.dayKey("notifications"), func() (analysis.Notifications, error) {
		snap, err := s.load(ctx, false)
		if err != nil {
			return analysis.Notifications{}, err
		}
		return analysis.BuildNotifications(snap.classified, s.clock(), s.opts.Notifications), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build notifications: %w", err)
	}
	return &alerts, nil
}

// ProfitMargins returns margins for items with both a cost and a price
func (s *AnalyticsService) ProfitMargins(ctx context.Context) ([]analysis.ProfitMarginRow, error) {
	rows, err := cached(ctx, s, ports.BuildKey(ports.PrefixAnalysis, string(domain.ReportProfitMargins)), func() ([]analysis.ProfitMarginRow, error) {
		snap, err := s.load(ctx, false)
		if err != nil {
			return nil, err
		}
		return analysis.ProfitMargins(snap.classified), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute profit margins: %w", err)
	}
	return rows, nil
}

// StockAging returns days in stock for items with a purchase date
func (s *AnalyticsService) StockAging(ctx context.Context) ([]analysis.StockAgingRow, error) {
	rows, err := cached(ctx, s, s.dayKey(string(domain.ReportStockAging)), func() ([]analysis.StockAgingRow, error) {
		snap, err := s.load(ctx, false)
		if err != nil {
			return nil, err
		}
		return analysis.StockAging(snap.classified, s.clock()), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute stock aging: %w", err)
	}
	return rows, nil
}

// SupplierPerformance returns per-supplier delivery and value figures
func (s *AnalyticsService) SupplierPerformance(ctx context.Context) ([]analysis.SupplierPerformanceRow, error) {
	rows, err := cached(ctx, s, ports.BuildKey(ports.PrefixAnalysis, string(domain.ReportSupplierPerformance)), func() ([]analysis.SupplierPerformanceRow, error) {
		snap, err := s.load(ctx, true)
		if err != nil {
			return nil, err
		}
		return analysis.SupplierPerformance(snap.classified, snap.suppliers), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute supplier performance: %w", err)
	}
	return rows, nil
}

// Analytics returns the KPI summary
func (s *AnalyticsService) Analytics(ctx context.Context) (*analysis.AnalyticsSummary, error) {
	summary, err := cached(ctx, s, s.dayKey("analytics"), func() (analysis.AnalyticsSummary, error) {
		snap, err := s.load(ctx, false)
		if err != nil {
			return analysis.AnalyticsSummary{}, err
		}
		return analysis.ComputeAnalytics(snap.classified, s.clock(), s.opts.CarryingCostRate), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute analytics: %w", err)
	}
	return &summary, nil
}

// Dashboard returns the sorted overview table with predicted top sellers
func (s *AnalyticsService) Dashboard(ctx context.Context) (*analysis.Dashboard, error) {
	key := ports.BuildKey(ports.PrefixDashboard, "main", s.clock().Format(domain.DateLayout))
	dash, err := cached(ctx, s, key, func() (analysis.Dashboard, error) {
		snap, err := s.load(ctx, false)
		if err != nil {
			return analysis.Dashboard{}, err
		}
		return analysis.BuildDashboard(snap.classified, s.clock(), s.opts.Notifications), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	s.logger.DebugContext(ctx, "dashboard served",
		slog.Int("items", len(dash.Items)),
		slog.Int("low_stock_alerts", dash.LowStockAlerts),
		slog.Int("expiry_alerts", dash.ExpiryAlerts))

	return &dash, nil
}
