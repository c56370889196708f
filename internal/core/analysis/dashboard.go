package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

const topSellerCount = 3

var statusOrder = map[domain.ItemStatus]int{
	domain.StatusExpired:  1,
	domain.StatusCritical: 2,
	domain.StatusLowStock: 3,
	domain.StatusInStock:  4,
}

// EffectiveStatus derives the status shown on the dashboard from expiry and
// quantity, ignoring whatever status was stored.
func EffectiveStatus(item domain.InventoryItem, now time.Time) domain.ItemStatus {
	switch {
	case IsExpired(item.ExpiryDate, now):
		return domain.StatusExpired
	case item.Quantity <= domain.DefaultCriticalStockThreshold:
		return domain.StatusCritical
	case item.Quantity <= domain.DefaultLowStockThreshold:
		return domain.StatusLowStock
	default:
		return domain.StatusInStock
	}
}

// DashboardRow is an item annotated with its effective status
type DashboardRow struct {
	domain.InventoryItem
	EffectiveStatus domain.ItemStatus `json:"effective_status"`
	NearExpiry      bool              `json:"near_expiry"`
}

// Dashboard is the overview screen payload
type Dashboard struct {
	GeneratedAt         time.Time              `json:"generated_at"`
	Items               []DashboardRow         `json:"items"`
	PredictedTopSellers []domain.InventoryItem `json:"predicted_top_sellers"`
	StatusCounts        map[string]int         `json:"status_counts"`
	LowStockAlerts      int                    `json:"low_stock_alerts"`
	ExpiryAlerts        int                    `json:"expiry_alerts"`
}

// BuildDashboard orders classified items for the overview table and picks the
// predicted top sellers.
func BuildDashboard(classified []domain.InventoryItem, now time.Time, opts NotificationOptions) Dashboard {
	rows := make([]DashboardRow, len(classified))
	counts := make(map[string]int, len(statusOrder))
	for i, item := range classified {
		status := EffectiveStatus(item, now)
		near := false
		if item.ExpiryDate != nil && status != domain.StatusExpired {
			days := DaysUntil(*item.ExpiryDate, now)
			near = days >= 0 && days <= opts.NearExpiryDays
		}
		rows[i] = DashboardRow{InventoryItem: item, EffectiveStatus: status, NearExpiry: near}
		counts[string(status)]++
	}
	SortDashboardRows(rows)

	alerts := BuildNotifications(classified, now, opts)
	return Dashboard{
		GeneratedAt:         now,
		Items:               rows,
		PredictedTopSellers: PredictTopSellers(classified, now),
		StatusCounts:        counts,
		LowStockAlerts:      len(alerts.LowStock),
		ExpiryAlerts:        len(alerts.Expiring),
	}
}

// SortDashboardRows orders rows by status severity, ABC tier, nearest expiry,
// most recent movement and finally name.
func SortDashboardRows(rows []DashboardRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]

		if sa, sb := statusOrder[a.EffectiveStatus], statusOrder[b.EffectiveStatus]; sa != sb {
			return sa < sb
		}

		ra, rb := a.ABCCategory.Rank(), b.ABCCategory.Rank()
		switch {
		case ra != 0 && rb != 0 && ra != rb:
			return ra < rb
		case ra != 0 && rb == 0:
			return true
		case ra == 0 && rb != 0:
			return false
		}

		switch {
		case a.ExpiryDate != nil && b.ExpiryDate != nil:
			if !a.ExpiryDate.Equal(*b.ExpiryDate) {
				return a.ExpiryDate.Before(*b.ExpiryDate)
			}
		case a.ExpiryDate != nil:
			return true
		case b.ExpiryDate != nil:
			return false
		}

		la, lb := a.LastActivity(), b.LastActivity()
		if !la.Equal(lb) {
			return la.After(lb)
		}

		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}

// PredictTopSellers is a heuristic stand-in for demand forecasting: recently
// moved A and B items with healthy stock.
func PredictTopSellers(classified []domain.InventoryItem, now time.Time) []domain.InventoryItem {
	candidates := make([]domain.InventoryItem, 0, len(classified))
	for _, item := range classified {
		if IsExpired(item.ExpiryDate, now) || item.Quantity <= domain.DefaultCriticalStockThreshold {
			continue
		}
		if item.ABCCategory != domain.CategoryA && item.ABCCategory != domain.CategoryB {
			continue
		}
		candidates = append(candidates, item)
	}

	lastMove := func(item domain.InventoryItem) time.Time {
		if item.LastMovementDate == nil {
			return time.Time{}
		}
		return *item.LastMovementDate
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if la, lb := lastMove(a), lastMove(b); !la.Equal(lb) {
			return la.After(lb)
		}
		if (a.ABCCategory == domain.CategoryA) != (b.ABCCategory == domain.CategoryA) {
			return a.ABCCategory == domain.CategoryA
		}
		return a.Quantity > b.Quantity
	})

	if len(candidates) > topSellerCount {
		candidates = candidates[:topSellerCount]
	}
	return candidates
}
