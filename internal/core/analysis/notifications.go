package analysis

import (
	"sort"
	"time"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// NotificationOptions tunes the alert thresholds
type NotificationOptions struct {
	LowStockThreshold int
	// CriticalStockThreshold marks low stock alerts as critical at or below it.
	CriticalStockThreshold int
	NearExpiryDays         int
}

// DefaultNotificationOptions returns the stock and expiry thresholds the app ships with
func DefaultNotificationOptions() NotificationOptions {
	return NotificationOptions{
		LowStockThreshold:      domain.DefaultLowStockThreshold,
		CriticalStockThreshold: domain.DefaultCriticalStockThreshold,
		NearExpiryDays:         domain.DefaultNearExpiryDays,
	}
}

// LowStockAlert flags an item at or below the reorder threshold
type LowStockAlert struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Threshold int     `json:"threshold"`
	Critical  bool    `json:"critical"`
	Location  *string `json:"location"`
}

// ExpiryAlert flags an item that has expired or is about to
type ExpiryAlert struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	ExpiryDate time.Time `json:"expiry_date"`
	Expired    bool      `json:"expired"`
	DaysUntil  int       `json:"days_until"`
	Location   *string   `json:"location"`
}

// Notifications groups the alerts raised for an inventory snapshot
type Notifications struct {
	LowStock []LowStockAlert `json:"low_stock"`
	Expiring []ExpiryAlert   `json:"expiring"`
}

// Total is the number of alerts across both groups
func (n Notifications) Total() int {
	return len(n.LowStock) + len(n.Expiring)
}

// ExpiredCount is the number of expiry alerts for items already past their date
func (n Notifications) ExpiredCount() int {
	count := 0
	for _, a := range n.Expiring {
		if a.Expired {
			count++
		}
	}
	return count
}

// BuildNotifications derives low stock and expiry alerts. Expired items are
// excluded from low stock alerts and listed first among expiry alerts.
func BuildNotifications(items []domain.InventoryItem, now time.Time, opts NotificationOptions) Notifications {
	out := Notifications{
		LowStock: []LowStockAlert{},
		Expiring: []ExpiryAlert{},
	}

	for _, item := range items {
		expired := IsExpired(item.ExpiryDate, now)

		if !expired && item.Quantity > 0 && item.Quantity <= opts.LowStockThreshold {
			out.LowStock = append(out.LowStock, LowStockAlert{
				ID:        item.ID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Threshold: opts.LowStockThreshold,
				Critical:  item.Quantity <= opts.CriticalStockThreshold,
				Location:  item.Location,
			})
		}

		if item.ExpiryDate == nil {
			continue
		}
		days := DaysUntil(*item.ExpiryDate, now)
		if expired || (days >= 0 && days <= opts.NearExpiryDays) {
			out.Expiring = append(out.Expiring, ExpiryAlert{
				ID:         item.ID,
				Name:       item.Name,
				ExpiryDate: *item.ExpiryDate,
				Expired:    expired,
				DaysUntil:  days,
				Location:   item.Location,
			})
		}
	}

	sort.SliceStable(out.Expiring, func(i, j int) bool {
		a, b := out.Expiring[i], out.Expiring[j]
		if a.Expired != b.Expired {
			return a.Expired
		}
		return a.ExpiryDate.Before(b.ExpiryDate)
	})

	return out
}
