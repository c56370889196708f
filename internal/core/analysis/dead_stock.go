package analysis

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// DeadStockMinQuantity is the smallest on-hand quantity worth flagging
const DeadStockMinQuantity = 1

// DeadStockItem is an item that has not moved within the threshold
type DeadStockItem struct {
	ID                    string             `json:"id"`
	Name                  string             `json:"name"`
	Quantity              int                `json:"quantity"`
	Location              *string            `json:"location"`
	LastActivity          time.Time          `json:"last_activity"`
	DaysSinceLastMovement int                `json:"days_since_last_movement"`
	TiedUpValue           decimal.Decimal    `json:"tied_up_value"`
	ABCCategory           domain.ABCCategory `json:"abc_category,omitempty"`
}

// FindDeadStock lists unexpired items with stock on hand whose last movement
// (or date added, when they never moved) is more than thresholdDays ago.
// The longest idle items come first.
func FindDeadStock(items []domain.InventoryItem, now time.Time, thresholdDays int) []DeadStockItem {
	out := []DeadStockItem{}
	for _, item := range items {
		if item.Quantity < DeadStockMinQuantity || IsExpired(item.ExpiryDate, now) {
			continue
		}
		last := item.LastActivity()
		days := DaysSince(last, now)
		if days <= thresholdDays {
			continue
		}
		out = append(out, DeadStockItem{
			ID:                    item.ID,
			Name:                  item.Name,
			Quantity:              item.Quantity,
			Location:              item.Location,
			LastActivity:          last,
			DaysSinceLastMovement: days,
			TiedUpValue:           item.StockValue(),
			ABCCategory:           item.ABCCategory,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DaysSinceLastMovement > out[j].DaysSinceLastMovement
	})
	return out
}
