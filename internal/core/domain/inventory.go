// internal/core/domain/inventory.go
package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ItemStatus represents the stock status shown for an item
type ItemStatus string

// Status constants
const (
	StatusInStock  ItemStatus = "In Stock"
	StatusLowStock ItemStatus = "Low Stock"
	StatusCritical ItemStatus = "Critical"
	StatusExpired  ItemStatus = "Expired"
)

// IsValid reports whether s is one of the known statuses
func (s ItemStatus) IsValid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusCritical, StatusExpired:
		return true
	}
	return false
}

// ABCCategory is the Pareto tier assigned by ABC analysis
type ABCCategory string

const (
	CategoryA ABCCategory = "A"
	CategoryB ABCCategory = "B"
	CategoryC ABCCategory = "C"
)

// ABCCategories lists the tiers in rank order
var ABCCategories = []ABCCategory{CategoryA, CategoryB, CategoryC}

// Rank returns 1 for A, 2 for B, 3 for C and 0 for an unclassified item
func (c ABCCategory) Rank() int {
	switch c {
	case CategoryA:
		return 1
	case CategoryB:
		return 2
	case CategoryC:
		return 3
	}
	return 0
}

// Stock thresholds used across dashboards, alerts and reports
const (
	DefaultCriticalStockThreshold = 5
	DefaultLowStockThreshold      = 20
	DefaultNearExpiryDays         = 30
	DefaultDeadStockDays          = 90
)

var (
	ErrItemNotFound     = errors.New("inventory item not found")
	ErrItemExists       = errors.New("inventory item already exists")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrInvalidItem      = errors.New("invalid inventory item")
)

// ValidationError describes a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidItem
}

// InventoryItem is a tracked stock record keyed by the id encoded in its QR label
type InventoryItem struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Quantity         int                 `json:"quantity"`
	Location         *string             `json:"location"`
	ExpiryDate       *time.Time          `json:"expiry_date"`
	Status           ItemStatus          `json:"status"`
	UnitCost         decimal.NullDecimal `json:"unit_cost"`
	UnitPrice        decimal.NullDecimal `json:"unit_price"`
	ABCCategory      ABCCategory         `json:"abc_category,omitempty"`
	DateAdded        time.Time           `json:"date_added"`
	LastMovementDate *time.Time          `json:"last_movement_date"`
	SupplierID       *string             `json:"supplier_id"`
	PurchaseDate     *time.Time          `json:"purchase_date"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// Validate performs domain validation on the inventory item
func (i *InventoryItem) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return &ValidationError{Field: "id", Message: "is required"}
	}
	if strings.TrimSpace(i.Name) == "" {
		return &ValidationError{Field: "name", Message: "is required"}
	}
	if i.Quantity < 0 {
		return &ValidationError{Field: "quantity", Message: "cannot be negative"}
	}
	if i.UnitCost.Valid && i.UnitCost.Decimal.IsNegative() {
		return &ValidationError{Field: "unit_cost", Message: "cannot be negative"}
	}
	if i.UnitPrice.Valid && i.UnitPrice.Decimal.IsNegative() {
		return &ValidationError{Field: "unit_price", Message: "cannot be negative"}
	}
	if i.Status != "" && !i.Status.IsValid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("has unknown value %q", i.Status)}
	}
	return nil
}

// PrepareForStorage normalizes the item before it is written
func (i *InventoryItem) PrepareForStorage(now time.Time) {
	i.ID = strings.TrimSpace(i.ID)
	i.Name = strings.TrimSpace(i.Name)
	i.Location = NormalizeLocation(i.Location)
	if i.SupplierID != nil && strings.TrimSpace(*i.SupplierID) == "" {
		i.SupplierID = nil
	}
	if i.Status == "" {
		i.Status = StatusInStock
	}
	if i.DateAdded.IsZero() {
		i.DateAdded = now
	}
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
}

// NormalizeLocation trims a location and maps blank input to nil
func NormalizeLocation(location *string) *string {
	if location == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*location)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StockValue returns quantity times unit cost, treating a missing cost as zero
func (i *InventoryItem) StockValue() decimal.Decimal {
	if !i.UnitCost.Valid {
		return decimal.Zero
	}
	return i.UnitCost.Decimal.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LastActivity returns the last movement date, falling back to the date added
func (i *InventoryItem) LastActivity() time.Time {
	if i.LastMovementDate != nil {
		return *i.LastMovementDate
	}
	return i.DateAdded
}

// Clone returns a copy that shares no pointers with i
func (i InventoryItem) Clone() InventoryItem {
	out := i
	out.Location = cloneString(i.Location)
	out.SupplierID = cloneString(i.SupplierID)
	out.ExpiryDate = cloneTime(i.ExpiryDate)
	out.LastMovementDate = cloneTime(i.LastMovementDate)
	out.PurchaseDate = cloneTime(i.PurchaseDate)
	return out
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
