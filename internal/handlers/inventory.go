// internal/handlers/inventory.go
package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/pkg/logger"
)

// InventoryHandler handles inventory, scanning and supplier requests
type InventoryHandler struct {
	service ports.InventoryService
	logger  *slog.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(service ports.InventoryService, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "inventory")),
	}
}

// ListInventory handles GET /api/v1/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListItems(r.Context(), parseListParams(r))
	if err != nil {
		respondServiceError(w, r, h.logger, "list inventory items", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, result)
}

// GetInventory handles GET /api/v1/inventory/{id}
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := logger.WithValue(r.Context(), logger.ContextKeyItemID, id)

	item, err := h.service.GetItem(ctx, id)
	if err != nil {
		respondServiceError(w, r.WithContext(ctx), h.logger, "retrieve inventory item", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, item)
}

// CreateInventory handles POST /api/v1/inventory
func (h *InventoryHandler) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, h.logger, err)
		return
	}

	item, err := req.ToDomain()
	if err != nil {
		respondServiceError(w, r, h.logger, "create inventory item", err)
		return
	}

	if err := h.service.CreateItem(r.Context(), item); err != nil {
		respondServiceError(w, r, h.logger, "create inventory item", err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, item)
}

// UpdateInventory handles PUT /api/v1/inventory/{id}
func (h *InventoryHandler) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ctx := logger.WithValue(r.Context(), logger.ContextKeyItemID, id)
	r = r.WithContext(ctx)

	var req ItemFields
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, h.logger, err)
		return
	}

	item, err := req.toDomain(id)
	if err != nil {
		respondServiceError(w, r, h.logger, "update inventory item", err)
		return
	}

	if err := h.service.UpdateItem(ctx, id, item); err != nil {
		respondServiceError(w, r, h.logger, "update inventory item", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, item)
}

// DeleteInventory handles DELETE /api/v1/inventory/{id}
func (h *InventoryHandler) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		respondServiceError(w, r, h.logger, "delete inventory item", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]string{
		"message": "Inventory item deleted successfully",
		"id":      id,
	})
}

// AssignLocation handles PUT /api/v1/inventory/{id}/location
func (h *InventoryHandler) AssignLocation(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req LocationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, h.logger, err)
		return
	}

	item, err := h.service.AssignLocation(r.Context(), id, req.Location)
	if err != nil {
		respondServiceError(w, r, h.logger, "assign location", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, item)
}

// Scan handles POST /api/v1/scan. The body is either the label JSON itself or
// {"payload": "<label JSON>"} as sent by camera scanners.
func (h *InventoryHandler) Scan(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		respondError(w, r, h.logger, http.StatusBadRequest, "Failed to read request body", nil)
		return
	}

	raw := body
	var wrapped struct {
		Payload *string `json:"payload"`
	}
	if json.Unmarshal(body, &wrapped) == nil && wrapped.Payload != nil {
		raw = []byte(*wrapped.Payload)
	}

	result, err := h.service.ScanItem(r.Context(), raw)
	if err != nil {
		respondServiceError(w, r, h.logger, "process scan", err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	respondJSON(w, h.logger, status, result)
}

// GenerateQR handles POST /api/v1/qr/generate
func (h *InventoryHandler) GenerateQR(w http.ResponseWriter, r *http.Request) {
	var req QRRequest
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, h.logger, err)
		return
	}

	payload, err := req.ToDomain()
	if err != nil {
		respondServiceError(w, r, h.logger, "generate QR payload", err)
		return
	}

	data, err := h.service.GenerateQR(r.Context(), payload)
	if err != nil {
		respondServiceError(w, r, h.logger, "generate QR payload", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]string{"payload": string(data)})
}

// ListSuppliers handles GET /api/v1/suppliers
func (h *InventoryHandler) ListSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := h.service.ListSuppliers(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "list suppliers", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, suppliers)
}

// SaveSupplier handles POST /api/v1/suppliers
func (h *InventoryHandler) SaveSupplier(w http.ResponseWriter, r *http.Request) {
	var req SupplierRequest
	if err := decodeJSON(r, &req); err != nil {
		respondDecodeError(w, r, h.logger, err)
		return
	}

	supplier := req.ToDomain()
	if err := h.service.SaveSupplier(r.Context(), supplier); err != nil {
		respondServiceError(w, r, h.logger, "save supplier", err)
		return
	}
	respondJSON(w, h.logger, http.StatusCreated, supplier)
}

func parseListParams(r *http.Request) ports.ListParams {
	q := r.URL.Query()
	params := ports.ListParams{
		Search:     strings.TrimSpace(q.Get("search")),
		Status:     q.Get("status"),
		Location:   q.Get("location"),
		SupplierID: q.Get("supplier_id"),
		SortBy:     q.Get("sort_by"),
		SortOrder:  q.Get("sort_order"),
	}

	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		params.Page = p
	}
	if s, err := strconv.Atoi(q.Get("page_size")); err == nil && s > 0 {
		params.PageSize = s
	}
	return params
}

// Request DTOs

// ItemFields is the editable part of an inventory item
type ItemFields struct {
	Name             string           `json:"name" validate:"required,max=255"`
	Quantity         int              `json:"quantity" validate:"gte=0"`
	Location         *string          `json:"location" validate:"omitempty,max=64"`
	ExpiryDate       *string          `json:"expiry_date"`
	Status           string           `json:"status" validate:"omitempty,oneof='In Stock' 'Low Stock' 'Critical' 'Expired'"`
	UnitCost         *decimal.Decimal `json:"unit_cost"`
	UnitPrice        *decimal.Decimal `json:"unit_price"`
	DateAdded        *string          `json:"date_added"`
	LastMovementDate *string          `json:"last_movement_date"`
	SupplierID       *string          `json:"supplier_id" validate:"omitempty,max=64"`
	PurchaseDate     *string          `json:"purchase_date"`
}

// CreateItemRequest is the body of POST /inventory
type CreateItemRequest struct {
	ID string `json:"id" validate:"required,max=128"`
	ItemFields
}

// ToDomain converts the request to a domain item
func (r *CreateItemRequest) ToDomain() (*domain.InventoryItem, error) {
	return r.toDomain(strings.TrimSpace(r.ID))
}

func (r *ItemFields) toDomain(id string) (*domain.InventoryItem, error) {
	item := &domain.InventoryItem{
		ID:         id,
		Name:       r.Name,
		Quantity:   r.Quantity,
		Location:   r.Location,
		Status:     domain.ItemStatus(r.Status),
		SupplierID: r.SupplierID,
	}
	if r.UnitCost != nil {
		item.UnitCost = decimal.NewNullDecimal(*r.UnitCost)
	}
	if r.UnitPrice != nil {
		item.UnitPrice = decimal.NewNullDecimal(*r.UnitPrice)
	}

	var err error
	if item.ExpiryDate, err = optionalDate("expiry_date", r.ExpiryDate); err != nil {
		return nil, err
	}
	if item.LastMovementDate, err = optionalDate("last_movement_date", r.LastMovementDate); err != nil {
		return nil, err
	}
	if item.PurchaseDate, err = optionalDate("purchase_date", r.PurchaseDate); err != nil {
		return nil, err
	}
	added, err := optionalDate("date_added", r.DateAdded)
	if err != nil {
		return nil, err
	}
	if added != nil {
		item.DateAdded = *added
	}
	return item, nil
}

// LocationRequest is the body of PUT /inventory/{id}/location. A null or
// blank location clears it.
type LocationRequest struct {
	Location *string `json:"location" validate:"omitempty,max=64"`
}

// QRRequest is the label content to encode
type QRRequest struct {
	ID           string           `json:"id" validate:"required,max=128"`
	Name         string           `json:"name" validate:"required,max=255"`
	ExpiryDate   *string          `json:"expiry_date"`
	UnitCost     *decimal.Decimal `json:"unit_cost"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	SupplierID   *string          `json:"supplier_id"`
	PurchaseDate *string          `json:"purchase_date"`
}

// ToDomain converts the request to a QR payload
func (r *QRRequest) ToDomain() (domain.QRPayload, error) {
	p := domain.QRPayload{
		ID:        strings.TrimSpace(r.ID),
		Name:      strings.TrimSpace(r.Name),
		UnitCost:  r.UnitCost,
		UnitPrice: r.UnitPrice,
	}
	if r.SupplierID != nil && strings.TrimSpace(*r.SupplierID) != "" {
		s := strings.TrimSpace(*r.SupplierID)
		p.SupplierID = &s
	}

	var err error
	if p.ExpiryDate, err = optionalDate("expiry_date", r.ExpiryDate); err != nil {
		return p, err
	}
	if p.PurchaseDate, err = optionalDate("purchase_date", r.PurchaseDate); err != nil {
		return p, err
	}
	return p, nil
}

// SupplierRequest is the body of POST /suppliers
type SupplierRequest struct {
	ID                 string   `json:"id" validate:"required,max=64"`
	Name               string   `json:"name" validate:"required,max=255"`
	ContactEmail       string   `json:"contact_email" validate:"omitempty,email"`
	PerformanceRating  *float64 `json:"performance_rating" validate:"omitempty,gte=0,lte=5"`
	LeadTimeDays       *int     `json:"lead_time_days" validate:"omitempty,gte=0"`
	OnTimeDeliveryRate *float64 `json:"on_time_delivery_rate" validate:"omitempty,gte=0,lte=1"`
}

// ToDomain converts the request to a supplier
func (r *SupplierRequest) ToDomain() *domain.Supplier {
	return &domain.Supplier{
		ID:                 strings.TrimSpace(r.ID),
		Name:               strings.TrimSpace(r.Name),
		ContactEmail:       r.ContactEmail,
		PerformanceRating:  r.PerformanceRating,
		LeadTimeDays:       r.LeadTimeDays,
		OnTimeDeliveryRate: r.OnTimeDeliveryRate,
	}
}

func optionalDate(field string, s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := domain.ParseDate(*s)
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Message: "must be a date (YYYY-MM-DD)"}
	}
	return &t, nil
}
