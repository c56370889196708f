package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	redis_a "github.com/ammerola/swifttrack-be/internal/adapters/redis_adapter"
	"github.com/ammerola/swifttrack-be/internal/core/analysis"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

// AnalysisHandler serves the ABC, dead stock, alert and dashboard views
type AnalysisHandler struct {
	service ports.AnalyticsService
	cache   ports.CacheRepository
	logger  *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler. cache may be nil, in
// which case the latest alert sweep is not available.
func NewAnalysisHandler(service ports.AnalyticsService, cache ports.CacheRepository, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		service: service,
		cache:   cache,
		logger:  logger.With(slog.String("handler", "analysis")),
	}
}

// ABCResponse is the body of GET /analysis/abc
type ABCResponse struct {
	Category string `json:"category,omitempty"`
	analysis.ABCSummary
}

// GetABC handles GET /api/v1/analysis/abc. The optional category query
// parameter filters the table; the tier breakdown always covers every item.
func (h *AnalysisHandler) GetABC(w http.ResponseWriter, r *http.Request) {
	var category domain.ABCCategory
	if c := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("category"))); c != "" {
		category = domain.ABCCategory(c)
		if category.Rank() == 0 {
			respondError(w, r, h.logger, http.StatusBadRequest, "category must be one of A, B, C", nil)
			return
		}
	}

	summary, err := h.service.ABCSummary(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "load ABC analysis", err)
		return
	}

	resp := ABCResponse{Category: string(category), ABCSummary: *summary}
	if category != "" {
		rows := make([]analysis.ABCRow, 0, len(summary.Rows))
		for _, row := range summary.Rows {
			if row.ABCCategory == category {
				rows = append(rows, row)
			}
		}
		resp.Rows = rows
	}

	respondJSON(w, h.logger, http.StatusOK, resp)
}

// GetDeadStock handles GET /api/v1/analysis/dead-stock
func (h *AnalysisHandler) GetDeadStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.DeadStock(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "load dead stock", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, map[string]any{
		"items": items,
		"count": len(items),
	})
}

// GetNotifications handles GET /api/v1/notifications
func (h *AnalysisHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	n, err := h.service.Notifications(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "load notifications", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, n)
}

// GetLatestAlerts handles GET /api/v1/notifications/latest, returning the
// result of the last scheduled alert sweep.
func (h *AnalysisHandler) GetLatestAlerts(w http.ResponseWriter, r *http.Request) {
	if h.cache == nil {
		respondError(w, r, h.logger, http.StatusNotFound, "No alert sweep has run yet", nil)
		return
	}

	var n analysis.Notifications
	if err := h.cache.Get(r.Context(), ports.LatestAlertsKey, &n); err != nil {
		if errors.Is(err, redis_a.ErrCacheMiss) {
			respondError(w, r, h.logger, http.StatusNotFound, "No alert sweep has run yet", nil)
			return
		}
		respondServiceError(w, r, h.logger, "load latest alerts", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, n)
}

// GetAnalytics handles GET /api/v1/analytics
func (h *AnalysisHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Analytics(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "load analytics", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, summary)
}

// GetDashboard handles GET /api/v1/dashboard
func (h *AnalysisHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, r, h.logger, "load dashboard", err)
		return
	}
	respondJSON(w, h.logger, http.StatusOK, dashboard)
}
