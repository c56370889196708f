package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/swifttrack-be/internal/handlers/middleware"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
)

// APIPrefix is prepended to every versioned route
const APIPrefix = "/api/v1"

// Routes groups the handlers served by the API
type Routes struct {
	Health    *HealthHandler
	Inventory *InventoryHandler
	Analysis  *AnalysisHandler
	Reports   *ReportHandler
	Import    *ImportHandler

	// FilesDir is served under /files/ when reports are stored locally.
	FilesDir string
}

// Register adds every route to mux using method-specific patterns
func (rt Routes) Register(mux *http.ServeMux) {
	v1 := APIPrefix

	if rt.Health != nil {
		mux.HandleFunc("GET /health", rt.Health.Health)
		mux.HandleFunc("GET /ready", rt.Health.Readiness)
		mux.HandleFunc("GET "+v1+"/health", rt.Health.Health)
	}

	if h := rt.Inventory; h != nil {
		mux.HandleFunc("GET "+v1+"/inventory", h.ListInventory)
		mux.HandleFunc("POST "+v1+"/inventory", h.CreateInventory)
		mux.HandleFunc("GET "+v1+"/inventory/{id}", h.GetInventory)
		mux.HandleFunc("PUT "+v1+"/inventory/{id}", h.UpdateInventory)
		mux.HandleFunc("DELETE "+v1+"/inventory/{id}", h.DeleteInventory)
		mux.HandleFunc("PUT "+v1+"/inventory/{id}/location", h.AssignLocation)
		mux.HandleFunc("POST "+v1+"/scan", h.Scan)
		mux.HandleFunc("POST "+v1+"/qr/generate", h.GenerateQR)
		mux.HandleFunc("GET "+v1+"/suppliers", h.ListSuppliers)
		mux.HandleFunc("POST "+v1+"/suppliers", h.SaveSupplier)
	}

	if h := rt.Analysis; h != nil {
		mux.HandleFunc("GET "+v1+"/analysis/abc", h.GetABC)
		mux.HandleFunc("GET "+v1+"/analysis/dead-stock", h.GetDeadStock)
		mux.HandleFunc("GET "+v1+"/notifications", h.GetNotifications)
		mux.HandleFunc("GET "+v1+"/notifications/latest", h.GetLatestAlerts)
		mux.HandleFunc("GET "+v1+"/analytics", h.GetAnalytics)
		mux.HandleFunc("GET "+v1+"/dashboard", h.GetDashboard)
	}

	if h := rt.Reports; h != nil {
		mux.HandleFunc("GET "+v1+"/reports/{kind}", h.GetReport)
		mux.HandleFunc("GET "+v1+"/reports/{kind}/export", h.ExportReport)
		mux.HandleFunc("POST "+v1+"/reports/{kind}/jobs", h.EnqueueReport)
		mux.HandleFunc("GET "+v1+"/export/inventory", h.ExportInventory)
	}

	if rt.Import != nil {
		mux.HandleFunc("POST "+v1+"/import/xlsx", rt.Import.ImportXLSX)
	}

	if rt.FilesDir != "" {
		mux.Handle("GET /files/", http.StripPrefix("/files/", http.FileServer(http.Dir(rt.FilesDir))))
	}
}

// NewHTTPHandler registers routes on a fresh mux and wraps it in the
// middleware stack configured in cfg. The returned limiter is nil when rate
// limiting is off; callers run its Prune loop.
func NewHTTPHandler(cfg *config.Config, routes Routes, logger *slog.Logger) (http.Handler, *middleware.RateLimiter) {
	mux := http.NewServeMux()
	routes.Register(mux)

	mws := []middleware.Middleware{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if cfg.Security.SecureHeaders {
		mws = append(mws, middleware.SecureHeaders)
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		mws = append(mws, middleware.CORS(cfg.Security.AllowedOrigins))
	}

	var limiter *middleware.RateLimiter
	if cfg.Security.RateLimitRequests > 0 {
		limiter = middleware.NewRateLimiter(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration, cfg.Security.RateLimitBurst)
		mws = append(mws, limiter.Middleware)
	}
	if cfg.Server.RequestTimeout > 0 {
		mws = append(mws, middleware.Timeout(cfg.Server.RequestTimeout))
	}
	mws = append(mws, middleware.Compression)

	return middleware.Chain(mux, mws...), limiter
}
