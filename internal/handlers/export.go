// internal/handlers/export.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/pkg/logger"
	"github.com/ammerola/swifttrack-be/internal/workers"
)

// ReportHandler serves report views, workbook downloads and background report jobs
type ReportHandler struct {
	reports   ports.ReportService
	analytics ports.AnalyticsService
	queue     workers.Enqueuer
	logger    *slog.Logger
}

// NewReportHandler creates a new report handler. queue may be nil, which
// disables POST /reports/{kind}/jobs.
func NewReportHandler(reports ports.ReportService, analytics ports.AnalyticsService, queue workers.Enqueuer, logger *slog.Logger) *ReportHandler {
	return &ReportHandler{
		reports:   reports,
		analytics: analytics,
		queue:     queue,
		logger:    logger.With(slog.String("handler", "reports")),
	}
}

// GetReport handles GET /api/v1/reports/{kind} for the tabular report views
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		respondServiceError(w, r, h.logger, "load report", err)
		return
	}

	ctx := r.Context()
	var rows any
	switch kind {
	case domain.ReportProfitMargins:
		rows, err = h.analytics.ProfitMargins(ctx)
	case domain.ReportStockAging:
		rows, err = h.analytics.StockAging(ctx)
	case domain.ReportSupplierPerformance:
		rows, err = h.analytics.SupplierPerformance(ctx)
	default:
		respondError(w, r, h.logger, http.StatusNotFound,
			fmt.Sprintf("report %q has no table view; use /reports/%s/export", kind, kind), nil)
		return
	}
	if err != nil {
		respondServiceError(w, r, h.logger, "load report", err)
		return
	}

	respondJSON(w, h.logger, http.StatusOK, map[string]any{
		"kind": kind,
		"rows": rows,
	})
}

// ExportReport handles GET /api/v1/reports/{kind}/export
func (h *ReportHandler) ExportReport(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		respondServiceError(w, r, h.logger, "export report", err)
		return
	}
	h.export(w, r, kind)
}

// ExportInventory handles GET /api/v1/export/inventory
func (h *ReportHandler) ExportInventory(w http.ResponseWriter, r *http.Request) {
	h.export(w, r, domain.ReportInventory)
}

func (h *ReportHandler) export(w http.ResponseWriter, r *http.Request, kind domain.ReportKind) {
	ctx := r.Context()

	file, err := h.reports.Export(ctx, kind)
	if err != nil {
		respondServiceError(w, r, h.logger, "export report", err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(file.Data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write workbook",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()))
		return
	}

	h.logger.InfoContext(ctx, "report exported",
		slog.String("kind", string(kind)),
		slog.Int("size", len(file.Data)))
}

// EnqueueReport handles POST /api/v1/reports/{kind}/jobs
func (h *ReportHandler) EnqueueReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kind, err := domain.ParseReportKind(r.PathValue("kind"))
	if err != nil {
		respondServiceError(w, r, h.logger, "queue report", err)
		return
	}
	if h.queue == nil {
		respondError(w, r, h.logger, http.StatusServiceUnavailable, "Background jobs are not available", nil)
		return
	}

	task, err := workers.NewReportTask(kind, logger.RequestIDFromContext(ctx))
	if err != nil {
		respondServiceError(w, r, h.logger, "queue report", err)
		return
	}

	info, err := h.queue.Enqueue(task)
	if err != nil {
		respondServiceError(w, r, h.logger, "queue report", err)
		return
	}

	h.logger.InfoContext(ctx, "report queued",
		slog.String("kind", string(kind)),
		slog.String("task_id", info.ID),
		slog.String("queue", info.Queue))

	respondJSON(w, h.logger, http.StatusAccepted, map[string]string{
		"task_id": info.ID,
		"queue":   info.Queue,
		"kind":    string(kind),
		"status":  "queued",
	})
}
