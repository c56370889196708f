// internal/handlers/import.go
package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/ammerola/swifttrack-be/internal/adapters/spreadsheet"
	"github.com/ammerola/swifttrack-be/internal/core/ports"
)

const defaultMaxUpload = 10 << 20

// ImportHandler handles spreadsheet imports
type ImportHandler struct {
	service     ports.InventoryService
	logger      *slog.Logger
	maxFileSize int64
}

// NewImportHandler creates a new import handler. maxFileSize <= 0 uses 10 MiB.
func NewImportHandler(service ports.InventoryService, logger *slog.Logger, maxFileSize int64) *ImportHandler {
	if maxFileSize <= 0 {
		maxFileSize = defaultMaxUpload
	}
	return &ImportHandler{
		service:     service,
		logger:      logger.With(slog.String("handler", "import")),
		maxFileSize: maxFileSize,
	}
}

// ImportXLSX handles POST /api/v1/import/xlsx. The multipart field "file"
// holds a workbook whose first sheet starts with a header row.
func (h *ImportHandler) ImportXLSX(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize+1<<20)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, r, h.logger, http.StatusRequestEntityTooLarge, "File is too large", nil)
			return
		}
		respondError(w, r, h.logger, http.StatusBadRequest, "Failed to parse form data", nil)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, r, h.logger, http.StatusBadRequest, "File is required", nil)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".xlsx") {
		respondError(w, r, h.logger, http.StatusBadRequest, "Only .xlsx workbooks are supported", nil)
		return
	}
	if header.Size > h.maxFileSize {
		respondError(w, r, h.logger, http.StatusRequestEntityTooLarge, "File is too large", nil)
		return
	}

	items, err := spreadsheet.ReadInventory(file, header.Size)
	if err != nil {
		respondServiceError(w, r, h.logger, "read workbook", err)
		return
	}

	imported, err := h.service.ImportItems(ctx, items)
	if err != nil {
		respondServiceError(w, r, h.logger, "import items", err)
		return
	}

	h.logger.InfoContext(ctx, "workbook imported",
		slog.String("filename", header.Filename),
		slog.Int("rows", len(items)),
		slog.Int("imported", imported))

	respondJSON(w, h.logger, http.StatusOK, map[string]any{
		"filename": header.Filename,
		"rows":     len(items),
		"imported": imported,
	})
}
