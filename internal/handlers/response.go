// internal/handlers/response.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/ammerola/swifttrack-be/internal/adapters/spreadsheet"
	"github.com/ammerola/swifttrack-be/internal/core/domain"
	"github.com/ammerola/swifttrack-be/internal/pkg/logger"
)

const maxJSONBody = 1 << 20

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error     string `json:"error"`
	Status    int    `json:"status"`
	Time      string `json:"time"`
	RequestID string `json:"request_id,omitempty"`
	Details   any    `json:"details,omitempty"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func respondJSON(w http.ResponseWriter, l *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		l.Error("failed to encode JSON response",
			slog.String("error", err.Error()))
	}
}

func respondError(w http.ResponseWriter, r *http.Request, l *slog.Logger, status int, message string, details any) {
	respondJSON(w, l, status, ErrorResponse{
		Error:     message,
		Status:    status,
		Time:      time.Now().UTC().Format(time.RFC3339),
		RequestID: logger.RequestIDFromContext(r.Context()),
		Details:   details,
	})
}

// respondServiceError maps domain errors onto status codes and logs the rest
func respondServiceError(w http.ResponseWriter, r *http.Request, l *slog.Logger, action string, err error) {
	var (
		decodeErr *domain.QRDecodeError
		importErr *spreadsheet.ImportError
		fieldErr  *domain.ValidationError
	)

	switch {
	case errors.As(err, &decodeErr):
		respondError(w, r, l, http.StatusUnprocessableEntity, decodeErr.Error(), decodeErr.Violations)
	case errors.As(err, &importErr):
		respondError(w, r, l, http.StatusBadRequest, "Spreadsheet contains invalid rows", importErr.Rows)
	case errors.As(err, &fieldErr):
		respondError(w, r, l, http.StatusBadRequest, fieldErr.Error(), map[string]string{fieldErr.Field: fieldErr.Message})
	case errors.Is(err, domain.ErrItemNotFound):
		respondError(w, r, l, http.StatusNotFound, "Inventory item not found", nil)
	case errors.Is(err, domain.ErrSupplierNotFound):
		respondError(w, r, l, http.StatusNotFound, "Supplier not found", nil)
	case errors.Is(err, domain.ErrItemExists):
		respondError(w, r, l, http.StatusConflict, "Inventory item already exists", nil)
	case errors.Is(err, domain.ErrUnknownReport):
		respondError(w, r, l, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidItem), errors.Is(err, spreadsheet.ErrNoHeader),
		errors.Is(err, spreadsheet.ErrNotWorkbook):
		respondError(w, r, l, http.StatusBadRequest, err.Error(), nil)
	default:
		l.ErrorContext(r.Context(), "failed to "+action,
			slog.String("error", err.Error()))
		respondError(w, r, l, http.StatusInternalServerError, "Failed to "+action, nil)
	}
}

// decodeJSON reads a size-limited JSON body and validates it
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return validate.Struct(dst)
}

// respondDecodeError answers 400 with per-field messages for validation failures
func respondDecodeError(w http.ResponseWriter, r *http.Request, l *slog.Logger, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		respondError(w, r, l, http.StatusBadRequest, "Validation failed", fields)
		return
	}
	respondError(w, r, l, http.StatusBadRequest, "Invalid request body", nil)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		return "must be at least " + fe.Param()
	case "max", "lte":
		return "must be at most " + fe.Param()
	case "datetime":
		return "must be a date in " + fe.Param() + " format"
	case "email":
		return "must be a valid email address"
	case "oneof":
		return "must be one of: " + fe.Param()
	default:
		return "is invalid"
	}
}
