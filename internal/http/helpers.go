package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"spendly/internal/core"
	"spendly/internal/services"
	"spendly/internal/storage"
)

// ErrorResponse is the JSON error payload for every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps the error taxonomy to HTTP statuses: validation
// 400, ownership 401, missing 404, duplicate budget 409, everything else
// a generic 500 that leaks no store detail.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case isValidationError(err):
		writeJSONError(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, services.ErrNotOwner):
		writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Not authorized")
	case errors.Is(err, storage.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, storage.ErrDuplicateBudget):
		writeJSONError(w, http.StatusConflict, "conflict", "Budget already exists for this category and month")
	default:
		slog.ErrorContext(r.Context(), "Request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err)
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Server error")
	}
}

func isValidationError(err error) bool {
	for _, v := range []error{
		core.ErrInvalidAmount,
		core.ErrEmptyCategory,
		core.ErrInvalidTxType,
		core.ErrInvalidDate,
		core.ErrInvalidInterval,
		core.ErrInvalidMonth,
		core.ErrEmptyName,
		core.ErrEmptySymbol,
		core.ErrInvalidInvType,
		core.ErrInvalidQuantity,
		core.ErrNegativePrice,
		core.ErrEmptyStorageKey,
	} {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Malformed JSON request body")
		return false
	}
	return true
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (time.Time, error) {
	return time.Parse("2006-01-02", dateStr)
}
