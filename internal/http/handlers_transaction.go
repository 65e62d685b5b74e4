package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"spendly/internal/core"
	"spendly/internal/services"
	"spendly/internal/storage"
)

type transactionHandler struct {
	svc *services.TransactionService
}

type transactionRequest struct {
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description"`
	Date              string          `json:"date"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurringInterval string          `json:"recurringInterval"`
}

type transactionResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Amount            decimal.Decimal `json:"amount"`
	Description       string          `json:"description,omitempty"`
	Date              string          `json:"date"`
	IsRecurring       bool            `json:"isRecurring"`
	RecurringInterval string          `json:"recurringInterval,omitempty"`
	NextDueDate       string          `json:"nextDueDate,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:          t.ID,
		Type:        string(t.Type),
		Category:    t.Category,
		Amount:      t.Amount,
		Description: t.Description,
		Date:        t.Date.Format("2006-01-02"),
		IsRecurring: t.IsRecurring,
		CreatedAt:   t.CreatedAt,
	}
	if t.IsRecurring {
		resp.RecurringInterval = string(t.RecurringInterval)
		if due := core.NextDueDate(t.Date, t.RecurringInterval, time.Now()); !due.IsZero() {
			resp.NextDueDate = due.Format("2006-01-02")
		}
	}
	return resp
}

func toTransactionResponses(txns []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, toTransactionResponse(t))
	}
	return out
}

func (req transactionRequest) toDomain(ownerID string) (core.Transaction, bool) {
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, false
	}
	return core.Transaction{
		OwnerID:           ownerID,
		Type:              core.TransactionType(req.Type),
		Category:          req.Category,
		Amount:            req.Amount,
		Description:       req.Description,
		Date:              date,
		IsRecurring:       req.IsRecurring,
		RecurringInterval: core.RecurrenceInterval(req.RecurringInterval),
	}, true
}

func (h *transactionHandler) create(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	t, ok := req.toDomain(ownerFromContext(r.Context()))
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "date must be in YYYY-MM-DD format")
		return
	}
	created, err := h.svc.Create(r.Context(), t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (h *transactionHandler) list(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, storage.TransactionFilter{})
}

func (h *transactionHandler) listByCategory(w http.ResponseWriter, r *http.Request) {
	h.listFiltered(w, r, storage.TransactionFilter{Category: chi.URLParam(r, "category")})
}

func (h *transactionHandler) listByType(w http.ResponseWriter, r *http.Request) {
	txType := core.TransactionType(chi.URLParam(r, "type"))
	if txType != core.Income && txType != core.Expense {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "type must be income or expense")
		return
	}
	h.listFiltered(w, r, storage.TransactionFilter{Type: txType})
}

func (h *transactionHandler) listFiltered(w http.ResponseWriter, r *http.Request, filter storage.TransactionFilter) {
	txns, err := h.svc.List(r.Context(), ownerFromContext(r.Context()), filter)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponses(txns))
}

func (h *transactionHandler) get(w http.ResponseWriter, r *http.Request) {
	t, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(t))
}

func (h *transactionHandler) update(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ownerID := ownerFromContext(r.Context())
	t, ok := req.toDomain(ownerID)
	if !ok {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "date must be in YYYY-MM-DD format")
		return
	}
	t.ID = chi.URLParam(r, "id")
	updated, err := h.svc.Update(r.Context(), ownerID, t)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toTransactionResponse(updated))
}

func (h *transactionHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
