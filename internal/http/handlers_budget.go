package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"spendly/internal/core"
	"spendly/internal/services"
)

type budgetHandler struct {
	svc *services.BudgetService
}

type budgetRequest struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Month    string          `json:"month"`
}

type budgetResponse struct {
	ID             string          `json:"id"`
	Category       string          `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	Month          string          `json:"month"`
	Spent          decimal.Decimal `json:"spent"`
	Remaining      decimal.Decimal `json:"remaining"`
	PercentageUsed decimal.Decimal `json:"percentageUsed"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		ID:             b.ID,
		Category:       b.Category,
		Amount:         b.Amount,
		Month:          b.Month,
		Spent:          b.Spent,
		Remaining:      b.Remaining(),
		PercentageUsed: b.PercentageUsed(),
		CreatedAt:      b.CreatedAt,
	}
}

func (h *budgetHandler) create(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	created, err := h.svc.Create(r.Context(), core.Budget{
		OwnerID:  ownerFromContext(r.Context()),
		Category: req.Category,
		Amount:   req.Amount,
		Month:    req.Month,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBudgetResponse(created))
}

func (h *budgetHandler) list(w http.ResponseWriter, r *http.Request) {
	budgets, err := h.svc.List(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *budgetHandler) get(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *budgetHandler) update(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	ownerID := ownerFromContext(r.Context())
	updated, err := h.svc.Update(r.Context(), ownerID, core.Budget{
		ID:       chi.URLParam(r, "id"),
		OwnerID:  ownerID,
		Category: req.Category,
		Amount:   req.Amount,
		Month:    req.Month,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(updated))
}

func (h *budgetHandler) recompute(w http.ResponseWriter, r *http.Request) {
	b, err := h.svc.RecomputeSpent(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *budgetHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
