package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"spendly/internal/core"
	"spendly/internal/services"
)

type investmentHandler struct {
	svc *services.InvestmentService
}

type investmentRequest struct {
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Symbol         string          `json:"symbol"`
	Quantity       decimal.Decimal `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	PurchaseDate   string          `json:"purchaseDate"`
	RateOfInterest decimal.Decimal `json:"rateOfInterest"`
	Notes          string          `json:"notes"`
}

type investmentResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Type           string          `json:"type"`
	Symbol         string          `json:"symbol"`
	Quantity       decimal.Decimal `json:"quantity"`
	PurchasePrice  decimal.Decimal `json:"purchasePrice"`
	PurchaseDate   string          `json:"purchaseDate"`
	RateOfInterest decimal.Decimal `json:"rateOfInterest"`
	Notes          string          `json:"notes,omitempty"`
	InterestAmount decimal.Decimal `json:"interestAmount"`
	CreatedAt      time.Time       `json:"createdAt"`
}

func toInvestmentResponse(inv services.InvestmentWithInterest) investmentResponse {
	return investmentResponse{
		ID:             inv.ID,
		Name:           inv.Name,
		Type:           string(inv.Type),
		Symbol:         inv.Symbol,
		Quantity:       inv.Quantity,
		PurchasePrice:  inv.PurchasePrice,
		PurchaseDate:   inv.PurchaseDate.Format("2006-01-02"),
		RateOfInterest: inv.RateOfInterest,
		Notes:          inv.Notes,
		InterestAmount: inv.InterestAmount,
		CreatedAt:      inv.CreatedAt,
	}
}

func (h *investmentHandler) create(w http.ResponseWriter, r *http.Request) {
	var req investmentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "validation_error", "purchaseDate must be in YYYY-MM-DD format")
		return
	}
	created, err := h.svc.Create(r.Context(), core.Investment{
		OwnerID:        ownerFromContext(r.Context()),
		Name:           req.Name,
		Type:           core.InvestmentType(req.Type),
		Symbol:         req.Symbol,
		Quantity:       req.Quantity,
		PurchasePrice:  req.PurchasePrice,
		PurchaseDate:   purchaseDate,
		RateOfInterest: req.RateOfInterest,
		Notes:          req.Notes,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toInvestmentResponse(created))
}

func (h *investmentHandler) list(w http.ResponseWriter, r *http.Request) {
	invs, err := h.svc.ListWithInterest(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	out := make([]investmentResponse, 0, len(invs))
	for _, inv := range invs {
		out = append(out, toInvestmentResponse(inv))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *investmentHandler) get(w http.ResponseWriter, r *http.Request) {
	inv, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context()))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvestmentResponse(inv))
}

func (h *investmentHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id"), ownerFromContext(r.Context())); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
