package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"spendly/internal/services"
	"spendly/internal/storage"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store := storage.NewMemoryStore()
	srv := NewServer(":0", Deps{
		Auth: NewStaticTokenAuthenticator(map[string]string{
			"token-alice": "alice",
			"token-bob":   "bob",
		}),
		Transactions: services.NewTransactionService(store, nil),
		Budgets:      services.NewBudgetService(store, store),
		Investments:  services.NewInvestmentService(store),
		Documents:    services.NewDocumentService(store),
	})
	return srv.Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthzNeedsNoAuth(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/healthz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
}

func TestAuthRejections(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"not bearer", "Basic abc"},
		{"unknown token", "Bearer nope"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("got status %d, want 401", rec.Code)
			}
			var body ErrorResponse
			decodeBody(t, rec, &body)
			if body.Error != "unauthorized" {
				t.Fatalf("got error %q, want unauthorized", body.Error)
			}
		})
	}
}

func TestTransactionCreateAndGet(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/transactions", "token-alice", map[string]any{
		"type":        "expense",
		"category":    "Food",
		"amount":      1200,
		"description": "groceries",
		"date":        "2024-03-05",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var created transactionResponse
	decodeBody(t, rec, &created)
	if created.ID == "" {
		t.Fatal("created transaction has no id")
	}
	if created.Amount.String() != "1200" {
		t.Fatalf("got amount %s, want 1200", created.Amount)
	}
	if created.Date != "2024-03-05" {
		t.Fatalf("got date %q, want 2024-03-05", created.Date)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/transactions/"+created.ID, "token-alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get: got status %d", rec.Code)
	}
}

func TestTransactionBadDate(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodPost, "/api/transactions", "token-alice", map[string]any{
		"type":     "expense",
		"category": "Food",
		"amount":   10,
		"date":     "05/03/2024",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestTransactionRecurringNextDueDate(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodPost, "/api/transactions", "token-alice", map[string]any{
		"type":              "expense",
		"category":          "Rent",
		"amount":            900,
		"date":              "2024-01-01",
		"isRecurring":       true,
		"recurringInterval": "monthly",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("got status %d, body %s", rec.Code, rec.Body.String())
	}
	var created transactionResponse
	decodeBody(t, rec, &created)
	if created.NextDueDate == "" {
		t.Fatal("recurring transaction has no nextDueDate")
	}
}

func TestTransactionListByTypeAndCategory(t *testing.T) {
	h := newTestHandler(t)

	for _, body := range []map[string]any{
		{"type": "expense", "category": "Food", "amount": 100, "date": "2024-03-01"},
		{"type": "expense", "category": "Travel", "amount": 50, "date": "2024-03-02"},
		{"type": "income", "category": "Salary", "amount": 4000, "date": "2024-03-03"},
	} {
		rec := doRequest(t, h, http.MethodPost, "/api/transactions", "token-alice", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create: got status %d", rec.Code)
		}
	}

	rec := doRequest(t, h, http.MethodGet, "/api/transactions/type/expense", "token-alice", nil)
	var txns []transactionResponse
	decodeBody(t, rec, &txns)
	if len(txns) != 2 {
		t.Fatalf("got %d expense transactions, want 2", len(txns))
	}

	rec = doRequest(t, h, http.MethodGet, "/api/transactions/category/Food", "token-alice", nil)
	decodeBody(t, rec, &txns)
	if len(txns) != 1 {
		t.Fatalf("got %d Food transactions, want 1", len(txns))
	}

	rec = doRequest(t, h, http.MethodGet, "/api/transactions/type/bogus", "token-alice", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d for bogus type, want 400", rec.Code)
	}
}

func TestBudgetCreateDuplicateConflict(t *testing.T) {
	h := newTestHandler(t)

	body := map[string]any{"category": "Food", "amount": 5000, "month": "2024-03"}
	rec := doRequest(t, h, http.MethodPost, "/api/budgets", "token-alice", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first create: got status %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, h, http.MethodPost, "/api/budgets", "token-alice", body)
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create: got status %d, want 409", rec.Code)
	}

	// Same tuple for another owner is a different budget.
	rec = doRequest(t, h, http.MethodPost, "/api/budgets", "token-bob", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("other owner create: got status %d, want 201", rec.Code)
	}
}

func TestBudgetRecomputeEndpoint(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/budgets", "token-alice", map[string]any{
		"category": "Food", "amount": 5000, "month": "2024-03",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget: got status %d", rec.Code)
	}
	var budget budgetResponse
	decodeBody(t, rec, &budget)

	for _, tx := range []map[string]any{
		{"type": "expense", "category": "Food", "amount": 1200, "date": "2024-03-05"},
		{"type": "expense", "category": "Food", "amount": 800, "date": "2024-03-20"},
		{"type": "income", "category": "Food", "amount": 300, "date": "2024-03-10"},
		{"type": "expense", "category": "Travel", "amount": 400, "date": "2024-03-12"},
		{"type": "expense", "category": "Food", "amount": 999, "date": "2024-04-01"},
	} {
		rec := doRequest(t, h, http.MethodPost, "/api/transactions", "token-alice", tx)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create transaction: got status %d", rec.Code)
		}
	}

	rec = doRequest(t, h, http.MethodPut, fmt.Sprintf("/api/budgets/%s/recompute", budget.ID), "token-alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("recompute: got status %d, body %s", rec.Code, rec.Body.String())
	}
	decodeBody(t, rec, &budget)

	if budget.Spent.String() != "2000" {
		t.Fatalf("got spent %s, want 2000", budget.Spent)
	}
	if budget.Remaining.String() != "3000" {
		t.Fatalf("got remaining %s, want 3000", budget.Remaining)
	}
	if budget.PercentageUsed.String() != "40" {
		t.Fatalf("got percentageUsed %s, want 40", budget.PercentageUsed)
	}
}

func TestBudgetCrossOwnerAccess(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/budgets", "token-alice", map[string]any{
		"category": "Food", "amount": 5000, "month": "2024-03",
	})
	var budget budgetResponse
	decodeBody(t, rec, &budget)

	rec = doRequest(t, h, http.MethodGet, "/api/budgets/"+budget.ID, "token-bob", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("cross-owner get: got status %d, want 401", rec.Code)
	}

	rec = doRequest(t, h, http.MethodDelete, "/api/budgets/"+budget.ID, "token-bob", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("cross-owner delete: got status %d, want 401", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/budgets/"+budget.ID, "token-alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner get after foreign delete attempt: got status %d, want 200", rec.Code)
	}
}

func TestBudgetNotFound(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/api/budgets/no-such-id", "token-alice", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestInvestmentListIncludesInterest(t *testing.T) {
	h := newTestHandler(t)

	for _, body := range []map[string]any{
		{
			"name": "Stable Bond", "type": "bond", "symbol": "SB",
			"quantity": 10, "purchasePrice": 100,
			"purchaseDate": "2020-01-01", "rateOfInterest": 5,
		},
		{
			"name": "Index ETF", "type": "etf", "symbol": "IDX",
			"quantity": 3, "purchasePrice": 250,
			"purchaseDate": "2020-01-01", "rateOfInterest": 5,
		},
	} {
		rec := doRequest(t, h, http.MethodPost, "/api/investments", "token-alice", body)
		if rec.Code != http.StatusCreated {
			t.Fatalf("create investment: got status %d, body %s", rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(t, h, http.MethodGet, "/api/investments", "token-alice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list: got status %d", rec.Code)
	}
	var invs []investmentResponse
	decodeBody(t, rec, &invs)
	if len(invs) != 2 {
		t.Fatalf("got %d investments, want 2", len(invs))
	}
	for _, inv := range invs {
		switch inv.Type {
		case "bond":
			if !inv.InterestAmount.IsPositive() {
				t.Fatalf("bond interest %s, want positive", inv.InterestAmount)
			}
		case "etf":
			if !inv.InterestAmount.IsZero() {
				t.Fatalf("etf interest %s, want 0", inv.InterestAmount)
			}
		}
	}
}

func TestInvestmentValidation(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodPost, "/api/investments", "token-alice", map[string]any{
		"name": "Broken", "type": "bond", "symbol": "BRK",
		"quantity": 0, "purchasePrice": 100, "purchaseDate": "2020-01-01",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPost, "/api/documents", "token-alice", map[string]any{
		"name":        "receipt.pdf",
		"storageKey":  "alice/2024/receipt.pdf",
		"contentType": "application/pdf",
		"sizeBytes":   20480,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: got status %d, body %s", rec.Code, rec.Body.String())
	}
	var doc documentResponse
	decodeBody(t, rec, &doc)

	rec = doRequest(t, h, http.MethodGet, "/api/documents/"+doc.ID, "token-bob", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("cross-owner get: got status %d, want 401", rec.Code)
	}

	rec = doRequest(t, h, http.MethodDelete, "/api/documents/"+doc.ID, "token-alice", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: got status %d, want 204", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/api/documents/"+doc.ID, "token-alice", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get after delete: got status %d, want 404", rec.Code)
	}
}
