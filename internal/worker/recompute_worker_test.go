package worker

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendly/internal/amqp"
	"spendly/internal/core"
	"spendly/internal/services"
	"spendly/internal/storage"
)

func TestHandleRecomputeMessage(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := services.NewBudgetService(store, store)
	w := NewRecomputeWorker(store, svc)

	budget := core.Budget{
		OwnerID:  "alice",
		Category: "Food",
		Amount:   decimal.NewFromInt(5000),
		Month:    "2024-03",
	}
	if err := store.CreateBudget(ctx, &budget); err != nil {
		t.Fatalf("CreateBudget: %v", err)
	}

	tx := core.Transaction{
		OwnerID:  "alice",
		Type:     core.Expense,
		Category: "Food",
		Amount:   decimal.NewFromInt(1200),
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
	if err := store.CreateTransaction(ctx, &tx); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	msg := amqp.NewBudgetRecomputeMessage("alice", "Food", "2024-03")
	if err := w.HandleRecomputeMessage(ctx, msg); err != nil {
		t.Fatalf("HandleRecomputeMessage: %v", err)
	}

	got, err := store.GetBudget(ctx, budget.ID)
	if err != nil {
		t.Fatalf("GetBudget: %v", err)
	}
	if !got.Spent.Equal(decimal.NewFromInt(1200)) {
		t.Errorf("spent = %s, want 1200", got.Spent)
	}
}

func TestHandleRecomputeMessageNoBudget(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	w := NewRecomputeWorker(store, services.NewBudgetService(store, store))

	// Unbudgeted categories produce messages too; they are a no-op.
	msg := amqp.NewBudgetRecomputeMessage("alice", "Unbudgeted", "2024-03")
	if err := w.HandleRecomputeMessage(ctx, msg); err != nil {
		t.Errorf("missing budget should not error, got %v", err)
	}
}
