// Package worker consumes budget-recompute messages published after
// transaction mutations and refreshes the affected budget's cached
// spent amount.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendly/internal/amqp"
	"spendly/internal/services"
	"spendly/internal/storage"
)

type RecomputeWorker struct {
	budgets storage.BudgetStore
	service *services.BudgetService
}

func NewRecomputeWorker(budgets storage.BudgetStore, service *services.BudgetService) *RecomputeWorker {
	return &RecomputeWorker{budgets: budgets, service: service}
}

// HandleRecomputeMessage refreshes the budget matching the message's
// (owner, category, month) tuple. No budget for the tuple is a normal
// outcome: not every spending category is budgeted.
func (w *RecomputeWorker) HandleRecomputeMessage(ctx context.Context, msg *amqp.BudgetRecomputeMessage) error {
	b, err := w.budgets.FindBudget(ctx, msg.OwnerID, msg.Category, msg.Month)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.DebugContext(ctx, "No budget for recompute message",
				"owner_id", msg.OwnerID,
				"category", msg.Category,
				"month", msg.Month)
			return nil
		}
		return fmt.Errorf("find budget: %w", err)
	}

	if _, err := w.service.RecomputeSpent(ctx, b.ID, msg.OwnerID); err != nil {
		return fmt.Errorf("recompute spent: %w", err)
	}

	return nil
}
