// Package services orchestrates the domain computations against the
// record store and the recompute message queue.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spendly/internal/core"
	"spendly/internal/storage"
)

// ErrNotOwner is returned when a caller references a resource owned by
// someone else. It deliberately carries no detail about the resource.
var ErrNotOwner = errors.New("not authorized")

// BudgetService owns budget persistence and the spent-amount
// recomputation against transaction history.
type BudgetService struct {
	budgets storage.BudgetStore
	txns    storage.TransactionStore
}

func NewBudgetService(budgets storage.BudgetStore, txns storage.TransactionStore) *BudgetService {
	return &BudgetService{budgets: budgets, txns: txns}
}

// Create stores a new budget after validation, enforcing at most one
// budget per (owner, category, month). Duplicates surface as
// storage.ErrDuplicateBudget and never overwrite the existing budget.
func (s *BudgetService) Create(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if err := s.budgets.CreateBudget(ctx, &b); err != nil {
		return core.Budget{}, fmt.Errorf("create budget: %w", err)
	}
	return b, nil
}

// RecomputeSpent refreshes the cached spent amount of a budget from its
// matching expense transactions: same owner, same category, date within
// the budget's month (both ends inclusive). Zero matches is a valid
// steady state, not an error. The computation is idempotent for a stable
// transaction set.
func (s *BudgetService) RecomputeSpent(ctx context.Context, budgetID, ownerID string) (core.Budget, error) {
	b, err := s.budgets.GetBudget(ctx, budgetID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("load budget: %w", err)
	}
	if b.OwnerID != ownerID {
		return core.Budget{}, ErrNotOwner
	}

	start, end, err := core.MonthRange(b.Month)
	if err != nil {
		return core.Budget{}, fmt.Errorf("derive month range for %q: %w", b.Month, err)
	}

	spent, err := s.txns.SumExpenses(ctx, ownerID, b.Category, start, end)
	if err != nil {
		return core.Budget{}, fmt.Errorf("sum expenses: %w", err)
	}

	b.Spent = spent
	if err := s.budgets.UpdateBudgetSpent(ctx, b.ID, spent); err != nil {
		return core.Budget{}, fmt.Errorf("persist spent: %w", err)
	}

	slog.InfoContext(ctx, "Budget spent recomputed",
		"budget_id", b.ID,
		"category", b.Category,
		"month", b.Month,
		"spent", spent)

	return b, nil
}

func (s *BudgetService) Get(ctx context.Context, budgetID, ownerID string) (core.Budget, error) {
	b, err := s.budgets.GetBudget(ctx, budgetID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("load budget: %w", err)
	}
	if b.OwnerID != ownerID {
		return core.Budget{}, ErrNotOwner
	}
	return b, nil
}

func (s *BudgetService) List(ctx context.Context, ownerID string) ([]core.Budget, error) {
	budgets, err := s.budgets.ListBudgets(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return budgets, nil
}

// Update changes a budget's category, amount or month. The cached spent
// value is left as-is; callers recompute it when they need it fresh.
func (s *BudgetService) Update(ctx context.Context, ownerID string, b core.Budget) (core.Budget, error) {
	current, err := s.budgets.GetBudget(ctx, b.ID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("load budget: %w", err)
	}
	if current.OwnerID != ownerID {
		return core.Budget{}, ErrNotOwner
	}

	b.OwnerID = current.OwnerID
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if err := s.budgets.UpdateBudget(ctx, b); err != nil {
		return core.Budget{}, fmt.Errorf("update budget: %w", err)
	}

	updated, err := s.budgets.GetBudget(ctx, b.ID)
	if err != nil {
		return core.Budget{}, fmt.Errorf("reload budget: %w", err)
	}
	return updated, nil
}

func (s *BudgetService) Delete(ctx context.Context, budgetID, ownerID string) error {
	b, err := s.budgets.GetBudget(ctx, budgetID)
	if err != nil {
		return fmt.Errorf("load budget: %w", err)
	}
	if b.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := s.budgets.DeleteBudget(ctx, budgetID); err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}
