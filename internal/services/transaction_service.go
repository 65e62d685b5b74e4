package services

import (
	"context"
	"fmt"
	"log/slog"

	"spendly/internal/core"
	"spendly/internal/storage"
)

// RecomputePublisher asks the worker to refresh a budget's spent amount.
// The AMQP client implements it; a nil publisher disables messaging.
type RecomputePublisher interface {
	PublishBudgetRecompute(ctx context.Context, ownerID, category, month string) error
}

// TransactionService persists transactions and nudges budget recomputes
// after every expense mutation. The store write always comes first;
// publish failures are logged and never fail the request, since a stale
// spent value is recomputable on demand.
type TransactionService struct {
	txns      storage.TransactionStore
	publisher RecomputePublisher
}

func NewTransactionService(txns storage.TransactionStore, publisher RecomputePublisher) *TransactionService {
	return &TransactionService{txns: txns, publisher: publisher}
}

func (s *TransactionService) Create(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := s.txns.CreateTransaction(ctx, &t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	s.publishRecompute(ctx, t)

	return t, nil
}

func (s *TransactionService) Get(ctx context.Context, id, ownerID string) (core.Transaction, error) {
	t, err := s.txns.GetTransaction(ctx, id)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transaction: %w", err)
	}
	if t.OwnerID != ownerID {
		return core.Transaction{}, ErrNotOwner
	}
	return t, nil
}

func (s *TransactionService) List(ctx context.Context, ownerID string, filter storage.TransactionFilter) ([]core.Transaction, error) {
	txns, err := s.txns.ListTransactions(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return txns, nil
}

// Update replaces a transaction's mutable fields. Both the previous and
// the new (category, month) tuples get a recompute nudge, since moving
// an expense between categories or months changes two budgets.
func (s *TransactionService) Update(ctx context.Context, ownerID string, t core.Transaction) (core.Transaction, error) {
	current, err := s.txns.GetTransaction(ctx, t.ID)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transaction: %w", err)
	}
	if current.OwnerID != ownerID {
		return core.Transaction{}, ErrNotOwner
	}

	t.OwnerID = current.OwnerID
	t.CreatedAt = current.CreatedAt
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := s.txns.UpdateTransaction(ctx, t); err != nil {
		return core.Transaction{}, fmt.Errorf("update transaction: %w", err)
	}

	s.publishRecompute(ctx, current)
	if current.Type != t.Type || current.Category != t.Category || monthOf(current) != monthOf(t) {
		s.publishRecompute(ctx, t)
	}

	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, id, ownerID string) error {
	t, err := s.txns.GetTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("load transaction: %w", err)
	}
	if t.OwnerID != ownerID {
		return ErrNotOwner
	}
	if err := s.txns.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	s.publishRecompute(ctx, t)

	return nil
}

// publishRecompute is best-effort and only fires for expenses; income
// never contributes to budget spend.
func (s *TransactionService) publishRecompute(ctx context.Context, t core.Transaction) {
	if s.publisher == nil || t.Type != core.Expense {
		return
	}
	if err := s.publisher.PublishBudgetRecompute(ctx, t.OwnerID, t.Category, monthOf(t)); err != nil {
		slog.ErrorContext(ctx, "Failed to publish budget recompute message",
			"transaction_id", t.ID,
			"category", t.Category,
			"error", err)
	}
}

func monthOf(t core.Transaction) string {
	return t.Date.Format("2006-01")
}
