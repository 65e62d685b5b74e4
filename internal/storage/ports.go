// Package storage persists the finance records behind owner-scoped port
// interfaces, with a SQLite implementation as the system of record and an
// in-memory implementation for tests and local development.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"spendly/internal/core"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateBudget is returned when a budget already exists for an
	// (owner, category, month) tuple.
	ErrDuplicateBudget = errors.New("budget already exists for this category and month")
)

// TransactionFilter narrows a transaction listing. Zero values match all.
type TransactionFilter struct {
	Category string
	Type     core.TransactionType
}

type TransactionStore interface {
	CreateTransaction(ctx context.Context, t *core.Transaction) error
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error

	// SumExpenses totals expense amounts for one owner and category with
	// dates in [from, to] inclusive.
	SumExpenses(ctx context.Context, ownerID, category string, from, to time.Time) (decimal.Decimal, error)
}

type BudgetStore interface {
	// CreateBudget returns ErrDuplicateBudget when a budget for the same
	// (owner, category, month) already exists; the existing row is left
	// untouched.
	CreateBudget(ctx context.Context, b *core.Budget) error
	GetBudget(ctx context.Context, id string) (core.Budget, error)
	FindBudget(ctx context.Context, ownerID, category, month string) (core.Budget, error)
	ListBudgets(ctx context.Context, ownerID string) ([]core.Budget, error)
	UpdateBudget(ctx context.Context, b core.Budget) error
	UpdateBudgetSpent(ctx context.Context, id string, spent decimal.Decimal) error
	DeleteBudget(ctx context.Context, id string) error
}

type InvestmentStore interface {
	CreateInvestment(ctx context.Context, inv *core.Investment) error
	GetInvestment(ctx context.Context, id string) (core.Investment, error)
	ListInvestments(ctx context.Context, ownerID string) ([]core.Investment, error)
	DeleteInvestment(ctx context.Context, id string) error
}

type DocumentStore interface {
	CreateDocument(ctx context.Context, d *core.Document) error
	GetDocument(ctx context.Context, id string) (core.Document, error)
	ListDocuments(ctx context.Context, ownerID string) ([]core.Document, error)
	DeleteDocument(ctx context.Context, id string) error
}

// Store bundles every port plus lifecycle management; both backends
// implement it.
type Store interface {
	TransactionStore
	BudgetStore
	InvestmentStore
	DocumentStore
	Close() error
}
