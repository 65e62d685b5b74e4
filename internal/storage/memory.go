package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"spendly/internal/core"
)

// MemoryStore implements Store with in-process maps. It backs tests and
// the memory backend; it has the same owner-scoping and uniqueness
// semantics as the SQLite store.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions map[string]core.Transaction
	budgets      map[string]core.Budget
	investments  map[string]core.Investment
	documents    map[string]core.Document
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		transactions: make(map[string]core.Transaction),
		budgets:      make(map[string]core.Budget),
		investments:  make(map[string]core.Investment),
		documents:    make(map[string]core.Document),
	}
}

func (s *MemoryStore) Close() error { return nil }

// --- transactions ---

func (s *MemoryStore) CreateTransaction(_ context.Context, t *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()
	s.transactions[t.ID] = *t
	return nil
}

func (s *MemoryStore) GetTransaction(_ context.Context, id string) (core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok {
		return core.Transaction{}, ErrNotFound
	}
	return t, nil
}

func (s *MemoryStore) ListTransactions(_ context.Context, ownerID string, filter TransactionFilter) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var txns []core.Transaction
	for _, t := range s.transactions {
		if t.OwnerID != ownerID {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		txns = append(txns, t)
	}
	sort.Slice(txns, func(i, j int) bool { return txns[i].Date.After(txns[j].Date) })
	return txns, nil
}

func (s *MemoryStore) UpdateTransaction(_ context.Context, t core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[t.ID]; !ok {
		return ErrNotFound
	}
	s.transactions[t.ID] = t
	return nil
}

func (s *MemoryStore) DeleteTransaction(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

func (s *MemoryStore) SumExpenses(_ context.Context, ownerID, category string, from, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, t := range s.transactions {
		if t.OwnerID != ownerID || t.Category != category || t.Type != core.Expense {
			continue
		}
		if t.Date.Before(from) || t.Date.After(to) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total, nil
}

// --- budgets ---

func (s *MemoryStore) CreateBudget(_ context.Context, b *core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.budgets {
		if existing.OwnerID == b.OwnerID && existing.Category == b.Category && existing.Month == b.Month {
			return ErrDuplicateBudget
		}
	}

	b.ID = uuid.NewString()
	b.Spent = decimal.Zero
	b.CreatedAt = time.Now().UTC()
	s.budgets[b.ID] = *b
	return nil
}

func (s *MemoryStore) GetBudget(_ context.Context, id string) (core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[id]
	if !ok {
		return core.Budget{}, ErrNotFound
	}
	return b, nil
}

func (s *MemoryStore) FindBudget(_ context.Context, ownerID, category, month string) (core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.budgets {
		if b.OwnerID == ownerID && b.Category == category && b.Month == month {
			return b, nil
		}
	}
	return core.Budget{}, ErrNotFound
}

func (s *MemoryStore) ListBudgets(_ context.Context, ownerID string) ([]core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var budgets []core.Budget
	for _, b := range s.budgets {
		if b.OwnerID == ownerID {
			budgets = append(budgets, b)
		}
	}
	sort.Slice(budgets, func(i, j int) bool {
		if budgets[i].Month != budgets[j].Month {
			return budgets[i].Month > budgets[j].Month
		}
		return budgets[i].Category < budgets[j].Category
	})
	return budgets, nil
}

func (s *MemoryStore) UpdateBudget(_ context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.budgets[b.ID]
	if !ok {
		return ErrNotFound
	}
	for _, existing := range s.budgets {
		if existing.ID != b.ID && existing.OwnerID == b.OwnerID &&
			existing.Category == b.Category && existing.Month == b.Month {
			return ErrDuplicateBudget
		}
	}
	b.Spent = current.Spent
	b.CreatedAt = current.CreatedAt
	s.budgets[b.ID] = b
	return nil
}

func (s *MemoryStore) UpdateBudgetSpent(_ context.Context, id string, spent decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[id]
	if !ok {
		return ErrNotFound
	}
	b.Spent = spent
	s.budgets[id] = b
	return nil
}

func (s *MemoryStore) DeleteBudget(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[id]; !ok {
		return ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

// --- investments ---

func (s *MemoryStore) CreateInvestment(_ context.Context, inv *core.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv.ID = uuid.NewString()
	inv.CreatedAt = time.Now().UTC()
	s.investments[inv.ID] = *inv
	return nil
}

func (s *MemoryStore) GetInvestment(_ context.Context, id string) (core.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.investments[id]
	if !ok {
		return core.Investment{}, ErrNotFound
	}
	return inv, nil
}

func (s *MemoryStore) ListInvestments(_ context.Context, ownerID string) ([]core.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var invs []core.Investment
	for _, inv := range s.investments {
		if inv.OwnerID == ownerID {
			invs = append(invs, inv)
		}
	}
	sort.Slice(invs, func(i, j int) bool { return invs[i].PurchaseDate.After(invs[j].PurchaseDate) })
	return invs, nil
}

func (s *MemoryStore) DeleteInvestment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.investments[id]; !ok {
		return ErrNotFound
	}
	delete(s.investments, id)
	return nil
}

// --- documents ---

func (s *MemoryStore) CreateDocument(_ context.Context, d *core.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d.ID = uuid.NewString()
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}
	s.documents[d.ID] = *d
	return nil
}

func (s *MemoryStore) GetDocument(_ context.Context, id string) (core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.documents[id]
	if !ok {
		return core.Document{}, ErrNotFound
	}
	return d, nil
}

func (s *MemoryStore) ListDocuments(_ context.Context, ownerID string) ([]core.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var docs []core.Document
	for _, d := range s.documents {
		if d.OwnerID == ownerID {
			docs = append(docs, d)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UploadedAt.After(docs[j].UploadedAt) })
	return docs, nil
}

func (s *MemoryStore) DeleteDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.documents[id]; !ok {
		return ErrNotFound
	}
	delete(s.documents, id)
	return nil
}
