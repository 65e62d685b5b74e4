package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"spendly/internal/core"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = time.RFC3339
)

// SQLiteStore implements Store on a SQLite database. Amounts are stored
// as decimal strings, day-granular dates as YYYY-MM-DD text so range
// scans compare lexically.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// --- transactions ---

func (s *SQLiteStore) CreateTransaction(ctx context.Context, t *core.Transaction) error {
	t.ID = uuid.NewString()
	t.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, owner_id, type, category, amount, description, tx_date, is_recurring, recurring_interval, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.OwnerID, string(t.Type), t.Category, t.Amount.String(), t.Description,
		t.Date.Format(dateLayout), boolToInt(t.IsRecurring), string(t.RecurringInterval),
		t.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"owner_id", t.OwnerID,
		"type", t.Type,
		"category", t.Category,
		"amount", t.Amount)

	return nil
}

func (s *SQLiteStore) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, type, category, amount, description, tx_date, is_recurring, recurring_interval, created_at
		FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, ownerID string, filter TransactionFilter) ([]core.Transaction, error) {
	query := `
		SELECT id, owner_id, type, category, amount, description, tx_date, is_recurring, recurring_interval, created_at
		FROM transactions WHERE owner_id = ?`
	args := []any{ownerID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if filter.Type != "" {
		query += " AND type = ?"
		args = append(args, string(filter.Type))
	}
	query += " ORDER BY tx_date DESC, created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}
	return txns, nil
}

func (s *SQLiteStore) UpdateTransaction(ctx context.Context, t core.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET type = ?, category = ?, amount = ?, description = ?, tx_date = ?, is_recurring = ?, recurring_interval = ?
		WHERE id = ?`,
		string(t.Type), t.Category, t.Amount.String(), t.Description,
		t.Date.Format(dateLayout), boolToInt(t.IsRecurring), string(t.RecurringInterval), t.ID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) DeleteTransaction(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) SumExpenses(ctx context.Context, ownerID, category string, from, to time.Time) (decimal.Decimal, error) {
	// Summed in Go to keep decimal precision instead of SQLite float math.
	rows, err := s.db.QueryContext(ctx, `
		SELECT amount FROM transactions
		WHERE owner_id = ? AND category = ? AND type = 'expense' AND tx_date >= ? AND tx_date <= ?`,
		ownerID, category, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum expenses: %w", err)
	}
	defer rows.Close()

	total := decimal.Zero
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return decimal.Zero, fmt.Errorf("scan expense amount: %w", err)
		}
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			return decimal.Zero, fmt.Errorf("parse expense amount %q: %w", raw, err)
		}
		total = total.Add(amount)
	}
	if err := rows.Err(); err != nil {
		return decimal.Zero, fmt.Errorf("iterate expense amounts: %w", err)
	}
	return total, nil
}

// --- budgets ---

func (s *SQLiteStore) CreateBudget(ctx context.Context, b *core.Budget) error {
	b.ID = uuid.NewString()
	b.Spent = decimal.Zero
	b.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, owner_id, category, amount, month, spent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.OwnerID, b.Category, b.Amount.String(), b.Month, b.Spent.String(),
		b.CreatedAt.Format(timeLayout))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateBudget
		}
		return fmt.Errorf("insert budget: %w", err)
	}

	slog.InfoContext(ctx, "Budget saved",
		"id", b.ID,
		"owner_id", b.OwnerID,
		"category", b.Category,
		"month", b.Month)

	return nil
}

func (s *SQLiteStore) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, category, amount, month, spent, created_at
		FROM budgets WHERE id = ?`, id)
	b, err := scanBudget(row)
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) FindBudget(ctx context.Context, ownerID, category, month string) (core.Budget, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, category, amount, month, spent, created_at
		FROM budgets WHERE owner_id = ? AND category = ? AND month = ?`,
		ownerID, category, month)
	b, err := scanBudget(row)
	if err != nil {
		return core.Budget{}, fmt.Errorf("find budget: %w", err)
	}
	return b, nil
}

func (s *SQLiteStore) ListBudgets(ctx context.Context, ownerID string) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, category, amount, month, spent, created_at
		FROM budgets WHERE owner_id = ? ORDER BY month DESC, category ASC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		budgets = append(budgets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate budgets: %w", err)
	}
	return budgets, nil
}

func (s *SQLiteStore) UpdateBudget(ctx context.Context, b core.Budget) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE budgets SET category = ?, amount = ?, month = ? WHERE id = ?`,
		b.Category, b.Amount.String(), b.Month, b.ID)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateBudget
		}
		return fmt.Errorf("update budget: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) UpdateBudgetSpent(ctx context.Context, id string, spent decimal.Decimal) error {
	res, err := s.db.ExecContext(ctx, `UPDATE budgets SET spent = ? WHERE id = ?`, spent.String(), id)
	if err != nil {
		return fmt.Errorf("update budget spent: %w", err)
	}
	return requireRowAffected(res)
}

func (s *SQLiteStore) DeleteBudget(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRowAffected(res)
}

// --- investments ---

func (s *SQLiteStore) CreateInvestment(ctx context.Context, inv *core.Investment) error {
	inv.ID = uuid.NewString()
	inv.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO investments (id, owner_id, name, type, symbol, quantity, purchase_price, purchase_date, rate_of_interest, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.OwnerID, inv.Name, string(inv.Type), inv.Symbol,
		inv.Quantity.String(), inv.PurchasePrice.String(), inv.PurchaseDate.Format(timeLayout),
		inv.RateOfInterest.String(), inv.Notes, inv.CreatedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}

	slog.InfoContext(ctx, "Investment saved",
		"id", inv.ID,
		"owner_id", inv.OwnerID,
		"symbol", inv.Symbol,
		"type", inv.Type)

	return nil
}

func (s *SQLiteStore) GetInvestment(ctx context.Context, id string) (core.Investment, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, type, symbol, quantity, purchase_price, purchase_date, rate_of_interest, notes, created_at
		FROM investments WHERE id = ?`, id)
	inv, err := scanInvestment(row)
	if err != nil {
		return core.Investment{}, fmt.Errorf("get investment: %w", err)
	}
	return inv, nil
}

func (s *SQLiteStore) ListInvestments(ctx context.Context, ownerID string) ([]core.Investment, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, type, symbol, quantity, purchase_price, purchase_date, rate_of_interest, notes, created_at
		FROM investments WHERE owner_id = ? ORDER BY purchase_date DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var invs []core.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		invs = append(invs, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate investments: %w", err)
	}
	return invs, nil
}

func (s *SQLiteStore) DeleteInvestment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM investments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete investment: %w", err)
	}
	return requireRowAffected(res)
}

// --- documents ---

func (s *SQLiteStore) CreateDocument(ctx context.Context, d *core.Document) error {
	d.ID = uuid.NewString()
	if d.UploadedAt.IsZero() {
		d.UploadedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (id, owner_id, name, storage_key, content_type, size_bytes, uploaded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.OwnerID, d.Name, d.StorageKey, d.ContentType, d.SizeBytes,
		d.UploadedAt.Format(timeLayout))
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetDocument(ctx context.Context, id string) (core.Document, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, owner_id, name, storage_key, content_type, size_bytes, uploaded_at
		FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if err != nil {
		return core.Document{}, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

func (s *SQLiteStore) ListDocuments(ctx context.Context, ownerID string) ([]core.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, owner_id, name, storage_key, content_type, size_bytes, uploaded_at
		FROM documents WHERE owner_id = ? ORDER BY uploaded_at DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []core.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (s *SQLiteStore) DeleteDocument(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireRowAffected(res)
}

// --- scan helpers ---

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t                         core.Transaction
		txType, interval          string
		amount, txDate, createdAt string
		isRecurring               int
	)
	err := row.Scan(&t.ID, &t.OwnerID, &txType, &t.Category, &amount, &t.Description,
		&txDate, &isRecurring, &interval, &createdAt)
	if err != nil {
		return core.Transaction{}, mapScanErr(err)
	}

	t.Type = core.TransactionType(txType)
	t.IsRecurring = isRecurring != 0
	t.RecurringInterval = core.RecurrenceInterval(interval)
	if t.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Transaction{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if t.Date, err = time.Parse(dateLayout, txDate); err != nil {
		return core.Transaction{}, fmt.Errorf("parse date %q: %w", txDate, err)
	}
	if t.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Transaction{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return t, nil
}

func scanBudget(row rowScanner) (core.Budget, error) {
	var (
		b                        core.Budget
		amount, spent, createdAt string
	)
	err := row.Scan(&b.ID, &b.OwnerID, &b.Category, &amount, &b.Month, &spent, &createdAt)
	if err != nil {
		return core.Budget{}, mapScanErr(err)
	}

	if b.Amount, err = decimal.NewFromString(amount); err != nil {
		return core.Budget{}, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if b.Spent, err = decimal.NewFromString(spent); err != nil {
		return core.Budget{}, fmt.Errorf("parse spent %q: %w", spent, err)
	}
	if b.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Budget{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return b, nil
}

func scanInvestment(row rowScanner) (core.Investment, error) {
	var (
		inv                                            core.Investment
		invType                                        string
		quantity, price, purchaseDate, rate, createdAt string
	)
	err := row.Scan(&inv.ID, &inv.OwnerID, &inv.Name, &invType, &inv.Symbol,
		&quantity, &price, &purchaseDate, &rate, &inv.Notes, &createdAt)
	if err != nil {
		return core.Investment{}, mapScanErr(err)
	}

	inv.Type = core.InvestmentType(invType)
	if inv.Quantity, err = decimal.NewFromString(quantity); err != nil {
		return core.Investment{}, fmt.Errorf("parse quantity %q: %w", quantity, err)
	}
	if inv.PurchasePrice, err = decimal.NewFromString(price); err != nil {
		return core.Investment{}, fmt.Errorf("parse purchase price %q: %w", price, err)
	}
	if inv.PurchaseDate, err = time.Parse(timeLayout, purchaseDate); err != nil {
		return core.Investment{}, fmt.Errorf("parse purchase date %q: %w", purchaseDate, err)
	}
	if inv.RateOfInterest, err = decimal.NewFromString(rate); err != nil {
		return core.Investment{}, fmt.Errorf("parse rate of interest %q: %w", rate, err)
	}
	if inv.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return core.Investment{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return inv, nil
}

func scanDocument(row rowScanner) (core.Document, error) {
	var (
		d          core.Document
		uploadedAt string
	)
	err := row.Scan(&d.ID, &d.OwnerID, &d.Name, &d.StorageKey, &d.ContentType, &d.SizeBytes, &uploadedAt)
	if err != nil {
		return core.Document{}, mapScanErr(err)
	}
	if d.UploadedAt, err = time.Parse(timeLayout, uploadedAt); err != nil {
		return core.Document{}, fmt.Errorf("parse uploaded_at %q: %w", uploadedAt, err)
	}
	return d, nil
}

func mapScanErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func requireRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
