package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func validTransaction() Transaction {
	return Transaction{
		Type:     Expense,
		Category: "Food",
		Amount:   decimal.NewFromInt(42),
		Date:     time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{name: "valid expense", mutate: func(*Transaction) {}},
		{name: "valid income", mutate: func(tx *Transaction) { tx.Type = Income }},
		{name: "zero amount is allowed", mutate: func(tx *Transaction) { tx.Amount = decimal.Zero }},
		{name: "unknown type", mutate: func(tx *Transaction) { tx.Type = "transfer" }, wantErr: ErrInvalidTxType},
		{name: "blank category", mutate: func(tx *Transaction) { tx.Category = "  " }, wantErr: ErrEmptyCategory},
		{name: "negative amount", mutate: func(tx *Transaction) { tx.Amount = decimal.NewFromInt(-1) }, wantErr: ErrInvalidAmount},
		{name: "zero date", mutate: func(tx *Transaction) { tx.Date = time.Time{} }, wantErr: ErrInvalidDate},
		{name: "recurring needs interval", mutate: func(tx *Transaction) { tx.IsRecurring = true }, wantErr: ErrInvalidInterval},
		{name: "recurring with interval", mutate: func(tx *Transaction) {
			tx.IsRecurring = true
			tx.RecurringInterval = Monthly
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBudgetValidate(t *testing.T) {
	tests := []struct {
		name    string
		budget  Budget
		wantErr error
	}{
		{name: "valid", budget: Budget{Category: "Food", Amount: decimal.NewFromInt(5000), Month: "2024-03"}},
		{name: "zero cap is allowed", budget: Budget{Category: "Food", Month: "2024-03"}},
		{name: "blank category", budget: Budget{Category: "", Amount: decimal.NewFromInt(10), Month: "2024-03"}, wantErr: ErrEmptyCategory},
		{name: "negative cap", budget: Budget{Category: "Food", Amount: decimal.NewFromInt(-10), Month: "2024-03"}, wantErr: ErrInvalidAmount},
		{name: "bad month format", budget: Budget{Category: "Food", Amount: decimal.NewFromInt(10), Month: "03-2024"}, wantErr: ErrInvalidMonth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.budget.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvestmentValidate(t *testing.T) {
	valid := Investment{
		Name:          "Treasury 2030",
		Type:          Bond,
		Symbol:        "T30",
		Quantity:      decimal.NewFromInt(10),
		PurchasePrice: decimal.NewFromInt(98),
		PurchaseDate:  time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name    string
		mutate  func(*Investment)
		wantErr error
	}{
		{name: "valid", mutate: func(*Investment) {}},
		{name: "blank name", mutate: func(i *Investment) { i.Name = "" }, wantErr: ErrEmptyName},
		{name: "unknown type", mutate: func(i *Investment) { i.Type = "crypto" }, wantErr: ErrInvalidInvType},
		{name: "blank symbol", mutate: func(i *Investment) { i.Symbol = " " }, wantErr: ErrEmptySymbol},
		{name: "zero quantity", mutate: func(i *Investment) { i.Quantity = decimal.Zero }, wantErr: ErrInvalidQuantity},
		{name: "negative price", mutate: func(i *Investment) { i.PurchasePrice = decimal.NewFromInt(-1) }, wantErr: ErrNegativePrice},
		{name: "zero purchase date", mutate: func(i *Investment) { i.PurchaseDate = time.Time{} }, wantErr: ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := valid
			tt.mutate(&inv)
			if err := inv.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDocumentValidate(t *testing.T) {
	doc := Document{Name: "receipt.pdf", StorageKey: "docs/abc123"}
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
	if err := (Document{StorageKey: "k"}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if err := (Document{Name: "n"}).Validate(); !errors.Is(err, ErrEmptyStorageKey) {
		t.Errorf("expected ErrEmptyStorageKey, got %v", err)
	}
}
