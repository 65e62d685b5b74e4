package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Amounts serialize as JSON numbers, matching the public API payloads.
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Daily   RecurrenceInterval = "daily"
	Weekly  RecurrenceInterval = "weekly"
	Monthly RecurrenceInterval = "monthly"
	Yearly  RecurrenceInterval = "yearly"
)

const (
	Stock      InvestmentType = "stock"
	ETF        InvestmentType = "etf"
	MutualFund InvestmentType = "mutual_fund"
	Bond       InvestmentType = "bond"
)

type (
	TransactionType    string
	RecurrenceInterval string
	InvestmentType     string

	// Transaction is a single income or expense entry owned by one user.
	Transaction struct {
		ID                string
		OwnerID           string
		Type              TransactionType
		Category          string
		Amount            decimal.Decimal
		Description       string
		Date              time.Time
		IsRecurring       bool
		RecurringInterval RecurrenceInterval
		CreatedAt         time.Time
	}

	// Budget caps spending for one (owner, category, month) tuple.
	// Spent is a cached aggregate; Remaining and PercentageUsed are
	// derived on read and never persisted.
	Budget struct {
		ID        string
		OwnerID   string
		Category  string
		Amount    decimal.Decimal
		Month     string // "YYYY-MM"
		Spent     decimal.Decimal
		CreatedAt time.Time
	}

	// Investment is a holding valued from its purchase terms.
	// RateOfInterest is an annual percentage; zero means not set.
	Investment struct {
		ID             string
		OwnerID        string
		Name           string
		Type           InvestmentType
		Symbol         string
		Quantity       decimal.Decimal
		PurchasePrice  decimal.Decimal
		PurchaseDate   time.Time
		RateOfInterest decimal.Decimal
		Notes          string
		CreatedAt      time.Time
	}

	// Document is stored-file metadata; the file bytes live in an
	// external store referenced by StorageKey.
	Document struct {
		ID          string
		OwnerID     string
		Name        string
		StorageKey  string
		ContentType string
		SizeBytes   int64
		UploadedAt  time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("amount must be non-negative")
	ErrEmptyCategory   = errors.New("empty category")
	ErrInvalidTxType   = errors.New("invalid transaction type")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidInterval = errors.New("invalid recurring interval")
	ErrInvalidMonth    = errors.New("invalid month, expected YYYY-MM")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptySymbol     = errors.New("empty symbol")
	ErrInvalidInvType  = errors.New("invalid investment type")
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrNegativePrice   = errors.New("purchase price must be non-negative")
	ErrEmptyStorageKey = errors.New("empty storage key")
)

func (t Transaction) Validate() error {
	switch t.Type {
	case Income, Expense:
	default:
		return ErrInvalidTxType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if t.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if t.Date.IsZero() {
		return ErrInvalidDate
	}
	if t.IsRecurring {
		switch t.RecurringInterval {
		case Daily, Weekly, Monthly, Yearly:
		default:
			return ErrInvalidInterval
		}
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if _, _, err := MonthRange(b.Month); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	switch i.Type {
	case Stock, ETF, MutualFund, Bond:
	default:
		return ErrInvalidInvType
	}
	if strings.TrimSpace(i.Symbol) == "" {
		return ErrEmptySymbol
	}
	if !i.Quantity.IsPositive() {
		return ErrInvalidQuantity
	}
	if i.PurchasePrice.IsNegative() {
		return ErrNegativePrice
	}
	if i.PurchaseDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(d.StorageKey) == "" {
		return ErrEmptyStorageKey
	}
	return nil
}
