// Package core holds the domain types and the derived-value computations:
// budget spend tracking and investment interest accrual.
package core

import (
	"time"

	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// MonthRange returns the first and last calendar day of a "YYYY-MM" month,
// both inclusive. The last day is day 0 of the following month.
func MonthRange(month string) (start, end time.Time, err error) {
	start, err = time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end = time.Date(start.Year(), start.Month()+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end, nil
}

// Remaining is the budget cap minus what was spent. Negative means overrun.
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.Spent)
}

// PercentageUsed is spent/amount*100, rounded to two decimal places.
// A zero-amount budget is always 0% used, regardless of spent.
func (b Budget) PercentageUsed() decimal.Decimal {
	if b.Amount.IsZero() {
		return decimal.Zero
	}
	return b.Spent.Div(b.Amount).Mul(oneHundred).Round(2)
}

// SumExpenses totals the expense transactions that match the budget's
// category and fall within [start, end]. Income entries and other
// categories never count.
func (b Budget) SumExpenses(txns []Transaction, start, end time.Time) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		if t.Type != Expense || t.Category != b.Category {
			continue
		}
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}
