package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// hoursPerYear uses a 365.25-day year, a deliberate leap-year
// approximation rather than an exact day-count convention.
const hoursPerYear = 24 * 365.25

// Principal is the invested capital base: quantity times purchase price.
func Principal(inv Investment) decimal.Decimal {
	return inv.Quantity.Mul(inv.PurchasePrice)
}

// ComputeInterest returns the simple interest accrued by an investment as
// of the given time, rounded to two decimal places.
//
// Market-priced instruments (stock, etf) never accrue interest. Rate-bearing
// instruments (mutual_fund, bond) accrue principal * rate * elapsedYears / 100
// when a non-zero annual rate is set, and nothing otherwise. A purchase date
// in the future yields a negative amount; that is a defined result, not an
// error.
func ComputeInterest(inv Investment, asOf time.Time) decimal.Decimal {
	switch inv.Type {
	case Stock, ETF:
		return decimal.Zero
	}
	if inv.RateOfInterest.IsZero() {
		return decimal.Zero
	}

	elapsedYears := asOf.Sub(inv.PurchaseDate).Hours() / hoursPerYear
	return Principal(inv).
		Mul(inv.RateOfInterest).
		Mul(decimal.NewFromFloat(elapsedYears)).
		Div(oneHundred).
		Round(2)
}
