package core

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidLoanParameters signals amortization inputs out of domain. The
// failure is fatal to that single projection only; callers fall back to the
// degraded defaults rather than aborting the whole dashboard pass.
var ErrInvalidLoanParameters = errors.New("invalid loan parameters")

// MonthlyPayment computes the fixed monthly installment for a loan using
// the standard amortization formula
//
//	payment = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate derived from the annual percentage rate. A
// zero rate degenerates to an even split. The result is rounded half-up to
// two decimals.
func MonthlyPayment(principal, annualRatePercent decimal.Decimal, tenureMonths int) (decimal.Decimal, error) {
	if tenureMonths <= 0 || !principal.IsPositive() || annualRatePercent.IsNegative() {
		return decimal.Zero, ErrInvalidLoanParameters
	}

	if annualRatePercent.IsZero() {
		return RoundMoney(principal.Div(decimal.NewFromInt(int64(tenureMonths)))), nil
	}

	// The power term is computed in float64, monetary arithmetic stays in
	// decimal.
	monthlyRate, _ := annualRatePercent.Div(decimal.NewFromInt(1200)).Float64()
	factor := math.Pow(1+monthlyRate, float64(tenureMonths))
	p, _ := principal.Float64()
	payment := p * monthlyRate * factor / (factor - 1)
	return decimal.NewFromFloat(payment).Round(2), nil
}

// MonthsElapsed counts whole calendar months between start and asOf, plus
// one for the current month once its billing day has passed. The result is
// never negative; tenure clamping is the caller's concern since tenure is
// not known here.
func MonthsElapsed(start Date, billingDay int, asOf Date) int {
	if start.IsZero() || asOf.IsZero() {
		return 0
	}
	months := (asOf.Year()-start.Year())*12 + int(asOf.Month()) - int(start.Month())
	if billingDay < 1 {
		billingDay = 1
	}
	if asOf.Day() >= billingDay {
		months++
	}
	if months < 0 {
		return 0
	}
	return months
}

// PaidMonths is MonthsElapsed clamped to [0, tenureMonths].
func PaidMonths(start Date, billingDay, tenureMonths int, asOf Date) int {
	paid := MonthsElapsed(start, billingDay, asOf)
	if paid > tenureMonths {
		return tenureMonths
	}
	return paid
}

// RemainingMonths returns the installments still due, never negative.
func RemainingMonths(tenureMonths, monthsPaid int) int {
	remaining := tenureMonths - monthsPaid
	if remaining < 0 {
		return 0
	}
	return remaining
}
