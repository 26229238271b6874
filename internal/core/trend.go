package core

import "github.com/shopspring/decimal"

// Trend holds signed percentage change strings comparing the current period
// against the previous one.
type Trend struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

// PercentChange formats the signed percentage change from previous to
// current with one decimal place and an explicit plus sign when
// non-negative.
//
// The zero-previous edge case is relied on for the common "no prior-month
// data" case and must hold exactly: "+100%" when current is positive, "0%"
// otherwise.
func PercentChange(current, previous decimal.Decimal) string {
	if previous.IsZero() {
		if current.IsPositive() {
			return "+100%"
		}
		return "0%"
	}
	change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100))
	if change.IsNegative() {
		return change.StringFixed(1) + "%"
	}
	return "+" + change.StringFixed(1) + "%"
}

// CompareTotals derives the dashboard trend figures from two aggregation
// results.
func CompareTotals(current, previous PeriodTotals) Trend {
	return Trend{
		Income:  PercentChange(current.Income, previous.Income),
		Expense: PercentChange(current.Expense, previous.Expense),
		Balance: PercentChange(current.Balance, previous.Balance),
	}
}
