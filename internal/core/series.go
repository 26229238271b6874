package core

import "github.com/shopspring/decimal"

var monthLabels = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthPoint is one bucket of the yearly income/expense trend chart.
type MonthPoint struct {
	Month   string          `json:"month"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// BuildYearSeries buckets records into the 12 calendar months of the given
// year. All buckets are present and zero-initialized, ordering is fixed
// Jan through Dec regardless of input order, and records outside the year
// are ignored.
func BuildYearSeries(records []FinancialRecord, year int) []MonthPoint {
	series := make([]MonthPoint, 12)
	for i := range series {
		series[i] = MonthPoint{Month: monthLabels[i], Income: decimal.Zero, Expense: decimal.Zero}
	}

	for _, r := range records {
		if r.Date.IsZero() || r.Date.Year() != year {
			continue
		}
		idx := int(r.Date.Month()) - 1
		switch r.Kind {
		case KindIncome:
			series[idx].Income = series[idx].Income.Add(r.Amount)
		case KindExpense:
			series[idx].Expense = series[idx].Expense.Add(r.Amount)
		}
	}
	return series
}
