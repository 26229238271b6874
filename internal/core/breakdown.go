package core

import "github.com/shopspring/decimal"

// OtherCategory buckets expense records that carry no category label.
const OtherCategory = "Other"

// chartPalette rotates across breakdown slices by index.
var chartPalette = [...]string{
	"#60a5fa", "#34d399", "#fbbf24", "#f87171", "#a78bfa", "#fb7185",
}

// CategorySlice is one entry of the expense breakdown chart.
type CategorySlice struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
}

// CategoryBreakdown groups expense records by category. Non-expense records
// are ignored. Uncategorized amounts land in the "Other" bucket, entries
// whose aggregated amount is not positive are dropped, and ordering follows
// first-seen category order rather than amount.
func CategoryBreakdown(records []FinancialRecord) []CategorySlice {
	sums := make(map[string]decimal.Decimal)
	var order []string

	for _, r := range records {
		if r.Kind != KindExpense {
			continue
		}
		category := r.Category
		if category == "" {
			category = OtherCategory
		}
		if _, seen := sums[category]; !seen {
			order = append(order, category)
		}
		sums[category] = sums[category].Add(r.Amount)
	}

	var out []CategorySlice
	for _, category := range order {
		amount := sums[category]
		if !amount.IsPositive() {
			continue
		}
		out = append(out, CategorySlice{
			Category: category,
			Amount:   amount,
			Color:    chartPalette[len(out)%len(chartPalette)],
		})
	}
	return out
}
