package core

import "github.com/shopspring/decimal"

// Defaults for EMI projections when the detail payload is missing or
// malformed. The projection degrades instead of failing the dashboard pass.
const defaultTenureMonths = 12

// DerivedEMI is a read-only projection of an EMI record, recomputed on
// every read and never persisted.
type DerivedEMI struct {
	RecordID        string          `json:"recordId"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	MonthlyAmount   decimal.Decimal `json:"monthlyAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	MonthsPaid      int             `json:"monthsPaid"`
	RemainingMonths int             `json:"remainingMonths"`
	TotalMonths     int             `json:"totalMonths"`
}

// DerivedInvestment is a read-only projection of an investment record.
type DerivedInvestment struct {
	RecordID       string          `json:"recordId"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	InvestedAmount decimal.Decimal `json:"investedAmount"`
	CurrentValue   decimal.Decimal `json:"currentValue"`
	ChangeAmount   decimal.Decimal `json:"changeAmount"`
	ChangePercent  decimal.Decimal `json:"changePercent"`
}

// Valuer prices an invested amount. No live market feed is in scope, so
// the default applies a fixed markup; production deployments can swap in a
// real pricing strategy.
type Valuer interface {
	Value(invested decimal.Decimal) decimal.Decimal
}

// FixedMarkup values holdings at invested * (1 + percent/100).
type FixedMarkup struct {
	Percent decimal.Decimal
}

func (m FixedMarkup) Value(invested decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(m.Percent.Div(decimal.NewFromInt(100)))
	return invested.Mul(factor)
}

// DefaultValuer is the placeholder +5% markup of the reference behavior.
var DefaultValuer Valuer = FixedMarkup{Percent: decimal.NewFromInt(5)}

// ProjectEMI enriches an EMI record with amortization progress as of the
// given date. A missing or malformed detail payload falls back to the
// documented degraded defaults: zero months paid, a 12 month tenure and a
// total of twelve monthly installments.
func ProjectEMI(r FinancialRecord, asOf Date) DerivedEMI {
	out := DerivedEMI{
		RecordID:      r.ID,
		Name:          r.Title,
		Category:      r.Category,
		MonthlyAmount: r.Amount,
	}

	detail, ok := r.Detail.(EMIDetail)
	if !ok || detail.Validate() != nil {
		out.TotalMonths = defaultTenureMonths
		out.RemainingMonths = defaultTenureMonths
		out.TotalAmount = r.Amount.Mul(decimal.NewFromInt(defaultTenureMonths))
		return out
	}

	if detail.LenderName != "" {
		out.Name = detail.LenderName
	}
	out.TotalMonths = detail.TenureMonths
	out.TotalAmount = detail.LoanAmount
	out.MonthsPaid = PaidMonths(detail.StartDate, detail.DueDay, detail.TenureMonths, asOf)
	out.RemainingMonths = RemainingMonths(detail.TenureMonths, out.MonthsPaid)
	return out
}

// ProjectInvestment enriches an investment record with a valuation. A nil
// valuer selects the default fixed markup.
func ProjectInvestment(r FinancialRecord, valuer Valuer) DerivedInvestment {
	if valuer == nil {
		valuer = DefaultValuer
	}

	out := DerivedInvestment{
		RecordID:       r.ID,
		Name:           r.Title,
		Category:       r.Category,
		InvestedAmount: r.Amount,
	}
	if detail, ok := r.Detail.(InvestmentDetail); ok && detail.Category != "" {
		out.Category = detail.Category
	}

	out.CurrentValue = RoundMoney(valuer.Value(r.Amount))
	out.ChangeAmount = out.CurrentValue.Sub(r.Amount)
	if r.Amount.IsPositive() {
		out.ChangePercent = out.ChangeAmount.Div(r.Amount).Mul(decimal.NewFromInt(100)).Round(1)
	}
	return out
}

// ProjectEMIs projects every EMI record in the input, preserving order.
func ProjectEMIs(records []FinancialRecord, asOf Date) []DerivedEMI {
	var out []DerivedEMI
	for _, r := range FilterKind(records, KindEMI) {
		out = append(out, ProjectEMI(r, asOf))
	}
	return out
}

// ProjectInvestments projects every investment record in the input.
func ProjectInvestments(records []FinancialRecord, valuer Valuer) []DerivedInvestment {
	var out []DerivedInvestment
	for _, r := range FilterKind(records, KindInvestment) {
		out = append(out, ProjectInvestment(r, valuer))
	}
	return out
}
