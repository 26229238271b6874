package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	KindIncome     RecordKind = "income"
	KindExpense    RecordKind = "expense"
	KindInvestment RecordKind = "investment"
	KindEMI        RecordKind = "emi"
)

const (
	MethodCash       PaymentMethod = "cash"
	MethodCreditCard PaymentMethod = "credit_card"
	MethodUPI        PaymentMethod = "upi"
)

const (
	CurrencyUSD Currency = "USD"
	CurrencyINR Currency = "INR"
)

type (
	// RecordKind discriminates the four ledger entry types. A record's kind
	// is immutable after creation; changing it requires delete and recreate.
	RecordKind string

	// PaymentMethod is meaningful only for expense records.
	PaymentMethod string

	Currency string

	Date struct {
		time.Time
	}

	// FinancialRecord is one ledger entry: an income, expense, investment
	// or EMI installment.
	FinancialRecord struct {
		ID       string
		Kind     RecordKind
		Title    string
		Amount   decimal.Decimal
		Category string
		Method   PaymentMethod // expenses only, empty otherwise
		Date     Date
		Detail   Detail // kind-specific payload, nil for income/expense
	}

	// CreditCard is one credit line. CurrentBalance is the drawn, unpaid
	// balance: it already embodies card-paid spending, so aggregation must
	// never subtract both it and card-paid expense records.
	CreditCard struct {
		ID             string
		Name           string
		LastFour       string
		Network        string
		CreditLimit    decimal.Decimal
		CurrentBalance decimal.Decimal
		ColorTheme     string
		DueDay         int
	}

	// Wish is a savings goal. Progress is purely presentational and is not
	// derived from ledger records.
	Wish struct {
		ID            string
		Title         string
		Category      string
		Description   string
		TargetAmount  decimal.Decimal
		CurrentAmount decimal.Decimal
		TargetDate    Date // optional, zero when unset
		Completed     bool
	}

	Profile struct {
		DisplayName string
		Currency    Currency
	}
)

var (
	ErrInvalidKind        = errors.New("invalid record kind")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrEmptyTitle         = errors.New("empty title")
	ErrInvalidLimit       = errors.New("invalid credit limit")
	ErrInvalidBalance     = errors.New("invalid balance")
	ErrInvalidDueDay      = errors.New("invalid due day")
	ErrInvalidTarget      = errors.New("invalid target amount")
	ErrInvalidCurrency    = errors.New("invalid currency")
	ErrMalformedDetail    = errors.New("malformed detail payload")
	ErrDetailKindMismatch = errors.New("detail does not match record kind")
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// NewDate creates a Date at midnight UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date in UTC.
func Today() Date {
	now := time.Now().UTC()
	return NewDate(now.Year(), now.Month(), now.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// AddMonths shifts the date by whole calendar months.
func (d Date) AddMonths(n int) Date {
	return Date{Time: d.AddDate(0, n, 0)}
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// MarshalJSON encodes the date as "YYYY-MM-DD", or null when zero.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts "YYYY-MM-DD", empty string or null.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (k RecordKind) IsValid() bool {
	switch k {
	case KindIncome, KindExpense, KindInvestment, KindEMI:
		return true
	default:
		return false
	}
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case MethodCash, MethodCreditCard, MethodUPI:
		return true
	default:
		return false
	}
}

func (c Currency) IsValid() bool {
	return c == CurrencyUSD || c == CurrencyINR
}

// Symbol returns the display symbol for the currency. Numeric formatting
// (thousands separators and the like) is a UI concern.
func (c Currency) Symbol() string {
	if c == CurrencyINR {
		return "₹"
	}
	return "$"
}

func (r FinancialRecord) Validate() error {
	if !r.Kind.IsValid() {
		return ErrInvalidKind
	}
	if len(strings.TrimSpace(r.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(r.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if r.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if err := r.Date.Validate(); err != nil {
		return err
	}
	if r.Method != "" {
		if r.Kind != KindExpense {
			return ErrInvalidMethod
		}
		if !r.Method.IsValid() {
			return ErrInvalidMethod
		}
	}
	if r.Detail != nil {
		if r.Detail.Kind() != r.Kind {
			return ErrDetailKindMismatch
		}
		if err := r.Detail.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c CreditCard) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyTitle
	}
	if !c.CreditLimit.IsPositive() {
		return ErrInvalidLimit
	}
	if c.CurrentBalance.IsNegative() {
		return ErrInvalidBalance
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

// Utilization returns current balance over credit limit. Balances above the
// limit are not clamped; callers may inspect values above 1.
func (c CreditCard) Utilization() decimal.Decimal {
	if !c.CreditLimit.IsPositive() {
		return decimal.Zero
	}
	return c.CurrentBalance.Div(c.CreditLimit)
}

func (w Wish) Validate() error {
	if len(strings.TrimSpace(w.Title)) == 0 {
		return ErrEmptyTitle
	}
	if !w.TargetAmount.IsPositive() {
		return ErrInvalidTarget
	}
	if w.CurrentAmount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Progress returns saved-over-target clamped to [0, 1] for display.
func (w Wish) Progress() decimal.Decimal {
	if !w.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	ratio := w.CurrentAmount.Div(w.TargetAmount)
	one := decimal.NewFromInt(1)
	if ratio.GreaterThan(one) {
		return one
	}
	return ratio
}

func (p Profile) Validate() error {
	if len(strings.TrimSpace(p.DisplayName)) == 0 {
		return ErrEmptyTitle
	}
	if !p.Currency.IsValid() {
		return ErrInvalidCurrency
	}
	return nil
}

// RoundMoney applies the currency rounding policy: half-up to two decimals.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
