package dashboard

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// Snapshot is the full derived view for one month: period totals, the
// trend against the previous month, the category and yearly charts, the
// EMI and investment projections, and the supporting card/wish/profile
// state. Snapshots are recomputed from the ledger, never persisted.
type Snapshot struct {
	Month          string                   `json:"month"`
	Totals         core.PeriodTotals        `json:"totals"`
	Trend          core.Trend               `json:"trend"`
	Breakdown      []core.CategorySlice     `json:"breakdown"`
	YearSeries     []core.MonthPoint        `json:"yearSeries"`
	EMIs           []core.DerivedEMI        `json:"emis"`
	Investments    []core.DerivedInvestment `json:"investments"`
	Cards          []CardView               `json:"cards"`
	Wishes         []WishView               `json:"wishes"`
	Profile        ProfileView              `json:"profile"`
	SkippedRecords int                      `json:"skippedRecords"`
}

// CardView adds the derived utilization ratio to a credit card.
type CardView struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	LastFour       string          `json:"lastFour"`
	Network        string          `json:"network,omitempty"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Utilization    decimal.Decimal `json:"utilization"`
	ColorTheme     string          `json:"colorTheme"`
	DueDay         int             `json:"dueDay"`
}

// WishView adds the clamped progress ratio to a savings wish.
type WishView struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Progress      decimal.Decimal `json:"progress"`
	TargetDate    core.Date       `json:"targetDate"`
	Completed     bool            `json:"completed"`
}

type ProfileView struct {
	DisplayName    string `json:"displayName"`
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
}

func newCardView(c core.CreditCard) CardView {
	return CardView{
		ID:             c.ID,
		Name:           c.Name,
		LastFour:       c.LastFour,
		Network:        c.Network,
		CreditLimit:    c.CreditLimit,
		CurrentBalance: c.CurrentBalance,
		Utilization:    c.Utilization().Round(4),
		ColorTheme:     c.ColorTheme,
		DueDay:         c.DueDay,
	}
}

func newWishView(w core.Wish) WishView {
	return WishView{
		ID:            w.ID,
		Title:         w.Title,
		Category:      w.Category,
		Description:   w.Description,
		TargetAmount:  w.TargetAmount,
		CurrentAmount: w.CurrentAmount,
		Progress:      w.Progress().Round(4),
		TargetDate:    w.TargetDate,
		Completed:     w.Completed,
	}
}

func newProfileView(p core.Profile) ProfileView {
	return ProfileView{
		DisplayName:    p.DisplayName,
		Currency:       string(p.Currency),
		CurrencySymbol: p.Currency.Symbol(),
	}
}
