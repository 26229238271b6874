package fixture

import (
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// NewSeeded returns a store pre-loaded with the demo dataset: a month of
// mixed transactions, two cards and three savings goals, all dated relative
// to now so the current-month dashboard is never empty.
func NewSeeded(now time.Time) *Store {
	s := New()
	s.profile = core.Profile{DisplayName: "John Doe", Currency: core.CurrencyUSD}

	today := core.NewDate(now.Year(), now.Month(), now.Day())
	daysAgo := func(n int) core.Date {
		t := now.AddDate(0, 0, -n)
		return core.NewDate(t.Year(), t.Month(), t.Day())
	}

	s.records = []core.FinancialRecord{
		{
			ID: "seed-txn-1", Kind: core.KindExpense, Title: "Grocery Shopping",
			Amount: decimal.RequireFromString("156.80"), Category: "Food",
			Method: core.MethodCash, Date: today,
		},
		{
			ID: "seed-txn-2", Kind: core.KindIncome, Title: "Salary Credit",
			Amount: decimal.RequireFromString("4200.00"), Category: "Salary",
			Date: daysAgo(1),
		},
		{
			ID: "seed-txn-3", Kind: core.KindExpense, Title: "Gas Station",
			Amount: decimal.RequireFromString("68.50"), Category: "Transport",
			Method: core.MethodUPI, Date: daysAgo(2),
		},
		{
			ID: "seed-txn-4", Kind: core.KindExpense, Title: "Online Shopping",
			Amount: decimal.RequireFromString("249.99"), Category: "Shopping",
			Method: core.MethodCreditCard, Date: daysAgo(3),
		},
		{
			ID: "seed-txn-5", Kind: core.KindExpense, Title: "Electricity Bill",
			Amount: decimal.RequireFromString("127.30"), Category: "Bills",
			Method: core.MethodCash, Date: daysAgo(4),
		},
		{
			ID: "seed-emi-1", Kind: core.KindEMI, Title: "Personal Loan",
			Amount: decimal.NewFromInt(500), Category: "personal", Date: today,
			Detail: core.EMIDetail{
				LenderName:   "Personal Loan",
				LoanAmount:   decimal.NewFromInt(6000),
				TenureMonths: 12,
				StartDate:    core.NewDate(now.Year(), now.Month(), 1).AddMonths(-1),
				DueDay:       5,
			},
		},
		{
			ID: "seed-inv-1", Kind: core.KindInvestment, Title: "Stocks",
			Amount: decimal.NewFromInt(2000), Category: "stocks", Date: today,
			Detail: core.InvestmentDetail{
				Category:     "stocks",
				PurchaseDate: today,
			},
		},
	}

	s.cards = []core.CreditCard{
		{
			ID: "seed-card-1", Name: "Chase Sapphire", LastFour: "4532", Network: "Visa",
			CreditLimit:    decimal.NewFromInt(5000),
			CurrentBalance: decimal.NewFromInt(1250),
			ColorTheme:     "#4f46e5", DueDay: 15,
		},
		{
			ID: "seed-card-2", Name: "Amex Platinum", LastFour: "3421", Network: "American Express",
			CreditLimit:    decimal.NewFromInt(10000),
			CurrentBalance: decimal.NewFromInt(2800),
			ColorTheme:     "#6b7280", DueDay: 20,
		},
	}

	s.wishes = []core.Wish{
		{
			ID: "seed-wish-1", Title: "iPhone 15 Pro", Category: "gadget",
			Description:   "Latest smartphone with advanced camera",
			TargetAmount:  decimal.NewFromInt(1199),
			CurrentAmount: decimal.NewFromInt(450),
		},
		{
			ID: "seed-wish-2", Title: "MacBook Air", Category: "gadget",
			Description:   "For work and creative projects",
			TargetAmount:  decimal.NewFromInt(1299),
			CurrentAmount: decimal.NewFromInt(800),
		},
		{
			ID: "seed-wish-3", Title: "Vacation to Japan", Category: "travel",
			Description:   "Dream trip to Tokyo and Kyoto",
			TargetAmount:  decimal.NewFromInt(3500),
			CurrentAmount: decimal.NewFromInt(1200),
		},
	}

	return s
}
