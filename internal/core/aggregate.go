package core

import "github.com/shopspring/decimal"

// PeriodTotals are the aggregate figures for one calendar month. Always
// computed fresh from a snapshot of records and cards, never persisted.
//
// Expense is the displayed spending for the period and includes card-paid
// expenses for visibility. Balance deliberately subtracts only the non-card
// portion: money spent via a tracked credit card is represented once, as
// card debt in CreditCardUsage, not twice.
type PeriodTotals struct {
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	Investment      decimal.Decimal `json:"investment"`
	EMI             decimal.Decimal `json:"emi"`
	CreditCardUsage decimal.Decimal `json:"creditCardUsage"`
	Balance         decimal.Decimal `json:"balance"`
}

// Aggregate computes the period totals from records already filtered to the
// period plus the live credit card snapshot.
//
// CreditCardUsage is a live snapshot while card-paid expenses are a
// historical period-bounded sum; when a balance is paid off mid-period the
// two diverge. That approximation is accepted rather than reconciling full
// statement history.
func Aggregate(records []FinancialRecord, cards []CreditCard) PeriodTotals {
	var income, expenseNonCard, expenseCard, investment, emi decimal.Decimal

	for _, r := range records {
		switch r.Kind {
		case KindIncome:
			income = income.Add(r.Amount)
		case KindExpense:
			if r.Method == MethodCreditCard {
				expenseCard = expenseCard.Add(r.Amount)
			} else {
				expenseNonCard = expenseNonCard.Add(r.Amount)
			}
		case KindInvestment:
			investment = investment.Add(r.Amount)
		case KindEMI:
			emi = emi.Add(r.Amount)
		}
	}

	var cardUsage decimal.Decimal
	for _, c := range cards {
		cardUsage = cardUsage.Add(c.CurrentBalance)
	}

	return PeriodTotals{
		Income:          income,
		Expense:         expenseNonCard.Add(expenseCard),
		Investment:      investment,
		EMI:             emi,
		CreditCardUsage: cardUsage,
		Balance:         income.Sub(expenseNonCard).Sub(investment).Sub(emi).Sub(cardUsage),
	}
}
