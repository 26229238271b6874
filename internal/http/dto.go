package http

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
)

// recordPayload is the wire form of a FinancialRecord. The detail field is
// the kind-discriminated JSON payload; income and expense records carry
// none.
type recordPayload struct {
	ID       string          `json:"id,omitempty"`
	Kind     string          `json:"kind"`
	Title    string          `json:"title"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category,omitempty"`
	Method   string          `json:"method,omitempty"`
	Date     core.Date       `json:"date"`
	Detail   json.RawMessage `json:"detail,omitempty"`
}

func (p recordPayload) toRecord() (core.FinancialRecord, error) {
	kind := core.RecordKind(p.Kind)
	detail, err := core.DecodeDetail(kind, p.Detail)
	if err != nil {
		return core.FinancialRecord{}, err
	}

	return core.FinancialRecord{
		ID:       p.ID,
		Kind:     kind,
		Title:    p.Title,
		Amount:   p.Amount,
		Category: p.Category,
		Method:   core.PaymentMethod(p.Method),
		Date:     p.Date,
		Detail:   detail,
	}, nil
}

func newRecordPayload(r core.FinancialRecord) (recordPayload, error) {
	detail, err := core.EncodeDetail(r.Detail)
	if err != nil {
		return recordPayload{}, fmt.Errorf("encode detail for record %s: %w", r.ID, err)
	}

	return recordPayload{
		ID:       r.ID,
		Kind:     string(r.Kind),
		Title:    r.Title,
		Amount:   r.Amount,
		Category: r.Category,
		Method:   string(r.Method),
		Date:     r.Date,
		Detail:   detail,
	}, nil
}

func newRecordPayloads(records []core.FinancialRecord) ([]recordPayload, error) {
	payloads := make([]recordPayload, 0, len(records))
	for _, r := range records {
		p, err := newRecordPayload(r)
		if err != nil {
			return nil, err
		}
		payloads = append(payloads, p)
	}
	return payloads, nil
}

type cardPayload struct {
	ID             string          `json:"id,omitempty"`
	Name           string          `json:"name"`
	LastFour       string          `json:"lastFour"`
	Network        string          `json:"network,omitempty"`
	CreditLimit    decimal.Decimal `json:"creditLimit"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	ColorTheme     string          `json:"colorTheme"`
	DueDay         int             `json:"dueDay"`
}

func (p cardPayload) toCard() core.CreditCard {
	return core.CreditCard{
		ID:             p.ID,
		Name:           p.Name,
		LastFour:       p.LastFour,
		Network:        p.Network,
		CreditLimit:    p.CreditLimit,
		CurrentBalance: p.CurrentBalance,
		ColorTheme:     p.ColorTheme,
		DueDay:         p.DueDay,
	}
}

func newCardPayload(c core.CreditCard) cardPayload {
	return cardPayload{
		ID:             c.ID,
		Name:           c.Name,
		LastFour:       c.LastFour,
		Network:        c.Network,
		CreditLimit:    c.CreditLimit,
		CurrentBalance: c.CurrentBalance,
		ColorTheme:     c.ColorTheme,
		DueDay:         c.DueDay,
	}
}

type wishPayload struct {
	ID            string          `json:"id,omitempty"`
	Title         string          `json:"title"`
	Category      string          `json:"category,omitempty"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	TargetDate    core.Date       `json:"targetDate"`
	Completed     bool            `json:"completed"`
}

func (p wishPayload) toWish() core.Wish {
	return core.Wish{
		ID:            p.ID,
		Title:         p.Title,
		Category:      p.Category,
		Description:   p.Description,
		TargetAmount:  p.TargetAmount,
		CurrentAmount: p.CurrentAmount,
		TargetDate:    p.TargetDate,
		Completed:     p.Completed,
	}
}

func newWishPayload(w core.Wish) wishPayload {
	return wishPayload{
		ID:            w.ID,
		Title:         w.Title,
		Category:      w.Category,
		Description:   w.Description,
		TargetAmount:  w.TargetAmount,
		CurrentAmount: w.CurrentAmount,
		TargetDate:    w.TargetDate,
		Completed:     w.Completed,
	}
}

type profilePayload struct {
	DisplayName string `json:"displayName"`
	Currency    string `json:"currency"`
}

func (p profilePayload) toProfile() core.Profile {
	return core.Profile{
		DisplayName: p.DisplayName,
		Currency:    core.Currency(p.Currency),
	}
}

func newProfilePayload(p core.Profile) profilePayload {
	return profilePayload{
		DisplayName: p.DisplayName,
		Currency:    string(p.Currency),
	}
}
