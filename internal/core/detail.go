package core

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Detail is the kind-specific payload of a financial record. It is a sealed
// union: EMI records carry an EMIDetail, investments an InvestmentDetail,
// income and plain expenses carry none. Payloads are validated once at the
// storage boundary.
type Detail interface {
	Kind() RecordKind
	Validate() error
}

// EMIDetail describes the loan behind an EMI record.
type EMIDetail struct {
	LenderName   string          `json:"lenderName"`
	LoanAmount   decimal.Decimal `json:"loanAmount"`
	InterestRate decimal.Decimal `json:"interestRate"` // annual, percent
	TenureMonths int             `json:"tenureMonths"`
	StartDate    Date            `json:"startDate"`
	DueDay       int             `json:"dueDay"` // billing day of month, 1-31
	Notes        string          `json:"notes,omitempty"`
}

func (EMIDetail) Kind() RecordKind { return KindEMI }

func (d EMIDetail) Validate() error {
	if !d.LoanAmount.IsPositive() {
		return ErrMalformedDetail
	}
	if d.TenureMonths <= 0 {
		return ErrMalformedDetail
	}
	if d.InterestRate.IsNegative() {
		return ErrMalformedDetail
	}
	if d.DueDay < 1 || d.DueDay > 31 {
		return ErrMalformedDetail
	}
	return nil
}

// InvestmentDetail describes the holding behind an investment record.
type InvestmentDetail struct {
	Category      string          `json:"category"`
	PurchaseDate  Date            `json:"purchaseDate"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchasePrice"`
	InterestRate  decimal.Decimal `json:"interestRate"` // for FDs and bonds
	MaturityDate  Date            `json:"maturityDate"`
	Notes         string          `json:"notes,omitempty"`
}

func (InvestmentDetail) Kind() RecordKind { return KindInvestment }

func (d InvestmentDetail) Validate() error {
	if d.Quantity.IsNegative() || d.PurchasePrice.IsNegative() {
		return ErrMalformedDetail
	}
	return nil
}

// EncodeDetail serializes a detail payload for storage. A nil detail
// encodes to nil.
func EncodeDetail(d Detail) ([]byte, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// DecodeDetail deserializes a stored payload for a record of the given
// kind. The kind column discriminates the union, so no envelope is needed.
// Empty payloads decode to nil; payloads that do not parse or do not
// validate return ErrMalformedDetail so callers can fall back to the
// documented degraded defaults.
func DecodeDetail(kind RecordKind, raw []byte) (Detail, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	switch kind {
	case KindEMI:
		var d EMIDetail
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, ErrMalformedDetail
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return d, nil
	case KindInvestment:
		var d InvestmentDetail
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, ErrMalformedDetail
		}
		if err := d.Validate(); err != nil {
			return nil, err
		}
		return d, nil
	default:
		// Income and plain expenses carry no structured payload.
		return nil, nil
	}
}
