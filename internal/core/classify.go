package core

import (
	"fmt"
	"time"
)

// Period is one calendar month, the unit of aggregation.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a YYYY-MM string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("parse period %q: %w", s, ErrInvalidDate)
	}
	return PeriodOf(t), nil
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start returns the first day of the month.
func (p Period) Start() Date {
	return NewDate(p.Year, p.Month, 1)
}

// End returns the last day of the month. Normalization of day zero in the
// following month yields the correct length for every month including
// February in leap years.
func (p Period) End() Date {
	return Date{Time: time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC)}
}

// Previous returns the preceding calendar month, rolling the year back
// across January.
func (p Period) Previous() Period {
	return PeriodOf(time.Date(p.Year, p.Month-1, 1, 0, 0, 0, 0, time.UTC))
}

// Contains reports whether d falls inside the period, inclusive both ends.
func (p Period) Contains(d Date) bool {
	return !d.IsZero() && d.Year() == p.Year && d.Month() == p.Month
}

// FilterKind returns the records of the given kind, preserving input order.
func FilterKind(records []FinancialRecord, kind RecordKind) []FinancialRecord {
	var out []FinancialRecord
	for _, r := range records {
		if r.Kind == kind {
			out = append(out, r)
		}
	}
	return out
}

// FilterRange returns the records whose date falls within [start, end],
// inclusive on both ends and preserving input order. Records with a zero
// (unparseable) date are excluded and counted in skipped so callers can
// surface the tally instead of silently dropping them.
func FilterRange(records []FinancialRecord, start, end Date) (in []FinancialRecord, skipped int) {
	for _, r := range records {
		if r.Date.IsZero() {
			skipped++
			continue
		}
		if r.Date.Before(start.Time) || r.Date.After(end.Time) {
			continue
		}
		in = append(in, r)
	}
	return in, skipped
}

// FilterPeriod is FilterRange over one calendar month.
func FilterPeriod(records []FinancialRecord, p Period) (in []FinancialRecord, skipped int) {
	return FilterRange(records, p.Start(), p.End())
}
