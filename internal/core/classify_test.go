package core

import (
	"testing"
	"time"
)

func TestPeriodBounds(t *testing.T) {
	cases := []struct {
		period  Period
		lastDay int
	}{
		{Period{2025, time.January}, 31},
		{Period{2025, time.February}, 28},
		{Period{2024, time.February}, 29}, // leap year
		{Period{2025, time.April}, 30},
		{Period{2025, time.December}, 31},
	}
	for _, tc := range cases {
		if got := tc.period.Start(); got.Day() != 1 {
			t.Fatalf("%s start day = %d", tc.period, got.Day())
		}
		if got := tc.period.End(); got.Day() != tc.lastDay {
			t.Fatalf("%s end day = %d, want %d", tc.period, got.Day(), tc.lastDay)
		}
	}
}

func TestPeriodPrevious(t *testing.T) {
	p := Period{2025, time.January}.Previous()
	if p.Year != 2024 || p.Month != time.December {
		t.Fatalf("previous of 2025-01 = %s", p)
	}
	p = Period{2025, time.August}.Previous()
	if p.Year != 2025 || p.Month != time.July {
		t.Fatalf("previous of 2025-08 = %s", p)
	}
}

func TestParsePeriod(t *testing.T) {
	p, err := ParsePeriod("2025-08")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Year != 2025 || p.Month != time.August {
		t.Fatalf("parsed %s", p)
	}
	if _, err := ParsePeriod("not-a-period"); err == nil {
		t.Fatal("expected error")
	}
}

func TestFilterKindStable(t *testing.T) {
	records := []FinancialRecord{
		rec(KindExpense, "1"),
		rec(KindIncome, "2"),
		rec(KindExpense, "3"),
	}
	out := FilterKind(records, KindExpense)
	if len(out) != 2 {
		t.Fatalf("expected 2, got %d", len(out))
	}
	if !out[0].Amount.Equal(records[0].Amount) || !out[1].Amount.Equal(records[2].Amount) {
		t.Fatal("input order not preserved")
	}
}

func TestFilterPeriodInclusiveBounds(t *testing.T) {
	p := Period{2025, time.August}
	records := []FinancialRecord{
		rec(KindExpense, "1", withDate(NewDate(2025, time.July, 31))),
		rec(KindExpense, "2", withDate(NewDate(2025, time.August, 1))),
		rec(KindExpense, "3", withDate(NewDate(2025, time.August, 31))),
		rec(KindExpense, "4", withDate(NewDate(2025, time.September, 1))),
	}

	in, skipped := FilterPeriod(records, p)
	if skipped != 0 {
		t.Fatalf("skipped = %d", skipped)
	}
	if len(in) != 2 {
		t.Fatalf("expected 2 records, got %d", len(in))
	}
	if !in[0].Amount.Equal(records[1].Amount) || !in[1].Amount.Equal(records[2].Amount) {
		t.Fatal("wrong records selected")
	}
}

func TestFilterPeriodCountsUnparseableDates(t *testing.T) {
	// A record whose date never parsed carries a zero Date; it must be
	// excluded from the aggregation but reported, not silently dropped.
	records := []FinancialRecord{
		rec(KindExpense, "10", withDate(Date{})),
		rec(KindExpense, "20", withDate(NewDate(2025, time.August, 10))),
	}
	in, skipped := FilterPeriod(records, Period{2025, time.August})
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
	if len(in) != 1 || !in[0].Amount.Equal(records[1].Amount) {
		t.Fatalf("unexpected records: %+v", in)
	}
}
