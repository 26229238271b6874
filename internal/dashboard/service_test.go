package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/store"
	"fintrack/internal/store/fixture"
)

func coreChange(id string) store.Change {
	return store.Change{Table: store.TableRecords, Op: store.OpInsert, ID: id}
}

var testNow = time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)

func seedStore(t *testing.T) *fixture.Store {
	t.Helper()
	ctx := context.Background()
	s := fixture.New()

	records := []core.FinancialRecord{
		{Kind: core.KindIncome, Title: "Salary", Amount: decimal.NewFromInt(4200), Category: "Salary", Date: core.NewDate(2026, time.August, 1)},
		{Kind: core.KindExpense, Title: "Groceries", Amount: decimal.NewFromInt(150), Category: "Food", Method: core.MethodCash, Date: core.NewDate(2026, time.August, 5)},
		{Kind: core.KindExpense, Title: "Shopping", Amount: decimal.NewFromInt(80), Category: "Shopping", Method: core.MethodCreditCard, Date: core.NewDate(2026, time.August, 9)},
		{Kind: core.KindInvestment, Title: "Index Fund", Amount: decimal.NewFromInt(500), Category: "Stocks", Date: core.NewDate(2026, time.August, 12)},
		{Kind: core.KindIncome, Title: "Salary", Amount: decimal.NewFromInt(4000), Category: "Salary", Date: core.NewDate(2026, time.July, 1)},
	}
	for _, r := range records {
		if _, err := s.CreateRecord(ctx, r); err != nil {
			t.Fatalf("CreateRecord(%s) error = %v", r.Title, err)
		}
	}

	if _, err := s.CreateCard(ctx, core.CreditCard{
		Name:           "Visa",
		LastFour:       "4532",
		CreditLimit:    decimal.NewFromInt(5000),
		CurrentBalance: decimal.NewFromInt(1250),
		ColorTheme:     "#4f46e5",
		DueDay:         15,
	}); err != nil {
		t.Fatalf("CreateCard() error = %v", err)
	}

	if _, err := s.CreateWish(ctx, core.Wish{
		Title:         "Vacation",
		TargetAmount:  decimal.NewFromInt(3500),
		CurrentAmount: decimal.NewFromInt(1200),
	}); err != nil {
		t.Fatalf("CreateWish() error = %v", err)
	}

	return s
}

func newTestService(t *testing.T, st *fixture.Store, bus events.Bus) *Service {
	t.Helper()
	svc := NewService(st, bus, Options{Now: func() time.Time { return testNow }})
	t.Cleanup(func() { svc.Close() })
	return svc
}

func august() core.Period {
	return core.Period{Year: 2026, Month: time.August}
}

func TestSnapshotTotalsExcludeCardSpending(t *testing.T) {
	svc := newTestService(t, seedStore(t), nil)

	snap, err := svc.Snapshot(context.Background(), august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if snap.Month != "2026-08" {
		t.Fatalf("Month = %q, want 2026-08", snap.Month)
	}
	// 4200 - 150 cash - 500 investment - 1250 card balance; the 80 paid by
	// card is already inside the balance and must not be subtracted again.
	if got := snap.Totals.Balance.String(); got != "2300" {
		t.Fatalf("Balance = %s, want 2300", got)
	}
	if got := snap.Totals.Expense.String(); got != "230" {
		t.Fatalf("Expense = %s, want 230", got)
	}
	if got := snap.Totals.CreditCardUsage.String(); got != "1250" {
		t.Fatalf("CreditCardUsage = %s, want 1250", got)
	}
}

func TestSnapshotTrendAgainstPreviousMonth(t *testing.T) {
	svc := newTestService(t, seedStore(t), nil)

	snap, err := svc.Snapshot(context.Background(), august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	// July income was 4000, August is 4200.
	if snap.Trend.Income != "+5.0%" {
		t.Fatalf("Trend.Income = %q, want +5.0%%", snap.Trend.Income)
	}
	// July had no expenses at all.
	if snap.Trend.Expense != "+100%" {
		t.Fatalf("Trend.Expense = %q, want +100%%", snap.Trend.Expense)
	}
}

func TestSnapshotChartsAndViews(t *testing.T) {
	svc := newTestService(t, seedStore(t), nil)

	snap, err := svc.Snapshot(context.Background(), august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if len(snap.Breakdown) != 2 {
		t.Fatalf("Breakdown has %d slices, want 2", len(snap.Breakdown))
	}
	if len(snap.YearSeries) != 12 {
		t.Fatalf("YearSeries has %d points, want 12", len(snap.YearSeries))
	}
	if got := snap.YearSeries[6].Income.String(); got != "4000" {
		t.Fatalf("July series income = %s, want 4000", got)
	}

	if len(snap.Cards) != 1 {
		t.Fatalf("Cards has %d entries, want 1", len(snap.Cards))
	}
	if got := snap.Cards[0].Utilization.String(); got != "0.25" {
		t.Fatalf("Utilization = %s, want 0.25", got)
	}
	if len(snap.Wishes) != 1 {
		t.Fatalf("Wishes has %d entries, want 1", len(snap.Wishes))
	}
	if got := snap.Wishes[0].Progress.String(); got != "0.3429" {
		t.Fatalf("Progress = %s, want 0.3429", got)
	}
	if snap.Profile.CurrencySymbol != "$" {
		t.Fatalf("CurrencySymbol = %q, want $", snap.Profile.CurrencySymbol)
	}

	if len(snap.Investments) != 1 {
		t.Fatalf("Investments has %d entries, want 1", len(snap.Investments))
	}
	// Default valuer marks invested amounts up by five percent.
	if got := snap.Investments[0].CurrentValue.String(); got != "525" {
		t.Fatalf("CurrentValue = %s, want 525", got)
	}
}

func TestSnapshotServedFromCache(t *testing.T) {
	st := seedStore(t)
	svc := newTestService(t, st, nil)
	ctx := context.Background()

	first, err := svc.Snapshot(ctx, august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	// A write that bypasses the bus must not show up while the cached
	// snapshot is fresh.
	if _, err := st.CreateRecord(ctx, core.FinancialRecord{
		Kind: core.KindIncome, Title: "Bonus", Amount: decimal.NewFromInt(1000), Date: core.NewDate(2026, time.August, 21),
	}); err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}

	second, err := svc.Snapshot(ctx, august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if first != second {
		t.Fatal("expected cached snapshot pointer")
	}
}

func TestChangeEventInvalidatesCache(t *testing.T) {
	st := seedStore(t)
	bus := events.NewMemoryBus()
	defer bus.Close()
	svc := newTestService(t, st, bus)
	ctx := context.Background()

	before, err := svc.Snapshot(ctx, august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	id, err := st.CreateRecord(ctx, core.FinancialRecord{
		Kind: core.KindIncome, Title: "Bonus", Amount: decimal.NewFromInt(1000), Date: core.NewDate(2026, time.August, 21),
	})
	if err != nil {
		t.Fatalf("CreateRecord() error = %v", err)
	}
	if err := bus.Publish(ctx, coreChange(id)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	after, err := svc.Snapshot(ctx, august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if before == after {
		t.Fatal("snapshot not recomputed after change event")
	}
	if got := after.Totals.Income.String(); got != "5200" {
		t.Fatalf("Income after invalidation = %s, want 5200", got)
	}
}

func TestInvalidateDropsSingleMonth(t *testing.T) {
	st := seedStore(t)
	svc := newTestService(t, st, nil)
	ctx := context.Background()

	before, err := svc.Snapshot(ctx, august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	svc.Invalidate(august())

	after, err := svc.Snapshot(ctx, august())
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if before == after {
		t.Fatal("snapshot still cached after Invalidate")
	}
}
