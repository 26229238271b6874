package fixture

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

func TestRecordLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateRecord(ctx, core.FinancialRecord{
		Kind:   core.KindExpense,
		Title:  "Coffee",
		Amount: decimal.NewFromFloat(4.50),
		Method: core.MethodCash,
		Date:   core.NewDate(2026, time.August, 3),
	})
	require.NoError(t, err)

	got, err := s.GetRecord(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Coffee", got.Title)

	err = s.UpdateRecord(ctx, core.FinancialRecord{
		ID:     id,
		Kind:   core.KindIncome,
		Title:  "Coffee",
		Amount: decimal.NewFromFloat(4.50),
		Date:   core.NewDate(2026, time.August, 3),
	})
	assert.ErrorIs(t, err, store.ErrKindImmutable)

	require.NoError(t, s.DeleteRecord(ctx, id))
	_, err = s.GetRecord(ctx, id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateRecordValidates(t *testing.T) {
	s := New()

	_, err := s.CreateRecord(context.Background(), core.FinancialRecord{
		Kind:   core.KindExpense,
		Title:  " ",
		Amount: decimal.NewFromInt(10),
		Method: core.MethodCash,
		Date:   core.NewDate(2026, time.August, 3),
	})
	assert.ErrorIs(t, err, core.ErrEmptyTitle)
}

func TestListRecordsRangeInclusive(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, d := range []core.Date{
		core.NewDate(2026, time.July, 31),
		core.NewDate(2026, time.August, 1),
		core.NewDate(2026, time.August, 31),
		core.NewDate(2026, time.September, 1),
	} {
		_, err := s.CreateRecord(ctx, core.FinancialRecord{
			Kind: core.KindIncome, Title: "Pay", Amount: decimal.NewFromInt(100), Date: d,
		})
		require.NoError(t, err)
	}

	august, err := s.ListRecords(ctx,
		core.NewDate(2026, time.August, 1), core.NewDate(2026, time.August, 31))
	require.NoError(t, err)
	assert.Len(t, august, 2)

	yearly, err := s.ListRecordsByYear(ctx, 2026)
	require.NoError(t, err)
	assert.Len(t, yearly, 4)
}

func TestListRecordsMostRecentFirst(t *testing.T) {
	s := New()
	ctx := context.Background()

	// Insertion order deliberately non-monotonic.
	for _, d := range []core.Date{
		core.NewDate(2026, time.August, 20),
		core.NewDate(2026, time.August, 5),
		core.NewDate(2026, time.August, 10),
	} {
		_, err := s.CreateRecord(ctx, core.FinancialRecord{
			Kind: core.KindExpense, Title: "Groceries", Amount: decimal.NewFromInt(50), Method: core.MethodCash, Date: d,
		})
		require.NoError(t, err)
	}

	august, err := s.ListRecords(ctx,
		core.NewDate(2026, time.August, 1), core.NewDate(2026, time.August, 31))
	require.NoError(t, err)
	require.Len(t, august, 3)

	days := []int{august[0].Date.Day(), august[1].Date.Day(), august[2].Date.Day()}
	assert.Equal(t, []int{20, 10, 5}, days, "listing must be most recent first")
}

func TestListReturnsSnapshot(t *testing.T) {
	s := New()
	ctx := context.Background()

	id, err := s.CreateRecord(ctx, core.FinancialRecord{
		Kind: core.KindIncome, Title: "Pay", Amount: decimal.NewFromInt(100),
		Date: core.NewDate(2026, time.August, 1),
	})
	require.NoError(t, err)

	before, err := s.ListRecordsByYear(ctx, 2026)
	require.NoError(t, err)
	require.Len(t, before, 1)

	require.NoError(t, s.UpdateRecord(ctx, core.FinancialRecord{
		ID: id, Kind: core.KindIncome, Title: "Raise", Amount: decimal.NewFromInt(200),
		Date: core.NewDate(2026, time.August, 1),
	}))

	assert.Equal(t, "Pay", before[0].Title, "earlier snapshot must not observe later writes")
}

func TestNewSeededDataset(t *testing.T) {
	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	s := NewSeeded(now)
	ctx := context.Background()

	records, err := s.ListRecordsByYear(ctx, 2026)
	require.NoError(t, err)
	assert.NotEmpty(t, records)

	var salary, emi bool
	for _, r := range records {
		switch {
		case r.Kind == core.KindIncome && r.Amount.Equal(decimal.NewFromInt(4200)):
			salary = true
		case r.Kind == core.KindEMI:
			emi = true
			_, ok := r.Detail.(core.EMIDetail)
			assert.True(t, ok, "seeded EMI record must carry a detail payload")
		}
	}
	assert.True(t, salary, "seeded dataset must contain the salary record")
	assert.True(t, emi, "seeded dataset must contain the EMI record")

	cards, err := s.ListCards(ctx)
	require.NoError(t, err)
	assert.Len(t, cards, 2)

	wishes, err := s.ListWishes(ctx)
	require.NoError(t, err)
	assert.Len(t, wishes, 3)

	profile, err := s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "John Doe", profile.DisplayName)
}
