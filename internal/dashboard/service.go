// Package dashboard assembles monthly snapshots: it pulls raw records,
// cards, wishes and the profile from the store, runs the aggregation
// engine, and caches the result until a change event or TTL expiry.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/cache"
	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/store"
)

const (
	defaultCacheSize = 64
	defaultCacheTTL  = 5 * time.Minute
)

// Options tune the snapshot cache and the valuation strategy. Zero values
// fall back to sensible defaults.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
	Valuer    core.Valuer
	Now       func() time.Time
}

type Service struct {
	provider    store.Provider
	valuer      core.Valuer
	now         func() time.Time
	snapshots   *cache.LRU[*Snapshot]
	unsubscribe func()
}

// NewService wires the assembly service to its store and, when a bus is
// given, subscribes for cache invalidation. Any change event clears the
// whole snapshot cache; recompute happens lazily on the next read.
func NewService(provider store.Provider, bus events.Bus, opts Options) *Service {
	if opts.CacheSize <= 0 {
		opts.CacheSize = defaultCacheSize
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = defaultCacheTTL
	}
	if opts.Valuer == nil {
		opts.Valuer = core.DefaultValuer
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Service{
		provider:  provider,
		valuer:    opts.Valuer,
		now:       opts.Now,
		snapshots: cache.NewLRU[*Snapshot](opts.CacheSize, opts.CacheTTL),
	}

	if bus != nil {
		s.unsubscribe = bus.Subscribe(func(change store.Change) {
			slog.Debug("Invalidating snapshot cache",
				"table", change.Table, "op", change.Op, "id", change.ID)
			s.snapshots.Clear()
		})
	}

	return s
}

// Cache exposes the snapshot cache for janitor registration.
func (s *Service) Cache() *cache.LRU[*Snapshot] { return s.snapshots }

// Snapshot returns the derived view for the given month, serving from
// cache when a fresh entry exists. Concurrent refreshes of the same month
// are allowed; last write wins, which is safe because every computation
// works from the same store state or newer.
func (s *Service) Snapshot(ctx context.Context, period core.Period) (*Snapshot, error) {
	key := period.String()
	if snap, ok := s.snapshots.Get(key); ok {
		return snap, nil
	}

	snap, err := s.build(ctx, period)
	if err != nil {
		return nil, err
	}

	s.snapshots.Set(key, snap)
	return snap, nil
}

func (s *Service) build(ctx context.Context, period core.Period) (*Snapshot, error) {
	previous := period.Previous()

	var (
		current, prior, yearly []core.FinancialRecord
		cards                  []core.CreditCard
		wishes                 []core.Wish
		profile                core.Profile
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		current, err = s.provider.ListRecords(ctx, period.Start(), period.End())
		return err
	})
	g.Go(func() (err error) {
		prior, err = s.provider.ListRecords(ctx, previous.Start(), previous.End())
		return err
	})
	g.Go(func() (err error) {
		yearly, err = s.provider.ListRecordsByYear(ctx, period.Year)
		return err
	})
	g.Go(func() (err error) {
		cards, err = s.provider.ListCards(ctx)
		return err
	})
	g.Go(func() (err error) {
		wishes, err = s.provider.ListWishes(ctx)
		return err
	})
	g.Go(func() (err error) {
		profile, err = s.provider.GetProfile(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load dashboard data for %s: %w", period, err)
	}

	// The store already ranges the query; the second pass only tallies
	// records whose dates could not be classified.
	inPeriod, skipped := core.FilterPeriod(current, period)
	if skipped > 0 {
		slog.WarnContext(ctx, "Skipped records with unclassifiable dates",
			"month", period.String(), "count", skipped)
	}
	inPrior, _ := core.FilterPeriod(prior, previous)

	totals := core.Aggregate(inPeriod, cards)
	// Both months are totalled against the same live card snapshot, so the
	// balance trend compares figures carrying identical card usage rather
	// than leaving it out of the prior month.
	priorTotals := core.Aggregate(inPrior, cards)
	today := s.now().UTC()
	asOf := core.NewDate(today.Year(), today.Month(), today.Day())

	snap := &Snapshot{
		Month:          period.String(),
		Totals:         totals,
		Trend:          core.CompareTotals(totals, priorTotals),
		Breakdown:      core.CategoryBreakdown(inPeriod),
		YearSeries:     core.BuildYearSeries(yearly, period.Year),
		EMIs:           core.ProjectEMIs(inPeriod, asOf),
		Investments:    core.ProjectInvestments(inPeriod, s.valuer),
		Cards:          make([]CardView, 0, len(cards)),
		Wishes:         make([]WishView, 0, len(wishes)),
		Profile:        newProfileView(profile),
		SkippedRecords: skipped,
	}
	for _, c := range cards {
		snap.Cards = append(snap.Cards, newCardView(c))
	}
	for _, w := range wishes {
		snap.Wishes = append(snap.Wishes, newWishView(w))
	}

	return snap, nil
}

// Invalidate drops the cached snapshot for one month. Bus-driven
// invalidation clears everything; this is the targeted variant for tests
// and manual refresh endpoints.
func (s *Service) Invalidate(period core.Period) {
	s.snapshots.Delete(period.String())
}

func (s *Service) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.snapshots.Clear()
	return nil
}
