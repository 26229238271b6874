// Package fixture provides the in-memory store.Provider used for demo mode
// and tests. Data lives only for the process lifetime.
package fixture

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

type Store struct {
	mu      sync.Mutex
	records []core.FinancialRecord
	cards   []core.CreditCard
	wishes  []core.Wish
	profile core.Profile
}

var _ store.Provider = (*Store)(nil)

// New returns an empty store with a default profile.
func New() *Store {
	return &Store{
		profile: core.Profile{DisplayName: "there", Currency: core.CurrencyUSD},
	}
}

func (s *Store) Close() error { return nil }

func (s *Store) CreateRecord(_ context.Context, r core.FinancialRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", err
	}
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r)
	return r.ID, nil
}

func (s *Store) UpdateRecord(_ context.Context, r core.FinancialRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == r.ID {
			if s.records[i].Kind != r.Kind {
				return store.ErrKindImmutable
			}
			s.records[i] = r
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteRecord(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) GetRecord(_ context.Context, id string) (core.FinancialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return core.FinancialRecord{}, store.ErrNotFound
}

func (s *Store) ListRecords(_ context.Context, start, end core.Date) ([]core.FinancialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.FinancialRecord
	for _, r := range s.records {
		if r.Date.IsZero() || r.Date.Before(start.Time) || r.Date.After(end.Time) {
			continue
		}
		out = append(out, r)
	}
	// Most recent first, matching the live provider.
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date.Time)
	})
	return out, nil
}

func (s *Store) ListRecordsByYear(_ context.Context, year int) ([]core.FinancialRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.FinancialRecord
	for _, r := range s.records {
		if !r.Date.IsZero() && r.Date.Year() == year {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Store) CreateCard(_ context.Context, c core.CreditCard) (string, error) {
	if err := c.Validate(); err != nil {
		return "", err
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards = append(s.cards, c)
	return c.ID, nil
}

func (s *Store) UpdateCard(_ context.Context, c core.CreditCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == c.ID {
			s.cards[i] = c
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteCard(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.cards {
		if s.cards[i].ID == id {
			s.cards = append(s.cards[:i], s.cards[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListCards(_ context.Context) ([]core.CreditCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.CreditCard(nil), s.cards...), nil
}

func (s *Store) CreateWish(_ context.Context, w core.Wish) (string, error) {
	if err := w.Validate(); err != nil {
		return "", err
	}
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishes = append(s.wishes, w)
	return w.ID, nil
}

func (s *Store) UpdateWish(_ context.Context, w core.Wish) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wishes {
		if s.wishes[i].ID == w.ID {
			s.wishes[i] = w
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) DeleteWish(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wishes {
		if s.wishes[i].ID == id {
			s.wishes = append(s.wishes[:i], s.wishes[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *Store) ListWishes(_ context.Context) ([]core.Wish, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Wish(nil), s.wishes...), nil
}

func (s *Store) GetProfile(_ context.Context) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *Store) UpdateProfile(_ context.Context, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	return nil
}
