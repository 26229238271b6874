package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/store"
)

// Service orchestrates mutations: validate, persist, then announce the
// change on the bus. Publish failures are logged and swallowed; the write
// already succeeded and stale caches self-heal on expiry.
type Service struct {
	provider store.Provider
	bus      events.Bus
}

func NewService(provider store.Provider, bus events.Bus) *Service {
	return &Service{
		provider: provider,
		bus:      bus,
	}
}

func (s *Service) CreateRecord(ctx context.Context, r core.FinancialRecord) (string, error) {
	if err := r.Validate(); err != nil {
		return "", fmt.Errorf("validate record: %w", err)
	}

	id, err := s.provider.CreateRecord(ctx, r)
	if err != nil {
		return "", fmt.Errorf("save record: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableRecords, Op: store.OpInsert, ID: id})
	return id, nil
}

func (s *Service) UpdateRecord(ctx context.Context, r core.FinancialRecord) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("validate record: %w", err)
	}

	if err := s.provider.UpdateRecord(ctx, r); err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableRecords, Op: store.OpUpdate, ID: r.ID})
	return nil
}

func (s *Service) DeleteRecord(ctx context.Context, id string) error {
	if err := s.provider.DeleteRecord(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableRecords, Op: store.OpDelete, ID: id})
	return nil
}

func (s *Service) GetRecord(ctx context.Context, id string) (core.FinancialRecord, error) {
	return s.provider.GetRecord(ctx, id)
}

func (s *Service) ListRecords(ctx context.Context, start, end core.Date) ([]core.FinancialRecord, error) {
	return s.provider.ListRecords(ctx, start, end)
}

func (s *Service) CreateCard(ctx context.Context, c core.CreditCard) (string, error) {
	if err := c.Validate(); err != nil {
		return "", fmt.Errorf("validate card: %w", err)
	}

	id, err := s.provider.CreateCard(ctx, c)
	if err != nil {
		return "", fmt.Errorf("save card: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableCreditCards, Op: store.OpInsert, ID: id})
	return id, nil
}

func (s *Service) UpdateCard(ctx context.Context, c core.CreditCard) error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("validate card: %w", err)
	}

	if err := s.provider.UpdateCard(ctx, c); err != nil {
		return fmt.Errorf("update card: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableCreditCards, Op: store.OpUpdate, ID: c.ID})
	return nil
}

func (s *Service) DeleteCard(ctx context.Context, id string) error {
	if err := s.provider.DeleteCard(ctx, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableCreditCards, Op: store.OpDelete, ID: id})
	return nil
}

func (s *Service) ListCards(ctx context.Context) ([]core.CreditCard, error) {
	return s.provider.ListCards(ctx)
}

func (s *Service) CreateWish(ctx context.Context, w core.Wish) (string, error) {
	if err := w.Validate(); err != nil {
		return "", fmt.Errorf("validate wish: %w", err)
	}

	id, err := s.provider.CreateWish(ctx, w)
	if err != nil {
		return "", fmt.Errorf("save wish: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableWishes, Op: store.OpInsert, ID: id})
	return id, nil
}

func (s *Service) UpdateWish(ctx context.Context, w core.Wish) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("validate wish: %w", err)
	}

	if err := s.provider.UpdateWish(ctx, w); err != nil {
		return fmt.Errorf("update wish: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableWishes, Op: store.OpUpdate, ID: w.ID})
	return nil
}

func (s *Service) DeleteWish(ctx context.Context, id string) error {
	if err := s.provider.DeleteWish(ctx, id); err != nil {
		return fmt.Errorf("delete wish: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableWishes, Op: store.OpDelete, ID: id})
	return nil
}

func (s *Service) ListWishes(ctx context.Context) ([]core.Wish, error) {
	return s.provider.ListWishes(ctx)
}

func (s *Service) GetProfile(ctx context.Context) (core.Profile, error) {
	return s.provider.GetProfile(ctx)
}

func (s *Service) UpdateProfile(ctx context.Context, p core.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("validate profile: %w", err)
	}

	if err := s.provider.UpdateProfile(ctx, p); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	s.publish(ctx, store.Change{Table: store.TableProfiles, Op: store.OpUpdate, ID: "1"})
	return nil
}

func (s *Service) publish(ctx context.Context, change store.Change) {
	if s.bus == nil {
		slog.WarnContext(ctx, "Event bus not available, skipping change message",
			"table", change.Table, "op", change.Op, "id", change.ID)
		return
	}

	if err := s.bus.Publish(ctx, change); err != nil {
		slog.ErrorContext(ctx, "Failed to publish change message",
			"table", change.Table, "op", change.Op, "id", change.ID, "error", err)
	}
}

// Close closes both the provider and the event bus.
func (s *Service) Close() error {
	var errs []error

	if s.provider != nil {
		if err := s.provider.Close(); err != nil {
			errs = append(errs, fmt.Errorf("provider: %w", err))
		}
	}

	if s.bus != nil {
		if err := s.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("bus: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
