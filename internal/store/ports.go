package store

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

// Tables observed by the change feed.
const (
	TableRecords     Table = "records"
	TableCreditCards Table = "credit_cards"
	TableWishes      Table = "wishes"
	TableProfiles    Table = "profiles"
)

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

type (
	Table string
	Op    string

	// Change is the typed invalidation event emitted on every mutation.
	// Consumers treat it as a cache-invalidation signal and recompute
	// lazily on the next read rather than eagerly refetching.
	Change struct {
		Table Table  `json:"table"`
		Op    Op     `json:"op"`
		ID    string `json:"id"`
	}
)

var (
	ErrNotFound = errors.New("not found")
	// ErrKindImmutable rejects updates that change a record's kind; the
	// supported path is delete and recreate.
	ErrKindImmutable = errors.New("record kind is immutable")
)

// Ports for data providers. Implementations must treat returned slices as
// snapshots: callers may retain and read them concurrently with later
// mutations.
type (
	RecordStore interface {
		CreateRecord(ctx context.Context, r core.FinancialRecord) (string, error)
		UpdateRecord(ctx context.Context, r core.FinancialRecord) error
		DeleteRecord(ctx context.Context, id string) error
		GetRecord(ctx context.Context, id string) (core.FinancialRecord, error)
		// ListRecords returns records with a date inside [start, end],
		// inclusive on both ends, most recent first.
		ListRecords(ctx context.Context, start, end core.Date) ([]core.FinancialRecord, error)
		// ListRecordsByYear returns all records of one calendar year.
		ListRecordsByYear(ctx context.Context, year int) ([]core.FinancialRecord, error)
	}

	CardStore interface {
		CreateCard(ctx context.Context, c core.CreditCard) (string, error)
		UpdateCard(ctx context.Context, c core.CreditCard) error
		DeleteCard(ctx context.Context, id string) error
		ListCards(ctx context.Context) ([]core.CreditCard, error)
	}

	WishStore interface {
		CreateWish(ctx context.Context, w core.Wish) (string, error)
		UpdateWish(ctx context.Context, w core.Wish) error
		DeleteWish(ctx context.Context, id string) error
		ListWishes(ctx context.Context) ([]core.Wish, error)
	}

	ProfileStore interface {
		GetProfile(ctx context.Context) (core.Profile, error)
		UpdateProfile(ctx context.Context, p core.Profile) error
	}
)

// Provider is the unified data-access collaborator: one live SQLite
// implementation and one in-memory fixture implementation, selected by
// configuration.
type Provider interface {
	RecordStore
	CardStore
	WishStore
	ProfileStore

	Close() error
}
