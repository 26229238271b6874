package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"fintrack/internal/core"
	"fintrack/internal/store"
)

// Repository is the live store.Provider backed by SQLite.
type Repository struct {
	db *sql.DB
}

var _ store.Provider = (*Repository)(nil)

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *Repository) CreateRecord(ctx context.Context, rec core.FinancialRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	detail, err := core.EncodeDetail(rec.Detail)
	if err != nil {
		return "", fmt.Errorf("encode detail: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO records (id, kind, title, amount, category, method, date, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, string(rec.Kind), rec.Title, rec.Amount.String(),
		rec.Category, string(rec.Method), rec.Date.String(), nullableBlob(detail))
	if err != nil {
		return "", fmt.Errorf("insert record: %w", err)
	}

	slog.InfoContext(ctx, "Record saved",
		"id", rec.ID,
		"kind", rec.Kind,
		"amount", rec.Amount.String(),
		"date", rec.Date.String())

	return rec.ID, nil
}

func (r *Repository) UpdateRecord(ctx context.Context, rec core.FinancialRecord) error {
	var existingKind string
	err := r.db.QueryRowContext(ctx,
		`SELECT kind FROM records WHERE id = ?`, rec.ID).Scan(&existingKind)
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup record: %w", err)
	}
	if existingKind != string(rec.Kind) {
		return store.ErrKindImmutable
	}

	detail, err := core.EncodeDetail(rec.Detail)
	if err != nil {
		return fmt.Errorf("encode detail: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		UPDATE records
		SET title = ?, amount = ?, category = ?, method = ?, date = ?, detail = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rec.Title, rec.Amount.String(), rec.Category, string(rec.Method),
		rec.Date.String(), nullableBlob(detail), rec.ID)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return nil
}

func (r *Repository) DeleteRecord(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "records", id)
}

func (r *Repository) GetRecord(ctx context.Context, id string) (core.FinancialRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, kind, title, amount, category, method, date, detail
		FROM records WHERE id = ?`, id)
	rec, err := scanRecord(ctx, row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.FinancialRecord{}, store.ErrNotFound
	}
	return rec, err
}

func (r *Repository) ListRecords(ctx context.Context, start, end core.Date) ([]core.FinancialRecord, error) {
	// ISO dates compare lexicographically, so the range predicate works on
	// the stored text column directly.
	return r.queryRecords(ctx, `
		SELECT id, kind, title, amount, category, method, date, detail
		FROM records
		WHERE date >= ? AND date <= ?
		ORDER BY date DESC, created_at DESC`, start.String(), end.String())
}

func (r *Repository) ListRecordsByYear(ctx context.Context, year int) ([]core.FinancialRecord, error) {
	start := fmt.Sprintf("%04d-01-01", year)
	end := fmt.Sprintf("%04d-12-31", year)
	return r.queryRecords(ctx, `
		SELECT id, kind, title, amount, category, method, date, detail
		FROM records
		WHERE date >= ? AND date <= ?
		ORDER BY date ASC`, start, end)
}

func (r *Repository) queryRecords(ctx context.Context, query string, args ...any) ([]core.FinancialRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.FinancialRecord
	for rows.Next() {
		rec, err := scanRecord(ctx, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(ctx context.Context, row rowScanner) (core.FinancialRecord, error) {
	var (
		rec          core.FinancialRecord
		kind, method string
		amount, date string
		detail       sql.NullString
	)
	if err := row.Scan(&rec.ID, &kind, &rec.Title, &amount, &rec.Category, &method, &date, &detail); err != nil {
		return core.FinancialRecord{}, err
	}

	rec.Kind = core.RecordKind(kind)
	rec.Method = core.PaymentMethod(method)

	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return core.FinancialRecord{}, fmt.Errorf("parse amount for record %s: %w", rec.ID, err)
	}
	rec.Amount = parsed

	// A date that no longer parses leaves the record with a zero Date; the
	// aggregation layer excludes it and reports the skip tally instead of
	// dropping the row without trace.
	if d, err := core.ParseDate(date); err == nil {
		rec.Date = d
	} else {
		slog.WarnContext(ctx, "Record has unparseable date",
			"id", rec.ID, "date", date)
	}

	if detail.Valid && detail.String != "" {
		d, err := core.DecodeDetail(rec.Kind, []byte(detail.String))
		if err != nil {
			// Recovered locally: projections fall back to degraded defaults.
			slog.WarnContext(ctx, "Record has malformed detail payload",
				"id", rec.ID, "kind", rec.Kind, "error", err)
		} else {
			rec.Detail = d
		}
	}

	return rec, nil
}

func (r *Repository) CreateCard(ctx context.Context, c core.CreditCard) (string, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credit_cards (id, name, last_four, network, credit_limit, current_balance, color_theme, due_day)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.LastFour, c.Network,
		c.CreditLimit.String(), c.CurrentBalance.String(), c.ColorTheme, c.DueDay)
	if err != nil {
		return "", fmt.Errorf("insert credit card: %w", err)
	}
	return c.ID, nil
}

func (r *Repository) UpdateCard(ctx context.Context, c core.CreditCard) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE credit_cards
		SET name = ?, last_four = ?, network = ?, credit_limit = ?, current_balance = ?,
		    color_theme = ?, due_day = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		c.Name, c.LastFour, c.Network, c.CreditLimit.String(),
		c.CurrentBalance.String(), c.ColorTheme, c.DueDay, c.ID)
	if err != nil {
		return fmt.Errorf("update credit card: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteCard(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "credit_cards", id)
}

func (r *Repository) ListCards(ctx context.Context) ([]core.CreditCard, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, last_four, network, credit_limit, current_balance, color_theme, due_day
		FROM credit_cards
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query credit cards: %w", err)
	}
	defer rows.Close()

	var out []core.CreditCard
	for rows.Next() {
		var (
			c              core.CreditCard
			limit, balance string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.LastFour, &c.Network, &limit, &balance, &c.ColorTheme, &c.DueDay); err != nil {
			return nil, fmt.Errorf("scan credit card: %w", err)
		}
		if c.CreditLimit, err = decimal.NewFromString(limit); err != nil {
			return nil, fmt.Errorf("parse credit limit for card %s: %w", c.ID, err)
		}
		if c.CurrentBalance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("parse balance for card %s: %w", c.ID, err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *Repository) CreateWish(ctx context.Context, w core.Wish) (string, error) {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO wishes (id, title, category, description, target_amount, current_amount, target_date, completed)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.Title, w.Category, w.Description,
		w.TargetAmount.String(), w.CurrentAmount.String(), w.TargetDate.String(), boolToInt(w.Completed))
	if err != nil {
		return "", fmt.Errorf("insert wish: %w", err)
	}
	return w.ID, nil
}

func (r *Repository) UpdateWish(ctx context.Context, w core.Wish) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE wishes
		SET title = ?, category = ?, description = ?, target_amount = ?, current_amount = ?,
		    target_date = ?, completed = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		w.Title, w.Category, w.Description, w.TargetAmount.String(),
		w.CurrentAmount.String(), w.TargetDate.String(), boolToInt(w.Completed), w.ID)
	if err != nil {
		return fmt.Errorf("update wish: %w", err)
	}
	return requireRow(res)
}

func (r *Repository) DeleteWish(ctx context.Context, id string) error {
	return r.deleteByID(ctx, "wishes", id)
}

func (r *Repository) ListWishes(ctx context.Context) ([]core.Wish, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, category, description, target_amount, current_amount, target_date, completed
		FROM wishes
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query wishes: %w", err)
	}
	defer rows.Close()

	var out []core.Wish
	for rows.Next() {
		var (
			w               core.Wish
			target, current string
			targetDate      sql.NullString
			completed       int
		)
		if err := rows.Scan(&w.ID, &w.Title, &w.Category, &w.Description, &target, &current, &targetDate, &completed); err != nil {
			return nil, fmt.Errorf("scan wish: %w", err)
		}
		if w.TargetAmount, err = decimal.NewFromString(target); err != nil {
			return nil, fmt.Errorf("parse target for wish %s: %w", w.ID, err)
		}
		if w.CurrentAmount, err = decimal.NewFromString(current); err != nil {
			return nil, fmt.Errorf("parse current for wish %s: %w", w.ID, err)
		}
		if targetDate.Valid && targetDate.String != "" {
			if d, err := core.ParseDate(targetDate.String); err == nil {
				w.TargetDate = d
			}
		}
		w.Completed = completed != 0
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *Repository) GetProfile(ctx context.Context) (core.Profile, error) {
	var p core.Profile
	var currency string
	err := r.db.QueryRowContext(ctx,
		`SELECT display_name, currency FROM profiles WHERE id = 1`).
		Scan(&p.DisplayName, &currency)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Profile{}, store.ErrNotFound
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	p.Currency = core.Currency(currency)
	return p, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, p core.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (id, display_name, currency)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			display_name = excluded.display_name,
			currency = excluded.currency,
			updated_at = CURRENT_TIMESTAMP`,
		p.DisplayName, string(p.Currency))
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}

func (r *Repository) deleteByID(ctx context.Context, table, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func nullableBlob(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
