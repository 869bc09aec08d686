package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/report"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
	txstore "github.com/MrJamesThe3rd/pocket/internal/transaction/store"
)

type Store struct {
	db  *sql.DB
	cal *period.Calendar
}

// New returns an aggregation store. Daily buckets follow cal's time zone.
func New(db *sql.DB, cal *period.Calendar) *Store {
	return &Store{db: db, cal: cal}
}

func (s *Store) Total(ctx context.Context, r period.Range) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx, `
		SELECT CAST(COALESCE(SUM(amount), 0) AS BIGINT)
		FROM transactions
		WHERE occurred_at BETWEEN $1 AND $2`,
		r.StartMillis(), r.EndMillis(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing transactions: %w", err)
	}

	return total, nil
}

func (s *Store) TotalByType(ctx context.Context, r period.Range, t category.Type) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx, `
		SELECT CAST(COALESCE(SUM(amount), 0) AS BIGINT)
		FROM transactions
		WHERE type = $1 AND occurred_at BETWEEN $2 AND $3`,
		string(t), r.StartMillis(), r.EndMillis(),
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing %s transactions: %w", t, err)
	}

	return total, nil
}

func (s *Store) ByCategory(ctx context.Context, r period.Range, t category.Type) ([]report.CategorySummary, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT c.id, c.name, c.icon, c.color, c.type, CAST(SUM(t.amount) AS BIGINT) AS total
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.type = $1 AND t.occurred_at BETWEEN $2 AND $3
		GROUP BY c.id, c.name, c.icon, c.color, c.type
		HAVING SUM(t.amount) > 0
		ORDER BY total DESC, c.name ASC`,
		string(t), r.StartMillis(), r.EndMillis(),
	)
	if err != nil {
		return nil, fmt.Errorf("summing by category: %w", err)
	}
	defer rows.Close()

	out := []report.CategorySummary{}

	for rows.Next() {
		var (
			cs        report.CategorySummary
			icon, typ string
			color     int64
		)

		if err := rows.Scan(&cs.CategoryID, &cs.Name, &icon, &color, &typ, &cs.Total); err != nil {
			return nil, fmt.Errorf("scanning category total: %w", err)
		}

		cs.Icon = category.Icon(icon).OrFallback()
		cs.Color = category.Color(uint32(color))
		cs.Type = category.Type(typ)
		out = append(out, cs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating category totals: %w", err)
	}

	return out, nil
}

// DailyByType sums per timestamp in SQL and folds the rows into local days
// here, so bucketing does not depend on the database's time zone support.
func (s *Store) DailyByType(ctx context.Context, r period.Range, t category.Type) ([]report.DailyPoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT occurred_at, CAST(SUM(amount) AS BIGINT)
		FROM transactions
		WHERE type = $1 AND occurred_at BETWEEN $2 AND $3
		GROUP BY occurred_at
		ORDER BY occurred_at ASC`,
		string(t), r.StartMillis(), r.EndMillis(),
	)
	if err != nil {
		return nil, fmt.Errorf("summing by day: %w", err)
	}
	defer rows.Close()

	out := []report.DailyPoint{}

	for rows.Next() {
		var at, amount int64

		if err := rows.Scan(&at, &amount); err != nil {
			return nil, fmt.Errorf("scanning daily total: %w", err)
		}

		day := s.cal.StartOfDay(time.UnixMilli(at))

		if n := len(out); n > 0 && out[n-1].Day.Equal(day) {
			out[n-1].Total += amount
			continue
		}

		out = append(out, report.DailyPoint{Day: day, Total: amount})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily totals: %w", err)
	}

	return out, nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]*transaction.View, error) {
	return s.views(ctx, `SELECT `+txstore.ViewColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		ORDER BY t.occurred_at DESC, t.created_at DESC, t.id DESC
		LIMIT $1`, limit)
}

func (s *Store) Transactions(ctx context.Context, r period.Range) ([]*transaction.View, error) {
	return s.views(ctx, `SELECT `+txstore.ViewColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.occurred_at BETWEEN $1 AND $2
		ORDER BY t.occurred_at DESC, t.created_at DESC, t.id DESC`,
		r.StartMillis(), r.EndMillis())
}

func (s *Store) CategoryTransactions(ctx context.Context, categoryID uuid.UUID, r period.Range) ([]*transaction.View, error) {
	return s.views(ctx, `SELECT `+txstore.ViewColumns+`
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.category_id = $1 AND t.occurred_at BETWEEN $2 AND $3
		ORDER BY t.occurred_at DESC, t.created_at DESC, t.id DESC`,
		categoryID, r.StartMillis(), r.EndMillis())
}

func (s *Store) views(ctx context.Context, query string, args ...any) ([]*transaction.View, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	out := []*transaction.View{}

	for rows.Next() {
		v, err := txstore.ScanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		out = append(out, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return out, nil
}
