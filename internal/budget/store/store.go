package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectBudgetColumns = `id, category_id, month, year, amount`

func scanBudget(s scanner) (*budget.Budget, error) {
	var b budget.Budget

	if err := s.Scan(&b.ID, &b.CategoryID, &b.Month, &b.Year, &b.Amount); err != nil {
		return nil, err
	}

	return &b, nil
}

func (s *Store) UpsertBudget(ctx context.Context, b *budget.Budget) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("generating id: %w", err)
	}

	err = s.db.QueryRowContext(ctx, `
		INSERT INTO budgets (id, category_id, month, year, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (category_id, month, year) DO UPDATE SET amount = excluded.amount
		RETURNING id`,
		id, b.CategoryID, b.Month, b.Year, b.Amount,
	).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}

	return nil
}

func (s *Store) GetBudget(ctx context.Context, id uuid.UUID) (*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + ` FROM budgets WHERE id = $1`

	b, err := scanBudget(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, budget.ErrNotFound
		}

		return nil, fmt.Errorf("getting budget: %w", err)
	}

	return b, nil
}

func (s *Store) ListBudgets(ctx context.Context, month, year int) ([]*budget.Budget, error) {
	query := `SELECT ` + selectBudgetColumns + `
		FROM budgets
		WHERE month = $1 AND year = $2
		ORDER BY amount DESC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("listing budgets: %w", err)
	}
	defer rows.Close()

	bs := []*budget.Budget{}

	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning budget: %w", err)
		}

		bs = append(bs, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budgets: %w", err)
	}

	return bs, nil
}

func (s *Store) DeleteBudget(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting budget: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}

	if n == 0 {
		return budget.ErrNotFound
	}

	return nil
}

func (s *Store) TotalBudget(ctx context.Context, month, year int) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx, `
		SELECT CAST(COALESCE(SUM(amount), 0) AS BIGINT)
		FROM budgets
		WHERE month = $1 AND year = $2`,
		month, year,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing budgets: %w", err)
	}

	return total, nil
}

func (s *Store) ListProgress(ctx context.Context, month, year int, r period.Range) ([]*budget.Progress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.category_id, b.month, b.year, b.amount,
			c.name, c.icon, c.color,
			CAST(COALESCE((
				SELECT SUM(t.amount) FROM transactions t
				WHERE t.category_id = b.category_id
					AND t.type = $3
					AND t.occurred_at BETWEEN $4 AND $5
			), 0) AS BIGINT) AS spent
		FROM budgets b
		JOIN categories c ON c.id = b.category_id
		WHERE b.month = $1 AND b.year = $2
		ORDER BY c.name ASC`,
		month, year, string(category.TypeExpense), r.StartMillis(), r.EndMillis(),
	)
	if err != nil {
		return nil, fmt.Errorf("listing budget progress: %w", err)
	}
	defer rows.Close()

	ps := []*budget.Progress{}

	for rows.Next() {
		var (
			p     budget.Progress
			icon  string
			color int64
		)

		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Month, &p.Year, &p.Amount,
			&p.CategoryName, &icon, &color, &p.Spent,
		); err != nil {
			return nil, fmt.Errorf("scanning budget progress: %w", err)
		}

		p.CategoryIcon = category.Icon(icon).OrFallback()
		p.CategoryColor = category.Color(uint32(color))
		ps = append(ps, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating budget progress: %w", err)
	}

	return ps, nil
}
