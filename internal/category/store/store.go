package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/database"
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

const selectCategoryColumns = `id, name, icon, color, type, created_at`

func scanCategory(s scanner) (*category.Category, error) {
	var (
		c         category.Category
		icon, typ string
		color     int64
		createdAt int64
	)

	if err := s.Scan(&c.ID, &c.Name, &icon, &color, &typ, &createdAt); err != nil {
		return nil, err
	}

	c.Icon = category.Icon(icon).OrFallback()
	c.Color = category.Color(uint32(color))
	c.Type = category.Type(typ)
	c.CreatedAt = time.UnixMilli(createdAt)

	return &c, nil
}

// CreateCategories inserts all categories in one transaction, assigning ids
// and creation times.
func (s *Store) CreateCategories(ctx context.Context, cs []*category.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (id, name, icon, color, type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	now := time.UnixMilli(time.Now().UnixMilli())

	for _, c := range cs {
		if c.ID == uuid.Nil {
			id, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("generating id: %w", err)
			}

			c.ID = id
		}

		c.CreatedAt = now

		if _, err := stmt.ExecContext(ctx, c.ID, c.Name, string(c.Icon), int64(c.Color), string(c.Type), now.UnixMilli()); err != nil {
			return fmt.Errorf("creating category %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing categories: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, category.ErrNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return c, nil
}

func (s *Store) ListCategories(ctx context.Context, filter category.ListFilter) ([]*category.Category, error) {
	query := `SELECT ` + selectCategoryColumns + ` FROM categories WHERE 1 = 1`

	var args []any

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}

	if filter.Name != nil {
		args = append(args, *filter.Name)
		query += fmt.Sprintf(" AND LOWER(name) = LOWER($%d)", len(args))
	}

	query += " ORDER BY type ASC, name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var cs []*category.Category

	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		cs = append(cs, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}

	return cs, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *category.Category) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE categories SET name = $1, icon = $2, color = $3
		WHERE id = $4`,
		c.Name, string(c.Icon), int64(c.Color), c.ID,
	)
	if err != nil {
		return fmt.Errorf("updating category: %w", err)
	}

	return expectOne(res, category.ErrNotFound)
}

func (s *Store) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if database.IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %w", category.ErrInUse, err)
		}

		return fmt.Errorf("deleting category: %w", err)
	}

	return expectOne(res, category.ErrNotFound)
}

func (s *Store) CountCategories(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}

	return n, nil
}

func (s *Store) CountTransactions(ctx context.Context, id uuid.UUID) (int, error) {
	var n int

	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE category_id = $1`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting category transactions: %w", err)
	}

	return n, nil
}

func expectOne(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return notFound
	}

	return nil
}
