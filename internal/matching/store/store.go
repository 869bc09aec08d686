package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) FindMatch(ctx context.Context, name string, t category.Type) (uuid.UUID, error) {
	query := `
		SELECT t.category_id
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE LOWER(t.name) = LOWER($1) AND c.type = $2
		ORDER BY t.occurred_at DESC, t.created_at DESC
		LIMIT 1
	`

	var id uuid.UUID

	err := s.db.QueryRowContext(ctx, query, name, t).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}

		return uuid.Nil, fmt.Errorf("finding match: %w", err)
	}

	return id, nil
}
