// Package matching suggests categories for new transactions from the ledger's
// own history.
package matching

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=matching
type Repository interface {
	// FindMatch returns the category of the most recent transaction of type t
	// named name, ignoring case, or uuid.Nil when there is none.
	FindMatch(ctx context.Context, name string, t category.Type) (uuid.UUID, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Suggest returns the category last used for a transaction with the same
// name and type. It returns uuid.Nil if the name has never been seen.
func (s *Service) Suggest(ctx context.Context, name string, t category.Type) (uuid.UUID, error) {
	name = strings.TrimSpace(name)
	if name == "" || !t.Valid() {
		return uuid.Nil, nil
	}

	return s.repo.FindMatch(ctx, name, t)
}
