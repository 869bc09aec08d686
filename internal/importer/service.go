package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=importer
type CategoryFinder interface {
	FindByName(ctx context.Context, name string, t category.Type) (*category.Category, error)
}

// CategorySuggester guesses a category from the names of past transactions.
type CategorySuggester interface {
	Suggest(ctx context.Context, name string, t category.Type) (uuid.UUID, error)
}

type Service struct {
	parser     *Parser
	categories CategoryFinder
	suggester  CategorySuggester
}

// NewService builds an importer. suggester may be nil.
func NewService(parser *Parser, categories CategoryFinder, suggester CategorySuggester) *Service {
	return &Service{parser: parser, categories: categories, suggester: suggester}
}

type categoryKey struct {
	name string
	typ  category.Type
}

// Import parses r and resolves every row's category by name within the row's
// type. A row without a category column value takes the category last used
// for its name. Anything still unresolved falls back to the default "other"
// category of its type.
func (s *Service) Import(ctx context.Context, r io.Reader) ([]transaction.CreateParams, error) {
	rows, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	var (
		resolved  = make(map[categoryKey]*category.Category)
		suggested = make(map[categoryKey]uuid.UUID)
		params    = make([]transaction.CreateParams, 0, len(rows))
	)

	for _, row := range rows {
		id, err := s.suggest(ctx, suggested, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row.Line, err)
		}

		if id == uuid.Nil {
			c, err := s.resolve(ctx, resolved, row.Category, row.Type)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", row.Line, err)
			}

			id = c.ID
		}

		params = append(params, transaction.CreateParams{
			Amount:     row.Amount,
			Name:       row.Name,
			Note:       row.Note,
			CategoryID: id,
			Type:       row.Type,
			Date:       row.Date,
		})
	}

	return params, nil
}

func (s *Service) suggest(ctx context.Context, cache map[categoryKey]uuid.UUID, row Row) (uuid.UUID, error) {
	if s.suggester == nil || row.Category != "" {
		return uuid.Nil, nil
	}

	key := categoryKey{name: strings.ToLower(row.Name), typ: row.Type}
	if id, ok := cache[key]; ok {
		return id, nil
	}

	id, err := s.suggester.Suggest(ctx, row.Name, row.Type)
	if err != nil {
		return uuid.Nil, fmt.Errorf("suggesting category for %q: %w", row.Name, err)
	}

	cache[key] = id

	return id, nil
}

func (s *Service) resolve(ctx context.Context, cache map[categoryKey]*category.Category, name string, t category.Type) (*category.Category, error) {
	key := categoryKey{name: strings.ToLower(name), typ: t}
	if c, ok := cache[key]; ok {
		return c, nil
	}

	var (
		c   *category.Category
		err error
	)

	if name != "" {
		c, err = s.categories.FindByName(ctx, name, t)
		if err != nil && !errors.Is(err, category.ErrNotFound) {
			return nil, fmt.Errorf("finding category %q: %w", name, err)
		}
	}

	if c == nil {
		c, err = s.categories.FindByName(ctx, fallbackName(t), t)
		if err != nil {
			return nil, fmt.Errorf("finding fallback %s category: %w", t, err)
		}
	}

	cache[key] = c

	return c, nil
}

func fallbackName(t category.Type) string {
	if t == category.TypeIncome {
		return category.OtherIncomeName
	}

	return category.OtherExpenseName
}
