package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/validation"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=budget
type Repository interface {
	// UpsertBudget replaces the amount of an existing budget for the same
	// category and month, and sets b.ID to the stored row's id.
	UpsertBudget(ctx context.Context, b *Budget) error
	GetBudget(ctx context.Context, id uuid.UUID) (*Budget, error)
	ListBudgets(ctx context.Context, month, year int) ([]*Budget, error)
	DeleteBudget(ctx context.Context, id uuid.UUID) error
	TotalBudget(ctx context.Context, month, year int) (int64, error)
	// ListProgress returns the month's budgets with the expense total of each
	// category over r.
	ListProgress(ctx context.Context, month, year int, r period.Range) ([]*Progress, error)
}

type CategoryReader interface {
	Get(ctx context.Context, id uuid.UUID) (*category.Category, error)
}

type Service struct {
	repo       Repository
	categories CategoryReader
	notifier   watch.Notifier
	cal        *period.Calendar
}

func NewService(repo Repository, categories CategoryReader, notifier watch.Notifier, cal *period.Calendar) *Service {
	return &Service{repo: repo, categories: categories, notifier: notifier, cal: cal}
}

type SetParams struct {
	CategoryID uuid.UUID `validate:"required"`
	Month      int       `validate:"min=1,max=12"`
	Year       int       `validate:"min=1,max=9999"`
	Amount     int64     `validate:"gt=0"`
}

// Set creates the budget of a category for a month or replaces its amount.
// Only expense categories can carry a budget.
func (s *Service) Set(ctx context.Context, params SetParams) (*Budget, error) {
	if err := validation.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	c, err := s.categories.Get(ctx, params.CategoryID)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	if c.Type != category.TypeExpense {
		return nil, fmt.Errorf("%w: category %q is not an expense category", ErrInvalid, c.Name)
	}

	b := &Budget{
		CategoryID: params.CategoryID,
		Month:      params.Month,
		Year:       params.Year,
		Amount:     params.Amount,
	}

	if err := s.repo.UpsertBudget(ctx, b); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Budgets, watch.OpUpdate, b.ID))

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Budget, error) {
	return s.repo.GetBudget(ctx, id)
}

func (s *Service) List(ctx context.Context, month, year int) ([]*Budget, error) {
	if err := checkMonth(month, year); err != nil {
		return nil, err
	}

	return s.repo.ListBudgets(ctx, month, year)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteBudget(ctx, id); err != nil {
		return err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Budgets, watch.OpDelete, id))

	return nil
}

// Total sums every budget of the month.
func (s *Service) Total(ctx context.Context, month, year int) (int64, error) {
	if err := checkMonth(month, year); err != nil {
		return 0, err
	}

	return s.repo.TotalBudget(ctx, month, year)
}

// Progress reports each budget of the month against the category's spending
// over the whole calendar month.
func (s *Service) Progress(ctx context.Context, month, year int) ([]*Progress, error) {
	if err := checkMonth(month, year); err != nil {
		return nil, err
	}

	rng, err := s.cal.Resolve(period.Selection{Kind: period.Month, Month: month - 1, Year: year})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	return s.repo.ListProgress(ctx, month, year, rng)
}

// Current returns the calendar's current month and year.
func (s *Service) Current() (month, year int) {
	now := s.cal.Current()
	return int(now.Month()), now.Year()
}

func checkMonth(month, year int) error {
	if month < 1 || month > 12 || year < 1 || year > 9999 {
		return fmt.Errorf("%w: month %d/%d out of range", ErrInvalid, month, year)
	}

	return nil
}
