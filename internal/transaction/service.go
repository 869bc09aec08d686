package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/validation"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	CreateTransaction(ctx context.Context, tx *Transaction) error
	GetTransaction(ctx context.Context, id uuid.UUID) (*View, error)
	UpdateTransaction(ctx context.Context, tx *Transaction) error
	DeleteTransaction(ctx context.Context, id uuid.UUID) error
	ListTransactions(ctx context.Context, filter ListFilter) ([]*View, error)

	BeginImport(ctx context.Context, minDate, maxDate time.Time) (ImportTx, error)
}

type ImportTx interface {
	FindDuplicates(ctx context.Context, params []CreateParams) ([]*Transaction, error)
	CreateTransactions(ctx context.Context, txs []*Transaction) error
	Commit() error
	Rollback() error
}

// CategoryReader resolves the category a transaction points at.
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
	return &Service{
		repo:       repo,
		categories: categories,
		notifier:   notifier,
		cal:        cal,
	}
}

// CreateParams describes a new transaction. An empty Type is taken from the category.
type CreateParams struct {
	Amount     int64  `validate:"gt=0"`
	Name       string `validate:"required,max=128"`
	Note       string `validate:"max=1000"`
	CategoryID uuid.UUID
	Type       category.Type `validate:"omitempty,known"`
	Date       time.Time     `validate:"required"`
}

// UpdateParams holds the fields to change. Moving to another category without
// an explicit Type adopts the new category's type.
type UpdateParams struct {
	Amount     *int64
	Name       *string
	Note       *string
	CategoryID *uuid.UUID
	Type       *category.Type
	Date       *time.Time
}

// ListFilter narrows the history. Search matches name, note and category name
// case-insensitively. Start and End are inclusive.
type ListFilter struct {
	Search     string
	CategoryID *uuid.UUID
	Type       *category.Type
	Start      *time.Time
	End        *time.Time
	Limit      int
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Transaction, error) {
	params, err := s.check(ctx, params, nil)
	if err != nil {
		return nil, err
	}

	tx := fromParams(params)
	if err := s.repo.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Transactions, watch.OpCreate, tx.ID))

	return tx, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*View, error) {
	return s.repo.GetTransaction(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*View, error) {
	return s.repo.ListTransactions(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Transaction, error) {
	current, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	p := CreateParams{
		Amount:     current.Amount,
		Name:       current.Name,
		Note:       current.Note,
		CategoryID: current.CategoryID,
		Type:       current.Type,
		Date:       current.Date,
	}

	if params.Amount != nil {
		p.Amount = *params.Amount
	}

	if params.Name != nil {
		p.Name = *params.Name
	}

	if params.Note != nil {
		p.Note = *params.Note
	}

	if params.CategoryID != nil {
		p.CategoryID = *params.CategoryID
		if params.Type == nil {
			p.Type = ""
		}
	}

	if params.Type != nil {
		p.Type = *params.Type
	}

	if params.Date != nil {
		p.Date = *params.Date
	}

	p, err = s.check(ctx, p, nil)
	if err != nil {
		return nil, err
	}

	tx := fromParams(p)
	tx.ID = current.ID
	tx.CreatedAt = current.CreatedAt

	if err := s.repo.UpdateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Transactions, watch.OpUpdate, tx.ID))

	return tx, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Transactions, watch.OpDelete, id))

	return nil
}

// check normalizes and validates params. cache, when given, memoizes category
// lookups across a batch.
func (s *Service) check(ctx context.Context, p CreateParams, cache map[uuid.UUID]*category.Category) (CreateParams, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Note = strings.TrimSpace(p.Note)

	if err := validation.Struct(p); err != nil {
		return p, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if p.CategoryID == uuid.Nil {
		return p, fmt.Errorf("%w: categoryid is required", ErrInvalid)
	}

	if p.Date.After(s.cal.Current()) {
		return p, ErrFutureDate
	}

	c, ok := cache[p.CategoryID]
	if !ok {
		var err error

		c, err = s.categories.Get(ctx, p.CategoryID)
		if err != nil {
			if errors.Is(err, category.ErrNotFound) {
				return p, fmt.Errorf("%w: %w", ErrInvalid, err)
			}

			return p, fmt.Errorf("getting category: %w", err)
		}

		if cache != nil {
			cache[p.CategoryID] = c
		}
	}

	if p.Type == "" {
		p.Type = c.Type
	}

	if p.Type != c.Type {
		return p, fmt.Errorf("%w: %s transaction in %s category %q", ErrCategoryTypeMismatch, p.Type, c.Type, c.Name)
	}

	return p, nil
}

func fromParams(p CreateParams) *Transaction {
	return &Transaction{
		Amount:     p.Amount,
		Name:       p.Name,
		Note:       p.Note,
		CategoryID: p.CategoryID,
		Type:       p.Type,
		Date:       p.Date,
	}
}
