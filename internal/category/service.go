package category

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/validation"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=category
type Repository interface {
	CreateCategories(ctx context.Context, cs []*Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	ListCategories(ctx context.Context, filter ListFilter) ([]*Category, error)
	UpdateCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	CountCategories(ctx context.Context) (int, error)
	CountTransactions(ctx context.Context, id uuid.UUID) (int, error)
}

type Service struct {
	repo     Repository
	notifier watch.Notifier
}

func NewService(repo Repository, notifier watch.Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

type CreateParams struct {
	Name  string `validate:"required,max=64"`
	Icon  Icon   `validate:"known"`
	Color Color
	Type  Type `validate:"known"`
}

// UpdateParams changes the presentation of a category. The type is fixed at creation.
type UpdateParams struct {
	Name  *string
	Icon  *Icon
	Color *Color
}

type ListFilter struct {
	Type *Type
	Name *string
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Category, error) {
	params.Name = strings.TrimSpace(params.Name)

	if err := validation.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	c := &Category{
		Name:  params.Name,
		Icon:  params.Icon,
		Color: params.Color,
		Type:  params.Type,
	}

	if err := s.repo.CreateCategories(ctx, []*Category{c}); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Categories, watch.OpCreate, c.ID))

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Category, error) {
	return s.repo.ListCategories(ctx, filter)
}

// FindByName returns the category of the given type whose name matches case-insensitively.
func (s *Service) FindByName(ctx context.Context, name string, t Type) (*Category, error) {
	name = strings.TrimSpace(name)

	cs, err := s.repo.ListCategories(ctx, ListFilter{Type: &t, Name: &name})
	if err != nil {
		return nil, err
	}

	if len(cs) == 0 {
		return nil, ErrNotFound
	}

	return cs[0], nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, params UpdateParams) (*Category, error) {
	c, err := s.repo.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		c.Name = strings.TrimSpace(*params.Name)
	}

	if params.Icon != nil {
		c.Icon = *params.Icon
	}

	if params.Color != nil {
		c.Color = *params.Color
	}

	check := CreateParams{Name: c.Name, Icon: c.Icon, Color: c.Color, Type: c.Type}
	if err := validation.Struct(check); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Categories, watch.OpUpdate, c.ID))

	return c, nil
}

// Delete removes a category that no transaction references. Its budgets go with it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.GetCategory(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.CountTransactions(ctx, id)
	if err != nil {
		return fmt.Errorf("counting transactions: %w", err)
	}

	if n > 0 {
		return fmt.Errorf("%w: %d transactions", ErrInUse, n)
	}

	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Categories, watch.OpDelete, id))

	return nil
}

// SeedDefaults inserts the default categories when the store has none and
// reports how many were created.
func (s *Service) SeedDefaults(ctx context.Context) (int, error) {
	n, err := s.repo.CountCategories(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting categories: %w", err)
	}

	if n > 0 {
		return 0, nil
	}

	defaults := Defaults()

	cs := make([]*Category, len(defaults))
	for i, p := range defaults {
		cs[i] = &Category{Name: p.Name, Icon: p.Icon, Color: p.Color, Type: p.Type}
	}

	if err := s.repo.CreateCategories(ctx, cs); err != nil {
		return 0, fmt.Errorf("seeding categories: %w", err)
	}

	ids := make([]uuid.UUID, len(cs))
	for i, c := range cs {
		ids[i] = c.ID
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Categories, watch.OpCreate, ids...))

	return len(cs), nil
}
