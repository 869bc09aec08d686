package category_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

func assignIDs(_ context.Context, cs []*category.Category) error {
	for _, c := range cs {
		c.ID = uuid.New()
	}

	return nil
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    category.CreateParams
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: category.CreateParams{
				Name:  "  Coffee ",
				Icon:  category.IconRestaurant,
				Color: 0xFF795548,
				Type:  category.TypeExpense,
			},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().
					CreateCategories(gomock.Any(), gomock.Len(1)).
					DoAndReturn(assignIDs)
			},
		},
		{
			name:    "EmptyName",
			params:  category.CreateParams{Name: "  ", Icon: category.IconRestaurant, Type: category.TypeExpense},
			wantErr: category.ErrInvalid,
		},
		{
			name:    "UnknownIcon",
			params:  category.CreateParams{Name: "Coffee", Icon: "rocket", Type: category.TypeExpense},
			wantErr: category.ErrInvalid,
		},
		{
			name:    "UnknownType",
			params:  category.CreateParams{Name: "Coffee", Icon: category.IconRestaurant, Type: "transfer"},
			wantErr: category.ErrInvalid,
		},
		{
			name:   "RepoError",
			params: category.CreateParams{Name: "Coffee", Icon: category.IconRestaurant, Type: category.TypeExpense},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().CreateCategories(gomock.Any(), gomock.Any()).Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := category.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			hub := watch.NewHub()
			sub := hub.Subscribe(watch.Categories)
			defer sub.Close()

			svc := category.NewService(repo, hub)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)

				if errors.Is(tt.wantErr, category.ErrInvalid) {
					assert.ErrorIs(t, err, category.ErrInvalid)
				}

				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "Coffee", got.Name)
			assert.NotEqual(t, uuid.Nil, got.ID)

			select {
			case <-sub.C():
			default:
				t.Fatal("expected a change notification")
			}
		})
	}
}

func TestService_Update(t *testing.T) {
	id := uuid.New()

	existing := func() *category.Category {
		return &category.Category{ID: id, Name: "Food", Icon: category.IconRestaurant, Color: 1, Type: category.TypeExpense}
	}

	type testCase struct {
		name      string
		params    category.UpdateParams
		setupMock func(m *category.MockRepository)
		want      *category.Category
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "RenameKeepsType",
			params: category.UpdateParams{Name: ptr("Meals"), Color: ptr(category.Color(0xFF000000))},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(existing(), nil)
				m.EXPECT().UpdateCategory(gomock.Any(), gomock.Any()).Return(nil)
			},
			want: &category.Category{ID: id, Name: "Meals", Icon: category.IconRestaurant, Color: 0xFF000000, Type: category.TypeExpense},
		},
		{
			name:   "InvalidIcon",
			params: category.UpdateParams{Icon: ptr(category.Icon("rocket"))},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(existing(), nil)
			},
			wantErr: category.ErrInvalid,
		},
		{
			name:   "NotFound",
			params: category.UpdateParams{Name: ptr("Meals")},
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)
			},
			wantErr: category.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			svc := category.NewService(repo, watch.NewHub())
			got, err := svc.Update(context.Background(), id, tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestService_Delete(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		setupMock func(m *category.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Unreferenced",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id}, nil)
				m.EXPECT().CountTransactions(gomock.Any(), id).Return(0, nil)
				m.EXPECT().DeleteCategory(gomock.Any(), id).Return(nil)
			},
		},
		{
			name: "InUse",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(&category.Category{ID: id}, nil)
				m.EXPECT().CountTransactions(gomock.Any(), id).Return(3, nil)
			},
			wantErr: category.ErrInUse,
		},
		{
			name: "NotFound",
			setupMock: func(m *category.MockRepository) {
				m.EXPECT().GetCategory(gomock.Any(), id).Return(nil, category.ErrNotFound)
			},
			wantErr: category.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)

			repo := category.NewMockRepository(ctrl)
			tt.setupMock(repo)

			err := category.NewService(repo, watch.NewHub()).Delete(context.Background(), id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestService_SeedDefaults(t *testing.T) {
	t.Run("EmptyStore", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := category.NewMockRepository(ctrl)

		var seeded []*category.Category

		repo.EXPECT().CountCategories(gomock.Any()).Return(0, nil)
		repo.EXPECT().
			CreateCategories(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, cs []*category.Category) error {
				seeded = cs
				return assignIDs(ctx, cs)
			})

		n, err := category.NewService(repo, watch.NewHub()).SeedDefaults(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 13, n)

		var income, expense int

		for _, c := range seeded {
			assert.True(t, c.Icon.Valid(), c.Name)

			switch c.Type {
			case category.TypeIncome:
				income++
			case category.TypeExpense:
				expense++
			}
		}

		assert.Equal(t, 5, income)
		assert.Equal(t, 8, expense)
	})

	t.Run("AlreadySeeded", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := category.NewMockRepository(ctrl)

		repo.EXPECT().CountCategories(gomock.Any()).Return(4, nil)

		n, err := category.NewService(repo, watch.NewHub()).SeedDefaults(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})
}

func TestService_FindByName(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := category.NewMockRepository(ctrl)

	want := &category.Category{ID: uuid.New(), Name: "Food"}

	repo.EXPECT().
		ListCategories(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, f category.ListFilter) ([]*category.Category, error) {
			assert.Equal(t, "food", *f.Name)
			assert.Equal(t, category.TypeExpense, *f.Type)

			return []*category.Category{want}, nil
		})
	repo.EXPECT().ListCategories(gomock.Any(), gomock.Any()).Return(nil, nil)

	svc := category.NewService(repo, watch.NewHub())

	got, err := svc.FindByName(context.Background(), " food ", category.TypeExpense)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.FindByName(context.Background(), "nope", category.TypeExpense)
	assert.ErrorIs(t, err, category.ErrNotFound)
}

// ptr returns a pointer to a copy of v.
func ptr[T any](v T) *T { return &v }
