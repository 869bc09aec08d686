package budget_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

var (
	foodID   = uuid.MustParse("0190a000-0000-7000-8000-000000000001")
	salaryID = uuid.MustParse("0190a000-0000-7000-8000-000000000002")
	errDB    = errors.New("db error")
)

type mocks struct {
	repo *budget.MockRepository
	cats *budget.MockCategoryReader
}

func newService(t *testing.T) (*budget.Service, mocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := mocks{
		repo: budget.NewMockRepository(ctrl),
		cats: budget.NewMockCategoryReader(ctrl),
	}

	m.cats.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, id uuid.UUID) (*category.Category, error) {
			switch id {
			case foodID:
				return &category.Category{ID: foodID, Name: "Food", Type: category.TypeExpense}, nil
			case salaryID:
				return &category.Category{ID: salaryID, Name: "Salary", Type: category.TypeIncome}, nil
			}

			return nil, category.ErrNotFound
		}).
		AnyTimes()

	cal := period.NewCalendar(time.UTC, time.Monday)
	cal.Now = func() time.Time { return time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC) }

	return budget.NewService(m.repo, m.cats, watch.NewHub(), cal), m
}

func TestService_Set(t *testing.T) {
	valid := budget.SetParams{CategoryID: foodID, Month: 3, Year: 2024, Amount: 50000}

	type testCase struct {
		name      string
		params    budget.SetParams
		setupMock func(m mocks)
		wantErr   error
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m mocks) {
				m.repo.EXPECT().
					UpsertBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						b.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name:    "MissingCategory",
			params:  budget.SetParams{Month: 3, Year: 2024, Amount: 1},
			wantErr: budget.ErrInvalid,
		},
		{
			name:    "MonthOutOfRange",
			params:  budget.SetParams{CategoryID: foodID, Month: 13, Year: 2024, Amount: 1},
			wantErr: budget.ErrInvalid,
		},
		{
			name:    "ZeroAmount",
			params:  budget.SetParams{CategoryID: foodID, Month: 3, Year: 2024},
			wantErr: budget.ErrInvalid,
		},
		{
			name:    "UnknownCategory",
			params:  budget.SetParams{CategoryID: uuid.New(), Month: 3, Year: 2024, Amount: 1},
			wantErr: category.ErrNotFound,
		},
		{
			name:    "IncomeCategory",
			params:  budget.SetParams{CategoryID: salaryID, Month: 3, Year: 2024, Amount: 1},
			wantErr: budget.ErrInvalid,
		},
		{
			name:   "RepoError",
			params: valid,
			setupMock: func(m mocks) {
				m.repo.EXPECT().UpsertBudget(gomock.Any(), gomock.Any()).Return(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, m := newService(t)
			if tt.setupMock != nil {
				tt.setupMock(m)
			}

			got, err := svc.Set(context.Background(), tt.params)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, got.ID)
			assert.Equal(t, tt.params.Amount, got.Amount)
		})
	}
}

func TestService_Progress(t *testing.T) {
	svc, m := newService(t)

	want := []*budget.Progress{{Budget: budget.Budget{CategoryID: foodID, Month: 2, Year: 2024, Amount: 100}, Spent: 40}}

	m.repo.EXPECT().
		ListProgress(gomock.Any(), 2, 2024, gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int, r period.Range) ([]*budget.Progress, error) {
			assert.True(t, r.Start.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
			assert.True(t, r.End.Equal(time.Date(2024, 2, 29, 23, 59, 59, int(999*time.Millisecond), time.UTC)))

			return want, nil
		})

	got, err := svc.Progress(context.Background(), 2, 2024)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = svc.Progress(context.Background(), 0, 2024)
	assert.ErrorIs(t, err, budget.ErrInvalid)
}

func TestService_ListTotalDelete(t *testing.T) {
	svc, m := newService(t)
	id := uuid.New()

	m.repo.EXPECT().ListBudgets(gomock.Any(), 3, 2024).Return([]*budget.Budget{}, nil)
	m.repo.EXPECT().TotalBudget(gomock.Any(), 3, 2024).Return(int64(700), nil)
	m.repo.EXPECT().DeleteBudget(gomock.Any(), id).Return(budget.ErrNotFound)

	list, err := svc.List(context.Background(), 3, 2024)
	require.NoError(t, err)
	assert.Empty(t, list)

	total, err := svc.Total(context.Background(), 3, 2024)
	require.NoError(t, err)
	assert.Equal(t, int64(700), total)

	assert.ErrorIs(t, svc.Delete(context.Background(), id), budget.ErrNotFound)

	_, err = svc.List(context.Background(), 3, 0)
	assert.ErrorIs(t, err, budget.ErrInvalid)

	month, year := svc.Current()
	assert.Equal(t, 3, month)
	assert.Equal(t, 2024, year)
}

func TestProgress_Derived(t *testing.T) {
	tests := []struct {
		amount, spent int64
		remaining     int64
		percentage    float64
		over          bool
	}{
		{amount: 100, spent: 40, remaining: 60, percentage: 40},
		{amount: 100, spent: 100, remaining: 0, percentage: 100},
		{amount: 100, spent: 150, remaining: -50, percentage: 150, over: true},
		{amount: 0, spent: 10, remaining: -10, percentage: 0, over: true},
	}

	for _, tt := range tests {
		p := budget.Progress{Budget: budget.Budget{Amount: tt.amount}, Spent: tt.spent}

		assert.Equal(t, tt.remaining, p.Remaining())
		assert.InDelta(t, tt.percentage, p.Percentage(), 1e-9)
		assert.Equal(t, tt.over, p.Over())
	}
}
