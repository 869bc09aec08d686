package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/report"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

var (
	now   = time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)
	errDB = errors.New("db error")
	catA  = report.CategorySummary{CategoryID: uuid.New(), Name: "A", Type: category.TypeExpense, Total: 150}
	catB  = report.CategorySummary{CategoryID: uuid.New(), Name: "B", Type: category.TypeExpense, Total: 30}
)

func testCalendar() *period.Calendar {
	cal := period.NewCalendar(time.UTC, time.Monday)
	cal.Now = func() time.Time { return now }

	return cal
}

func newService(t *testing.T) (*report.Service, *report.MockRepository, *watch.Hub) {
	t.Helper()

	repo := report.NewMockRepository(gomock.NewController(t))
	hub := watch.NewHub()

	return report.NewService(repo, testCalendar(), hub), repo, hub
}

func january() period.Selection {
	return period.Selection{Kind: period.Month, Month: 0, Year: 2024}
}

func isJanuary(r period.Range) bool {
	return r.Start.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func expectSummary(repo *report.MockRepository, byCatErr error) {
	repo.EXPECT().Total(gomock.Any(), gomock.Any()).Return(int64(1180), nil)
	repo.EXPECT().
		TotalByType(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r period.Range, typ category.Type) (int64, error) {
			switch {
			case typ == category.TypeIncome:
				return 1000, nil
			case isJanuary(r):
				return 180, nil
			default:
				return 120, nil
			}
		}).
		Times(3)
	repo.EXPECT().
		ByCategory(gomock.Any(), gomock.Any(), category.TypeExpense).
		Return([]report.CategorySummary{catA, catB}, byCatErr)
	repo.EXPECT().
		DailyByType(gomock.Any(), gomock.Any(), category.TypeExpense).
		Return([]report.DailyPoint{
			{Day: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), Total: 150},
			{Day: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Total: 30},
		}, nil)
}

func TestService_Summary(t *testing.T) {
	svc, repo, _ := newService(t)
	expectSummary(repo, nil)

	got, err := svc.Summary(context.Background(), january(), category.TypeExpense)
	require.NoError(t, err)

	assert.Equal(t, int64(1180), got.Total)
	assert.Equal(t, int64(1000), got.Income)
	assert.Equal(t, int64(180), got.Expense)
	assert.Equal(t, int64(820), got.Balance())
	assert.Equal(t, int64(120), got.PreviousExpense)
	assert.InDelta(t, 50.0, got.Change, 1e-9)

	require.Len(t, got.Shares, 2)
	assert.InDelta(t, 83.333, got.Shares[0].Percentage, 0.001)
	assert.InDelta(t, 16.667, got.Shares[1].Percentage, 0.001)

	require.NotNil(t, got.Top)
	assert.Equal(t, "A", got.Top.Name)
	assert.Len(t, got.Daily, 2)

	assert.True(t, got.PreviousRange.Start.Equal(time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.Range.End.Equal(time.Date(2024, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)))
}

func TestService_Summary_Errors(t *testing.T) {
	t.Run("InvalidSelection", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.Summary(context.Background(), period.Selection{Kind: period.Month, Month: 12, Year: 2024}, category.TypeExpense)
		assert.ErrorIs(t, err, period.ErrInvalidSelection)
	})

	t.Run("QueryFailure", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Total(gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
		repo.EXPECT().TotalByType(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).AnyTimes()
		repo.EXPECT().ByCategory(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errDB).AnyTimes()
		repo.EXPECT().DailyByType(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := svc.Summary(context.Background(), january(), category.TypeExpense)
		assert.ErrorIs(t, err, errDB)
	})
}

func TestService_Summary_Empty(t *testing.T) {
	svc, repo, _ := newService(t)

	repo.EXPECT().Total(gomock.Any(), gomock.Any()).Return(int64(0), nil)
	repo.EXPECT().TotalByType(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(3)
	repo.EXPECT().ByCategory(gomock.Any(), gomock.Any(), category.TypeIncome).Return([]report.CategorySummary{}, nil)
	repo.EXPECT().DailyByType(gomock.Any(), gomock.Any(), gomock.Any()).Return([]report.DailyPoint{}, nil)

	got, err := svc.Summary(context.Background(), january(), category.TypeIncome)
	require.NoError(t, err)

	assert.Equal(t, category.TypeIncome, got.Breakdown)
	assert.Empty(t, got.Shares)
	assert.Nil(t, got.Top)
	assert.Zero(t, got.Change)
}

func TestService_Dashboard(t *testing.T) {
	svc, repo, _ := newService(t)

	recent := []*transaction.View{{Transaction: transaction.Transaction{Name: "Lunch", Amount: 30}}}

	repo.EXPECT().
		Total(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r period.Range) (int64, error) {
			switch {
			case r.Start.Equal(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)):
				return 30, nil
			case r.Start.Equal(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)):
				return 80, nil
			case isJanuary(r):
				return 1180, nil
			}

			return 0, errors.New("unexpected range")
		}).
		Times(3)
	repo.EXPECT().
		TotalByType(gomock.Any(), gomock.Any(), category.TypeIncome).
		Return(int64(1000), nil)
	repo.EXPECT().
		TotalByType(gomock.Any(), gomock.Any(), category.TypeExpense).
		Return(int64(180), nil)
	repo.EXPECT().Recent(gomock.Any(), report.RecentLimit).Return(recent, nil)
	repo.EXPECT().
		DailyByType(gomock.Any(), gomock.Any(), category.TypeExpense).
		DoAndReturn(func(_ context.Context, r period.Range, _ category.Type) ([]report.DailyPoint, error) {
			assert.True(t, r.Start.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)))
			return []report.DailyPoint{}, nil
		})
	repo.EXPECT().
		ByCategory(gomock.Any(), gomock.Any(), category.TypeExpense).
		Return([]report.CategorySummary{catA, catB}, nil)

	got, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(30), got.Today)
	assert.Equal(t, int64(80), got.Week)
	assert.Equal(t, int64(1180), got.Month)
	assert.Equal(t, int64(1000), got.MonthIncome)
	assert.Equal(t, int64(180), got.MonthExpense)
	assert.InDelta(t, 18.0, got.AverageDaily, 1e-9)
	assert.Equal(t, recent, got.Recent)
	assert.Len(t, got.MonthCategory, 2)
}

func TestService_Day(t *testing.T) {
	svc, repo, _ := newService(t)

	views := []*transaction.View{
		{Transaction: transaction.Transaction{Amount: 100, Type: category.TypeExpense}},
		{Transaction: transaction.Transaction{Amount: 500, Type: category.TypeIncome}},
	}

	repo.EXPECT().Transactions(gomock.Any(), gomock.Any()).Return(views, nil).Times(2)

	got, err := svc.Day(context.Background(), now)
	require.NoError(t, err)
	assert.True(t, got.IsToday)
	assert.False(t, got.HasNext)
	assert.Equal(t, int64(600), got.Total)
	assert.Equal(t, int64(100), got.Expense)
	assert.Equal(t, int64(500), got.Income)

	got, err = svc.Day(context.Background(), now.AddDate(0, 0, -3))
	require.NoError(t, err)
	assert.False(t, got.IsToday)
	assert.True(t, got.HasNext)
	assert.True(t, got.Day.Equal(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)))

	_, err = svc.Day(context.Background(), now.AddDate(0, 0, 1))
	assert.ErrorIs(t, err, period.ErrInvalidSelection)
}

func TestService_CategoryTransactions(t *testing.T) {
	svc, repo, _ := newService(t)

	views := []*transaction.View{
		{Transaction: transaction.Transaction{Amount: 100, CategoryID: catA.CategoryID}},
		{Transaction: transaction.Transaction{Amount: 50, CategoryID: catA.CategoryID}},
	}

	repo.EXPECT().CategoryTransactions(gomock.Any(), catA.CategoryID, gomock.Any()).Return(views, nil)

	got, err := svc.CategoryTransactions(context.Background(), catA.CategoryID, january())
	require.NoError(t, err)
	assert.Equal(t, int64(150), got.Total)
	assert.Len(t, got.Transactions, 2)
}

func TestService_WatchSummary(t *testing.T) {
	svc, repo, hub := newService(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expectSummary(repo, nil)
	expectSummary(repo, nil)

	stream := svc.WatchSummary(ctx, january(), category.TypeExpense)

	first := receive(t, stream)
	require.NoError(t, first.Err)
	assert.Equal(t, int64(180), first.Value.Expense)

	hub.Notify(ctx, watch.NewChange(watch.Transactions, watch.OpCreate))

	second := receive(t, stream)
	require.NoError(t, second.Err)
	assert.Equal(t, int64(180), second.Value.Expense)
}

func receive[T any](t *testing.T, stream <-chan watch.Result[T]) watch.Result[T] {
	t.Helper()

	select {
	case r, ok := <-stream:
		require.True(t, ok, "stream closed")
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}

	return watch.Result[T]{}
}
