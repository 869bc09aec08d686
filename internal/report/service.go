package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

// Repository is the aggregation query layer. Ranges are inclusive at both
// ends; an inverted range matches nothing. Sums over no rows are zero.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report
type Repository interface {
	Total(ctx context.Context, r period.Range) (int64, error)
	TotalByType(ctx context.Context, r period.Range, t category.Type) (int64, error)
	// ByCategory excludes categories without transactions of type t in range
	// and orders by total descending, then name.
	ByCategory(ctx context.Context, r period.Range, t category.Type) ([]CategorySummary, error)
	// DailyByType buckets by local day, ascending, without empty days.
	DailyByType(ctx context.Context, r period.Range, t category.Type) ([]DailyPoint, error)
	Recent(ctx context.Context, limit int) ([]*transaction.View, error)
	Transactions(ctx context.Context, r period.Range) ([]*transaction.View, error)
	CategoryTransactions(ctx context.Context, categoryID uuid.UUID, r period.Range) ([]*transaction.View, error)
}

type Service struct {
	repo Repository
	cal  *period.Calendar
	hub  *watch.Hub
}

func NewService(repo Repository, cal *period.Calendar, hub *watch.Hub) *Service {
	return &Service{repo: repo, cal: cal, hub: hub}
}

const (
	RecentLimit = 5
	TrendDays   = 7
)

// Summary is the report of one selected period.
type Summary struct {
	Selection       period.Selection
	Range           period.Range
	PreviousRange   period.Range
	Breakdown       category.Type
	Total           int64
	Income          int64
	Expense         int64
	Shares          []Share
	Top             *CategorySummary
	Daily           []DailyPoint
	PreviousExpense int64
	Change          float64
}

func (s *Summary) Balance() int64 {
	return s.Income - s.Expense
}

// Summary resolves sel and aggregates it. breakdown picks which type the
// category shares and top category are computed over.
func (s *Service) Summary(ctx context.Context, sel period.Selection, breakdown category.Type) (*Summary, error) {
	if !breakdown.Valid() {
		breakdown = category.TypeExpense
	}

	rng, err := s.cal.Resolve(sel)
	if err != nil {
		return nil, err
	}

	prev, err := s.cal.PreviousRange(sel)
	if err != nil {
		return nil, err
	}

	sum := &Summary{
		Selection:     sel,
		Range:         rng,
		PreviousRange: prev,
		Breakdown:     breakdown,
	}

	var byCategory []CategorySummary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		sum.Total, err = s.repo.Total(gctx, rng)
		return wrap("total", err)
	})
	g.Go(func() (err error) {
		sum.Income, err = s.repo.TotalByType(gctx, rng, category.TypeIncome)
		return wrap("income total", err)
	})
	g.Go(func() (err error) {
		sum.Expense, err = s.repo.TotalByType(gctx, rng, category.TypeExpense)
		return wrap("expense total", err)
	})
	g.Go(func() (err error) {
		sum.PreviousExpense, err = s.repo.TotalByType(gctx, prev, category.TypeExpense)
		return wrap("previous expense total", err)
	})
	g.Go(func() (err error) {
		byCategory, err = s.repo.ByCategory(gctx, rng, breakdown)
		return wrap("category totals", err)
	})
	g.Go(func() (err error) {
		sum.Daily, err = s.repo.DailyByType(gctx, rng, category.TypeExpense)
		return wrap("daily totals", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	breakdownTotal := sum.Expense
	if breakdown == category.TypeIncome {
		breakdownTotal = sum.Income
	}

	sum.Shares = PercentageBreakdown(byCategory, breakdownTotal)
	sum.Change = PeriodChange(sum.Expense, sum.PreviousExpense)

	if top, ok := TopCategory(byCategory); ok {
		sum.Top = &top
	}

	return sum, nil
}

// Dashboard is the at-a-glance view of the current day, week and month.
type Dashboard struct {
	Today         int64
	Week          int64
	Month         int64
	MonthIncome   int64
	MonthExpense  int64
	AverageDaily  float64
	Recent        []*transaction.View
	Trend         []DailyPoint
	MonthCategory []Share
	GeneratedAt   time.Time
}

func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	now := s.cal.Current()

	var (
		today = s.cal.Today()
		week  = s.cal.ThisWeek()
		month = s.cal.ThisMonth()
		trend = period.Range{Start: s.cal.DaysAgo(TrendDays), End: today.End}
	)

	d := &Dashboard{GeneratedAt: now}

	var byCategory []CategorySummary

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		d.Today, err = s.repo.Total(gctx, today)
		return wrap("today total", err)
	})
	g.Go(func() (err error) {
		d.Week, err = s.repo.Total(gctx, week)
		return wrap("week total", err)
	})
	g.Go(func() (err error) {
		d.Month, err = s.repo.Total(gctx, month)
		return wrap("month total", err)
	})
	g.Go(func() (err error) {
		d.MonthIncome, err = s.repo.TotalByType(gctx, month, category.TypeIncome)
		return wrap("month income", err)
	})
	g.Go(func() (err error) {
		d.MonthExpense, err = s.repo.TotalByType(gctx, month, category.TypeExpense)
		return wrap("month expense", err)
	})
	g.Go(func() (err error) {
		d.Recent, err = s.repo.Recent(gctx, RecentLimit)
		return wrap("recent transactions", err)
	})
	g.Go(func() (err error) {
		d.Trend, err = s.repo.DailyByType(gctx, trend, category.TypeExpense)
		return wrap("daily trend", err)
	})
	g.Go(func() (err error) {
		byCategory, err = s.repo.ByCategory(gctx, month, category.TypeExpense)
		return wrap("month categories", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d.AverageDaily = AverageDaily(d.MonthExpense, now)
	d.MonthCategory = PercentageBreakdown(byCategory, d.MonthExpense)

	return d, nil
}

// DayReport lists the transactions of one day with navigation hints.
type DayReport struct {
	Day          time.Time
	Total        int64
	Income       int64
	Expense      int64
	Transactions []*transaction.View
	IsToday      bool
	HasNext      bool
}

// Day reports the local day containing t. Days after today are rejected.
func (s *Service) Day(ctx context.Context, t time.Time) (*DayReport, error) {
	cursor := s.cal.Cursor(t)
	rng := cursor.Range()

	if rng.Start.After(s.cal.Current()) {
		return nil, fmt.Errorf("%w: %s is in the future", period.ErrInvalidSelection, rng.Start.Format(time.DateOnly))
	}

	views, err := s.repo.Transactions(ctx, rng)
	if err != nil {
		return nil, fmt.Errorf("day transactions: %w", err)
	}

	r := &DayReport{
		Day:          cursor.Day(),
		Transactions: views,
		IsToday:      cursor.IsToday(),
		HasNext:      cursor.CanAdvance(),
	}

	for _, v := range views {
		r.Total += v.Amount

		if v.IsExpense() {
			r.Expense += v.Amount
		} else {
			r.Income += v.Amount
		}
	}

	return r, nil
}

// CategoryReport lists one category's transactions over a period.
type CategoryReport struct {
	CategoryID   uuid.UUID
	Range        period.Range
	Total        int64
	Transactions []*transaction.View
}

func (s *Service) CategoryTransactions(ctx context.Context, categoryID uuid.UUID, sel period.Selection) (*CategoryReport, error) {
	rng, err := s.cal.Resolve(sel)
	if err != nil {
		return nil, err
	}

	views, err := s.repo.CategoryTransactions(ctx, categoryID, rng)
	if err != nil {
		return nil, fmt.Errorf("category transactions: %w", err)
	}

	r := &CategoryReport{CategoryID: categoryID, Range: rng, Transactions: views}
	for _, v := range views {
		r.Total += v.Amount
	}

	return r, nil
}

// WatchSummary streams Summary for sel, recomputed after every transaction or
// category change.
func (s *Service) WatchSummary(ctx context.Context, sel period.Selection, breakdown category.Type) <-chan watch.Result[*Summary] {
	return watch.Watch(ctx, s.hub, func(ctx context.Context) (*Summary, error) {
		return s.Summary(ctx, sel, breakdown)
	}, watch.Transactions, watch.Categories)
}

func (s *Service) WatchDashboard(ctx context.Context) <-chan watch.Result[*Dashboard] {
	return watch.Watch(ctx, s.hub, s.Dashboard, watch.Transactions, watch.Categories)
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("querying %s: %w", what, err)
}
