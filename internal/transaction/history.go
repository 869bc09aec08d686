package transaction

import (
	"context"
	"time"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/period"
)

// DayGroup is the slice of a history that falls on one local day.
type DayGroup struct {
	Day          time.Time
	Income       int64
	Expense      int64
	Transactions []*View
}

func (g DayGroup) Net() int64 {
	return g.Income - g.Expense
}

// History is a filtered transaction list grouped by day, newest day first.
type History struct {
	Days    []DayGroup
	Income  int64
	Expense int64
	Count   int
}

// Total sums every matching transaction regardless of type.
func (h History) Total() int64 {
	return h.Income + h.Expense
}

func (s *Service) History(ctx context.Context, filter ListFilter) (*History, error) {
	views, err := s.repo.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}

	return GroupByDay(s.cal, views), nil
}

// GroupByDay buckets views by local day, keeping their order within a day.
// Views are expected newest first.
func GroupByDay(cal *period.Calendar, views []*View) *History {
	h := &History{Days: []DayGroup{}, Count: len(views)}

	index := make(map[int64]int)

	for _, v := range views {
		day := cal.StartOfDay(v.Date)

		i, ok := index[day.UnixMilli()]
		if !ok {
			i = len(h.Days)
			index[day.UnixMilli()] = i
			h.Days = append(h.Days, DayGroup{Day: day})
		}

		g := &h.Days[i]
		g.Transactions = append(g.Transactions, v)

		if v.Type == category.TypeIncome {
			g.Income += v.Amount
			h.Income += v.Amount
		} else {
			g.Expense += v.Amount
			h.Expense += v.Amount
		}
	}

	return h
}
