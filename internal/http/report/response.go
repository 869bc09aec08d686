package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	txHandler "github.com/MrJamesThe3rd/pocket/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/report"
)

type selectionResponse struct {
	Kind       period.Kind `json:"kind"`
	Month      int         `json:"month"`
	Year       int         `json:"year"`
	WeekOffset int         `json:"week_offset"`
}

func toSelection(s period.Selection) selectionResponse {
	return selectionResponse{Kind: s.Kind, Month: s.Month + 1, Year: s.Year, WeekOffset: s.WeekOffset}
}

type rangeDTO struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func toRange(r period.Range) rangeDTO {
	return rangeDTO{Start: r.Start, End: r.End}
}

type rangeResponse struct {
	Selection selectionResponse `json:"selection"`
	Range     rangeDTO          `json:"range"`
	Previous  selectionResponse `json:"previous"`
	Next      selectionResponse `json:"next"`
}

type categoryTotalResponse struct {
	CategoryID uuid.UUID      `json:"category_id"`
	Name       string         `json:"name"`
	Icon       category.Icon  `json:"icon"`
	Color      category.Color `json:"color"`
	Type       category.Type  `json:"type"`
	Total      int64          `json:"total"`
	Percentage float64        `json:"percentage"`
}

func toCategoryTotal(c report.CategorySummary, pct float64) categoryTotalResponse {
	return categoryTotalResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Icon:       c.Icon,
		Color:      c.Color,
		Type:       c.Type,
		Total:      c.Total,
		Percentage: pct,
	}
}

func toShares(shares []report.Share) []categoryTotalResponse {
	resp := make([]categoryTotalResponse, len(shares))
	for i, s := range shares {
		resp[i] = toCategoryTotal(s.CategorySummary, s.Percentage)
	}

	return resp
}

type dailyResponse struct {
	Day   time.Time `json:"day"`
	Total int64     `json:"total"`
}

func toDaily(points []report.DailyPoint) []dailyResponse {
	resp := make([]dailyResponse, len(points))
	for i, p := range points {
		resp[i] = dailyResponse{Day: p.Day, Total: p.Total}
	}

	return resp
}

type summaryResponse struct {
	Selection       selectionResponse       `json:"selection"`
	Range           rangeDTO                `json:"range"`
	PreviousRange   rangeDTO                `json:"previous_range"`
	Breakdown       category.Type           `json:"breakdown"`
	Total           int64                   `json:"total"`
	Income          int64                   `json:"income"`
	Expense         int64                   `json:"expense"`
	Balance         int64                   `json:"balance"`
	Categories      []categoryTotalResponse `json:"categories"`
	Top             *categoryTotalResponse  `json:"top,omitempty"`
	Daily           []dailyResponse         `json:"daily"`
	PreviousExpense int64                   `json:"previous_expense"`
	Change          float64                 `json:"change"`
}

func toSummaryResponse(s *report.Summary) summaryResponse {
	resp := summaryResponse{
		Selection:       toSelection(s.Selection),
		Range:           toRange(s.Range),
		PreviousRange:   toRange(s.PreviousRange),
		Breakdown:       s.Breakdown,
		Total:           s.Total,
		Income:          s.Income,
		Expense:         s.Expense,
		Balance:         s.Balance(),
		Categories:      toShares(s.Shares),
		Daily:           toDaily(s.Daily),
		PreviousExpense: s.PreviousExpense,
		Change:          s.Change,
	}

	if s.Top != nil {
		for _, sh := range s.Shares {
			if sh.CategoryID == s.Top.CategoryID {
				top := toCategoryTotal(*s.Top, sh.Percentage)
				resp.Top = &top

				break
			}
		}

		if resp.Top == nil {
			top := toCategoryTotal(*s.Top, 0)
			resp.Top = &top
		}
	}

	return resp
}

type dashboardResponse struct {
	Today         int64                           `json:"today"`
	Week          int64                           `json:"week"`
	Month         int64                           `json:"month"`
	MonthIncome   int64                           `json:"month_income"`
	MonthExpense  int64                           `json:"month_expense"`
	AverageDaily  float64                         `json:"average_daily"`
	Recent        []txHandler.TransactionResponse `json:"recent"`
	Trend         []dailyResponse                 `json:"trend"`
	MonthCategory []categoryTotalResponse         `json:"month_categories"`
	GeneratedAt   time.Time                       `json:"generated_at"`
}

func toDashboardResponse(d *report.Dashboard) dashboardResponse {
	return dashboardResponse{
		Today:         d.Today,
		Week:          d.Week,
		Month:         d.Month,
		MonthIncome:   d.MonthIncome,
		MonthExpense:  d.MonthExpense,
		AverageDaily:  d.AverageDaily,
		Recent:        txHandler.ToViewResponseList(d.Recent),
		Trend:         toDaily(d.Trend),
		MonthCategory: toShares(d.MonthCategory),
		GeneratedAt:   d.GeneratedAt,
	}
}

type dayResponse struct {
	Day          time.Time                       `json:"day"`
	Total        int64                           `json:"total"`
	Income       int64                           `json:"income"`
	Expense      int64                           `json:"expense"`
	IsToday      bool                            `json:"is_today"`
	HasNext      bool                            `json:"has_next"`
	Transactions []txHandler.TransactionResponse `json:"transactions"`
}

func toDayResponse(d *report.DayReport) dayResponse {
	return dayResponse{
		Day:          d.Day,
		Total:        d.Total,
		Income:       d.Income,
		Expense:      d.Expense,
		IsToday:      d.IsToday,
		HasNext:      d.HasNext,
		Transactions: txHandler.ToViewResponseList(d.Transactions),
	}
}

type categoryReportResponse struct {
	CategoryID   uuid.UUID                       `json:"category_id"`
	Range        rangeDTO                        `json:"range"`
	Total        int64                           `json:"total"`
	Transactions []txHandler.TransactionResponse `json:"transactions"`
}

func toCategoryReportResponse(c *report.CategoryReport) categoryReportResponse {
	return categoryReportResponse{
		CategoryID:   c.CategoryID,
		Range:        toRange(c.Range),
		Total:        c.Total,
		Transactions: txHandler.ToViewResponseList(c.Transactions),
	}
}
