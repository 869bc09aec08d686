// Package report aggregates transactions over periods and derives the
// figures shown in summaries and dashboards.
package report

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

// CategorySummary is the summed amount of one category over a range.
type CategorySummary struct {
	CategoryID uuid.UUID
	Name       string
	Icon       category.Icon
	Color      category.Color
	Type       category.Type
	Total      int64
}

// Share is a category summary with its percentage of the range total.
type Share struct {
	CategorySummary
	Percentage float64
}

// DailyPoint is the summed amount of one local calendar day.
type DailyPoint struct {
	Day   time.Time
	Total int64
}
