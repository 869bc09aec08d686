package report

import "time"

// PercentageBreakdown returns each summary's share of total. A non-positive
// total yields an empty list.
func PercentageBreakdown(items []CategorySummary, total int64) []Share {
	shares := []Share{}
	if total <= 0 {
		return shares
	}

	for _, it := range items {
		shares = append(shares, Share{
			CategorySummary: it,
			Percentage:      float64(it.Total) / float64(total) * 100,
		})
	}

	return shares
}

// TopCategory returns the summary with the largest total. Equal totals are
// resolved by name.
func TopCategory(items []CategorySummary) (CategorySummary, bool) {
	if len(items) == 0 {
		return CategorySummary{}, false
	}

	top := items[0]

	for _, it := range items[1:] {
		if it.Total > top.Total || (it.Total == top.Total && it.Name < top.Name) {
			top = it
		}
	}

	return top, true
}

// PeriodChange is the percentage change from previous to current. Growth from
// nothing counts as 100.
func PeriodChange(current, previous int64) float64 {
	switch {
	case previous > 0:
		return float64(current-previous) / float64(previous) * 100
	case current > 0:
		return 100
	default:
		return 0
	}
}

// AverageDaily spreads a month-to-date total over the days elapsed so far,
// today included.
func AverageDaily(monthTotal int64, now time.Time) float64 {
	day := now.Day()
	if day <= 0 {
		return 0
	}

	return float64(monthTotal) / float64(day)
}
