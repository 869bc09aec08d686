// Package budget tracks monthly spending limits per category.
package budget

import (
	"errors"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

var (
	ErrNotFound = errors.New("budget not found")
	ErrInvalid  = errors.New("invalid budget")
)

// Budget caps the spending of one category in one month. Month is 1-12.
type Budget struct {
	ID         uuid.UUID
	CategoryID uuid.UUID
	Month      int
	Year       int
	Amount     int64
}

// Progress compares a budget with what its category spent in the month.
type Progress struct {
	Budget
	CategoryName  string
	CategoryIcon  category.Icon
	CategoryColor category.Color
	Spent         int64
}

func (p *Progress) Remaining() int64 {
	return p.Amount - p.Spent
}

// Percentage is the share of the budget already spent. It exceeds 100 when
// the budget is overrun.
func (p *Progress) Percentage() float64 {
	if p.Amount <= 0 {
		return 0
	}

	return float64(p.Spent) / float64(p.Amount) * 100
}

func (p *Progress) Over() bool {
	return p.Spent > p.Amount
}
