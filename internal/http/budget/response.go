package budget

import (
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/category"
)

type budgetResponse struct {
	ID         uuid.UUID `json:"id"`
	CategoryID uuid.UUID `json:"category_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Amount     int64     `json:"amount"`
}

func toResponse(b *budget.Budget) budgetResponse {
	return budgetResponse{
		ID:         b.ID,
		CategoryID: b.CategoryID,
		Month:      b.Month,
		Year:       b.Year,
		Amount:     b.Amount,
	}
}

func toResponseList(bs []*budget.Budget) []budgetResponse {
	resp := make([]budgetResponse, len(bs))
	for i, b := range bs {
		resp[i] = toResponse(b)
	}

	return resp
}

type listResponse struct {
	Month   int              `json:"month"`
	Year    int              `json:"year"`
	Total   int64            `json:"total"`
	Budgets []budgetResponse `json:"budgets"`
}

type progressResponse struct {
	budgetResponse
	CategoryName  string         `json:"category_name"`
	CategoryIcon  category.Icon  `json:"category_icon"`
	CategoryColor category.Color `json:"category_color"`
	Spent         int64          `json:"spent"`
	Remaining     int64          `json:"remaining"`
	Percentage    float64        `json:"percentage"`
	Over          bool           `json:"over"`
}

func toProgressList(ps []*budget.Progress) []progressResponse {
	resp := make([]progressResponse, len(ps))
	for i, p := range ps {
		resp[i] = progressResponse{
			budgetResponse: toResponse(&p.Budget),
			CategoryName:   p.CategoryName,
			CategoryIcon:   p.CategoryIcon,
			CategoryColor:  p.CategoryColor,
			Spent:          p.Spent,
			Remaining:      p.Remaining(),
			Percentage:     p.Percentage(),
			Over:           p.Over(),
		}
	}

	return resp
}
