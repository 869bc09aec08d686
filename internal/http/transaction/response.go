package transaction

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

type TransactionResponse struct {
	ID            uuid.UUID       `json:"id"`
	Amount        int64           `json:"amount"`
	Name          string          `json:"name"`
	Note          string          `json:"note,omitempty"`
	CategoryID    uuid.UUID       `json:"category_id"`
	Type          category.Type   `json:"type"`
	Date          time.Time       `json:"date"`
	CreatedAt     time.Time       `json:"created_at"`
	CategoryName  string          `json:"category_name,omitempty"`
	CategoryIcon  category.Icon   `json:"category_icon,omitempty"`
	CategoryColor *category.Color `json:"category_color,omitempty"`
}

func toResponse(tx *transaction.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:         tx.ID,
		Amount:     tx.Amount,
		Name:       tx.Name,
		Note:       tx.Note,
		CategoryID: tx.CategoryID,
		Type:       tx.Type,
		Date:       tx.Date,
		CreatedAt:  tx.CreatedAt,
	}
}

// ToViewResponse renders a transaction with its category's display fields.
func ToViewResponse(v *transaction.View) TransactionResponse {
	resp := toResponse(&v.Transaction)
	resp.CategoryName = v.CategoryName
	resp.CategoryIcon = v.CategoryIcon
	resp.CategoryColor = &v.CategoryColor

	return resp
}

func ToViewResponseList(views []*transaction.View) []TransactionResponse {
	resp := make([]TransactionResponse, len(views))
	for i, v := range views {
		resp[i] = ToViewResponse(v)
	}

	return resp
}

type dayResponse struct {
	Day          time.Time             `json:"day"`
	Income       int64                 `json:"income"`
	Expense      int64                 `json:"expense"`
	Net          int64                 `json:"net"`
	Transactions []TransactionResponse `json:"transactions"`
}

type historyResponse struct {
	Days    []dayResponse `json:"days"`
	Income  int64         `json:"income"`
	Expense int64         `json:"expense"`
	Total   int64         `json:"total"`
	Count   int           `json:"count"`
}

func toHistoryResponse(h *transaction.History) historyResponse {
	resp := historyResponse{
		Days:    make([]dayResponse, len(h.Days)),
		Income:  h.Income,
		Expense: h.Expense,
		Total:   h.Total(),
		Count:   h.Count,
	}

	for i, d := range h.Days {
		resp.Days[i] = dayResponse{
			Day:          d.Day,
			Income:       d.Income,
			Expense:      d.Expense,
			Net:          d.Net(),
			Transactions: ToViewResponseList(d.Transactions),
		}
	}

	return resp
}
