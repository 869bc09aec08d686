package transaction

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

var (
	ErrNotFound             = errors.New("transaction not found")
	ErrInvalid              = errors.New("invalid transaction")
	ErrFutureDate           = errors.New("transaction date is in the future")
	ErrCategoryTypeMismatch = errors.New("transaction type does not match its category")
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID         uuid.UUID
	Amount     int64 // Amount in minor units, always positive
	Name       string
	Note       string
	CategoryID uuid.UUID
	Type       category.Type
	Date       time.Time
	CreatedAt  time.Time
}

func (t *Transaction) IsExpense() bool {
	return t.Type == category.TypeExpense
}

// View is a transaction joined with the display fields of its category.
type View struct {
	Transaction
	CategoryName  string
	CategoryIcon  category.Icon
	CategoryColor category.Color
}
