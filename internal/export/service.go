// Package export writes transaction history as CSV.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

var header = []string{"date", "name", "note", "category", "type", "amount"}

type Lister interface {
	List(ctx context.Context, filter transaction.ListFilter) ([]*transaction.View, error)
}

type Service struct {
	transactions Lister
	loc          *time.Location
	decimalSep   rune
}

// NewService formats dates in loc and amounts with decimalSep, '.' or ','.
// With ',' fields are separated by ';' so amounts need no quoting.
func NewService(transactions Lister, loc *time.Location, decimalSep rune) *Service {
	if loc == nil {
		loc = time.Local
	}

	if decimalSep != ',' {
		decimalSep = '.'
	}

	return &Service{transactions: transactions, loc: loc, decimalSep: decimalSep}
}

// WriteCSV writes every transaction matching filter to w, newest first, and
// returns how many rows were written. Expense amounts are negative so the file
// reads back through an importer using the same decimal separator with the
// same types and amounts.
func (s *Service) WriteCSV(ctx context.Context, filter transaction.ListFilter, w io.Writer) (int, error) {
	views, err := s.transactions.List(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("listing transactions: %w", err)
	}

	cw := csv.NewWriter(w)
	if s.decimalSep == ',' {
		cw.Comma = ';'
	}

	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	for _, v := range views {
		amount := v.Amount
		if v.Type == category.TypeExpense {
			amount = -amount
		}

		record := []string{
			v.Date.In(s.loc).Format(time.DateOnly),
			v.Name,
			v.Note,
			v.CategoryName,
			string(v.Type),
			s.formatAmount(amount),
		}

		if err := cw.Write(record); err != nil {
			return 0, fmt.Errorf("writing transaction %s: %w", v.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return 0, fmt.Errorf("flushing csv: %w", err)
	}

	return len(views), nil
}

func (s *Service) formatAmount(cents int64) string {
	out := decimal.New(cents, -2).StringFixed(2)
	if s.decimalSep == ',' {
		out = strings.Replace(out, ".", ",", 1)
	}

	return out
}

// Filename names an export taken at now, e.g. "pocket-20240131.csv".
func Filename(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", prefix, now.Format("20060102"))
}
