package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/watch"
)

type ImportResult struct {
	Imported  []*Transaction
	New       []CreateParams
	Conflicts []Conflict
}

// Conflict pairs an incoming row with the stored transaction it duplicates.
type Conflict struct {
	Incoming CreateParams
	Existing *Transaction
}

type dupKey struct {
	Day    int64
	Amount int64
	Type   category.Type
	Name   string
}

func (s *Service) key(date time.Time, amount int64, t category.Type, name string) dupKey {
	return dupKey{Day: s.cal.StartOfDay(date).UnixMilli(), Amount: amount, Type: t, Name: name}
}

// ImportBatch stores params unless some of them duplicate stored transactions
// (same day, amount, type and name). On conflict nothing is written and the
// caller decides what to confirm through CreateBatch.
func (s *Service) ImportBatch(ctx context.Context, params []CreateParams) (*ImportResult, error) {
	if len(params) == 0 {
		return &ImportResult{}, nil
	}

	params, err := s.checkAll(ctx, params)
	if err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	duplicates, err := itx.FindDuplicates(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("find duplicates: %w", err)
	}

	lookup := make(map[dupKey]*Transaction, len(duplicates))
	for _, d := range duplicates {
		lookup[s.key(d.Date, d.Amount, d.Type, d.Name)] = d
	}

	var (
		newParams []CreateParams
		conflicts []Conflict
	)

	for _, p := range params {
		if existing, found := lookup[s.key(p.Date, p.Amount, p.Type, p.Name)]; found {
			conflicts = append(conflicts, Conflict{Incoming: p, Existing: existing})
			continue
		}

		newParams = append(newParams, p)
	}

	if len(conflicts) > 0 {
		return &ImportResult{New: newParams, Conflicts: conflicts}, nil
	}

	txs, err := s.commit(ctx, itx, newParams)
	if err != nil {
		return nil, err
	}

	return &ImportResult{Imported: txs}, nil
}

// CreateBatch stores all params atomically without duplicate detection.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	params, err := s.checkAll(ctx, params)
	if err != nil {
		return nil, err
	}

	minDate, maxDate := dateRange(params)

	itx, err := s.repo.BeginImport(ctx, minDate, maxDate)
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer itx.Rollback()

	return s.commit(ctx, itx, params)
}

func (s *Service) commit(ctx context.Context, itx ImportTx, params []CreateParams) ([]*Transaction, error) {
	txs := make([]*Transaction, len(params))
	for i, p := range params {
		txs[i] = fromParams(p)
	}

	if err := itx.CreateTransactions(ctx, txs); err != nil {
		return nil, fmt.Errorf("create transactions: %w", err)
	}

	if err := itx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	ids := make([]uuid.UUID, len(txs))
	for i, tx := range txs {
		ids[i] = tx.ID
	}

	s.notifier.Notify(ctx, watch.NewChange(watch.Transactions, watch.OpCreate, ids...))

	return txs, nil
}

func (s *Service) checkAll(ctx context.Context, params []CreateParams) ([]CreateParams, error) {
	cache := make(map[uuid.UUID]*category.Category)
	out := make([]CreateParams, len(params))

	for i, p := range params {
		checked, err := s.check(ctx, p, cache)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		out[i] = checked
	}

	return out, nil
}

func dateRange(params []CreateParams) (time.Time, time.Time) {
	minDate := params[0].Date
	maxDate := params[0].Date

	for _, p := range params[1:] {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}
	}

	return minDate, maxDate
}
