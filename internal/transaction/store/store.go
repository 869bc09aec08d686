package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/database"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

// likeEscaper makes search terms match literally inside a LIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type Store struct {
	db     *sql.DB
	driver database.Driver
}

func New(db *sql.DB, driver database.Driver) *Store {
	return &Store{db: db, driver: driver}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// ViewColumns selects a transaction joined with its category, aliased t and c.
const ViewColumns = `
	t.id, t.amount, t.name, t.note, t.category_id, t.type, t.occurred_at, t.created_at,
	c.name, c.icon, c.color
`

// ScanView reads a row selected with ViewColumns.
func ScanView(s scanner) (*transaction.View, error) {
	var (
		v                     transaction.View
		typ, icon             string
		occurredAt, createdAt int64
		color                 int64
	)

	if err := s.Scan(
		&v.ID, &v.Amount, &v.Name, &v.Note, &v.CategoryID, &typ, &occurredAt, &createdAt,
		&v.CategoryName, &icon, &color,
	); err != nil {
		return nil, err
	}

	v.Type = category.Type(typ)
	v.Date = time.UnixMilli(occurredAt)
	v.CreatedAt = time.UnixMilli(createdAt)
	v.CategoryIcon = category.Icon(icon).OrFallback()
	v.CategoryColor = category.Color(uint32(color))

	return &v, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insert(ctx context.Context, db execer, tx *transaction.Transaction) error {
	if tx.ID == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating id: %w", err)
		}

		tx.ID = id
	}

	tx.CreatedAt = time.UnixMilli(time.Now().UnixMilli())

	_, err := db.ExecContext(ctx, `
		INSERT INTO transactions (id, amount, name, note, category_id, type, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		tx.ID, tx.Amount, tx.Name, tx.Note, tx.CategoryID, string(tx.Type),
		tx.Date.UnixMilli(), tx.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (s *Store) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	return insert(ctx, s.db, tx)
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.View, error) {
	query := `SELECT ` + ViewColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1`

	v, err := ScanView(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return v, nil
}

func (s *Store) ListTransactions(ctx context.Context, filter transaction.ListFilter) ([]*transaction.View, error) {
	query := `SELECT ` + ViewColumns + `
		FROM transactions t
		JOIN categories c ON c.id = t.category_id
		WHERE 1 = 1`

	var args []any

	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		n := len(args)
		query += fmt.Sprintf(
			" AND (LOWER(t.name) LIKE LOWER($%[1]d) ESCAPE '\\' OR LOWER(t.note) LIKE LOWER($%[1]d) ESCAPE '\\'"+
				" OR LOWER(c.name) LIKE LOWER($%[1]d) ESCAPE '\\')",
			n,
		)
	}

	if filter.CategoryID != nil {
		args = append(args, *filter.CategoryID)
		query += fmt.Sprintf(" AND t.category_id = $%d", len(args))
	}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		query += fmt.Sprintf(" AND t.type = $%d", len(args))
	}

	if filter.Start != nil {
		args = append(args, filter.Start.UnixMilli())
		query += fmt.Sprintf(" AND t.occurred_at >= $%d", len(args))
	}

	if filter.End != nil {
		args = append(args, filter.End.UnixMilli())
		query += fmt.Sprintf(" AND t.occurred_at <= $%d", len(args))
	}

	query += " ORDER BY t.occurred_at DESC, t.created_at DESC, t.id DESC"

	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	views := []*transaction.View{}

	for rows.Next() {
		v, err := ScanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}

	return views, nil
}

// UpdateTransaction rewrites the mutable fields. created_at never changes.
func (s *Store) UpdateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE transactions
		SET amount = $1, name = $2, note = $3, category_id = $4, type = $5, occurred_at = $6
		WHERE id = $7`,
		tx.Amount, tx.Name, tx.Note, tx.CategoryID, string(tx.Type), tx.Date.UnixMilli(), tx.ID,
	)
	if err != nil {
		return fmt.Errorf("updating transaction: %w", err)
	}

	return expectOne(res)
}

func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}

	return expectOne(res)
}

func expectOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}

	if n == 0 {
		return transaction.ErrNotFound
	}

	return nil
}

func importLockKey(minDate, maxDate time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(minDate.Format(time.DateOnly)))
	h.Write([]byte{0})
	h.Write([]byte(maxDate.Format(time.DateOnly)))

	return int64(h.Sum64())
}

type importTx struct {
	tx *sql.Tx
}

// BeginImport opens the transaction an import runs in. On postgres concurrent
// imports of the same date span are serialized with an advisory lock; sqlite
// already allows a single writer.
func (s *Store) BeginImport(ctx context.Context, minDate, maxDate time.Time) (transaction.ImportTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning import tx: %w", err)
	}

	if s.driver == database.DriverPostgres {
		if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", importLockKey(minDate, maxDate)); err != nil {
			dbTx.Rollback()
			return nil, fmt.Errorf("acquiring import lock: %w", err)
		}
	}

	return &importTx{tx: dbTx}, nil
}

func (itx *importTx) Commit() error   { return itx.tx.Commit() }
func (itx *importTx) Rollback() error { return itx.tx.Rollback() }

// FindDuplicates returns stored transactions in the params' date span that share
// a calendar day, amount, type and name with one of the params. Days are
// compared on the stored instant's date in the instant's own location.
func (itx *importTx) FindDuplicates(ctx context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	type lookupKey struct {
		Date   string
		Amount int64
		Type   category.Type
		Name   string
	}

	loc := params[0].Date.Location()
	minDate := params[0].Date
	maxDate := params[0].Date
	keySet := make(map[lookupKey]struct{}, len(params))

	for _, p := range params {
		if p.Date.Before(minDate) {
			minDate = p.Date
		}

		if p.Date.After(maxDate) {
			maxDate = p.Date
		}

		keySet[lookupKey{p.Date.Format(time.DateOnly), p.Amount, p.Type, p.Name}] = struct{}{}
	}

	start := time.Date(minDate.Year(), minDate.Month(), minDate.Day(), 0, 0, 0, 0, loc)
	end := time.Date(maxDate.Year(), maxDate.Month(), maxDate.Day()+1, 0, 0, 0, 0, loc)

	rows, err := itx.tx.QueryContext(ctx, `
		SELECT id, amount, name, note, category_id, type, occurred_at, created_at
		FROM transactions
		WHERE occurred_at >= $1 AND occurred_at < $2
		ORDER BY occurred_at ASC`,
		start.UnixMilli(), end.UnixMilli(),
	)
	if err != nil {
		return nil, fmt.Errorf("finding duplicates: %w", err)
	}
	defer rows.Close()

	var duplicates []*transaction.Transaction

	for rows.Next() {
		var (
			tx                    transaction.Transaction
			typ                   string
			occurredAt, createdAt int64
		)

		if err := rows.Scan(&tx.ID, &tx.Amount, &tx.Name, &tx.Note, &tx.CategoryID, &typ, &occurredAt, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		tx.Type = category.Type(typ)
		tx.Date = time.UnixMilli(occurredAt).In(loc)
		tx.CreatedAt = time.UnixMilli(createdAt)

		if _, found := keySet[lookupKey{tx.Date.Format(time.DateOnly), tx.Amount, tx.Type, tx.Name}]; !found {
			continue
		}

		duplicates = append(duplicates, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating duplicate rows: %w", err)
	}

	return duplicates, nil
}

func (itx *importTx) CreateTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	for _, tx := range txs {
		if err := insert(ctx, itx.tx, tx); err != nil {
			return err
		}
	}

	return nil
}
