// Package importer turns bank and spreadsheet CSV exports into transaction
// parameters.
package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

var (
	ErrNoHeader   = errors.New("no header row with date, name and amount columns")
	ErrInvalidRow = errors.New("invalid row")
)

var delimiters = []rune{';', ','}

var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"2006/01/02",
	"02.01.2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
}

// Row is one parsed line. Amount is positive; Type comes from a type column
// when present and from the amount's sign or column otherwise.
type Row struct {
	Line     int
	Date     time.Time
	Name     string
	Note     string
	Category string
	Type     category.Type
	Amount   int64
}

type Parser struct {
	decimalSep rune
	loc        *time.Location
}

// NewParser reads amounts written with decimalSep and dates in loc.
func NewParser(decimalSep rune, loc *time.Location) *Parser {
	if loc == nil {
		loc = time.Local
	}

	return &Parser{decimalSep: decimalSep, loc: loc}
}

// Parse decodes r to UTF-8, finds the header under either delimiter and reads
// the rows below it. Lines without a parseable date or a non-zero amount are
// skipped as preamble or footer.
func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, err := UTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, delim := range delimiters {
		records, err := readCSV(data, delim)
		if err != nil {
			continue
		}

		for i, rec := range records {
			if l, ok := detectLayout(rec.fields); ok {
				return p.parseRows(l, records[i+1:])
			}
		}
	}

	return nil, ErrNoHeader
}

type record struct {
	line   int
	fields []string
}

func readCSV(data []byte, delim rune) ([]record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delim
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var records []record

	for {
		fields, err := reader.Read()
		if err == io.EOF {
			return records, nil
		}

		if err != nil {
			return nil, err
		}

		line, _ := reader.FieldPos(0)
		records = append(records, record{line: line, fields: fields})
	}
}

func (p *Parser) parseRows(l layout, records []record) ([]Row, error) {
	rows := []Row{}

	for _, r := range records {
		rec, line := r.fields, r.line

		date, ok := p.parseDate(l.cell(rec, colDate))
		if !ok {
			continue
		}

		amount, typ, ok := p.parseAmount(l, rec)
		if !ok {
			continue
		}

		name := l.cell(rec, colName)
		if name == "" {
			return nil, fmt.Errorf("%w: line %d: missing name", ErrInvalidRow, line)
		}

		if t, ok := parseType(l.cell(rec, colType)); ok {
			typ = t
		} else if l.has(colType) && l.cell(rec, colType) != "" {
			return nil, fmt.Errorf("%w: line %d: unknown type %q", ErrInvalidRow, line, l.cell(rec, colType))
		}

		rows = append(rows, Row{
			Line:     line,
			Date:     date,
			Name:     name,
			Note:     l.cell(rec, colNote),
			Category: l.cell(rec, colCategory),
			Type:     typ,
			Amount:   amount,
		})
	}

	return rows, nil
}

func (p *Parser) parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, p.loc); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// parseAmount returns the absolute amount and the type implied by its sign or
// by the debit or credit column it came from. A positive amount in a signed
// column is income.
func (p *Parser) parseAmount(l layout, rec []string) (int64, category.Type, bool) {
	if l.has(colAmount) {
		cents, err := parseAmount(l.cell(rec, colAmount), p.decimalSep)
		if err != nil || cents == 0 {
			return 0, "", false
		}

		if cents < 0 {
			return -cents, category.TypeExpense, true
		}

		return cents, category.TypeIncome, true
	}

	if cents, err := parseAmount(l.cell(rec, colDebit), p.decimalSep); err == nil && cents != 0 {
		return abs(cents), category.TypeExpense, true
	}

	if cents, err := parseAmount(l.cell(rec, colCredit), p.decimalSep); err == nil && cents != 0 {
		return abs(cents), category.TypeIncome, true
	}

	return 0, "", false
}

func parseType(s string) (category.Type, bool) {
	switch strings.ToLower(s) {
	case "income", "in", "credit", "pemasukan":
		return category.TypeIncome, true
	case "expense", "out", "debit", "pengeluaran":
		return category.TypeExpense, true
	}

	return "", false
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
