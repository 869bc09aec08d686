package importer

import "strings"

type column int

const (
	colDate column = iota
	colName
	colAmount
	colDebit
	colCredit
	colType
	colCategory
	colNote
)

// aliases lists the header names recognised for each column, lower-cased.
var aliases = map[column][]string{
	colDate:     {"date", "data", "data mov.", "tanggal", "fecha", "datum"},
	colName:     {"name", "description", "descrição", "descricao", "nama", "keterangan", "descripción", "payee"},
	colAmount:   {"amount", "montante", "movimento", "jumlah", "nominal", "importe", "betrag"},
	colDebit:    {"debit", "débito", "debito"},
	colCredit:   {"credit", "crédito", "credito"},
	colType:     {"type", "tipe", "jenis", "tipo"},
	colCategory: {"category", "kategori", "categoria"},
	colNote:     {"note", "notes", "catatan", "memo"},
}

var lookup = func() map[string]column {
	m := make(map[string]column)
	for col, names := range aliases {
		for _, n := range names {
			m[n] = col
		}
	}

	return m
}()

// layout is the position of each recognised column in a header row.
type layout map[column]int

// detectLayout returns the layout of row if it is a usable header: a date and
// a name column, plus either an amount column or a debit and credit pair.
func detectLayout(row []string) (layout, bool) {
	l := make(layout)

	for i, cell := range row {
		col, ok := lookup[strings.ToLower(strings.TrimSpace(cell))]
		if !ok {
			continue
		}

		if _, dup := l[col]; !dup {
			l[col] = i
		}
	}

	if !l.has(colDate) || !l.has(colName) {
		return nil, false
	}

	if l.has(colAmount) || (l.has(colDebit) && l.has(colCredit)) {
		return l, true
	}

	return nil, false
}

func (l layout) has(c column) bool {
	_, ok := l[c]
	return ok
}

// cell returns the trimmed value of column c in row, or "" when absent.
func (l layout) cell(row []string, c column) string {
	i, ok := l[c]
	if !ok || i >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[i])
}
