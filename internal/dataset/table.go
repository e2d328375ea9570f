package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finsift-dev/finsift/internal/model"
)

// Structural errors. Data-quality problems inside cells are never errors at
// this layer; they are resolved by the cleaners.
var (
	ErrMissingColumn = errors.New("missing required column")
	ErrEmptyTable    = errors.New("table has no header row")
)

// Table is a raw tabular file: a header plus untyped string cells. Cleaners
// consume Tables and produce typed entity slices.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string

	index map[string]int
}

// NewTable builds a Table from a header and rows.
func NewTable(name string, columns []string, rows [][]string) *Table {
	idx := make(map[string]int, len(columns))
	for i, c := range columns {
		idx[strings.TrimSpace(c)] = i
	}
	return &Table{Name: name, Columns: columns, Rows: rows, index: idx}
}

// ReadTable parses a CSV stream into a Table. The first record is the header.
func ReadTable(name string, r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s CSV: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", name, ErrEmptyTable)
	}
	return NewTable(name, records[0], records[1:]), nil
}

// Require returns a structural error if any of the named columns is absent.
func (t *Table) Require(columns ...string) error {
	for _, c := range columns {
		if _, ok := t.index[c]; !ok {
			return fmt.Errorf("%s: %w: %s", t.Name, ErrMissingColumn, c)
		}
	}
	return nil
}

// Col returns the index of a column, or -1 when absent.
func (t *Table) Col(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// Cell returns the trimmed cell at (row, col index). Out-of-range lookups
// return "", which cleaners treat as missing.
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Lookup parses a Table as an id-to-name lookup, skipping rows whose id does
// not parse. Used for the five lookup tables, which need no cleaning.
func Lookup(t *Table, idColumn, nameColumn string) (model.Lookup, error) {
	if err := t.Require(idColumn, nameColumn); err != nil {
		return nil, err
	}
	idCol, nameCol := t.Col(idColumn), t.Col(nameColumn)

	m := make(model.Lookup, t.Len())
	for i := range t.Rows {
		id, err := strconv.ParseInt(t.Cell(i, idCol), 10, 64)
		if err != nil {
			continue
		}
		m[id] = t.Cell(i, nameCol)
	}
	return m, nil
}
