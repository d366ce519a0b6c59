package tabular

import (
	"encoding/json"
)

// Cell is one table value. Present is false when the source record lacked the column.
type Cell struct {
	Value   any
	Present bool
}

// Absent is the marker for a column the source record did not carry
var Absent = Cell{}

// Table is an ordered set of rows over a derived, ordered column set
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]Cell
}

// New returns an empty table with the given columns
func New(columns ...string) *Table {
	t := &Table{index: map[string]int{}}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

// FromRecords builds one row per record. Columns are the union of record
// keys in first-seen order.
func FromRecords(records []Record) *Table {
	t := New()
	for _, rec := range records {
		t.Append(rec)
	}
	return t
}

// Append adds rec as a new row, widening the table with any unseen keys
func (t *Table) Append(rec Record) {
	for _, f := range rec {
		t.addColumn(f.Key)
	}
	row := make([]Cell, len(t.columns))
	for _, f := range rec {
		row[t.index[f.Key]] = Cell{Value: f.Value, Present: true}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) addColumn(name string) {
	if _, ok := t.index[name]; ok {
		return
	}
	if t.index == nil {
		t.index = map[string]int{}
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
}

// Columns returns a copy of the column names in order
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether name is a column
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len is the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Empty reports whether the table has no rows
func (t *Table) Empty() bool {
	return len(t.rows) == 0
}

// Cell returns the cell at row i for column. Out of range rows and unknown
// columns are Absent.
func (t *Table) Cell(i int, column string) Cell {
	if i < 0 || i >= len(t.rows) {
		return Absent
	}
	j, ok := t.index[column]
	if !ok || j >= len(t.rows[i]) {
		return Absent
	}
	return t.rows[i][j]
}

// Value returns the value at row i for column and whether it was present
func (t *Table) Value(i int, column string) (any, bool) {
	c := t.Cell(i, column)
	return c.Value, c.Present
}

// Column returns every row's cell for name
func (t *Table) Column(name string) []Cell {
	out := make([]Cell, len(t.rows))
	for i := range t.rows {
		out[i] = t.Cell(i, name)
	}
	return out
}

// Row returns row i as a record of its present cells, in column order
func (t *Table) Row(i int) Record {
	if i < 0 || i >= len(t.rows) {
		return nil
	}
	rec := Record{}
	for j, c := range t.columns {
		if j < len(t.rows[i]) && t.rows[i][j].Present {
			rec = append(rec, Field{Key: c, Value: t.rows[i][j].Value})
		}
	}
	return rec
}

// Records returns every row as a record
func (t *Table) Records() []Record {
	out := make([]Record, len(t.rows))
	for i := range t.rows {
		out[i] = t.Row(i)
	}
	return out
}

// MarshalJSON writes the rows as an array of ordered objects, skipping absent cells
func (t *Table) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Records())
}
