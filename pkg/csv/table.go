// Package csv parses and serializes delimited text (CSV, TSV and variants)
// into an in-memory Table of Rows of typed Fields, and back.
//
// A Dialect describes the syntax: delimiter, quote character, escape
// character, line terminator, doubled-quote escaping, leading whitespace
// handling and the serializer's quoting policy.
//
// # Example usage with Parse:
//
//	table, err := csv.Parse([]byte("Name,Age\nJohn,30\n"), csv.Default)
//	if err != nil {
//	    // handle error
//	}
//	age, ok := table.Integer(1, 1) // 30, true
//
// # Example usage with Serialize:
//
//	table := csv.NewTable(csv.Excel)
//	table.AddRow("a,b", "c")
//	out := csv.Serialize(table) // "\"a,b\",c\r\n"
//
// # Indexing
//
// Row and column indices are 0-based everywhere. Every lookup is
// bounds-checked and fails with a *RangeError instead of panicking.
//
// # Thread Safety
//
// Parse and Serialize share no mutable state and may run concurrently on
// different inputs. A Table is not safe for concurrent use: callers that
// share one across goroutines must hold a single lock around every access.
package csv

import (
	"fmt"

	"github.com/samber/lo"
)

// Table is an ordered, growable sequence of rows bound to one Dialect.
// Capacity grows by doubling; Cap() is never less than Len().
type Table struct {
	dialect  *Dialect
	rows     []*Row
	reporter Reporter
	version  uint64
}

// NewTable creates an empty table. A nil dialect means Default.
func NewTable(d *Dialect) *Table {
	return &Table{
		dialect:  d.orDefault(),
		rows:     make([]*Row, 0, initialTableCapacity),
		reporter: NopReporter,
	}
}

// FromRecords creates a table of string fields.
func FromRecords(d *Dialect, records [][]string) *Table {
	t := NewTable(d)
	for _, rec := range records {
		t.AddRow(rec...)
	}
	return t
}

// Dialect returns the table's dialect.
func (t *Table) Dialect() *Dialect {
	return t.dialect.orDefault()
}

// Reporter returns the diagnostics sink used by the typed accessors.
func (t *Table) Reporter() Reporter {
	return reporterOrNop(t.reporter)
}

// SetReporter replaces the diagnostics sink. A nil reporter discards diagnostics.
func (t *Table) SetReporter(r Reporter) {
	t.reporter = reporterOrNop(r)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Cap returns the current row storage capacity.
func (t *Table) Cap() int {
	return cap(t.rows)
}

// Row returns the row at index i. The row stays owned by the table.
func (t *Table) Row(i int) (*Row, error) {
	if i < 0 || i >= len(t.rows) {
		return nil, &RangeError{What: "row", Index: i, Len: len(t.rows)}
	}
	return t.rows[i], nil
}

// Field returns the field at (row, col).
func (t *Table) Field(row, col int) (Field, error) {
	r, err := t.Row(row)
	if err != nil {
		return Field{}, err
	}
	return r.Field(col)
}

// RowExists reports whether row i exists.
func (t *Table) RowExists(i int) bool {
	return i >= 0 && i < len(t.rows)
}

// FieldExists reports whether (row, col) exists.
func (t *Table) FieldExists(row, col int) bool {
	return t.RowExists(row) && col >= 0 && col < t.rows[row].Len()
}

// push appends r, growing storage geometrically.
func (t *Table) push(r *Row) *Row {
	t.rows = grow(t.rows, 1, initialTableCapacity)
	t.rows = append(t.rows, r)
	t.version++
	return r
}

// CreateRow appends an empty row and returns it for filling.
func (t *Table) CreateRow() *Row {
	return t.push(&Row{})
}

// AddRow appends a row of string fields and returns it.
//
// Example:
//
//	table.AddRow("Sackey", "20", "Software Engineer")
func (t *Table) AddRow(values ...string) *Row {
	return t.push(NewRow(values...))
}

// AppendRow appends a row holding copies of fields and returns it.
func (t *Table) AppendRow(fields ...Field) *Row {
	return t.push(NewRowFromFields(fields...))
}

// UpdateRow replaces every field of row i with string fields.
func (t *Table) UpdateRow(i int, values ...string) error {
	r, err := t.Row(i)
	if err != nil {
		return err
	}
	r.replace(lo.Map(values, func(v string, _ int) Field {
		return String(v)
	}))
	return nil
}

// UpdateField replaces the field at (row, col) with a string field.
func (t *Table) UpdateField(row, col int, value string) error {
	return t.SetField(row, col, String(value))
}

// SetField replaces the field at (row, col).
func (t *Table) SetField(row, col int, f Field) error {
	r, err := t.Row(row)
	if err != nil {
		return err
	}
	return r.Set(col, f)
}

// DeleteRow removes row i. Later rows shift up by one.
func (t *Table) DeleteRow(i int) error {
	if i < 0 || i >= len(t.rows) {
		return &RangeError{What: "row", Index: i, Len: len(t.rows)}
	}
	last := len(t.rows) - 1
	copy(t.rows[i:], t.rows[i+1:])
	t.rows[last] = nil
	t.rows = t.rows[:last]
	t.version++
	return nil
}

// DeleteField removes the field at (row, col). Later fields in the row shift
// left, so surviving fields keep their relative order.
func (t *Table) DeleteField(row, col int) error {
	r, err := t.Row(row)
	if err != nil {
		return err
	}
	return r.Delete(col)
}

// Clear releases every row and field. The dialect is kept and the table can
// be reused. Calling Clear again is a no-op.
func (t *Table) Clear() {
	if len(t.rows) == 0 && cap(t.rows) == initialTableCapacity {
		return
	}
	for _, r := range t.rows {
		r.Clear()
	}
	t.rows = make([]*Row, 0, initialTableCapacity)
	t.version++
}

// Clone returns a deep copy of the table with the same dialect and reporter.
// Rows of the copy share no storage with t.
func (t *Table) Clone() *Table {
	c := &Table{
		dialect:  t.Dialect(),
		rows:     make([]*Row, 0, cap(t.rows)),
		reporter: t.Reporter(),
	}
	for _, r := range t.rows {
		c.rows = append(c.rows, r.Clone())
	}
	return c
}

// Records returns the canonical text of every field, row by row.
func (t *Table) Records() [][]string {
	return lo.Map(t.rows, func(r *Row, _ int) []string {
		return r.Values()
	})
}

// Equal reports whether both tables hold equal rows in the same order.
// Dialects are not compared.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.rows) != len(other.rows) {
		return false
	}
	for i := range t.rows {
		if !t.rows[i].Equal(other.rows[i]) {
			return false
		}
	}
	return true
}

// Integer returns the field at (row, col) as int64.
// On failure it reports to the table's Reporter and returns (0, false).
func (t *Table) Integer(row, col int) (int64, bool) {
	f, ok := t.lookup(row, col)
	if !ok {
		return 0, false
	}
	v, err := f.ToInteger()
	if err != nil {
		t.report(row, col, err)
		return 0, false
	}
	return v, true
}

// Double returns the field at (row, col) as float64.
// On failure it reports to the table's Reporter and returns (0, false).
func (t *Table) Double(row, col int) (float64, bool) {
	f, ok := t.lookup(row, col)
	if !ok {
		return 0, false
	}
	v, err := f.ToDouble()
	if err != nil {
		t.report(row, col, err)
		return 0, false
	}
	return v, true
}

// Boolean returns the field at (row, col) as bool.
// On failure it reports to the table's Reporter and returns (false, false).
func (t *Table) Boolean(row, col int) (bool, bool) {
	f, ok := t.lookup(row, col)
	if !ok {
		return false, false
	}
	v, err := f.ToBoolean()
	if err != nil {
		t.report(row, col, err)
		return false, false
	}
	return v, true
}

// Text returns the canonical text of the field at (row, col).
// An out of range index is reported and yields ("", false).
func (t *Table) Text(row, col int) (string, bool) {
	f, ok := t.lookup(row, col)
	if !ok {
		return "", false
	}
	return f.Text(), true
}

func (t *Table) lookup(row, col int) (Field, bool) {
	f, err := t.Field(row, col)
	if err != nil {
		t.report(row, col, err)
		return Field{}, false
	}
	return f, true
}

func (t *Table) report(row, col int, err error) {
	reporterOrNop(t.reporter).Report(KindOf(err), fmt.Sprintf("row %d, column %d: %v", row, col, err))
}
