package csv

import (
	"iter"
)

// RowCursor is a forward-only, non-owning position over a table's rows.
//
// Two cursors are equal when they address the same table at the same
// position. A cursor is invalidated by any row insertion or deletion on its
// table; dereferencing it afterwards returns ErrStaleCursor.
type RowCursor struct {
	table   *Table
	pos     int
	version uint64
}

// Begin returns a cursor at the first row. Each call starts a fresh walk.
func (t *Table) Begin() RowCursor {
	return RowCursor{table: t, pos: 0, version: t.version}
}

// End returns the terminal cursor one past the last row.
func (t *Table) End() RowCursor {
	return RowCursor{table: t, pos: len(t.rows), version: t.version}
}

// Next returns the cursor advanced by one. Advancing the end cursor yields
// the end cursor.
func (c RowCursor) Next() RowCursor {
	if c.table != nil && c.pos < len(c.table.rows) {
		c.pos++
	}
	return c
}

// Equal reports whether c and other address the same position of the same table.
func (c RowCursor) Equal(other RowCursor) bool {
	return c.table == other.table && c.pos == other.pos
}

// Index returns the 0-based row position.
func (c RowCursor) Index() int {
	return c.pos
}

// Row dereferences the cursor.
// The end cursor yields a *RangeError; a cursor older than the last
// mutation yields ErrStaleCursor.
func (c RowCursor) Row() (*Row, error) {
	if c.table == nil {
		return nil, &RangeError{What: "cursor", Index: c.pos, Len: 0}
	}
	if c.version != c.table.version {
		return nil, ErrStaleCursor
	}
	if c.pos >= len(c.table.rows) {
		return nil, &RangeError{What: "cursor", Index: c.pos, Len: len(c.table.rows)}
	}
	return c.table.rows[c.pos], nil
}

// FieldCursor is a forward-only, non-owning position over a row's fields.
// It follows the same equality and invalidation rules as RowCursor.
type FieldCursor struct {
	row     *Row
	pos     int
	version uint64
}

// Begin returns a cursor at the first field.
func (r *Row) Begin() FieldCursor {
	return FieldCursor{row: r, pos: 0, version: r.version}
}

// End returns the terminal cursor one past the last field.
func (r *Row) End() FieldCursor {
	return FieldCursor{row: r, pos: len(r.fields), version: r.version}
}

// Next returns the cursor advanced by one.
func (c FieldCursor) Next() FieldCursor {
	if c.row != nil && c.pos < len(c.row.fields) {
		c.pos++
	}
	return c
}

// Equal reports whether c and other address the same position of the same row.
func (c FieldCursor) Equal(other FieldCursor) bool {
	return c.row == other.row && c.pos == other.pos
}

// Index returns the 0-based column position.
func (c FieldCursor) Index() int {
	return c.pos
}

// Field dereferences the cursor.
func (c FieldCursor) Field() (Field, error) {
	if c.row == nil {
		return Field{}, &RangeError{What: "cursor", Index: c.pos, Len: 0}
	}
	if c.version != c.row.version {
		return Field{}, ErrStaleCursor
	}
	if c.pos >= len(c.row.fields) {
		return Field{}, &RangeError{What: "cursor", Index: c.pos, Len: len(c.row.fields)}
	}
	return c.row.fields[c.pos], nil
}

// All returns an iterator over the rows and their indices.
// The table must not be mutated during iteration.
//
//	for i, row := range table.All() {
//	    fmt.Println(i, row.Values())
//	}
func (t *Table) All() iter.Seq2[int, *Row] {
	return func(yield func(int, *Row) bool) {
		for i, r := range t.rows {
			if !yield(i, r) {
				return
			}
		}
	}
}

// All returns an iterator over the fields and their indices.
// The row must not be mutated during iteration.
func (r *Row) All() iter.Seq2[int, Field] {
	return func(yield func(int, Field) bool) {
		for i, f := range r.fields {
			if !yield(i, f) {
				return
			}
		}
	}
}
