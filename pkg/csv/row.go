package csv

import (
	"github.com/samber/lo"
)

const (
	initialRowCapacity   = 4
	initialTableCapacity = 5
)

// grow returns s with room for n more elements, doubling the capacity
// (starting from initial) until it fits.
func grow[T any](s []T, n, initial int) []T {
	need := len(s) + n
	if need <= cap(s) {
		return s
	}
	c := cap(s)
	if c < initial {
		c = initial
	}
	for c < need {
		c *= 2
	}
	out := make([]T, len(s), c)
	copy(out, s)
	return out
}

// Row is an ordered, growable sequence of fields. Column indices are 0-based.
//
// A Row owns its fields: constructors and mutators copy their arguments, so
// two rows never share storage. Rows in the same table may have different
// lengths.
type Row struct {
	fields  []Field
	version uint64
}

// NewRow creates a row of string fields.
//
// Example:
//
//	row := csv.NewRow("John", "30")
func NewRow(values ...string) *Row {
	r := &Row{}
	r.AppendValues(values...)
	return r
}

// NewRowFromFields creates a row holding copies of fields.
func NewRowFromFields(fields ...Field) *Row {
	r := &Row{}
	r.Append(fields...)
	return r
}

// Len returns the number of fields.
func (r *Row) Len() int {
	return len(r.fields)
}

// Cap returns the current field storage capacity.
func (r *Row) Cap() int {
	return cap(r.fields)
}

// Field returns the field at index i.
// Returns a *RangeError if i is out of bounds.
func (r *Row) Field(i int) (Field, error) {
	if i < 0 || i >= len(r.fields) {
		return Field{}, &RangeError{What: "field", Index: i, Len: len(r.fields)}
	}
	return r.fields[i], nil
}

// Set replaces the field at index i.
func (r *Row) Set(i int, f Field) error {
	if i < 0 || i >= len(r.fields) {
		return &RangeError{What: "field", Index: i, Len: len(r.fields)}
	}
	r.fields[i] = f
	r.version++
	return nil
}

// Append adds fields to the end of the row.
func (r *Row) Append(fields ...Field) {
	if len(fields) == 0 {
		return
	}
	r.fields = grow(r.fields, len(fields), initialRowCapacity)
	r.fields = append(r.fields, fields...)
	r.version++
}

// AppendValues adds string fields to the end of the row.
func (r *Row) AppendValues(values ...string) {
	r.Append(lo.Map(values, func(v string, _ int) Field {
		return String(v)
	})...)
}

// Delete removes the field at index i. Later fields shift left by one.
func (r *Row) Delete(i int) error {
	if i < 0 || i >= len(r.fields) {
		return &RangeError{What: "field", Index: i, Len: len(r.fields)}
	}
	last := len(r.fields) - 1
	copy(r.fields[i:], r.fields[i+1:])
	r.fields[last] = Field{}
	r.fields = r.fields[:last]
	r.version++
	return nil
}

// Clear removes every field. Calling it again is a no-op.
func (r *Row) Clear() {
	if r.fields == nil {
		return
	}
	r.fields = nil
	r.version++
}

// replace swaps in a fresh copy of fields.
func (r *Row) replace(fields []Field) {
	r.fields = grow([]Field(nil), len(fields), initialRowCapacity)
	r.fields = append(r.fields, fields...)
	r.version++
}

// Values returns the canonical text of every field.
func (r *Row) Values() []string {
	return lo.Map(r.fields, func(f Field, _ int) string {
		return f.Text()
	})
}

// Fields returns a copy of the fields.
func (r *Row) Fields() []Field {
	fields := make([]Field, len(r.fields))
	copy(fields, r.fields)
	return fields
}

// Clone returns a deep copy of the row.
func (r *Row) Clone() *Row {
	return NewRowFromFields(r.fields...)
}

// Equal reports whether both rows have the same length and pairwise equal fields.
func (r *Row) Equal(other *Row) bool {
	if r == nil || other == nil {
		return r == other
	}
	if len(r.fields) != len(other.fields) {
		return false
	}
	for i := range r.fields {
		if !r.fields[i].Equal(other.fields[i]) {
			return false
		}
	}
	return true
}
