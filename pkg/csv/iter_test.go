package csv_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shapestone/csvee/pkg/csv"
)

func TestRowCursor_Walk(t *testing.T) {
	table := csv.FromRecords(csv.Default, [][]string{{"a"}, {"b", "c"}, {"d"}})

	var got [][]string
	for c := table.Begin(); !c.Equal(table.End()); c = c.Next() {
		row, err := c.Row()
		if err != nil {
			t.Fatalf("Row() at %d error = %v", c.Index(), err)
		}
		var values []string
		for fc := row.Begin(); !fc.Equal(row.End()); fc = fc.Next() {
			f, err := fc.Field()
			if err != nil {
				t.Fatalf("Field() at %d error = %v", fc.Index(), err)
			}
			values = append(values, f.Text())
		}
		got = append(got, values)
	}

	if diff := cmp.Diff(table.Records(), got); diff != "" {
		t.Errorf("cursor walk mismatch (-want +got):\n%s", diff)
	}
}

func TestRowCursor_Equality(t *testing.T) {
	a := csv.FromRecords(csv.Default, [][]string{{"x"}})
	b := csv.FromRecords(csv.Default, [][]string{{"x"}})

	if !a.Begin().Equal(a.Begin()) {
		t.Error("two Begin() cursors of one table should be equal")
	}
	if a.Begin().Equal(b.Begin()) {
		t.Error("cursors of different tables should differ")
	}
	if !a.Begin().Next().Equal(a.End()) {
		t.Error("Begin().Next() should reach End() on a one-row table")
	}
	if !a.End().Next().Equal(a.End()) {
		t.Error("advancing End() should stay at End()")
	}

	empty := csv.NewTable(nil)
	if !empty.Begin().Equal(empty.End()) {
		t.Error("Begin() should equal End() on an empty table")
	}
}

func TestRowCursor_End(t *testing.T) {
	table := csv.FromRecords(csv.Default, [][]string{{"x"}})

	_, err := table.End().Row()
	if !errors.Is(err, csv.ErrOutOfRange) {
		t.Errorf("End().Row() error = %v, want ErrOutOfRange", err)
	}

	var zero csv.RowCursor
	if _, err := zero.Row(); !errors.Is(err, csv.ErrOutOfRange) {
		t.Errorf("zero cursor Row() error = %v, want ErrOutOfRange", err)
	}
}

func TestCursor_Stale(t *testing.T) {
	table := csv.FromRecords(csv.Default, [][]string{{"a", "b"}, {"c"}})

	rc := table.Begin()
	table.AddRow("d")
	if _, err := rc.Row(); !errors.Is(err, csv.ErrStaleCursor) {
		t.Errorf("Row() after AddRow error = %v, want ErrStaleCursor", err)
	}
	if csv.KindOf(csv.ErrStaleCursor) != csv.KindOutOfRange {
		t.Errorf("KindOf(ErrStaleCursor) = %v, want %v", csv.KindOf(csv.ErrStaleCursor), csv.KindOutOfRange)
	}

	row, _ := table.Row(0)
	fc := row.Begin()
	if err := table.DeleteField(0, 0); err != nil {
		t.Fatalf("DeleteField() error = %v", err)
	}
	if _, err := fc.Field(); !errors.Is(err, csv.ErrStaleCursor) {
		t.Errorf("Field() after DeleteField error = %v, want ErrStaleCursor", err)
	}

	fresh := row.Begin()
	f, err := fresh.Field()
	if err != nil || f.Text() != "b" {
		t.Errorf("fresh cursor Field() = %q, %v, want \"b\", nil", f.Text(), err)
	}
}

func TestAll(t *testing.T) {
	table := csv.FromRecords(csv.Default, [][]string{{"a", "b"}, {"c"}, {"d"}})

	var idx []int
	var texts []string
	for i, row := range table.All() {
		idx = append(idx, i)
		for _, f := range row.All() {
			texts = append(texts, f.Text())
		}
		if i == 1 {
			break
		}
	}

	if diff := cmp.Diff([]int{0, 1}, idx); diff != "" {
		t.Errorf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, texts); diff != "" {
		t.Errorf("texts mismatch (-want +got):\n%s", diff)
	}
}
