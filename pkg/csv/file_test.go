package csv_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"

	"github.com/shapestone/csvee/pkg/csv"
)

func TestParseFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/people.tsv", []byte("name\tage\nAnn\t31\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	table, err := csv.ParseFile(fs, "/data/people.tsv", nil)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if table.Dialect() != csv.TSV {
		t.Errorf("Dialect() = %q, want tsv", table.Dialect().Name())
	}
	if diff := cmp.Diff([][]string{{"name", "age"}, {"Ann", "31"}}, table.Records()); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile_Missing(t *testing.T) {
	_, err := csv.ParseFile(afero.NewMemMapFs(), "/nope.csv", nil)

	var ioErr *csv.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error type = %T, want *csv.IOError", err)
	}
	if ioErr.Path != "/nope.csv" || ioErr.Op != "read" {
		t.Errorf("IOError = %+v", ioErr)
	}
	if csv.KindOf(err) != csv.KindIO {
		t.Errorf("KindOf() = %v, want %v", csv.KindOf(err), csv.KindIO)
	}
}

func TestWriteFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	table := csv.FromRecords(csv.Excel, [][]string{{"a", "b,c"}})

	if err := csv.WriteFile(fs, "/out.csv", table); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	got, err := afero.ReadFile(fs, "/out.csv")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "a,\"b,c\"\r\n" {
		t.Errorf("file content = %q", got)
	}

	back, err := csv.ParseFile(fs, "/out.csv", csv.Excel)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if !back.Equal(table) {
		t.Errorf("round trip = %q, want %q", back.Records(), table.Records())
	}
}

func TestWriteFile_ReadOnly(t *testing.T) {
	fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
	err := csv.WriteFile(fs, "/out.csv", csv.NewTable(nil))

	var ioErr *csv.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("error type = %T, want *csv.IOError", err)
	}
	if ioErr.Op != "create" {
		t.Errorf("IOError.Op = %q, want create", ioErr.Op)
	}
}
