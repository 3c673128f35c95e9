package csv_test

import (
	"testing"

	"github.com/shapestone/csvee/pkg/csv"
)

func TestDefaultParseOptions(t *testing.T) {
	opts := csv.DefaultParseOptions()

	if opts.Lenient {
		t.Error("DefaultParseOptions().Lenient should be false")
	}
	if opts.FieldsPerRecord != -1 {
		t.Errorf("DefaultParseOptions().FieldsPerRecord = %d, want -1", opts.FieldsPerRecord)
	}
	if opts.OnBadLine != csv.BadLineModeError {
		t.Errorf("DefaultParseOptions().OnBadLine = %v, want error", opts.OnBadLine)
	}
	if opts.Comment != 0 {
		t.Errorf("DefaultParseOptions().Comment = %q, want 0", opts.Comment)
	}
	if opts.InferTypes {
		t.Error("DefaultParseOptions().InferTypes should be false")
	}
	if opts.Reporter != nil {
		t.Error("DefaultParseOptions().Reporter should be nil")
	}
	if err := opts.Validate(csv.Default); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestParseOptions_ValidateAgainstDialect(t *testing.T) {
	opts := csv.DefaultParseOptions()
	opts.Comment = '\t'

	if err := opts.Validate(csv.Default); err != nil {
		t.Errorf("Validate(Default) error = %v", err)
	}
	if err := opts.Validate(csv.TSV); err == nil {
		t.Error("Validate(TSV) expected error for tab comment character")
	}
}

func TestBadLineMode_String(t *testing.T) {
	tests := []struct {
		mode csv.BadLineMode
		want string
	}{
		{csv.BadLineModeError, "error"},
		{csv.BadLineModeWarn, "warn"},
		{csv.BadLineModeSkip, "skip"},
		{csv.BadLineMode(99), "BadLineMode(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.mode.String(); got != tt.want {
				t.Errorf("BadLineMode.String() = %q, want %q", got, tt.want)
			}
		})
	}
}
