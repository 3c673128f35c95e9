package csv_test

import (
	"errors"
	"testing"

	"github.com/shapestone/csvee/pkg/csv"
)

func TestPredefinedDialects(t *testing.T) {
	tests := []struct {
		dialect    *csv.Dialect
		name       string
		delimiter  byte
		terminator string
		quoting    csv.QuotingPolicy
	}{
		{csv.Default, "default", ',', "\n", csv.QuoteMinimal},
		{csv.Excel, "excel", ',', "\r\n", csv.QuoteMinimal},
		{csv.ExcelTab, "excel-tab", '\t', "\r\n", csv.QuoteMinimal},
		{csv.TSV, "tsv", '\t', "\n", csv.QuoteMinimal},
		{csv.Unix, "unix", ',', "\n", csv.QuoteAll},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.dialect
			if d.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", d.Name(), tt.name)
			}
			if d.Delimiter() != tt.delimiter {
				t.Errorf("Delimiter() = %q, want %q", d.Delimiter(), tt.delimiter)
			}
			if d.Quote() != '"' || !d.DoubleQuote() || d.Escape() != 0 || d.SkipInitialSpace() {
				t.Errorf("unexpected quoting settings: %+v", d.Options())
			}
			if d.LineTerminator() != tt.terminator {
				t.Errorf("LineTerminator() = %q, want %q", d.LineTerminator(), tt.terminator)
			}
			if d.Quoting() != tt.quoting {
				t.Errorf("Quoting() = %v, want %v", d.Quoting(), tt.quoting)
			}
		})
	}
}

func TestNewDialect(t *testing.T) {
	d, err := csv.NewDialect("semi", ';', '\'', "\r\n", true, true, csv.QuoteNonNumeric)
	if err != nil {
		t.Fatalf("NewDialect() error = %v", err)
	}
	opts := d.Options()
	if opts.Delimiter != ';' || opts.Quote != '\'' || opts.LineTerminator != "\r\n" ||
		!opts.DoubleQuote || !opts.SkipInitialSpace || opts.Quoting != csv.QuoteNonNumeric {
		t.Errorf("Options() = %+v", opts)
	}

	again, err := csv.NewDialectWithOptions(opts)
	if err != nil {
		t.Fatalf("NewDialectWithOptions(Options()) error = %v", err)
	}
	if again.Options() != opts {
		t.Errorf("Options() not preserved: %+v != %+v", again.Options(), opts)
	}
}

func TestDialectOptions_Validate(t *testing.T) {
	tests := []struct {
		name   string
		change func(*csv.DialectOptions)
		field  string
	}{
		{"delimiter equals quote", func(o *csv.DialectOptions) { o.Quote = ',' }, "Quote"},
		{"zero delimiter", func(o *csv.DialectOptions) { o.Delimiter = 0 }, "Delimiter"},
		{"newline delimiter", func(o *csv.DialectOptions) { o.Delimiter = '\n' }, "Delimiter"},
		{"non-ascii quote", func(o *csv.DialectOptions) { o.Quote = 0xE9 }, "Quote"},
		{"escape equals delimiter", func(o *csv.DialectOptions) { o.Escape = ',' }, "Escape"},
		{"empty terminator", func(o *csv.DialectOptions) { o.LineTerminator = "" }, "LineTerminator"},
		{"long terminator", func(o *csv.DialectOptions) { o.LineTerminator = "\r\n\n" }, "LineTerminator"},
		{"terminator overlaps delimiter", func(o *csv.DialectOptions) { o.LineTerminator = "," }, "LineTerminator"},
		{"no doublequote no escape", func(o *csv.DialectOptions) { o.DoubleQuote = false }, "Escape"},
		{"unknown policy", func(o *csv.DialectOptions) { o.Quoting = csv.QuotingPolicy(9) }, "Quoting"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := csv.DefaultDialectOptions()
			tt.change(&opts)

			_, err := csv.NewDialectWithOptions(opts)
			if !errors.Is(err, csv.ErrConfig) {
				t.Fatalf("error = %v, want ErrConfig", err)
			}
			var ce *csv.ConfigError
			if !errors.As(err, &ce) || ce.Field != tt.field {
				t.Errorf("error = %#v, want ConfigError on %s", err, tt.field)
			}
			if csv.KindOf(err) != csv.KindConfig {
				t.Errorf("KindOf() = %v, want %v", csv.KindOf(err), csv.KindConfig)
			}
		})
	}

	t.Run("quote none without escape", func(t *testing.T) {
		opts := csv.DefaultDialectOptions()
		opts.DoubleQuote = false
		opts.Quoting = csv.QuoteNone
		if err := opts.Validate(); err != nil {
			t.Errorf("Validate() error = %v", err)
		}
	})
}

func TestParseQuotingPolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    csv.QuotingPolicy
		wantErr bool
	}{
		{"minimal", csv.QuoteMinimal, false},
		{"ALL", csv.QuoteAll, false},
		{"non-numeric", csv.QuoteNonNumeric, false},
		{"non_numeric", csv.QuoteNonNumeric, false},
		{" none ", csv.QuoteNone, false},
		{"sometimes", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := csv.ParseQuotingPolicy(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuotingPolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseQuotingPolicy() = %v, want %v", got, tt.want)
			}
			if !tt.wantErr && got.String() == "" {
				t.Error("String() is empty")
			}
		})
	}
}

func TestDialectForFilename(t *testing.T) {
	tests := []struct {
		path string
		want *csv.Dialect
	}{
		{"data.tsv", csv.TSV},
		{"DATA.TXT", csv.TSV},
		{"dir/data.csv", csv.Default},
		{"noext", csv.Default},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := csv.DialectForFilename(tt.path); got != tt.want {
				t.Errorf("DialectForFilename(%q) = %q, want %q", tt.path, got.Name(), tt.want.Name())
			}
		})
	}
}
