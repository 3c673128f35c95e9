package csv

import (
	"fmt"
	"path/filepath"
	"strings"
)

// QuotingPolicy decides when the serializer wraps a field in quotes.
type QuotingPolicy int

const (
	// QuoteMinimal quotes only fields containing the delimiter, the quote,
	// the escape character or a line terminator character.
	QuoteMinimal QuotingPolicy = iota
	// QuoteAll quotes every field.
	QuoteAll
	// QuoteNonNumeric quotes every field that is not an integer, float or null.
	QuoteNonNumeric
	// QuoteNone never quotes. The parser treats the quote character as data.
	QuoteNone
)

// String returns the string representation of QuotingPolicy.
func (q QuotingPolicy) String() string {
	switch q {
	case QuoteMinimal:
		return "minimal"
	case QuoteAll:
		return "all"
	case QuoteNonNumeric:
		return "nonnumeric"
	case QuoteNone:
		return "none"
	default:
		return fmt.Sprintf("QuotingPolicy(%d)", int(q))
	}
}

// ParseQuotingPolicy parses "all", "none", "minimal" or "nonnumeric"
// (case-insensitive, '-' and '_' ignored).
func ParseQuotingPolicy(s string) (QuotingPolicy, error) {
	norm := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "minimal":
		return QuoteMinimal, nil
	case "all":
		return QuoteAll, nil
	case "nonnumeric":
		return QuoteNonNumeric, nil
	case "none":
		return QuoteNone, nil
	default:
		return QuoteMinimal, &ConfigError{Field: "Quoting", Message: fmt.Sprintf("unknown quoting policy %q", s)}
	}
}

// DialectOptions configures a Dialect.
type DialectOptions struct {
	// Name identifies the dialect in diagnostics.
	Name string
	// Delimiter is the field separator. Default: ','
	Delimiter byte
	// Quote is the quote character. Default: '"'
	Quote byte
	// Escape, if not 0, makes the next character literal when parsing and
	// escapes quotes when serializing with DoubleQuote disabled.
	Escape byte
	// LineTerminator ends each serialized row; one or two bytes. Default: "\n"
	// The parser also accepts "\r\n" and "\n" regardless of this setting.
	LineTerminator string
	// DoubleQuote represents a literal quote inside a quoted field as two quotes.
	DoubleQuote bool
	// SkipInitialSpace drops spaces and tabs at the start of unquoted fields.
	SkipInitialSpace bool
	// Quoting is the serializer's quoting policy.
	Quoting QuotingPolicy
}

// DefaultDialectOptions returns comma-separated, LF-terminated, minimally
// quoted options with doubled-quote escaping.
func DefaultDialectOptions() DialectOptions {
	return DialectOptions{
		Name:           "default",
		Delimiter:      ',',
		Quote:          '"',
		LineTerminator: "\n",
		DoubleQuote:    true,
		Quoting:        QuoteMinimal,
	}
}

// Validate checks if the options describe a usable dialect.
func (o DialectOptions) Validate() error {
	if !validChar(o.Delimiter) {
		return &ConfigError{Field: "Delimiter", Message: fmt.Sprintf("invalid delimiter %q", o.Delimiter)}
	}
	if !validChar(o.Quote) {
		return &ConfigError{Field: "Quote", Message: fmt.Sprintf("invalid quote character %q", o.Quote)}
	}
	if o.Delimiter == o.Quote {
		return &ConfigError{Field: "Quote", Message: "quote character same as delimiter"}
	}
	if o.Escape != 0 {
		if !validChar(o.Escape) {
			return &ConfigError{Field: "Escape", Message: fmt.Sprintf("invalid escape character %q", o.Escape)}
		}
		if o.Escape == o.Delimiter || o.Escape == o.Quote {
			return &ConfigError{Field: "Escape", Message: "escape character same as delimiter or quote"}
		}
	}
	if n := len(o.LineTerminator); n < 1 || n > 2 {
		return &ConfigError{Field: "LineTerminator", Message: "line terminator must be one or two characters"}
	}
	for i := 0; i < len(o.LineTerminator); i++ {
		c := o.LineTerminator[i]
		if c >= 0x80 || c == 0 {
			return &ConfigError{Field: "LineTerminator", Message: fmt.Sprintf("invalid terminator character %q", c)}
		}
		if c == o.Delimiter || c == o.Quote || (o.Escape != 0 && c == o.Escape) {
			return &ConfigError{Field: "LineTerminator", Message: "terminator overlaps delimiter, quote or escape"}
		}
	}
	if !o.DoubleQuote && o.Escape == 0 && o.Quoting != QuoteNone {
		return &ConfigError{Field: "Escape", Message: "doublequote disabled requires an escape character"}
	}
	if o.Quoting < QuoteMinimal || o.Quoting > QuoteNone {
		return &ConfigError{Field: "Quoting", Message: fmt.Sprintf("unknown quoting policy %d", int(o.Quoting))}
	}
	return nil
}

// validChar reports whether c can be a delimiter, quote or escape character.
func validChar(c byte) bool {
	return c != 0 && c < 0x80 && c != '\r' && c != '\n'
}

// Dialect describes a syntax variant. It is immutable once constructed and
// may be shared by any number of tables, parsers and writers.
type Dialect struct {
	name             string
	delimiter        byte
	quote            byte
	escape           byte
	lineTerminator   string
	doubleQuote      bool
	skipInitialSpace bool
	quoting          QuotingPolicy
}

// NewDialect creates a Dialect without an escape character.
// It fails with a *ConfigError when delimiter == quote or any character is unusable.
func NewDialect(name string, delimiter, quote byte, lineTerminator string, doubleQuote, skipWhitespace bool, quoting QuotingPolicy) (*Dialect, error) {
	return NewDialectWithOptions(DialectOptions{
		Name:             name,
		Delimiter:        delimiter,
		Quote:            quote,
		LineTerminator:   lineTerminator,
		DoubleQuote:      doubleQuote,
		SkipInitialSpace: skipWhitespace,
		Quoting:          quoting,
	})
}

// NewDialectWithOptions creates a Dialect from options.
//
// Example:
//
//	opts := csv.DefaultDialectOptions()
//	opts.Delimiter = ';'
//	opts.Quoting = csv.QuoteAll
//	d, err := csv.NewDialectWithOptions(opts)
func NewDialectWithOptions(opts DialectOptions) (*Dialect, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Dialect{
		name:             opts.Name,
		delimiter:        opts.Delimiter,
		quote:            opts.Quote,
		escape:           opts.Escape,
		lineTerminator:   opts.LineTerminator,
		doubleQuote:      opts.DoubleQuote,
		skipInitialSpace: opts.SkipInitialSpace,
		quoting:          opts.Quoting,
	}, nil
}

func mustDialect(opts DialectOptions) *Dialect {
	d, err := NewDialectWithOptions(opts)
	if err != nil {
		panic(err)
	}
	return d
}

// Predefined dialects.
var (
	// Default is comma-separated, LF-terminated and minimally quoted.
	Default = mustDialect(DefaultDialectOptions())

	// Excel matches spreadsheet exports: comma-separated, CRLF-terminated.
	Excel = mustDialect(DialectOptions{
		Name: "excel", Delimiter: ',', Quote: '"', LineTerminator: "\r\n",
		DoubleQuote: true, Quoting: QuoteMinimal,
	})

	// ExcelTab is Excel with a tab delimiter.
	ExcelTab = mustDialect(DialectOptions{
		Name: "excel-tab", Delimiter: '\t', Quote: '"', LineTerminator: "\r\n",
		DoubleQuote: true, Quoting: QuoteMinimal,
	})

	// TSV is tab-separated and LF-terminated.
	TSV = mustDialect(DialectOptions{
		Name: "tsv", Delimiter: '\t', Quote: '"', LineTerminator: "\n",
		DoubleQuote: true, Quoting: QuoteMinimal,
	})

	// Unix is comma-separated, LF-terminated and quotes every field.
	Unix = mustDialect(DialectOptions{
		Name: "unix", Delimiter: ',', Quote: '"', LineTerminator: "\n",
		DoubleQuote: true, Quoting: QuoteAll,
	})
)

// DialectForFilename infers a dialect from a file extension: ".tsv" and
// ".txt" select TSV, anything else Default.
func DialectForFilename(path string) *Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tsv", ".txt":
		return TSV
	default:
		return Default
	}
}

// Name returns the dialect name.
func (d *Dialect) Name() string { return d.name }

// Delimiter returns the field separator.
func (d *Dialect) Delimiter() byte { return d.delimiter }

// Quote returns the quote character.
func (d *Dialect) Quote() byte { return d.quote }

// Escape returns the escape character, or 0.
func (d *Dialect) Escape() byte { return d.escape }

// LineTerminator returns the row terminator written by the serializer.
func (d *Dialect) LineTerminator() string { return d.lineTerminator }

// DoubleQuote reports whether doubled quotes escape a literal quote.
func (d *Dialect) DoubleQuote() bool { return d.doubleQuote }

// SkipInitialSpace reports whether leading whitespace in unquoted fields is dropped.
func (d *Dialect) SkipInitialSpace() bool { return d.skipInitialSpace }

// Quoting returns the quoting policy.
func (d *Dialect) Quoting() QuotingPolicy { return d.quoting }

// Options returns the options the dialect was built from, for deriving variants.
func (d *Dialect) Options() DialectOptions {
	return DialectOptions{
		Name:             d.name,
		Delimiter:        d.delimiter,
		Quote:            d.quote,
		Escape:           d.escape,
		LineTerminator:   d.lineTerminator,
		DoubleQuote:      d.doubleQuote,
		SkipInitialSpace: d.skipInitialSpace,
		Quoting:          d.quoting,
	}
}

// orDefault returns d, or Default when d is nil.
func (d *Dialect) orDefault() *Dialect {
	if d == nil {
		return Default
	}
	return d
}
