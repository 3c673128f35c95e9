package csv

import (
	"fmt"

	"github.com/shapestone/csvee/internal/parser"
)

// BadLineMode specifies how the parser handles records with the wrong
// number of fields.
type BadLineMode int

const (
	// BadLineModeError returns an error on malformed records (default).
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn reports a warning and drops the record.
	BadLineModeWarn
	// BadLineModeSkip silently drops the record.
	BadLineModeSkip
)

// String returns the string representation of BadLineMode.
func (m BadLineMode) String() string {
	switch m {
	case BadLineModeError:
		return "error"
	case BadLineModeWarn:
		return "warn"
	case BadLineModeSkip:
		return "skip"
	default:
		return fmt.Sprintf("BadLineMode(%d)", m)
	}
}

// ParseOptions configures parsing beyond what the Dialect describes.
type ParseOptions struct {
	// Lenient accepts input that ends inside a quoted field: the field is
	// closed with the text read so far and a KindUnterminatedQuote diagnostic
	// is reported. When false, such input fails with a *ParseError.
	// Default: false
	Lenient bool

	// FieldsPerRecord is the expected number of fields per record.
	// If positive, each record must have exactly this many fields.
	// If 0, the first record determines the expected field count.
	// If negative, no field count validation is performed.
	// Default: -1
	FieldsPerRecord int

	// OnBadLine specifies how to handle records violating FieldsPerRecord.
	// Default: BadLineModeError
	OnBadLine BadLineMode

	// Comment, if not 0, is the comment character. Lines beginning with it
	// are ignored.
	// Default: 0 (disabled)
	Comment byte

	// InferTypes types unquoted fields whose text is a canonical integer,
	// float or boolean, and makes empty unquoted fields null. Quoted fields
	// stay strings.
	// Default: false
	InferTypes bool

	// Reporter receives recovered problems during parsing and is attached to
	// the resulting table for conversion diagnostics.
	// Default: nil (discard)
	Reporter Reporter
}

// DefaultParseOptions returns the default parse configuration: strict
// quotes, no field count validation, every field a string.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Lenient:         false,
		FieldsPerRecord: -1,
		OnBadLine:       BadLineModeError,
		Comment:         0,
		InferTypes:      false,
	}
}

// Validate checks the options against the dialect they will be used with.
func (o ParseOptions) Validate(d *Dialect) error {
	d = d.orDefault()
	if o.Comment != 0 {
		if !validChar(o.Comment) {
			return &ConfigError{Field: "Comment", Message: "invalid comment character"}
		}
		if isStructural(d, o.Comment) {
			return &ConfigError{Field: "Comment", Message: "comment character is a delimiter, quote, escape or terminator character"}
		}
	}
	if o.OnBadLine < BadLineModeError || o.OnBadLine > BadLineModeSkip {
		return &ConfigError{Field: "OnBadLine", Message: o.OnBadLine.String()}
	}
	return nil
}

// parserOptions maps a dialect and parse options onto the state machine's options.
func parserOptions(d *Dialect, opts ParseOptions) parser.Options {
	reporter := reporterOrNop(opts.Reporter)
	return parser.Options{
		Delimiter:        d.delimiter,
		Quote:            d.quote,
		Escape:           d.escape,
		Terminator:       d.lineTerminator,
		DoubleQuote:      d.doubleQuote,
		QuoteLiteral:     d.quoting == QuoteNone,
		SkipLeadingSpace: d.skipInitialSpace,
		Comment:          opts.Comment,
		FieldsPerRecord:  opts.FieldsPerRecord,
		OnBadLine:        parser.BadLineMode(opts.OnBadLine),
		Lenient:          opts.Lenient,
		InferTypes:       opts.InferTypes,
		WarningCallback: func(line int, err error) {
			err = fromSyntaxError(err)
			reporter.Report(KindOf(err), err.Error())
		},
	}
}
