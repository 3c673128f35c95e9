package csv

import (
	"errors"
	"fmt"

	"github.com/shapestone/csvee/internal/parser"
)

// ErrorKind classifies every error and diagnostic produced by this package.
type ErrorKind int

const (
	// KindUnknown is reported for errors that did not originate here.
	KindUnknown ErrorKind = iota
	// KindConfig is an invalid dialect or option configuration.
	KindConfig
	// KindIO is a failure to open, read or write a source or sink.
	KindIO
	// KindUnterminatedQuote is input that ended inside a quoted field.
	KindUnterminatedQuote
	// KindMalformedRow is a record whose field count violates the declared bounds.
	KindMalformedRow
	// KindConversion is a field whose text cannot be cast to the requested type.
	KindConversion
	// KindOutOfRange is a row or column index, or a cursor, past the end.
	KindOutOfRange
)

// String returns the string representation of ErrorKind.
func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "ConfigError"
	case KindIO:
		return "IOError"
	case KindUnterminatedQuote:
		return "UnterminatedQuote"
	case KindMalformedRow:
		return "MalformedRow"
	case KindConversion:
		return "ConversionError"
	case KindOutOfRange:
		return "OutOfRange"
	case KindUnknown:
		return "Unknown"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Sentinel errors, one per kind. Use errors.Is to test for them.
var (
	ErrConfig            = errors.New("invalid configuration")
	ErrIO                = errors.New("i/o failure")
	ErrUnterminatedQuote = parser.ErrUnterminatedQuote
	ErrMalformedRow      = parser.ErrFieldCount
	ErrConversion        = errors.New("conversion failed")
	ErrOutOfRange        = errors.New("index out of range")

	// ErrStaleCursor is returned when a cursor is dereferenced after the
	// table or row it walks was mutated. Its kind is KindOutOfRange.
	ErrStaleCursor = errors.New("cursor invalidated by mutation")
)

// KindOf returns the kind of err, or KindUnknown.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrConfig):
		return KindConfig
	case errors.Is(err, ErrIO):
		return KindIO
	case errors.Is(err, ErrUnterminatedQuote):
		return KindUnterminatedQuote
	case errors.Is(err, ErrMalformedRow):
		return KindMalformedRow
	case errors.Is(err, ErrConversion):
		return KindConversion
	case errors.Is(err, ErrOutOfRange), errors.Is(err, ErrStaleCursor):
		return KindOutOfRange
	default:
		return KindUnknown
	}
}

// ConfigError represents an invalid dialect or option configuration.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "csv: invalid " + e.Field + ": " + e.Message
}

// Is reports ErrConfig.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// IOError wraps a failure of the underlying file system, reader or writer.
type IOError struct {
	// Op is the operation that failed: "create", "read", "write" or "close".
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("csv: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("csv: %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is reports ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}

// ParseError represents a parsing error with position information.
// It provides detailed context about where the error occurred in the input.
type ParseError struct {
	// StartLine is the line where the record containing the error started (1-indexed).
	StartLine int
	// Line is the line where the error was detected (1-indexed).
	Line int
	// Column is the column where the error was detected (1-indexed).
	Column int
	// Err is ErrUnterminatedQuote or wraps ErrMalformedRow.
	Err error
}

// Error returns a formatted error message with position information.
func (e *ParseError) Error() string {
	if e.StartLine == e.Line {
		return fmt.Sprintf("parse error on line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("parse error on line %d (started line %d), column %d: %v",
		e.Line, e.StartLine, e.Column, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// RangeError reports an index that does not address an existing element.
type RangeError struct {
	// What names the indexed collection: "row", "field" or "cursor".
	What  string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("csv: %s index %d out of range [0,%d)", e.What, e.Index, e.Len)
}

// Is reports ErrOutOfRange.
func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// ConversionError reports field text that cannot be cast to a typed value.
type ConversionError struct {
	Text string
	// To is the requested type: "integer", "double" or "boolean".
	To  string
	Err error
}

func (e *ConversionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("csv: cannot convert %q to %s", e.Text, e.To)
	}
	return fmt.Sprintf("csv: cannot convert %q to %s: %v", e.Text, e.To, e.Err)
}

// Unwrap returns the underlying strconv error, if any.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports ErrConversion.
func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// fromSyntaxError converts parser errors into the public ParseError.
func fromSyntaxError(err error) error {
	var syn *parser.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{
			StartLine: syn.StartLine,
			Line:      syn.Line,
			Column:    syn.Column,
			Err:       syn.Err,
		}
	}
	return err
}
