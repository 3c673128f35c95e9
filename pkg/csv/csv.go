package csv

import (
	"io"

	"github.com/shapestone/csvee/internal/parser"
)

// Parse parses delimited text into a Table using the dialect d.
// A nil dialect means Default.
//
// Every field of the result is a KindString field; see ParseWithOptions
// for type inference and error recovery.
//
// Example:
//
//	table, err := csv.Parse([]byte("Name,Age\nJohn,30\n"), csv.Default)
//	// table.Len() == 2
func Parse(data []byte, d *Dialect) (*Table, error) {
	return ParseWithOptions(data, d, DefaultParseOptions())
}

// ParseString parses delimited text held in a string.
func ParseString(input string, d *Dialect) (*Table, error) {
	return parseInput(input, d, DefaultParseOptions())
}

// ParseWithOptions parses delimited text with custom options.
//
// Example:
//
//	opts := csv.DefaultParseOptions()
//	opts.InferTypes = true
//	opts.Lenient = true
//	table, err := csv.ParseWithOptions(data, csv.TSV, opts)
func ParseWithOptions(data []byte, d *Dialect, opts ParseOptions) (*Table, error) {
	return parseInput(string(data), d, opts)
}

// ParseReader reads r to completion and parses it.
// A read failure is returned as an *IOError.
func ParseReader(r io.Reader, d *Dialect) (*Table, error) {
	return ParseReaderWithOptions(r, d, DefaultParseOptions())
}

// ParseReaderWithOptions reads r to completion and parses it with custom options.
func ParseReaderWithOptions(r io.Reader, d *Dialect, opts ParseOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IOError{Op: "read", Err: err}
	}
	return parseInput(string(data), d, opts)
}

func parseInput(input string, d *Dialect, opts ParseOptions) (*Table, error) {
	d = d.orDefault()
	if err := opts.Validate(d); err != nil {
		return nil, err
	}

	p := parser.NewParserWithOptions(input, parserOptions(d, opts))
	node, err := p.Parse()
	if err != nil {
		return nil, fromSyntaxError(err)
	}

	t, err := FromAST(node, d)
	if err != nil {
		return nil, err
	}
	t.SetReporter(opts.Reporter)
	return t, nil
}
