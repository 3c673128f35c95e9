package main

import (
	"fmt"

	"github.com/shapestone/csvee/pkg/csv"
)

type globalOptions struct {
	CSV  csveeOptions `group:"csvee"`
	Args struct {
		Input string `positional-arg-name:"INPUT" description:"Input file; '-' or empty reads stdin"`
	} `positional-args:"yes"`
}

// No `default` tags: the ini parser and the flag parser fill the same struct,
// and a default would overwrite values read from the config file.
type csveeOptions struct {
	Output     string `long:"output" short:"o" description:"Write to this file instead of stdout"`
	From       string `long:"from" env:"CSVEE_FROM" description:"Input dialect" choice:"default" choice:"excel" choice:"excel-tab" choice:"tsv" choice:"unix"`
	To         string `long:"to" env:"CSVEE_TO" description:"Output dialect (default: the input dialect)" choice:"default" choice:"excel" choice:"excel-tab" choice:"tsv" choice:"unix"`
	Delimiter  string `long:"delimiter" short:"d" unquote:"false" env:"CSVEE_DELIMITER" description:"Input field delimiter; accepts \\t or tab"`
	Quote      string `long:"quote" unquote:"false" description:"Input quote character"`
	Escape     string `long:"escape" unquote:"false" description:"Input escape character"`
	SkipSpace  bool   `long:"skip-space" description:"Drop spaces and tabs at the start of unquoted fields"`
	NoDouble   bool   `long:"no-doublequote" description:"Quotes inside quoted fields are escaped, not doubled (needs --escape)"`
	Quoting    string `long:"quoting" description:"Output quoting policy" choice:"minimal" choice:"all" choice:"nonnumeric" choice:"none"`
	Terminator string `long:"terminator" description:"Output line terminator" choice:"lf" choice:"crlf"`
	Comment    string `long:"comment" unquote:"false" description:"Skip input lines starting with this character"`
	Lenient    bool   `long:"lenient" description:"Accept an unterminated quoted field at end of input"`
	Strict     bool   `long:"strict" description:"Require every record to have as many fields as the first"`
	OnBadLine  string `long:"on-bad-line" description:"What --strict does with a malformed record" choice:"error" choice:"warn" choice:"skip"`
	InferTypes bool   `long:"infer-types" description:"Type unquoted integers, floats, booleans and empty fields"`
	Sniff      bool   `long:"sniff" description:"Detect the input delimiter and terminator from the data"`
	Pretty     bool   `long:"pretty" short:"p" description:"Render an ASCII table instead of delimited text"`
	Verbose    bool   `long:"verbose" short:"v" description:"Log progress to stderr"`
}

var namedDialects = map[string]*csv.Dialect{
	"default":   csv.Default,
	"excel":     csv.Excel,
	"excel-tab": csv.ExcelTab,
	"tsv":       csv.TSV,
	"unix":      csv.Unix,
}

// parseChar accepts a single ASCII character or one of the names tab,
// space, comma, semicolon and pipe.
func parseChar(name, s string) (byte, error) {
	switch s {
	case `\t`, "tab":
		return '\t', nil
	case "space":
		return ' ', nil
	case "comma":
		return ',', nil
	case "semicolon":
		return ';', nil
	case "pipe":
		return '|', nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("--%s must be a single character, got %q", name, s)
	}
	return s[0], nil
}

// inputDialect applies the input overrides to base.
func (o csveeOptions) inputDialect(base *csv.Dialect) (*csv.Dialect, error) {
	opts := base.Options()
	var err error
	if o.Delimiter != "" {
		if opts.Delimiter, err = parseChar("delimiter", o.Delimiter); err != nil {
			return nil, err
		}
	}
	if o.Quote != "" {
		if opts.Quote, err = parseChar("quote", o.Quote); err != nil {
			return nil, err
		}
	}
	if o.Escape != "" {
		if opts.Escape, err = parseChar("escape", o.Escape); err != nil {
			return nil, err
		}
	}
	if o.SkipSpace {
		opts.SkipInitialSpace = true
	}
	if o.NoDouble {
		opts.DoubleQuote = false
	}
	if opts != base.Options() {
		opts.Name = "custom"
	}
	return csv.NewDialectWithOptions(opts)
}

// outputDialect picks --to (or the input dialect) and applies the output overrides.
func (o csveeOptions) outputDialect(in *csv.Dialect) (*csv.Dialect, error) {
	base := in
	if o.To != "" {
		base = namedDialects[o.To]
	}
	opts := base.Options()
	if o.Quoting != "" {
		q, err := csv.ParseQuotingPolicy(o.Quoting)
		if err != nil {
			return nil, err
		}
		opts.Quoting = q
	}
	switch o.Terminator {
	case "lf":
		opts.LineTerminator = "\n"
	case "crlf":
		opts.LineTerminator = "\r\n"
	}
	return csv.NewDialectWithOptions(opts)
}

func (o csveeOptions) parseOptions() (csv.ParseOptions, error) {
	opts := csv.DefaultParseOptions()
	opts.Lenient = o.Lenient
	opts.InferTypes = o.InferTypes
	if o.Strict {
		opts.FieldsPerRecord = 0
	}
	switch o.OnBadLine {
	case "warn":
		opts.OnBadLine = csv.BadLineModeWarn
	case "skip":
		opts.OnBadLine = csv.BadLineModeSkip
	}
	if o.Comment != "" {
		c, err := parseChar("comment", o.Comment)
		if err != nil {
			return opts, err
		}
		opts.Comment = c
	}
	return opts, nil
}
