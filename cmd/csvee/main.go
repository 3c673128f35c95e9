// Command csvee reads delimited text in one dialect and writes it in another,
// or renders it as an ASCII table.
//
//	csvee --from excel --to tsv input.csv -o output.tsv
//	csvee --sniff --pretty < data.txt
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shapestone/csvee/pkg/csv"
)

const cnfFileName = ".csvee.ini"

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], afero.NewOsFs(), os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, fs afero.Fs, stdin io.Reader, stdout, stderr io.Writer) int {
	var gopts globalOptions

	// process the config file first, then flags and environment on top of it
	configParser := flags.NewParser(&gopts, flags.HelpFlag|flags.PassDoubleDash)
	if err := readConfigFile(fs, configParser); err != nil {
		fmt.Fprintf(stderr, "Invalid config file %s: %v\n", cnfFileName, err)
		return exitUsage
	}

	flagParser := flags.NewParser(&gopts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := flagParser.ParseArgs(args); flags.WroteHelp(err) {
		fmt.Fprintln(stdout, err)
		return exitOK
	} else if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	opts := gopts.CSV
	logger := newLogger(stderr, opts.Verbose)
	defer func() { _ = logger.Sync() }()

	table, err := readTable(fs, stdin, gopts.Args.Input, opts, logger)
	if err != nil {
		return fail(stderr, err)
	}
	logger.Info("parsed input",
		zap.String("dialect", table.Dialect().Name()),
		zap.Int("rows", table.Len()))

	if opts.Pretty {
		err = writePretty(stdout, table)
	} else {
		err = writeDelimited(fs, stdout, table, opts)
	}
	if err != nil {
		return fail(stderr, err)
	}
	return exitOK
}

// fail prints err and maps its kind to an exit code.
func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "csvee: %v\n", err)
	if csv.KindOf(err) == csv.KindConfig {
		return exitUsage
	}
	return exitError
}

func readConfigFile(fs afero.Fs, parser *flags.Parser) error {
	f, err := fs.Open(cnfFileName)
	if os.IsNotExist(err) {
		// skip if missing
		return nil
	} else if err != nil {
		return err
	}
	defer f.Close()
	return flags.NewIniParser(parser).Parse(f)
}

// newLogger builds a development-style console logger on w. Diagnostics are
// always shown; progress only with --verbose.
func newLogger(w io.Writer, verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	level := lo.Ternary(verbose, zapcore.DebugLevel, zapcore.WarnLevel)
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg.EncoderConfig), zapcore.AddSync(w), level)
	return zap.New(core)
}

func readTable(fs afero.Fs, stdin io.Reader, input string, o csveeOptions, logger *zap.Logger) (*csv.Table, error) {
	popts, err := o.parseOptions()
	if err != nil {
		return nil, &csv.ConfigError{Field: "comment", Message: err.Error()}
	}
	popts.Reporter = csv.NewZapReporter(logger)

	var data []byte
	if input == "" || input == "-" {
		input = "-"
		data, err = io.ReadAll(stdin)
		if err != nil {
			return nil, &csv.IOError{Op: "read", Path: "stdin", Err: err}
		}
	} else {
		data, err = afero.ReadFile(fs, input)
		if err != nil {
			return nil, &csv.IOError{Op: "read", Path: input, Err: err}
		}
	}

	base := csv.DialectForFilename(input)
	switch {
	case o.Sniff:
		base = csv.SniffDialect(data)
		logger.Debug("sniffed dialect",
			zap.String("delimiter", string(base.Delimiter())),
			zap.String("terminator", fmt.Sprintf("%q", base.LineTerminator())))
	case o.From != "":
		base = namedDialects[o.From]
	}

	d, err := o.inputDialect(base)
	if err != nil {
		return nil, asConfigError(err)
	}
	return csv.ParseWithOptions(data, d, popts)
}

func writeDelimited(fs afero.Fs, stdout io.Writer, table *csv.Table, o csveeOptions) error {
	d, err := o.outputDialect(table.Dialect())
	if err != nil {
		return asConfigError(err)
	}

	out := csv.NewTable(d)
	for _, row := range table.All() {
		out.AppendRow(row.Fields()...)
	}

	if o.Output != "" {
		return csv.WriteFile(fs, o.Output, out)
	}
	_, err = out.WriteTo(stdout)
	return err
}

// writePretty renders the first row as the header and the rest as data.
// Short rows are padded so every line has the same number of cells.
func writePretty(w io.Writer, table *csv.Table) error {
	if table.Len() == 0 {
		return nil
	}

	width := lo.Max(lo.Map(table.Records(), func(r []string, _ int) int { return len(r) }))
	pad := func(r []string) []string {
		return append(r, make([]string, width-len(r))...)
	}

	t := tablewriter.NewTable(w,
		tablewriter.WithRenderer(
			renderer.NewBlueprint(tw.Rendition{Symbols: tw.NewSymbols(tw.StyleASCII)})),
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithTrimSpace(tw.Off),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)

	records := table.Records()
	t.Header(pad(records[0]))
	for _, r := range records[1:] {
		if err := t.Append(pad(r)); err != nil {
			return fmt.Errorf("failed to append row: %w", err)
		}
	}
	if err := t.Render(); err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}

// asConfigError keeps *csv.ConfigError as is and wraps anything else.
func asConfigError(err error) error {
	var ce *csv.ConfigError
	if errors.As(err, &ce) {
		return err
	}
	return &csv.ConfigError{Field: "dialect", Message: err.Error()}
}
