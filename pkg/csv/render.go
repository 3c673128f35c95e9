package csv

import (
	"bufio"
	"bytes"
	"errors"
	"io"
)

const defaultWriterBufferSize = 64 * 1024

var errWriterNoTarget = errors.New("csv: writer destination cannot be nil")

// Serialize renders the table as delimited text in the table's dialect.
//
// Each field is written in its canonical text form and quoted according to
// the dialect's QuotingPolicy. Every row, including the last, is followed by
// the line terminator.
//
// Example:
//
//	table := csv.FromRecords(csv.Default, [][]string{{"a,b", "c"}})
//	out := csv.Serialize(table) // "\"a,b\",c\n"
func Serialize(t *Table) []byte {
	var buf bytes.Buffer
	// bytes.Buffer never fails
	_, _ = t.WriteTo(&buf)
	return buf.Bytes()
}

// WriteTo writes the serialized table to w and returns the number of bytes
// written. A failing sink is reported as an *IOError.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	writer := NewWriter(cw, t.Dialect())
	for _, r := range t.rows {
		if err := writer.Write(r); err != nil {
			return cw.n, err
		}
	}
	if err := writer.Flush(); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Writer streams rows as delimited text. Output is buffered; call Flush
// when done. The first sink error sticks and is returned by every later call.
type Writer struct {
	dst     *bufio.Writer
	dialect *Dialect
	err     error
}

// NewWriter creates a Writer for dialect d. A nil dialect means Default.
// It panics if w is nil.
func NewWriter(w io.Writer, d *Dialect) *Writer {
	if w == nil {
		panic(errWriterNoTarget.Error())
	}
	return &Writer{
		dst:     bufio.NewWriterSize(w, defaultWriterBufferSize),
		dialect: d.orDefault(),
	}
}

// Write emits one row followed by the line terminator.
func (w *Writer) Write(r *Row) error {
	if w.err != nil {
		return w.err
	}
	var fields []Field
	if r != nil {
		fields = r.fields
	}
	w.writeRow(fields)
	return w.err
}

// WriteValues emits one row of string fields.
func (w *Writer) WriteValues(values ...string) error {
	return w.Write(NewRow(values...))
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	if err := w.dst.Flush(); err != nil {
		w.fail(err)
	}
	return w.err
}

// Error reports the first error encountered by the writer.
func (w *Writer) Error() error {
	return w.err
}

func (w *Writer) fail(err error) {
	if w.err == nil {
		w.err = &IOError{Op: "write", Err: err}
	}
}

func (w *Writer) writeRow(fields []Field) {
	d := w.dialect
	single := len(fields) == 1
	for i, f := range fields {
		if i > 0 {
			w.writeByte(d.delimiter)
		}
		w.writeField(f, single)
	}
	w.writeString(d.lineTerminator)
}

func (w *Writer) writeField(f Field, single bool) {
	d := w.dialect
	text := f.Text()

	var quote bool
	switch d.quoting {
	case QuoteAll:
		quote = true
	case QuoteNone:
		w.writeEscaped(text)
		return
	case QuoteNonNumeric:
		quote = !f.IsNumeric() || needsQuotes(d, text, single)
	default:
		quote = needsQuotes(d, text, single)
	}

	if !quote {
		w.writeString(text)
		return
	}

	w.writeByte(d.quote)
	start := 0
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != d.quote && (d.escape == 0 || c != d.escape) {
			continue
		}
		w.writeString(text[start:i])
		if c == d.quote && d.doubleQuote {
			w.writeByte(d.quote)
		} else {
			w.writeByte(d.escape)
		}
		w.writeByte(c)
		start = i + 1
	}
	w.writeString(text[start:])
	w.writeByte(d.quote)
}

// writeEscaped writes text unquoted, prefixing structural bytes with the
// escape character. Without an escape character the text is written as is.
func (w *Writer) writeEscaped(text string) {
	d := w.dialect
	if d.escape == 0 {
		w.writeString(text)
		return
	}
	start := 0
	for i := 0; i < len(text); i++ {
		if !isStructural(d, text[i]) {
			continue
		}
		w.writeString(text[start:i])
		w.writeByte(d.escape)
		w.writeByte(text[i])
		start = i + 1
	}
	w.writeString(text[start:])
}

// needsQuotes implements the minimal quoting rule.
func needsQuotes(d *Dialect, text string, single bool) bool {
	if text == "" {
		// a lone empty field would otherwise serialize as a blank line
		return single
	}
	if d.skipInitialSpace && (text[0] == ' ' || text[0] == '\t') {
		return true
	}
	for i := 0; i < len(text); i++ {
		if isStructural(d, text[i]) {
			return true
		}
	}
	return false
}

func isStructural(d *Dialect, c byte) bool {
	switch {
	case c == d.delimiter, c == d.quote, c == '\r', c == '\n':
		return true
	case d.escape != 0 && c == d.escape:
		return true
	}
	for i := 0; i < len(d.lineTerminator); i++ {
		if c == d.lineTerminator[i] {
			return true
		}
	}
	return false
}

func (w *Writer) writeByte(c byte) {
	if w.err != nil {
		return
	}
	if err := w.dst.WriteByte(c); err != nil {
		w.fail(err)
	}
}

func (w *Writer) writeString(s string) {
	if w.err != nil || s == "" {
		return
	}
	if _, err := w.dst.WriteString(s); err != nil {
		w.fail(err)
	}
}
