// Package parser implements the quoting state machine for delimited text.
//
// The parser consumes tokens from internal/tokenizer and tracks two states,
// unquoted and quoted. Delimiters and line terminators are structure in the
// unquoted state and data in the quoted state. The result is a Shape AST: an
// *ast.ArrayDataNode of records, each an *ast.ArrayDataNode of
// *ast.LiteralNode fields.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shapestone/shape-core/pkg/ast"
	shapetokenizer "github.com/shapestone/shape-core/pkg/tokenizer"

	"github.com/shapestone/csvee/internal/tokenizer"
)

var (
	// ErrUnterminatedQuote indicates input ended inside a quoted field.
	ErrUnterminatedQuote = errors.New("unterminated quoted field")

	// ErrFieldCount indicates a record has the wrong number of fields.
	ErrFieldCount = errors.New("wrong number of fields")
)

// BadLineMode specifies how to handle records with the wrong field count.
type BadLineMode int

const (
	// BadLineModeError returns an error on malformed records (default).
	BadLineModeError BadLineMode = iota
	// BadLineModeWarn reports a warning and drops the record.
	BadLineModeWarn
	// BadLineModeSkip silently drops the record.
	BadLineModeSkip
)

// Options configures the parser.
type Options struct {
	// Delimiter is the field separator. Default: ','
	Delimiter byte
	// Quote is the quote character. Default: '"'
	Quote byte
	// Escape makes the following token literal. 0 disables escaping.
	Escape byte
	// Terminator is the dialect line terminator. "\r\n" and "\n" are always accepted.
	Terminator string
	// DoubleQuote treats a doubled quote inside a quoted field as one literal quote.
	DoubleQuote bool
	// QuoteLiteral treats the quote character as ordinary data.
	QuoteLiteral bool
	// SkipLeadingSpace drops spaces and tabs at the start of an unquoted field.
	SkipLeadingSpace bool
	// Comment, if not 0, marks lines to skip when it is their first byte.
	Comment byte
	// FieldsPerRecord validates field count. 0=first record sets count, negative=no validation
	FieldsPerRecord int
	// OnBadLine specifies how to handle records with the wrong field count.
	OnBadLine BadLineMode
	// Lenient closes an unterminated quoted field at end of input instead of failing.
	Lenient bool
	// InferTypes gives unquoted fields in canonical numeric or boolean form a typed value.
	InferTypes bool
	// WarningCallback receives recovered errors (lenient quotes, warned bad lines).
	WarningCallback func(line int, err error)
}

// DefaultOptions returns RFC 4180 options with no field count validation.
func DefaultOptions() Options {
	return Options{
		Delimiter:       ',',
		Quote:           '"',
		Terminator:      "\n",
		DoubleQuote:     true,
		FieldsPerRecord: -1,
	}
}

// SyntaxError is a parse failure with its position in the input.
// Lines and columns are 1-indexed.
type SyntaxError struct {
	StartLine int
	Line      int
	Column    int
	Err       error
}

func (e *SyntaxError) Error() string {
	if e.StartLine == e.Line {
		return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("line %d (record started line %d), column %d: %v",
		e.Line, e.StartLine, e.Column, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

type state int

const (
	stateUnquoted state = iota
	stateQuoted
)

// Parser runs the quoting state machine over a token stream with a single
// token of lookahead.
type Parser struct {
	tokenizer *shapetokenizer.Tokenizer
	current   *shapetokenizer.Token
	hasToken  bool
	opts      Options

	expectedFields int
	records        []ast.SchemaNode

	// current record
	state       state
	fields      []ast.SchemaNode
	recordPos   ast.Position
	recordLine  int
	quoteLine   int
	quoteColumn int

	// current field
	field        strings.Builder
	fieldPos     ast.Position
	fieldStarted bool
	fieldQuoted  bool
}

// NewParser creates a parser with default options.
func NewParser(input string) *Parser {
	return NewParserWithOptions(input, DefaultOptions())
}

// NewParserWithOptions creates a parser for input with custom options.
func NewParserWithOptions(input string, opts Options) *Parser {
	tok := tokenizer.NewTokenizerWithOptions(tokenizer.Options{
		Delimiter:  opts.Delimiter,
		Quote:      opts.Quote,
		Escape:     opts.Escape,
		Terminator: opts.Terminator,
	})
	tok.InitializeFromStream(tokenizer.NewStream(input))

	p := &Parser{
		tokenizer:      &tok,
		opts:           opts,
		expectedFields: opts.FieldsPerRecord,
		records:        make([]ast.SchemaNode, 0, 16),
		fields:         make([]ast.SchemaNode, 0, 8),
		recordLine:     1,
	}
	p.advance() // Load first token
	return p
}

// Parse consumes the whole input and returns the records.
//
// Grammar:
//
//	File = { Record } ;
//	Record = Field { Delimiter Field } ( Terminator | EOF ) ;
//
// Blank lines produce no record. A final record without a terminator is
// still returned.
func (p *Parser) Parse() (*ast.ArrayDataNode, error) {
	for p.hasToken {
		if p.opts.Comment != 0 && p.atLineStart() && p.isCommentLine() {
			p.skipLine()
			continue
		}
		if err := p.step(); err != nil {
			return nil, err
		}
	}

	if p.state == stateQuoted {
		err := &SyntaxError{
			StartLine: p.recordLine,
			Line:      p.quoteLine,
			Column:    p.quoteColumn,
			Err:       ErrUnterminatedQuote,
		}
		if !p.opts.Lenient {
			return nil, err
		}
		p.warn(p.quoteLine, err)
		p.state = stateUnquoted
	}

	if p.rowPending() {
		if err := p.endRecord(); err != nil {
			return nil, err
		}
	}

	return ast.NewArrayDataNode(p.records, ast.ZeroPosition()), nil
}

// step applies the transition for the current token.
func (p *Parser) step() error {
	token := p.peek()
	kind := token.Kind()

	if p.state == stateQuoted {
		switch kind {
		case tokenizer.TokenQuote:
			p.advance()
			if p.opts.DoubleQuote && p.hasToken && p.peek().Kind() == tokenizer.TokenQuote {
				p.field.WriteByte(p.opts.Quote)
				p.advance()
				return nil
			}
			p.state = stateUnquoted
		case tokenizer.TokenEscape:
			p.escape(token)
		default:
			// Delimiters and terminators are data inside quotes.
			p.field.WriteString(tokenizer.Text(token))
			p.advance()
		}
		return nil
	}

	if kind == tokenizer.TokenTerminator {
		p.advance()
		if !p.rowPending() {
			// blank line
			return nil
		}
		return p.endRecord()
	}

	p.markStart(token)

	switch kind {
	case tokenizer.TokenDelimiter:
		p.advance()
		p.endField()
	case tokenizer.TokenQuote:
		p.advance()
		p.fieldStarted = true
		if p.opts.QuoteLiteral {
			p.field.WriteByte(p.opts.Quote)
			return nil
		}
		p.state = stateQuoted
		p.fieldQuoted = true
		p.quoteLine, p.quoteColumn = token.Row(), token.Column()
	case tokenizer.TokenEscape:
		p.escape(token)
	default:
		value := tokenizer.Text(token)
		if p.opts.SkipLeadingSpace && !p.fieldStarted {
			value = strings.TrimLeft(value, " \t")
		}
		if value != "" {
			p.field.WriteString(value)
			p.fieldStarted = true
		}
		p.advance()
	}
	return nil
}

// escape appends the character protected by an escape token. A trailing
// escape at end of input is kept as data.
func (p *Parser) escape(token *shapetokenizer.Token) {
	p.advance()
	p.fieldStarted = true
	text := tokenizer.Text(token)
	if len(text) == 1 {
		p.field.WriteByte(p.opts.Escape)
		return
	}
	p.field.WriteString(text[1:])
}

// markStart records where the current record and field begin.
func (p *Parser) markStart(token *shapetokenizer.Token) {
	pos := ast.NewPosition(token.Offset(), token.Row(), token.Column())
	if !p.rowPending() {
		p.recordPos = pos
		p.recordLine = token.Row()
	}
	if !p.fieldStarted {
		p.fieldPos = pos
	}
}

// rowPending reports whether any data has been seen since the last record ended.
func (p *Parser) rowPending() bool {
	return len(p.fields) > 0 || p.fieldStarted
}

// endField closes the current field and appends it to the record.
func (p *Parser) endField() {
	text := p.field.String()
	var value any = text
	if p.opts.InferTypes && !p.fieldQuoted {
		value = Infer(text)
	}
	p.fields = append(p.fields, ast.NewLiteralNode(value, p.fieldPos))

	p.field.Reset()
	p.fieldStarted = false
	p.fieldQuoted = false
}

// endRecord closes the current field and record, validating the field count.
func (p *Parser) endRecord() error {
	p.endField()
	fields := p.fields
	p.fields = make([]ast.SchemaNode, 0, len(fields))

	count := len(fields)
	if p.opts.FieldsPerRecord >= 0 {
		if len(p.records) == 0 && p.expectedFields == 0 {
			// First record sets expected count
			p.expectedFields = count
		} else if count != p.expectedFields {
			err := &SyntaxError{
				StartLine: p.recordLine,
				Line:      p.recordLine,
				Column:    1,
				Err:       fmt.Errorf("%w (got %d, expected %d)", ErrFieldCount, count, p.expectedFields),
			}
			return p.handleBadLine(err)
		}
	}

	p.records = append(p.records, ast.NewArrayDataNode(fields, p.recordPos))
	return nil
}

// handleBadLine handles a malformed record based on OnBadLine mode.
// Returns nil if parsing should continue, or the error if it should stop.
func (p *Parser) handleBadLine(err *SyntaxError) error {
	switch p.opts.OnBadLine {
	case BadLineModeSkip:
		return nil
	case BadLineModeWarn:
		p.warn(err.Line, err)
		return nil
	default:
		return err
	}
}

func (p *Parser) warn(line int, err error) {
	if p.opts.WarningCallback != nil {
		p.opts.WarningCallback(line, err)
	}
}

// Helper methods

// peek returns current token without advancing.
func (p *Parser) peek() *shapetokenizer.Token {
	return p.current
}

// advance moves to next token.
func (p *Parser) advance() {
	token, ok := p.tokenizer.NextToken()
	if ok {
		p.current = token
		p.hasToken = true
	} else {
		p.hasToken = false
		p.current = nil
	}
}

// atLineStart reports whether the parser sits at the first token of a line.
func (p *Parser) atLineStart() bool {
	return p.state == stateUnquoted && !p.rowPending()
}

// isCommentLine checks if the current line starts with the comment character.
func (p *Parser) isCommentLine() bool {
	token := p.peek()
	if token == nil || token.Kind() != tokenizer.TokenField {
		return false
	}
	value := tokenizer.Text(token)
	return len(value) > 0 && value[0] == p.opts.Comment
}

// skipLine advances past all tokens until the next terminator or EOF.
func (p *Parser) skipLine() {
	for p.hasToken {
		if p.peek().Kind() == tokenizer.TokenTerminator {
			p.advance()
			return
		}
		p.advance()
	}
}
