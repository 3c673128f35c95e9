// Package tokenizer provides dialect-aware tokenization of delimited text using
// Shape's tokenizer framework.
package tokenizer

// Token kinds emitted for delimited text.
//
// The tokenizer emits structural units only. Whether a delimiter or a line
// terminator is data or structure depends on the quoting state, which is the
// parser's business.
const (
	// Structural tokens
	TokenDelimiter  = "Delimiter"  // field separator (',' by default)
	TokenQuote      = "Quote"      // quote character ('"' by default)
	TokenEscape     = "Escape"     // escape character and the character it protects
	TokenTerminator = "Terminator" // dialect line terminator, \r\n or \n

	// Field content token
	TokenField = "Field" // run of non-structural bytes
)
