package tokenizer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shapestone/shape-core/pkg/tokenizer"
)

// Options configures the structural characters the tokenizer recognizes.
type Options struct {
	// Delimiter is the field separator. Default: ','
	Delimiter byte
	// Quote is the quote character. Default: '"'
	Quote byte
	// Escape is the escape character. 0 disables escape tokens.
	Escape byte
	// Terminator is the dialect line terminator. Default: "\n"
	Terminator string
}

// DefaultOptions returns comma/double-quote/LF options.
func DefaultOptions() Options {
	return Options{
		Delimiter:  ',',
		Quote:      '"',
		Terminator: "\n",
	}
}

// NewTokenizer creates a tokenizer with default options.
func NewTokenizer() tokenizer.Tokenizer {
	return NewTokenizerWithOptions(DefaultOptions())
}

// NewTokenizerWithOptions creates a tokenizer for the given structural characters.
//
// Matchers are tried in order:
//  1. Line terminators, longest first (dialect terminator, "\r\n", "\n")
//  2. Delimiter
//  3. Quote
//  4. Escape plus the one character it protects (only when configured)
//  5. Field content (run of non-structural bytes)
//  6. Any single character, so a stray '\r' is never dropped
func NewTokenizerWithOptions(opts Options) tokenizer.Tokenizer {
	matchers := make([]tokenizer.Matcher, 0, 8)
	for _, term := range terminators(opts.Terminator) {
		matchers = append(matchers, tokenizer.StringMatcherFunc(TokenTerminator, term))
	}
	matchers = append(matchers,
		tokenizer.StringMatcherFunc(TokenDelimiter, string(rune(opts.Delimiter))),
		tokenizer.StringMatcherFunc(TokenQuote, string(rune(opts.Quote))),
	)
	if opts.Escape != 0 {
		matchers = append(matchers, EscapeMatcher(opts.Escape))
	}
	matchers = append(matchers,
		FieldContentMatcher(stopSet(opts)),
		AnyCharMatcher(),
	)
	return tokenizer.NewTokenizerWithoutWhitespace(matchers...)
}

// NewStream wraps input in a stream holding one rune per input byte. Bytes
// from 0x80 up become the rune of the same value, so text that is not valid
// UTF-8 reaches the matchers unchanged. Use Text to get the bytes back.
func NewStream(input string) tokenizer.Stream {
	for i := 0; i < len(input); i++ {
		if input[i] >= utf8.RuneSelf {
			return tokenizer.NewStream(widen(input))
		}
	}
	return tokenizer.NewStream(input)
}

func widen(input string) string {
	var sb strings.Builder
	sb.Grow(2 * len(input))
	for i := 0; i < len(input); i++ {
		sb.WriteRune(rune(input[i]))
	}
	return sb.String()
}

// Text returns the input bytes a token read from a NewStream stream.
func Text(token *tokenizer.Token) string {
	value := token.Value()
	b := make([]byte, len(value))
	for i, r := range value {
		b[i] = byte(r)
	}
	return string(b)
}

// terminators returns the distinct line terminators to match, longest first.
func terminators(dialect string) []string {
	terms := []string{"\r\n", "\n"}
	if dialect != "" && dialect != "\r\n" && dialect != "\n" {
		terms = append(terms, dialect)
	}
	sort.SliceStable(terms, func(i, j int) bool {
		return len(terms[i]) > len(terms[j])
	})
	return terms
}

// stopSet builds the 256-entry table of bytes that end a field content run.
func stopSet(opts Options) *[256]bool {
	var stop [256]bool
	stop['\r'] = true
	stop['\n'] = true
	stop[opts.Delimiter] = true
	stop[opts.Quote] = true
	if opts.Escape != 0 {
		stop[opts.Escape] = true
	}
	if opts.Terminator != "" {
		stop[opts.Terminator[0]] = true
	}
	return &stop
}

// FieldContentMatcher creates a matcher for runs of bytes that are not in stop.
//
// Grammar:
//
//	Field = Character+ ;
//	Character = <any character not in the stop set> ;
//
// Structural characters are ASCII, so multi-byte UTF-8 sequences never stop
// a run.
func FieldContentMatcher(stop *[256]bool) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		if byteStream, ok := stream.(tokenizer.ByteStream); ok {
			return fieldContentByte(byteStream, stop)
		}
		return fieldContentRune(stream, stop)
	}
}

func fieldContentByte(stream tokenizer.ByteStream, stop *[256]bool) *tokenizer.Token {
	startPos := stream.BytePosition()

	for {
		b, ok := stream.PeekByte()
		if !ok || stop[b] {
			break
		}
		stream.NextByte()
	}

	if stream.BytePosition() == startPos {
		return nil
	}

	value := stream.SliceFrom(startPos)
	return tokenizer.NewToken(TokenField, []rune(string(value)))
}

func fieldContentRune(stream tokenizer.Stream, stop *[256]bool) *tokenizer.Token {
	var value []rune

	for {
		r, ok := stream.PeekChar()
		if !ok || (r < 256 && stop[r]) {
			break
		}
		stream.NextChar()
		value = append(value, r)
	}

	if len(value) == 0 {
		return nil
	}

	return tokenizer.NewToken(TokenField, value)
}

// EscapeMatcher matches the escape character together with the character
// that follows it, so an escape never covers more than one byte of a
// two-byte terminator. At end of input the escape stands alone.
func EscapeMatcher(escape byte) tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok || r != rune(escape) {
			return nil
		}
		stream.NextChar()
		value := []rune{r}
		if next, ok := stream.NextChar(); ok {
			value = append(value, next)
		}
		return tokenizer.NewToken(TokenEscape, value)
	}
}

// AnyCharMatcher consumes exactly one character as field content. It is the
// last matcher, so input the others reject (a lone '\r' under an LF
// dialect, for example) is kept as data instead of ending tokenization.
func AnyCharMatcher() tokenizer.Matcher {
	return func(stream tokenizer.Stream) *tokenizer.Token {
		r, ok := stream.PeekChar()
		if !ok {
			return nil
		}
		stream.NextChar()
		return tokenizer.NewToken(TokenField, []rune{r})
	}
}
