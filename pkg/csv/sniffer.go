package csv

import (
	"bytes"
	"regexp"
	"strings"
)

var sniffDelimiters = []byte{',', '\t', ';', '|'}

var (
	headerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`),       // snake_case or identifier
		regexp.MustCompile(`^[a-zA-Z]+[A-Z][a-zA-Z]*$`),      // camelCase
		regexp.MustCompile(`^[A-Z][a-z]+([ ][A-Z][a-z]+)*$`), // Title Case
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	}
)

// Sniffer guesses the dialect of a sample of delimited text.
type Sniffer struct {
	lines      []string
	terminator string
	delimiter  byte
	hasHeader  bool
	analyzed   bool
}

// NewSniffer creates a Sniffer for sample.
// For best results, provide at least 2-3 lines of data.
func NewSniffer(sample []byte) *Sniffer {
	terminator := "\n"
	if bytes.Contains(sample, []byte("\r\n")) {
		terminator = "\r\n"
	}
	text := strings.ReplaceAll(string(sample), "\r\n", "\n")
	return &Sniffer{
		lines:      strings.Split(text, "\n"),
		terminator: terminator,
	}
}

// SniffDialect returns a Default-based dialect with the delimiter and line
// terminator detected in sample.
func SniffDialect(sample []byte) *Dialect {
	return NewSniffer(sample).Dialect()
}

func (s *Sniffer) analyze() {
	if s.analyzed {
		return
	}
	s.delimiter = s.detectDelimiter()
	s.hasHeader = s.detectHeader()
	s.analyzed = true
}

// Delimiter returns the detected field delimiter: one of ',' '\t' ';' '|'.
func (s *Sniffer) Delimiter() byte {
	s.analyze()
	return s.delimiter
}

// Terminator returns "\r\n" if the sample contains one, else "\n".
func (s *Sniffer) Terminator() string {
	return s.terminator
}

// HasHeader reports whether the first row looks like a header.
func (s *Sniffer) HasHeader() bool {
	s.analyze()
	return s.hasHeader
}

// Dialect builds the detected dialect.
func (s *Sniffer) Dialect() *Dialect {
	opts := DefaultDialectOptions()
	opts.Name = "sniffed"
	opts.Delimiter = s.Delimiter()
	opts.LineTerminator = s.terminator
	return mustDialect(opts)
}

// detectDelimiter scores each candidate by its count on the first line,
// with a bonus when every line agrees.
func (s *Sniffer) detectDelimiter() byte {
	best := byte(',')
	bestScore := 0

	for _, delim := range sniffDelimiters {
		counts := make([]int, 0, len(s.lines))
		for _, line := range s.lines {
			if line == "" {
				continue
			}
			counts = append(counts, countDelimiter(line, delim))
		}
		if len(counts) == 0 || counts[0] == 0 {
			continue
		}

		score := counts[0]
		consistent := true
		for _, c := range counts[1:] {
			if c != counts[0] {
				consistent = false
				break
			}
		}
		if consistent {
			score *= 10
		}
		if score > bestScore {
			best, bestScore = delim, score
		}
	}

	return best
}

// countDelimiter counts occurrences of a delimiter, ignoring quoted sections.
func countDelimiter(line string, delim byte) int {
	count := 0
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case delim:
			if !inQuotes {
				count++
			}
		}
	}
	return count
}

// detectHeader uses heuristics to decide whether the first row is a header:
// header cells look like identifiers or titles, data cells look like
// numbers, e-mail addresses or dates.
func (s *Sniffer) detectHeader() bool {
	if len(s.lines) < 2 || s.lines[0] == "" {
		return false
	}
	hasData := false
	for _, line := range s.lines[1:] {
		if line != "" {
			hasData = true
			break
		}
	}
	if !hasData {
		return false
	}

	headerScore, dataScore := 0, 0
	for _, cell := range splitByDelimiter(s.lines[0], s.delimiter) {
		cell = strings.Trim(strings.TrimSpace(cell), `"`)
		if isLikelyHeader(cell) {
			headerScore++
		}
		if isLikelyData(cell) {
			dataScore++
		}
	}
	return headerScore > dataScore
}

func isLikelyHeader(s string) bool {
	if s == "" || isNumeric(s) {
		return false
	}
	for _, pattern := range headerPatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func isLikelyData(s string) bool {
	if s == "" {
		return false
	}
	if isNumeric(s) || strings.Contains(s, "@") {
		return true
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(s) {
			return true
		}
	}
	return false
}

func isNumeric(s string) bool {
	_, err := String(s).ToDouble()
	return err == nil
}

// splitByDelimiter splits a line by delimiter, respecting quotes.
func splitByDelimiter(line string, delim byte) []string {
	var fields []string
	start := 0
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case delim:
			if !inQuotes {
				fields = append(fields, line[start:i])
				start = i + 1
			}
		}
	}
	return append(fields, line[start:])
}
