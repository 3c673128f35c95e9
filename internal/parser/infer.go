package parser

import (
	"math"
	"strconv"
	"strings"
)

// Infer returns the typed value of an unquoted field: int64, float64, bool,
// nil for empty text, or the text itself.
//
// Only canonical spellings are typed, so formatting the value again yields
// the original text ("1.50" and "007" stay strings).
func Infer(text string) any {
	if text == "" {
		return nil
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		if strconv.FormatInt(i, 10) == text {
			return i
		}
		return text
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		if !math.IsInf(f, 0) && !math.IsNaN(f) && FormatFloat(f) == text {
			return f
		}
		return text
	}
	switch text {
	case "true":
		return true
	case "false":
		return false
	}
	return text
}

// FormatFloat returns the canonical text of f: the shortest 'g' form, with
// ".0" appended when that form would read back as an integer.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eEnN") {
		return s
	}
	return s + ".0"
}
