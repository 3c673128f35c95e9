package csv

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shapestone/csvee/internal/parser"
)

// Kind is the type tag of a Field.
type Kind int

const (
	// KindString is text. Parsed fields are strings unless types are inferred.
	KindString Kind = iota
	// KindInteger is a signed 64-bit integer.
	KindInteger
	// KindFloat is a 64-bit floating-point number.
	KindFloat
	// KindBoolean is true or false.
	KindBoolean
	// KindNull is an absent value; its text is empty.
	KindNull
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindBoolean:
		return "boolean"
	case KindNull:
		return "null"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Field is a single typed cell. Only the member selected by kind is
// meaningful. The zero Field is the empty string.
type Field struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// String returns a string field.
func String(s string) Field { return Field{kind: KindString, s: s} }

// Integer returns an integer field.
func Integer(i int64) Field { return Field{kind: KindInteger, i: i} }

// Float returns a floating-point field.
func Float(f float64) Field { return Field{kind: KindFloat, f: f} }

// Boolean returns a boolean field.
func Boolean(b bool) Field { return Field{kind: KindBoolean, b: b} }

// Null returns a null field.
func Null() Field { return Field{kind: KindNull} }

// fieldFromValue builds a Field from a parsed AST literal value.
func fieldFromValue(v any) Field {
	switch x := v.(type) {
	case nil:
		return Null()
	case string:
		return String(x)
	case int64:
		return Integer(x)
	case int:
		return Integer(int64(x))
	case float64:
		return Float(x)
	case bool:
		return Boolean(x)
	default:
		return String(fmt.Sprintf("%v", x))
	}
}

// value returns the field as an AST literal value.
func (f Field) value() any {
	switch f.kind {
	case KindInteger:
		return f.i
	case KindFloat:
		return f.f
	case KindBoolean:
		return f.b
	case KindNull:
		return nil
	default:
		return f.s
	}
}

// Kind returns the type tag.
func (f Field) Kind() Kind { return f.kind }

// IsNull reports whether the field is null.
func (f Field) IsNull() bool { return f.kind == KindNull }

// IsNumeric reports whether the field is an integer or a float.
func (f Field) IsNumeric() bool { return f.kind == KindInteger || f.kind == KindFloat }

// Text returns the canonical textual form used by the serializer.
func (f Field) Text() string {
	switch f.kind {
	case KindInteger:
		return strconv.FormatInt(f.i, 10)
	case KindFloat:
		return parser.FormatFloat(f.f)
	case KindBoolean:
		return strconv.FormatBool(f.b)
	case KindNull:
		return ""
	default:
		return f.s
	}
}

// ToString returns the canonical text. It never fails.
func (f Field) ToString() string {
	return f.Text()
}

// ToInteger converts the field to int64.
// On failure it returns 0 and a *ConversionError.
func (f Field) ToInteger() (int64, error) {
	switch f.kind {
	case KindInteger:
		return f.i, nil
	case KindFloat:
		if f.f != math.Trunc(f.f) || f.f < math.MinInt64 || f.f >= math.MaxInt64 {
			return 0, &ConversionError{Text: f.Text(), To: "integer"}
		}
		return int64(f.f), nil
	case KindBoolean:
		if f.b {
			return 1, nil
		}
		return 0, nil
	case KindNull:
		return 0, &ConversionError{Text: "", To: "integer"}
	default:
		i, err := strconv.ParseInt(strings.TrimSpace(f.s), 10, 64)
		if err != nil {
			return 0, &ConversionError{Text: f.s, To: "integer", Err: err}
		}
		return i, nil
	}
}

// ToDouble converts the field to float64.
// On failure it returns 0 and a *ConversionError.
func (f Field) ToDouble() (float64, error) {
	switch f.kind {
	case KindInteger:
		return float64(f.i), nil
	case KindFloat:
		return f.f, nil
	case KindBoolean:
		if f.b {
			return 1, nil
		}
		return 0, nil
	case KindNull:
		return 0, &ConversionError{Text: "", To: "double"}
	default:
		d, err := strconv.ParseFloat(strings.TrimSpace(f.s), 64)
		if err != nil {
			return 0, &ConversionError{Text: f.s, To: "double", Err: err}
		}
		return d, nil
	}
}

// ToBoolean converts the field to bool. Text recognizes true/false, 1/0,
// yes/no, y/n, on/off and t/f (case-insensitive); numbers are true when
// non-zero. On failure it returns false and a *ConversionError.
func (f Field) ToBoolean() (bool, error) {
	switch f.kind {
	case KindInteger:
		return f.i != 0, nil
	case KindFloat:
		return f.f != 0, nil
	case KindBoolean:
		return f.b, nil
	case KindNull:
		return false, &ConversionError{Text: "", To: "boolean"}
	default:
		switch strings.ToLower(strings.TrimSpace(f.s)) {
		case "true", "1", "yes", "y", "on", "t":
			return true, nil
		case "false", "0", "no", "n", "off", "f":
			return false, nil
		default:
			return false, &ConversionError{Text: f.s, To: "boolean"}
		}
	}
}

// Equal reports whether two fields have the same kind and canonical text.
func (f Field) Equal(other Field) bool {
	return f.kind == other.kind && f.Text() == other.Text()
}
