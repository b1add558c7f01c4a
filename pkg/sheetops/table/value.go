// Package table defines the in-memory tabular dataset model: a tagged cell
// value variant, column metadata, and in-place cell mutation.
package table

import (
	"strconv"
	"strings"
	"time"
)

// Kind identifies the logical type of a cell value or column.
type Kind int

const (
	// KindText holds an opaque string.
	KindText Kind = iota
	// KindInteger holds a 64-bit integer.
	KindInteger
	// KindFloat holds a 64-bit float.
	KindFloat
	// KindDate holds a calendar date or timestamp.
	KindDate
	// KindMissing marks an absent cell.
	KindMissing
)

// String returns the kind name used in previews and logs.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	case KindMissing:
		return "missing"
	default:
		return "text"
	}
}

// dateLayouts are the accepted textual date forms, tried in order.
// excelize formats date cells per their number format, so both ISO and
// the spreadsheet default short form appear in practice.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/2006",
}

// Value is a tagged scalar cell value.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	t    time.Time
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Integer returns an integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Date returns a date value.
func Date(t time.Time) Value { return Value{kind: KindDate, t: t} }

// Missing returns the missing-cell marker.
func Missing() Value { return Value{kind: KindMissing} }

// Kind reports the value's logical type.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the missing marker.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// String coerces the value to its canonical text form. Missing renders as
// the empty string. Key comparison in dedupe/compare/lookup operates on this
// form, so two values are the same key exactly when their strings match.
func (v Value) String() string {
	switch v.kind {
	case KindInteger:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDate:
		if v.t.Hour() == 0 && v.t.Minute() == 0 && v.t.Second() == 0 {
			return v.t.Format("2006-01-02")
		}
		return v.t.Format("2006-01-02 15:04:05")
	case KindMissing:
		return ""
	default:
		return v.s
	}
}

// Float reports the value as a float64 when it is numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInteger:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Int reports the value as an int64 when it is an integer.
func (v Value) Int() (int64, bool) {
	if v.kind == KindInteger {
		return v.i, true
	}
	return 0, false
}

// Time reports the value as a time.Time when it is a date.
func (v Value) Time() (time.Time, bool) {
	if v.kind == KindDate {
		return v.t, true
	}
	return time.Time{}, false
}

// ParseLiteral parses a raw cell string into the narrowest matching value:
// integer, then float, then date, then text. The empty string is Missing.
func ParseLiteral(s string) Value {
	if s == "" {
		return Missing()
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Integer(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	if t, ok := parseDate(s); ok {
		return Date(t)
	}
	return Text(s)
}

// ParseAs parses a raw string toward a target column kind, falling back to
// literal text when the parse fails. It never reports an error: unparseable
// numeric or date input simply becomes a text cell.
func ParseAs(s string, k Kind) Value {
	if s == "" {
		return Missing()
	}
	switch k {
	case KindInteger, KindFloat:
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return Integer(i)
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return Float(f)
		}
	case KindDate:
		if t, ok := parseDate(s); ok {
			return Date(t)
		}
	}
	return Text(s)
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Key returns the trimmed string form used for key equality in dedupe,
// compare, and exact lookup. Comparison is by string form, not native type:
// "1" and "1.5" rendered differently are distinct keys even when numerically
// related, matching the tool's established behavior.
func (v Value) Key() string {
	return strings.TrimSpace(v.String())
}

// InferKind derives a column kind from its cell kinds. Missing cells do not
// vote. A column is Integer when every voting cell is an integer, Float when
// every voting cell is numeric, Date when every voting cell is a date, and
// Text otherwise (including the empty column).
func InferKind(cells []Value) Kind {
	allInt, allNum, allDate := true, true, true
	voted := false
	for _, c := range cells {
		if c.IsMissing() {
			continue
		}
		voted = true
		switch c.Kind() {
		case KindInteger:
			allDate = false
		case KindFloat:
			allInt = false
			allDate = false
		case KindDate:
			allInt = false
			allNum = false
		default:
			return KindText
		}
	}
	switch {
	case !voted:
		return KindText
	case allInt:
		return KindInteger
	case allNum:
		return KindFloat
	case allDate:
		return KindDate
	default:
		return KindText
	}
}
