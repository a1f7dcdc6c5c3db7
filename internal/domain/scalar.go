package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

type scalarKind int

const (
	scalarNone scalarKind = iota
	scalarNumber
	scalarText
)

// Scalar is a loosely typed value from the upstream feed: a number, a string
// (numeric or not), or nothing at all. The zero value is the absent Scalar.
//
// Absence is how every unparseable input degrades in this package; callers
// substitute a display placeholder instead of handling an error.
type Scalar struct {
	kind scalarKind
	num  float64
	str  string
}

// None returns the absent Scalar.
func None() Scalar { return Scalar{} }

// Number returns a numeric Scalar.
func Number(f float64) Scalar { return Scalar{kind: scalarNumber, num: f} }

// Text returns a string Scalar.
func Text(s string) Scalar { return Scalar{kind: scalarText, str: s} }

// IsNone reports whether the value is absent.
func (s Scalar) IsNone() bool { return s.kind == scalarNone }

// Float returns the value as a float64. Text values are coerced, since
// numeric strings are common in the feed. NaN numbers and non-numeric text
// report ok=false.
func (s Scalar) Float() (float64, bool) {
	switch s.kind {
	case scalarNumber:
		if math.IsNaN(s.num) {
			return s.num, false
		}
		return s.num, true
	case scalarText:
		f, err := strconv.ParseFloat(strings.TrimSpace(s.str), 64)
		if err != nil || math.IsNaN(f) {
			return math.NaN(), false
		}
		return f, true
	default:
		return 0, false
	}
}

// String renders the value: numbers use the shortest decimal form (so 20.0
// prints as "20" and NaN as "NaN"), text is returned verbatim, and absence
// is empty.
func (s Scalar) String() string {
	switch s.kind {
	case scalarNumber:
		return formatNumber(s.num)
	case scalarText:
		return s.str
	default:
		return ""
	}
}

// UnmarshalJSON accepts a JSON number, string, or null. Anything else
// (objects, arrays, booleans) degrades to absence rather than erroring.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = None()
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*s = None()
			return nil
		}
		*s = Text(str)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*s = None()
		return nil
	}
	*s = Number(f)
	return nil
}

// MarshalJSON renders numbers as numbers, text as strings, absence as null.
func (s Scalar) MarshalJSON() ([]byte, error) {
	switch s.kind {
	case scalarNumber:
		if math.IsNaN(s.num) || math.IsInf(s.num, 0) {
			return []byte(`"` + formatNumber(s.num) + `"`), nil
		}
		return json.Marshal(s.num)
	case scalarText:
		return json.Marshal(s.str)
	default:
		return []byte("null"), nil
	}
}

// formatNumber renders a float in its shortest decimal form.
func formatNumber(f float64) string {
	if math.IsNaN(f) {
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// round mirrors the round-half-up convention used throughout the display
// formatting (round(-20.5) is -20, not -21).
func round(f float64) float64 {
	return math.Floor(f + 0.5)
}

// roundTo rounds to the given number of decimal places, half up.
func roundTo(f float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return round(f*shift) / shift
}
