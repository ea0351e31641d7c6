package matching

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/getmockd/mockroute/pkg/value"
)

var numericPattern = regexp.MustCompile(`^\s*[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?\s*$`)

// IsNumeric reports whether s is a decimal number with optional sign,
// fraction and exponent. Surrounding whitespace is allowed.
func IsNumeric(s string) bool {
	return numericPattern.MatchString(s)
}

// CastBool converts a lenient boolean string.
// The second result is false when s has no boolean meaning.
func CastBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "on", "yes":
		return true, true
	case "0", "false", "off", "no", "":
		return false, true
	}
	return false, false
}

// castFloat parses a numeric string. Non-numeric input yields false.
func castFloat(s string) (float64, bool) {
	if !IsNumeric(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

// castInt parses an integral string. Integral floats such as "3.0" are
// accepted, fractions are not.
func castInt(s string) (int64, bool) {
	trimmed := strings.TrimSpace(s)
	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return n, true
	}
	f, ok := castFloat(trimmed)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// formatFloat renders f the way it would be printed back as a query value:
// integral values drop the fraction, others use the shortest exact form.
func formatFloat(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// isCanonicalInt reports whether s round-trips through integer rounding.
func isCanonicalInt(s string) bool {
	f, _ := castFloat(s)
	return strconv.FormatInt(int64(math.Round(f)), 10) == s
}

// isCanonicalFloat reports whether s round-trips through float formatting.
func isCanonicalFloat(s string) bool {
	f, ok := castFloat(s)
	return ok && formatFloat(f) == s
}

// matchesLiteral casts the query value to the literal's type and compares.
func matchesLiteral(literal, actual value.Value) bool {
	s, ok := actual.AsString()
	if !ok {
		return false
	}
	switch literal.Kind() {
	case value.Null:
		return true
	case value.String:
		want, _ := literal.AsString()
		return s == want
	case value.Bool:
		want, _ := literal.AsBool()
		got, ok := CastBool(s)
		return ok && got == want
	case value.Number:
		if literal.IsInt() {
			want, ok := literal.Int()
			if !ok {
				return false
			}
			got, ok := castInt(s)
			return ok && got == want
		}
		want, ok := literal.Float()
		if !ok {
			return false
		}
		got, ok := castFloat(s)
		return ok && got == want
	default:
		return false
	}
}
