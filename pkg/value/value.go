// Package value provides the document model shared by every manifest parser.
//
// A Value is a tagged union over null, booleans, numbers, strings, lists and
// string-keyed maps. Maps preserve insertion order, which is what makes the
// order of routes, definitions and condition keys stable across JSON, JSONC
// and YAML sources.
//
// Numbers keep the literal text they were parsed from so that "10" and
// "10.0" remain distinguishable when conditions compare against them.
package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

// Value kinds. The zero Value is Null.
const (
	Null Kind = iota
	Bool
	Number
	String
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "unknown"
	}
}

// Value is an immutable-by-convention document node.
type Value struct {
	kind Kind
	b    bool
	s    string // string payload or number literal
	list []Value
	m    *Object
}

// NullValue returns the null value.
func NullValue() Value { return Value{} }

// BoolOf wraps a boolean.
func BoolOf(b bool) Value { return Value{kind: Bool, b: b} }

// NumberOf wraps a number literal. The literal is not validated.
func NumberOf(literal string) Value { return Value{kind: Number, s: literal} }

// IntOf wraps an integer.
func IntOf(n int64) Value { return NumberOf(strconv.FormatInt(n, 10)) }

// FloatOf wraps a float using the shortest representation that round-trips.
func FloatOf(f float64) Value {
	return NumberOf(strconv.FormatFloat(f, 'g', -1, 64))
}

// StringOf wraps a string.
func StringOf(s string) Value { return Value{kind: String, s: s} }

// ListOf wraps the given items.
func ListOf(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: List, list: items}
}

// MapOf wraps an ordered map. A nil map becomes an empty one.
func MapOf(m *Object) Value {
	if m == nil {
		m = NewObject()
	}
	return Value{kind: Map, m: m}
}

// Kind returns the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == Null }

// IsScalar reports whether v is neither a list nor a map.
func (v Value) IsScalar() bool { return v.kind != List && v.kind != Map }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == Bool }

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	if v.kind != String {
		return "", false
	}
	return v.s, true
}

// AsNumber returns the number literal.
func (v Value) AsNumber() (string, bool) {
	if v.kind != Number {
		return "", false
	}
	return v.s, true
}

// AsList returns the list items. The slice must not be modified.
func (v Value) AsList() ([]Value, bool) {
	if v.kind != List {
		return nil, false
	}
	return v.list, true
}

// AsMap returns the ordered map.
func (v Value) AsMap() (*Object, bool) {
	if v.kind != Map {
		return nil, false
	}
	return v.m, true
}

// IsInt reports whether v is a number literal without fraction or exponent.
func (v Value) IsInt() bool {
	return v.kind == Number && !strings.ContainsAny(v.s, ".eE")
}

// Int returns v as an integer. Integral floats such as 404.0 are accepted.
func (v Value) Int() (int64, bool) {
	switch v.kind {
	case Number:
		if n, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return int64(f), true
	case String:
		s := strings.TrimSpace(v.s)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Float returns a number as float64.
func (v Value) Float() (float64, bool) {
	if v.kind != Number {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.s, 64)
	return f, err == nil
}

// Empty reports whether v counts as empty: null, false, zero, "" and "0".
func (v Value) Empty() bool {
	switch v.kind {
	case Null:
		return true
	case Bool:
		return !v.b
	case Number:
		f, err := strconv.ParseFloat(v.s, 64)
		return err == nil && f == 0
	case String:
		return v.s == "" || v.s == "0"
	case List:
		return len(v.list) == 0
	case Map:
		return v.m.Len() == 0
	}
	return false
}

// Text renders a scalar as plain text. Lists and maps render as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case Null:
		return ""
	case Bool:
		return strconv.FormatBool(v.b)
	case Number, String:
		return v.s
	default:
		b, _ := v.MarshalJSON()
		return string(b)
	}
}

// String implements fmt.Stringer.
func (v Value) String() string { return v.Text() }

// Equal reports deep equality. Map comparison ignores key order.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Null:
		return true
	case Bool:
		return v.b == o.b
	case Number, String:
		return v.s == o.s
	case List:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case Map:
		return v.m.Equal(o.m)
	}
	return false
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case List:
		items := make([]Value, len(v.list))
		for i, item := range v.list {
			items[i] = item.Clone()
		}
		return Value{kind: List, list: items}
	case Map:
		return Value{kind: Map, m: v.m.Clone()}
	default:
		return v
	}
}
