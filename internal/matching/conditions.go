package matching

import (
	"github.com/getmockd/mockroute/pkg/value"
)

// Sentinel condition expressions. Any other expected value is compared as a
// literal, or as a set of allowed literals when it is a list.
const (
	CondIsset   = "__isset__"
	CondMissing = "__missing__"
	CondTrue    = "__true__"
	CondFalse   = "__false__"
	CondBool    = "__bool__"
	CondString  = "__string__"
	CondNumeric = "__numeric__"
	CondInt     = "__int__"
	CondFloat   = "__float__"
	CondArray   = "__array__"
)

// Sentinels lists every sentinel expression.
var Sentinels = []string{
	CondIsset, CondMissing, CondTrue, CondFalse, CondBool,
	CondString, CondNumeric, CondInt, CondFloat, CondArray,
}

// EvaluateConditions reports whether every condition holds for the parsed
// query. Conditions are checked in order and evaluation stops at the first
// failure. An empty condition set always holds.
func EvaluateConditions(conditions, query *value.Object) bool {
	ok := true
	conditions.Range(func(key string, expected value.Value) bool {
		actual, present := query.Get(key)
		ok = EvaluateCondition(expected, actual, present)
		return ok
	})
	return ok
}

// EvaluateCondition checks a single expected expression against a query value.
func EvaluateCondition(expected, actual value.Value, present bool) bool {
	if sentinel, isString := expected.AsString(); isString {
		switch sentinel {
		case CondIsset:
			return present
		case CondMissing:
			return !present
		case CondTrue:
			b, ok := scalarBool(actual, present)
			return ok && b
		case CondFalse:
			b, ok := scalarBool(actual, present)
			return ok && !b
		case CondBool:
			_, ok := scalarBool(actual, present)
			return ok
		case CondString:
			return present && actual.Kind() == value.String
		case CondNumeric:
			s, ok := actual.AsString()
			return present && ok && IsNumeric(s)
		case CondInt:
			s, ok := actual.AsString()
			return present && ok && isCanonicalInt(s)
		case CondFloat:
			s, ok := actual.AsString()
			return present && ok && isCanonicalFloat(s)
		case CondArray:
			return present && (actual.Kind() == value.List || actual.Kind() == value.Map)
		}
	}

	if !present {
		return false
	}

	candidates := []value.Value{expected}
	if items, isList := expected.AsList(); isList {
		candidates = items
	}
	for _, c := range candidates {
		if matchesLiteral(c, actual) {
			return true
		}
	}
	return false
}

func scalarBool(actual value.Value, present bool) (bool, bool) {
	if !present {
		return false, false
	}
	s, ok := actual.AsString()
	if !ok {
		return false, false
	}
	return CastBool(s)
}
