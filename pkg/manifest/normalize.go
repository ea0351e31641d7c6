package manifest

import (
	"fmt"
	"slices"
	"strings"

	"github.com/getmockd/mockroute/internal/matching"
	"github.com/getmockd/mockroute/pkg/value"
)

// MethodWildcard is the method-map key that matches any request method.
const MethodWildcard = "*"

var methodKeys = map[string]bool{
	"GET": true, "HEAD": true, "OPTIONS": true, "TRACE": true,
	"DELETE": true, "PUT": true, "PATCH": true, "POST": true,
	MethodWildcard: true,
}

// expandShorthand turns scalar route values into definition maps:
// empty values become {}, strings become {content} and numbers {code}.
// Lists and maps are returned unchanged.
func expandShorthand(v value.Value) value.Value {
	if !v.IsScalar() {
		return v
	}
	if v.Empty() {
		return value.MapOf(nil)
	}
	switch v.Kind() {
	case value.String:
		return value.MapOf(value.ObjectOf(FieldContent, v))
	case value.Number:
		return value.MapOf(value.ObjectOf(FieldCode, v))
	}
	return v
}

// isMethodMap reports whether any key of obj names an HTTP method or "*".
func isMethodMap(obj *value.Object) bool {
	return slices.ContainsFunc(obj.Keys(), func(k string) bool {
		return methodKeys[strings.ToUpper(k)]
	})
}

// normalizeRoute converts one authored route value into its definitions,
// sorted by specificity. Definitions are deep copies of the source.
func normalizeRoute(route string, v value.Value) ([]*Definition, error) {
	v = expandShorthand(v)

	var objs []*value.Object
	switch v.Kind() {
	case value.Map:
		obj, _ := v.AsMap()
		if isMethodMap(obj) {
			var err error
			objs, err = expandMethodMap(route, obj)
			if err != nil {
				return nil, err
			}
		} else {
			objs = []*value.Object{obj.Clone()}
		}
	case value.List:
		items, _ := v.AsList()
		for i, item := range items {
			obj, ok := expandShorthand(item).AsMap()
			if !ok {
				return nil, fmt.Errorf("%w: route %q definition %d is a %s", ErrInvalidDefinition, route, i, item.Kind())
			}
			objs = append(objs, obj.Clone())
		}
	default:
		return nil, fmt.Errorf("%w: route %q is a %s", ErrInvalidDefinition, route, v.Kind())
	}

	defs := make([]*Definition, 0, len(objs))
	for i, obj := range objs {
		def, err := parseDefinition(obj)
		if err != nil {
			return nil, fmt.Errorf("route %q definition %d: %w", route, i, err)
		}
		defs = append(defs, def)
	}
	sortDefinitions(defs)
	return defs, nil
}

// expandMethodMap turns {GET: ..., POST: ...} into one definition per key
// with match.method set from the key. "*" leaves the method unrestricted.
func expandMethodMap(route string, obj *value.Object) ([]*value.Object, error) {
	var out []*value.Object
	var err error
	obj.Range(func(method string, item value.Value) bool {
		def, ok := expandShorthand(item).AsMap()
		if !ok {
			err = fmt.Errorf("%w: route %q method %q is a %s", ErrInvalidDefinition, route, method, item.Kind())
			return false
		}
		def = def.Clone()

		match := value.NewObject()
		if mv, exists := def.Get(FieldMatch); exists && !mv.IsNull() {
			m, isMap := mv.AsMap()
			if !isMap {
				err = fmt.Errorf("%w: route %q method %q: match must be a map", ErrInvalidDefinition, route, method)
				return false
			}
			match = m
		}

		if method == MethodWildcard {
			match.Delete(matchMethod)
		} else {
			match.Set(matchMethod, value.StringOf(method))
		}
		if match.Len() > 0 || def.Has(FieldMatch) || method != MethodWildcard {
			def.Set(FieldMatch, value.MapOf(match))
		}

		out = append(out, def)
		return true
	})
	return out, err
}

func sortDefinitions(defs []*Definition) {
	if len(defs) < 2 {
		return
	}
	slices.SortStableFunc(defs, func(a, b *Definition) int {
		return matching.CompareDefinitions(a.Specificity(), b.Specificity())
	})
}
