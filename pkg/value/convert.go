package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// FromAny converts a Go value into a Value.
//
// Native maps have no order, so their keys are sorted. Types without a direct
// mapping are round-tripped through encoding/json.
func FromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return t, nil
	case *Value:
		if t == nil {
			return Value{}, nil
		}
		return *t, nil
	case *Object:
		return MapOf(t), nil
	case bool:
		return BoolOf(t), nil
	case string:
		return StringOf(t), nil
	case json.Number:
		return NumberOf(t.String()), nil
	case int:
		return IntOf(int64(t)), nil
	case int8:
		return IntOf(int64(t)), nil
	case int16:
		return IntOf(int64(t)), nil
	case int32:
		return IntOf(int64(t)), nil
	case int64:
		return IntOf(t), nil
	case uint:
		return NumberOf(strconv.FormatUint(uint64(t), 10)), nil
	case uint8:
		return IntOf(int64(t)), nil
	case uint16:
		return IntOf(int64(t)), nil
	case uint32:
		return IntOf(int64(t)), nil
	case uint64:
		return NumberOf(strconv.FormatUint(t, 10)), nil
	case float32:
		return FloatOf(float64(t)), nil
	case float64:
		return FloatOf(t), nil
	case []any:
		items := make([]Value, 0, len(t))
		for _, item := range t {
			v, err := FromAny(item)
			if err != nil {
				return Value{}, err
			}
			items = append(items, v)
		}
		return ListOf(items...), nil
	case []string:
		items := make([]Value, 0, len(t))
		for _, s := range t {
			items = append(items, StringOf(s))
		}
		return ListOf(items...), nil
	case map[string]any:
		obj := NewObject()
		for _, k := range sortedKeys(t) {
			v, err := FromAny(t[k])
			if err != nil {
				return Value{}, err
			}
			obj.Set(k, v)
		}
		return MapOf(obj), nil
	case map[string]string:
		obj := NewObject()
		for _, k := range sortedKeys(t) {
			obj.Set(k, StringOf(t[k]))
		}
		return MapOf(obj), nil
	}

	rv := reflect.ValueOf(x)
	if rv.Kind() == reflect.Func || rv.Kind() == reflect.Chan {
		return Value{}, fmt.Errorf("cannot convert %T to a document value", x)
	}
	data, err := json.Marshal(x)
	if err != nil {
		return Value{}, fmt.Errorf("cannot convert %T to a document value: %w", x, err)
	}
	return ParseJSON(data)
}

// ToAny converts v into plain Go values. Numbers become json.Number and maps
// become map[string]any.
func (v Value) ToAny() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return json.Number(v.s)
	case String:
		return v.s
	case List:
		out := make([]any, len(v.list))
		for i, item := range v.list {
			out[i] = item.ToAny()
		}
		return out
	case Map:
		out := make(map[string]any, v.m.Len())
		v.m.Range(func(k string, item Value) bool {
			out[k] = item.ToAny()
			return true
		})
		return out
	default:
		return nil
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
