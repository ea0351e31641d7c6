package manifest

import (
	"fmt"

	"github.com/getmockd/mockroute/internal/matching"
	"github.com/getmockd/mockroute/pkg/value"
)

// Reserved definition fields. Every other field is custom data.
const (
	FieldMatch   = "match"
	FieldCode    = "code"
	FieldContent = "content"
	FieldHeaders = "headers"
	FieldVersion = "version"
	FieldReason  = "reason"

	matchMethod = "method"
	matchQuery  = "query"
)

var reservedFields = map[string]bool{
	FieldMatch: true, FieldCode: true, FieldContent: true,
	FieldHeaders: true, FieldVersion: true, FieldReason: true,
}

// Match holds the conditions under which a definition applies.
type Match struct {
	// Method restricts the request method, compared case-insensitively.
	Method string
	// Query holds condition expressions keyed by query parameter.
	Query *value.Object
	// Variables binds route placeholders to literal values.
	Variables *value.Object
}

// Definition is one normalized candidate response for a route.
// Definitions are read-only once loaded.
type Definition struct {
	Match   *Match
	Code    int
	HasCode bool
	Content value.Value
	Headers *value.Object
	Version string
	Reason  string
	// Extra holds every non-reserved field in authored order.
	Extra *value.Object

	source *value.Object
}

// Specificity summarizes the match block for definition ordering.
func (d *Definition) Specificity() matching.Specificity {
	if d.Match == nil {
		return matching.Specificity{}
	}
	return matching.Specificity{
		HasMatch:  true,
		HasMethod: d.Match.Method != "",
		HasQuery:  d.Match.Query != nil,
		QueryKeys: d.Match.Query.Len(),
	}
}

// ToValue returns the normalized definition as authored.
func (d *Definition) ToValue() value.Value {
	return value.MapOf(d.source.Clone())
}

// MarshalJSON encodes the normalized definition.
func (d *Definition) MarshalJSON() ([]byte, error) {
	return d.ToValue().MarshalJSON()
}

func parseDefinition(obj *value.Object) (*Definition, error) {
	def := &Definition{
		Extra:  value.NewObject(),
		source: obj,
	}

	var err error
	obj.Range(func(key string, v value.Value) bool {
		// Null reserved fields count as absent.
		if v.IsNull() && reservedFields[key] {
			return true
		}
		switch key {
		case FieldMatch:
			def.Match, err = parseMatch(v)
		case FieldCode:
			def.Code, err = parseCode(v)
			def.HasCode = err == nil
		case FieldContent:
			def.Content = v
		case FieldHeaders:
			def.Headers, err = parseHeaders(v)
		case FieldVersion:
			if !v.IsScalar() {
				err = fmt.Errorf("%w: version must be a string or number", ErrInvalidDefinition)
			}
			def.Version = v.Text()
		case FieldReason:
			if !v.IsScalar() {
				err = fmt.Errorf("%w: reason must be a string", ErrInvalidDefinition)
			}
			def.Reason = v.Text()
		default:
			def.Extra.Set(key, v)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

func parseMatch(v value.Value) (*Match, error) {
	obj, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: match must be a map, got %s", ErrInvalidDefinition, v.Kind())
	}

	m := &Match{Variables: value.NewObject()}
	var err error
	obj.Range(func(key string, item value.Value) bool {
		if item.IsNull() && (key == matchMethod || key == matchQuery) {
			return true
		}
		switch key {
		case matchMethod:
			s, isString := item.AsString()
			if !isString {
				err = fmt.Errorf("%w: match.method must be a string", ErrInvalidDefinition)
			}
			m.Method = s
		case matchQuery:
			q, isMap := item.AsMap()
			if !isMap {
				err = fmt.Errorf("%w: match.query must be a map, got %s", ErrInvalidDefinition, item.Kind())
			}
			m.Query = q
		default:
			if !item.IsScalar() {
				err = fmt.Errorf("%w: route variable %q must be a scalar", ErrInvalidDefinition, key)
			}
			m.Variables.Set(key, item)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func parseCode(v value.Value) (int, error) {
	n, ok := v.Int()
	if !ok {
		return 0, fmt.Errorf("%w: code must be an integer, got %q", ErrInvalidDefinition, v.Text())
	}
	return int(n), nil
}

func parseHeaders(v value.Value) (*value.Object, error) {
	obj, ok := v.AsMap()
	if !ok {
		return nil, fmt.Errorf("%w: headers must be a map, got %s", ErrInvalidDefinition, v.Kind())
	}
	var err error
	obj.Range(func(name string, item value.Value) bool {
		if items, isList := item.AsList(); isList {
			for _, it := range items {
				if !it.IsScalar() {
					err = fmt.Errorf("%w: header %q values must be scalars", ErrInvalidDefinition, name)
					return false
				}
			}
			return true
		}
		if !item.IsScalar() {
			err = fmt.Errorf("%w: header %q must be a scalar or list", ErrInvalidDefinition, name)
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return obj, nil
}
