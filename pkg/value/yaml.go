package value

import (
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// FromYAMLNode converts a decoded YAML node. Aliases are resolved and merge
// keys (<<) are applied with explicit keys taking precedence.
func FromYAMLNode(n *yaml.Node) (Value, error) {
	if n == nil || n.Kind == 0 {
		return Value{}, nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Value{}, nil
		}
		return FromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return FromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		return yamlScalar(n)
	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := FromYAMLNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return ListOf(items...), nil
	case yaml.MappingNode:
		return yamlMapping(n)
	}
	return Value{}, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
}

func yamlScalar(n *yaml.Node) (Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return Value{}, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return Value{}, err
		}
		return BoolOf(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return IntOf(i), nil
		}
		var u uint64
		if err := n.Decode(&u); err == nil {
			return NumberOf(strconv.FormatUint(u, 10)), nil
		}
		return StringOf(n.Value), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return Value{}, err
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return StringOf(n.Value), nil
		}
		lit := strconv.FormatFloat(f, 'f', -1, 64)
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			lit += ".0"
		}
		return NumberOf(lit), nil
	default:
		return StringOf(n.Value), nil
	}
}

func yamlMapping(n *yaml.Node) (Value, error) {
	explicit := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if k := n.Content[i]; k.ShortTag() != "!!merge" {
			explicit[k.Value] = true
		}
	}

	obj := NewObject()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.ShortTag() == "!!merge" {
			if err := mergeInto(obj, v, explicit); err != nil {
				return Value{}, err
			}
			continue
		}
		if k.Kind == yaml.AliasNode {
			k = k.Alias
		}
		if k.Kind != yaml.ScalarNode {
			return Value{}, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
		}
		item, err := FromYAMLNode(v)
		if err != nil {
			return Value{}, err
		}
		obj.Set(k.Value, item)
	}
	return MapOf(obj), nil
}

func mergeInto(obj *Object, src *yaml.Node, explicit map[string]bool) error {
	if src.Kind == yaml.AliasNode {
		src = src.Alias
	}
	var sources []*yaml.Node
	switch src.Kind {
	case yaml.MappingNode:
		sources = []*yaml.Node{src}
	case yaml.SequenceNode:
		sources = src.Content
	default:
		return fmt.Errorf("line %d: merge value must be a mapping", src.Line)
	}
	for _, s := range sources {
		merged, err := FromYAMLNode(s)
		if err != nil {
			return err
		}
		m, ok := merged.AsMap()
		if !ok {
			return fmt.Errorf("line %d: merge value must be a mapping", s.Line)
		}
		m.Range(func(key string, item Value) bool {
			if !explicit[key] && !obj.Has(key) {
				obj.Set(key, item)
			}
			return true
		})
	}
	return nil
}

// ToYAMLNode converts v into a YAML node tree suitable for yaml.Marshal.
func (v Value) ToYAMLNode() *yaml.Node {
	switch v.kind {
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v.b)}
	case Number:
		tag := "!!float"
		if v.IsInt() {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.s}
	case String:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.s}
	case List:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.list {
			n.Content = append(n.Content, item.ToYAMLNode())
		}
		return n
	case Map:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		v.m.Range(func(k string, item Value) bool {
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
				item.ToYAMLNode())
			return true
		})
		return n
	default:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
}

// MarshalYAML implements yaml.Marshaler.
func (v Value) MarshalYAML() (any, error) {
	return v.ToYAMLNode(), nil
}
