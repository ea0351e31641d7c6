package value

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseJSON_PreservesOrder(t *testing.T) {
	v, err := ParseJSON([]byte(`{"zeta": 1, "alpha": {"b": true, "a": null}, "mid": [1, "two", 3.0]}`))
	require.NoError(t, err)

	obj, ok := v.AsMap()
	require.True(t, ok)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, obj.Keys())

	alpha, _ := obj.Get("alpha")
	inner, _ := alpha.AsMap()
	assert.Equal(t, []string{"b", "a"}, inner.Keys())

	mid, _ := obj.Get("mid")
	items, ok := mid.AsList()
	require.True(t, ok)
	require.Len(t, items, 3)
	lit, _ := items[2].AsNumber()
	assert.Equal(t, "3.0", lit)
	assert.False(t, items[2].IsInt())
	assert.True(t, items[0].IsInt())
}

func TestParseJSON_DuplicateKeysLastWins(t *testing.T) {
	v, err := ParseJSON([]byte(`{"a": 1, "b": 2, "a": 3}`))
	require.NoError(t, err)

	obj, _ := v.AsMap()
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	a, _ := obj.Get("a")
	assert.Equal(t, "3", a.Text())
}

func TestParseJSON_Errors(t *testing.T) {
	_, err := ParseJSON([]byte(`{"a": `))
	require.ErrorIs(t, err, ErrInvalidJSON)

	v, err := ParseJSON([]byte("  \n"))
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestMarshalJSON_NoHTMLEscaping(t *testing.T) {
	obj := NewObject()
	obj.Set("html", StringOf("<b>&</b>"))
	obj.Set("n", NumberOf("1.50"))
	obj.Set("list", ListOf(BoolOf(true), NullValue()))

	b, err := MapOf(obj).MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"html":"<b>&</b>","n":1.50,"list":[true,null]}`, string(b))
}

func TestMarshalIndent(t *testing.T) {
	obj := ObjectOf("a", 1, "b", map[string]any{"c": "d"})

	b, err := MarshalIndent(MapOf(obj), "    ")
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": {\n        \"c\": \"d\"\n    }\n}", string(b))
}

func TestFromYAMLNode(t *testing.T) {
	src := `
defaults: &defaults
  code: 200
  headers:
    x-mock: "yes"
route:
  <<: *defaults
  code: 404
  ratio: 1.0
  flag: on
  missing: ~
  items: [b, a]
`
	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(src), &doc))

	v, err := FromYAMLNode(&doc)
	require.NoError(t, err)

	root, _ := v.AsMap()
	route, _ := root.Get("route")
	obj, _ := route.AsMap()

	assert.Equal(t, []string{"headers", "code", "ratio", "flag", "missing", "items"}, obj.Keys())

	code, _ := obj.Get("code")
	assert.Equal(t, "404", code.Text())

	ratio, _ := obj.Get("ratio")
	assert.Equal(t, "1.0", ratio.Text())
	assert.False(t, ratio.IsInt())

	flag, _ := obj.Get("flag")
	assert.Equal(t, String, flag.Kind(), "YAML 1.2 keeps 'on' as a string")

	missing, _ := obj.Get("missing")
	assert.True(t, missing.IsNull())
}

func TestToYAMLNode_RoundTrip(t *testing.T) {
	in, err := ParseJSON([]byte(`{"b": "123", "a": [1, 2.5, true, null], "c": {"d": "text"}}`))
	require.NoError(t, err)

	out, err := yaml.Marshal(in)
	require.NoError(t, err)

	var doc yaml.Node
	require.NoError(t, yaml.Unmarshal(out, &doc))
	back, err := FromYAMLNode(&doc)
	require.NoError(t, err)

	assert.True(t, in.Equal(back), "round trip changed value: %s", out)
}

func TestEmpty(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"null", NullValue(), true},
		{"false", BoolOf(false), true},
		{"true", BoolOf(true), false},
		{"zero", IntOf(0), true},
		{"zero float", NumberOf("0.0"), true},
		{"number", IntOf(100), false},
		{"empty string", StringOf(""), true},
		{"zero string", StringOf("0"), true},
		{"string", StringOf("body"), false},
		{"empty list", ListOf(), true},
		{"empty map", MapOf(nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Empty())
		})
	}
}

func TestInt(t *testing.T) {
	n, ok := NumberOf("404.0").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(404), n)

	_, ok = NumberOf("1.5").Int()
	assert.False(t, ok)

	n, ok = StringOf(" 201 ").Int()
	assert.True(t, ok)
	assert.Equal(t, int64(201), n)
}

func TestFromAny(t *testing.T) {
	v, err := FromAny(map[string]any{
		"b": []any{1, "x"},
		"a": json.Number("2.5"),
	})
	require.NoError(t, err)

	obj, _ := v.AsMap()
	assert.Equal(t, []string{"a", "b"}, obj.Keys())

	native := v.ToAny().(map[string]any)
	assert.Equal(t, json.Number("2.5"), native["a"])
	assert.Equal(t, []any{json.Number("1"), "x"}, native["b"])

	_, err = FromAny(func() {})
	assert.Error(t, err)
}

func TestObjectDelete(t *testing.T) {
	obj := ObjectOf("a", 1, "b", 2, "c", 3)
	obj.Delete("b")
	obj.Delete("missing")

	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.False(t, obj.Has("b"))

	obj.Set("b", IntOf(4))
	assert.Equal(t, []string{"a", "c", "b"}, obj.Keys())
}

func TestClone_IsDeep(t *testing.T) {
	orig := MapOf(ObjectOf("headers", map[string]any{"x": "1"}))
	cp := orig.Clone()

	m, _ := cp.AsMap()
	h, _ := m.Get("headers")
	hm, _ := h.AsMap()
	hm.Set("y", StringOf("2"))

	om, _ := orig.AsMap()
	oh, _ := om.Get("headers")
	ohm, _ := oh.AsMap()
	assert.False(t, ohm.Has("y"))
}
