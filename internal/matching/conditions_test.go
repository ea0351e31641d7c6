package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/getmockd/mockroute/pkg/value"
)

func TestEvaluateCondition_Sentinels(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		query    string
		want     bool
	}{
		{"isset present", CondIsset, "v=true", true},
		{"isset empty value", CondIsset, "v=", true},
		{"isset absent", CondIsset, "other=1", false},
		{"missing absent", CondMissing, "", true},
		{"missing present", CondMissing, "v=1", false},

		{"true from 1", CondTrue, "v=1", true},
		{"true from yes", CondTrue, "v=YES", true},
		{"true from 0", CondTrue, "v=0", false},
		{"true absent", CondTrue, "", false},
		{"false from 0", CondFalse, "v=0", true},
		{"false from off", CondFalse, "v=off", true},
		{"false from empty", CondFalse, "v=", true},
		{"false from word", CondFalse, "v=word", false},
		{"bool from yes", CondBool, "v=yes", true},
		{"bool from no", CondBool, "v=no", true},
		{"bool from word", CondBool, "v=word", false},
		{"bool from array", CondBool, "v[]=1", false},

		{"string scalar", CondString, "v=word", true},
		{"string numeric text", CondString, "v=12", true},
		{"string array", CondString, "v[]=word", false},
		{"string absent", CondString, "", false},

		{"numeric float", CondNumeric, "v=1.2", true},
		{"numeric negative exp", CondNumeric, "v=-1e3", true},
		{"numeric word", CondNumeric, "v=1.2.3", false},
		{"numeric hex", CondNumeric, "v=0x1A", false},

		{"int", CondInt, "v=10", true},
		{"int negative", CondInt, "v=-3", true},
		{"int with fraction", CondInt, "v=10.0", false},
		{"int float", CondInt, "v=1.2", false},
		{"int word", CondInt, "v=abc", false},
		{"int padded", CondInt, "v=010", false},

		{"float", CondFloat, "v=1.2", true},
		{"float integral", CondFloat, "v=10", true},
		{"float trailing zero", CondFloat, "v=1.20", false},
		{"float word", CondFloat, "v=abc", false},
		{"float absent", CondFloat, "", false},

		{"array brackets", CondArray, "v[]=1&v[]=2", true},
		{"array indexed", CondArray, "v%5B0%5D=1&v%5B1%5D=2", true},
		{"array keyed", CondArray, "v[a]=1", true},
		{"array scalar", CondArray, "v=1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conds := value.NewObject()
			conds.Set("v", value.StringOf(tt.expected))
			assert.Equal(t, tt.want, EvaluateConditions(conds, ParseQuery(tt.query)))
		})
	}
}

func TestEvaluateCondition_Literals(t *testing.T) {
	tests := []struct {
		name     string
		expected value.Value
		query    string
		want     bool
	}{
		{"string equal", value.StringOf("bar"), "id=bar", true},
		{"string differs", value.StringOf("bar"), "id=baz", false},
		{"string case sensitive", value.StringOf("bar"), "id=BAR", false},
		{"absent never matches", value.StringOf("bar"), "", false},
		{"int equal", value.IntOf(2), "id=2", true},
		{"int integral float text", value.IntOf(2), "id=2.0", true},
		{"int non numeric", value.IntOf(0), "id=abc", false},
		{"float equal", value.NumberOf("1.5"), "id=1.50", true},
		{"float differs", value.NumberOf("1.5"), "id=1.6", false},
		{"bool true", value.BoolOf(true), "id=on", true},
		{"bool false", value.BoolOf(false), "id=no", true},
		{"bool mismatch", value.BoolOf(true), "id=0", false},
		{"null matches present", value.NullValue(), "id=anything", true},
		{"array never equals scalar", value.StringOf("1"), "id[]=1", false},
		{"one of hit", value.ListOf(value.IntOf(1), value.IntOf(2), value.IntOf(3)), "id=2", true},
		{"one of miss", value.ListOf(value.IntOf(1), value.IntOf(2), value.IntOf(3)), "id=4", false},
		{"one of mixed types", value.ListOf(value.StringOf("x"), value.BoolOf(true)), "id=yes", true},
		{"empty one of", value.ListOf(), "id=1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conds := value.NewObject()
			conds.Set("id", tt.expected)
			assert.Equal(t, tt.want, EvaluateConditions(conds, ParseQuery(tt.query)))
		})
	}
}

func TestEvaluateConditions_AllMustHold(t *testing.T) {
	conds := value.NewObject()
	conds.Set("a", value.StringOf(CondIsset))
	conds.Set("b", value.IntOf(2))

	assert.True(t, EvaluateConditions(conds, ParseQuery("a=1&b=2")))
	assert.True(t, EvaluateConditions(conds, ParseQuery("b=2&a=1")), "parameter order must not matter")
	assert.False(t, EvaluateConditions(conds, ParseQuery("a=1&b=3")))
	assert.False(t, EvaluateConditions(conds, ParseQuery("b=2")))
}

func TestEvaluateConditions_Empty(t *testing.T) {
	assert.True(t, EvaluateConditions(value.NewObject(), ParseQuery("")))
	assert.True(t, EvaluateConditions(nil, ParseQuery("x=1")))
}

func TestCastBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", "on", "Yes", " yes "} {
		b, ok := CastBool(s)
		assert.True(t, ok, s)
		assert.True(t, b, s)
	}
	for _, s := range []string{"0", "false", "off", "no", ""} {
		b, ok := CastBool(s)
		assert.True(t, ok, s)
		assert.False(t, b, s)
	}
	for _, s := range []string{"2", "y", "maybe"} {
		_, ok := CastBool(s)
		assert.False(t, ok, s)
	}
}
