package util

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"stub file", "users.json", "users.json", true},
		{"nested stub", "users/list.json", "users/list.json", true},
		{"dot prefix", "./users.json", "users.json", true},
		{"collapsed slashes", "users//list.json", "users/list.json", true},
		{"resolves inside", "users/../orders.json", "orders.json", true},
		{"escapes", "../secret.json", "", false},
		{"escapes deeper", "users/../../secret.json", "", false},
		{"backslash escape", `users\..\..\secret.json`, "", false},
		{"absolute", "/etc/passwd", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := CleanRelative(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCleanPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"absolute", "/srv/stubs/users.json", "/srv/stubs/users.json", true},
		{"absolute resolved", "/srv/stubs/../users.json", "/srv/users.json", true},
		{"root parent", "/..", "/", true},
		{"relative", "stubs/users.json", "stubs/users.json", true},
		{"relative escape", "../users.json", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := CleanPath(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinWithin(t *testing.T) {
	t.Parallel()

	got, ok := JoinWithin("stubs", "users/list.json")
	assert.True(t, ok)
	assert.Equal(t, filepath.Join("stubs", "users", "list.json"), got)

	_, ok = JoinWithin("stubs", "../manifest.yml")
	assert.False(t, ok)

	_, ok = JoinWithin("stubs", "/etc/passwd")
	assert.False(t, ok)
}

func TestTruncateBody(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "hello", TruncateBody([]byte("hello"), 5))
	assert.Equal(t, "hel...(truncated)", TruncateBody([]byte("hello"), 3))
	assert.Equal(t, "", TruncateBody(nil, 10))

	long := []byte(strings.Repeat("x", MaxLogBodySize+1))
	got := TruncateBody(long, 0)
	assert.True(t, strings.HasSuffix(got, "...(truncated)"))
	assert.Len(t, got, MaxLogBodySize+len("...(truncated)"))
}
