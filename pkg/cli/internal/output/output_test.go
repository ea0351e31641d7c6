package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSON_NoHTMLEscape(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]string{"route": "users/{id}&more"}))
	assert.Equal(t, "{\n  \"route\": \"users/{id}&more\"\n}\n", buf.String())
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	w := Table(&buf)
	fmt.Fprintln(w, "ROUTE\tSTATUS")
	fmt.Fprintln(w, "users/{id}\t200")
	require.NoError(t, w.Flush())
	assert.Equal(t, "ROUTE       STATUS\nusers/{id}  200\n", buf.String())
}

func TestIsTerminal_Buffer(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}

func TestColorScheme_NoColor(t *testing.T) {
	s := NewColorScheme(true)
	assert.Equal(t, "✓", s.SuccessIcon())
	assert.Equal(t, "✗", s.ErrorIcon())
	assert.Equal(t, "200 OK", s.Status(200).Sprint("200 OK"))
}

func TestColorScheme_Status(t *testing.T) {
	s := NewColorScheme(true)
	tests := []struct {
		code int
		want any
	}{
		{200, s.StatusOK},
		{204, s.StatusOK},
		{302, s.StatusWarn},
		{404, s.StatusError},
		{100, s.StatusError},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			assert.Same(t, tt.want, s.Status(tt.code))
		})
	}
}
