package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"DEBUG", LevelDebug},
		{"dEbUg", LevelDebug},
		{"info", LevelInfo},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"Warning", LevelWarn},
		{"error", LevelError},
		{" ERROR ", LevelError},
		{"", LevelInfo},
		{"trace", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"Json", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseFormat(tt.input))
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "debug")
	t.Setenv(EnvFormat, "JSON")

	cfg := FromEnv(DefaultConfig())
	assert.Equal(t, LevelDebug, cfg.Level)
	assert.Equal(t, FormatJSON, cfg.Format)
}

func TestFromEnv_UnsetKeepsBase(t *testing.T) {
	base := Config{Level: LevelError, Format: FormatJSON}
	cfg := FromEnv(base)
	assert.Equal(t, base.Level, cfg.Level)
	assert.Equal(t, base.Format, cfg.Format)
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(Config{Level: LevelInfo, Format: FormatJSON, Output: &buf})

	log.Debug("hidden")
	log.Info("route matched", "pattern", "users/{id}")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "route matched", rec["msg"])
	assert.Equal(t, "users/{id}", rec["pattern"])
}

func TestNew_Mirror(t *testing.T) {
	var out, mirror bytes.Buffer
	log := New(Config{Level: LevelInfo, Format: FormatText, Output: &out, Mirror: &mirror})

	log.With("component", "cli").WithGroup("req").Info("matched", "status", 200)

	assert.Contains(t, out.String(), "msg=matched")
	assert.Contains(t, out.String(), "component=cli")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(mirror.Bytes(), &rec))
	assert.Equal(t, "matched", rec["msg"])
	assert.Equal(t, "cli", rec["component"])
	assert.Equal(t, map[string]any{"status": float64(200)}, rec["req"])
}

func TestNop(t *testing.T) {
	log := Nop()
	assert.False(t, log.Enabled(t.Context(), LevelError+4))
	assert.NotNil(t, OrNop(nil))
	assert.Same(t, log, OrNop(log))
}
