package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_JSONFieldsAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Options{Level: Info, Format: FormatJSON, App: "dogs-api"})

	l.Debug("hidden", nil)
	l.With(map[string]any{"request_id": "r-1", "": "skip"}).
		Error("store failed", map[string]any{"error": errors.New("boom")})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "store failed", entry["message"])
	assert.Equal(t, "dogs-api", entry["app"])
	assert.Equal(t, "r-1", entry["request_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.NotContains(t, entry, "")
}

func TestLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, Options{Level: Debug, Format: FormatText})

	l.Info("server ready", map[string]any{"url": "http://localhost:3000"})
	assert.Contains(t, buf.String(), "server ready")
	assert.Contains(t, buf.String(), "url=http://localhost:3000")
}

func TestParse(t *testing.T) {
	assert.Equal(t, Warn, ParseLevel(" WARNING "))
	assert.Equal(t, Info, ParseLevel("nope"))
	assert.Equal(t, FormatJSON, ParseFormat("json"))
	assert.Equal(t, FormatText, ParseFormat(""))
}
