package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	Init(cfg)
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { Init(Config{}) })
	return &buf
}

func entries(t *testing.T, buf *bytes.Buffer) []LogEntry {
	t.Helper()
	var out []LogEntry
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		out = append(out, entry)
	}
	return out
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t, Config{Level: "warn", Format: "json"})

	Debug("hidden")
	Info("hidden")
	Warn("shown")
	Error("also shown")

	got := entries(t, buf)
	require.Len(t, got, 2)
	assert.Equal(t, "WARN", got[0].Level)
	assert.Equal(t, "ERROR", got[1].Level)
	assert.Equal(t, "also shown", got[1].Message)
}

func TestHTTPEntry(t *testing.T) {
	buf := capture(t, Config{Level: "info", Format: "json"})

	HTTP("req-1", "POST", "/api/v1/normalize/manga", 200, 3)

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "http", got[0].Component)
	assert.Equal(t, "req-1", got[0].Fields["request_id"])
	assert.Equal(t, float64(200), got[0].Fields["status"])
}

func TestConversion(t *testing.T) {
	buf := capture(t, Config{Level: "info", Format: "json"})

	Conversion("manga", 39, nil)
	Conversion("chapter", 7, errors.New("language lookup miss"))

	got := entries(t, buf)
	require.Len(t, got, 1, "successful conversions log at debug")
	assert.Equal(t, "WARN", got[0].Level)
	assert.Equal(t, "normalize", got[0].Component)
	assert.Equal(t, "chapter", got[0].Fields["kind"])
	assert.Equal(t, "language lookup miss", got[0].Fields["error"])
}

func TestTextFormat(t *testing.T) {
	buf := capture(t, Config{Level: "debug", Format: "text"})

	Infof("loaded %d languages", 20)

	assert.Contains(t, buf.String(), "[INFO] loaded 20 languages")
	assert.Contains(t, buf.String(), "logger_test.go")
}

func TestRequestIDContext(t *testing.T) {
	ctx := ContextWithRequestID(context.Background(), "abc")
	assert.Equal(t, "abc", RequestID(ctx))
	assert.Empty(t, RequestID(context.Background()))

	buf := capture(t, Config{Level: "info", Format: "json"})
	WithRequestID(ctx).Info("traced")

	got := entries(t, buf)
	require.Len(t, got, 1)
	assert.Equal(t, "abc", got[0].Fields["request_id"])
}
