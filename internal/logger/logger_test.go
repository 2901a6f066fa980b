package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledLoggerDiscards(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf})
	Init(Options{})
	Error("dropped")
	assert.Empty(t, buf.String())
}

func TestEnabledLoggerWritesAtLevel(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf, Level: slog.LevelWarn})
	defer Init(Options{})

	Info("hidden")
	Warn("build.unresolved", "key", "ABC")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "build.unresolved")
	assert.Contains(t, buf.String(), "key=ABC")
}

func TestJSONHandler(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Enabled: true, Writer: &buf, JSON: true, Level: slog.LevelDebug})
	defer Init(Options{})

	Debug("table.load", "entries", 3)
	assert.Contains(t, buf.String(), `"msg":"table.load"`)
	assert.Contains(t, buf.String(), `"entries":3`)
}
