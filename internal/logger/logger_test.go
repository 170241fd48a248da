package logger

import (
	"bytes"
	"testing"

	"github.com/Adda-Baaj/shabd-relay/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("bogus"))
}

func TestNewWritesObjectField(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := New(zap.New(core))

	log.WarnObj("lookup failed", "lookup_error", map[string]any{"term": "yeet"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "lookup failed", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Contains(t, entries[0].ContextMap(), "lookup_error")
}

func TestEnsureFallsBackToNop(t *testing.T) {
	log := Ensure(nil)
	assert.IsType(t, NopLogger{}, log)
	log.ErrorObj("ignored", "k", 1)
}

func TestInitToWritesJSONAtConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := InitTo(&config.Config{LogLevel: "warn"}, &buf)
	require.NoError(t, err)

	log.InfoObj("dropped", "k", 1)
	log.WarnObj("kept", "source_result", map[string]any{"source_id": "s1"})

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, `"msg":"kept"`)
	assert.Contains(t, out, `"source_id":"s1"`)
	assert.Contains(t, out, `"ts":`)

	_, err = InitTo(nil, &buf)
	assert.Error(t, err)
}
