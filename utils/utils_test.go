package utils

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

// ============================================================================
// LOGGER TESTS
// ============================================================================

func TestLoggerOutputs(t *testing.T) {
	var userBuf bytes.Buffer
	SetUserOutput(&userBuf)
	User("test user output")
	if !strings.Contains(userBuf.String(), "test user output") {
		t.Error("User output not captured correctly")
	}

	var internalBuf bytes.Buffer
	SetInternalOutput(&internalBuf)
	Info("test internal output")
	Debug("debug %s", "visible")
	if !strings.Contains(internalBuf.String(), "test internal output") {
		t.Error("Internal output not captured correctly")
	}
	if !strings.Contains(internalBuf.String(), "debug visible") {
		t.Error("Debug output not captured by test core")
	}

	SetUserOutput(os.Stdout)
	SetInternalOutput(os.Stderr)
}

func TestUserOutput(t *testing.T) {
	var buf bytes.Buffer
	SetUserOutput(&buf)
	defer SetUserOutput(os.Stdout)

	assert.Same(t, &buf, UserOutput())

	SetUserOutput(nil)
	assert.Equal(t, os.Stdout, UserOutput())
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	SetInternalOutput(&buf)
	defer SetInternalOutput(os.Stderr)

	ctx := WithRequestID(context.Background(), "req-123")
	id, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "req-123", id)

	WarnCtx(ctx, "throttled", "status", 429)
	DebugCtx(ctx, "debug entry")

	out := buf.String()
	assert.Contains(t, out, "throttled")
	assert.Contains(t, out, "req-123")
	assert.Contains(t, out, "429")

	_, ok = RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestSetMode(t *testing.T) {
	t.Setenv("FOUNDRY_DEBUG", "")
	SetMode("debug")
	assert.True(t, internalLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
	SetMode("production")
	assert.False(t, internalLogger.Desugar().Core().Enabled(zapcore.DebugLevel))
}

func TestErrorf(t *testing.T) {
	base := errors.New("boom")
	err := Errorf("wrapped: %w", base)
	require.Error(t, err)
	assert.ErrorIs(t, err, base)
	assert.Equal(t, "wrapped: boom", err.Error())
}

// ============================================================================
// HELPER TESTS
// ============================================================================

func TestWriteJSONIndent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSONIndent(&buf, map[string]any{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())

	err := WriteJSONIndent(&buf, map[string]any{"bad": make(chan int)})
	assert.Error(t, err)
}

func TestValidateOneOf(t *testing.T) {
	assert.NoError(t, ValidateOneOf("format", "json", []string{"json", "yaml"}))
	assert.Error(t, ValidateOneOf("format", "xml", []string{"json", "yaml"}))
}
