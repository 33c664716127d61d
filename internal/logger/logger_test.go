package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("budget-keeper-server")
	l.Logger = l.Output(&buf)

	l.Info().Str("user_id", "u1").Msg("registered")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "budget-keeper-server", entry["role"])
	assert.Equal(t, "u1", entry["user_id"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")

	assert.Equal(t, "func", zerolog.CallerFieldName)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewClientLogger_OnlyWarnings(t *testing.T) {
	var buf bytes.Buffer
	l := NewClientLogger("budget-keeper-client", &buf)

	l.Info().Msg("quiet")
	l.Debug().Msg("quieter")
	assert.Empty(t, buf.String())

	l.Warn().Msg("clipboard unavailable")
	out := buf.String()
	assert.Contains(t, out, "clipboard unavailable")
	assert.Contains(t, out, "budget-keeper-client")
	// console format, not JSON
	assert.NotContains(t, out, `"message"`)
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")
	assert.Empty(t, buf.String())
}

func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger("parent")
	parent.Logger = parent.Output(&buf)

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)

	child.Logger = child.With().Str("trace_id", "t-1").Logger()
	child.Info().Msg("child")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "parent", entry["role"])
	assert.Equal(t, "t-1", entry["trace_id"])

	// the parent does not pick up the child's fields
	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, &buf), "trace_id")
}

func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-2").Logger()
	ctx := zl.WithContext(context.Background())

	FromContext(ctx).Info().Msg("ctx")
	assert.Equal(t, "t-2", decodeEntry(t, &buf)["trace_id"])

	buf.Reset()
	req := httptest.NewRequest("GET", "/docs/weeks", nil).WithContext(ctx)
	FromRequest(req).Info().Msg("req")
	assert.Equal(t, "t-2", decodeEntry(t, &buf)["trace_id"])

	// without an attached logger a usable, non-nil logger comes back
	require.NotNil(t, FromContext(context.Background()))
}
