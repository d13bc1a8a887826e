package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmonitor/internal/logging"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("warn", logging.WithWriter(&buf))
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", "key", "value")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["msg"])
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "value", entries[0]["key"])
}

func TestLoggerTraceAndError(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.MustNew("debug", logging.WithWriter(&buf))

	logger.WithTraceID("trace-1").Error("failed", logging.AttachError(errors.New("boom"), "op", "export")...)

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "trace-1", entries[0]["traceId"])
	assert.Equal(t, "boom", entries[0]["error"])
	assert.Equal(t, "export", entries[0]["op"])
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := logging.Discard()

	ctx := logger.WithContext(context.Background())
	got, ok := logging.FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, logger, got)

	_, ok = logging.FromContext(context.Background())
	assert.False(t, ok)
}

func TestNilLoggerIsSafe(t *testing.T) {
	var logger *logging.Logger

	assert.NotPanics(t, func() {
		logger.Info("ignored")
		logger.WithTraceID("x").Warn("ignored")
	})
	assert.Error(t, logger.Validate())
}

func TestRotatingFileWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netmonitor.log")
	logger := logging.MustNew("info", logging.WithRotatingFile(logging.RotatingFile{Path: path, MaxSizeMB: 1}))

	logger.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")
}
