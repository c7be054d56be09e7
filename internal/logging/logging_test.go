package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := &bytes.Buffer{}
	SetOutput(buf)
	t.Cleanup(func() {
		SetLevel("info")
		SetOutput(nopWriter{})
	})
	return buf
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestLoggerV2_WritesComponentAndFields(t *testing.T) {
	buf := captureOutput(t)

	logger := NewLoggerV2("catalog")
	logger.Info("Product added", Fields{"product_id": "42"})

	var record map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))

	assert.Equal(t, "Product added", record["msg"])
	assert.Equal(t, "INFO", record["level"])
	assert.Equal(t, "catalog", record["component"])
	assert.Equal(t, "42", record["product_id"])
}

func TestLoggerV2_RespectsLevel(t *testing.T) {
	buf := captureOutput(t)

	SetLevel("warn")
	logger := NewLoggerV2("cart")
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "shown")
}

func TestLoggerV2_Fatal(t *testing.T) {
	buf := captureOutput(t)

	code := 0
	orig := exitFn
	exitFn = func(c int) { code = c }
	t.Cleanup(func() { exitFn = orig })

	NewLoggerV2("main").Fatal("boom", Fields{"error": "x"})

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "boom")
}

func TestInfof(t *testing.T) {
	buf := captureOutput(t)

	Infof("Starting storefront on port %d", 8080)

	assert.Contains(t, buf.String(), "Starting storefront on port 8080")
}
