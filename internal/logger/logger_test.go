package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return &buf
}

// TestLogger_VerboseGating verifies debug output only appears when
// verbose mode is on.
func TestLogger_VerboseGating(t *testing.T) {
	buf := capture(t)

	SetVerbose(false)
	Debug("hidden %d", 1)
	assert.Empty(t, buf.String())

	SetVerbose(true)
	Debug("shown %d", 2)
	Info("info line")
	Warn("warn line")

	out := buf.String()
	assert.Contains(t, out, "[DEBUG] shown 2")
	assert.Contains(t, out, "[INFO] info line")
	assert.Contains(t, out, "[WARN] warn line")
}

// TestLogger_ErrorAlwaysPrints verifies errors bypass verbose gating.
func TestLogger_ErrorAlwaysPrints(t *testing.T) {
	buf := capture(t)

	SetVerbose(false)
	Error("boom: %s", "details")
	assert.Contains(t, buf.String(), "[ERROR] boom: details")
}

// TestLogger_IsVerbose round-trips the flag.
func TestLogger_IsVerbose(t *testing.T) {
	capture(t)

	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
