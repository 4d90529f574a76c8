package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelError, ParseLogLevel("error"))
	assert.Equal(t, LogLevelWarn, ParseLogLevel(" WARN "))
	assert.Equal(t, LogLevelDebug, ParseLogLevel("DEBUG"))
	assert.Equal(t, LogLevelTrace, ParseLogLevel("trace"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("loud"))
}

func TestComponentLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelInfo).WithOutput(log.New(&buf, "", 0)).Component("Sessions")

	logger.Info("stored %d rows", 3)
	logger.Debug("hidden")
	logger.Warn("evicted %s", "abc")

	assert.Equal(t, "[INFO] [Sessions] stored 3 rows\n[WARN] [Sessions] evicted abc\n", buf.String())
}
