package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"DEBUG":   LevelDebug,
		"info":    LevelInfo,
		"warn":    LevelWarn,
		"warning": LevelWarn,
		"error":   LevelError,
		"":        LevelInfo,
		"bogus":   LevelInfo,
		" info ":  LevelInfo,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseLevel(input), "input %q", input)
	}
}

func TestNewLoggerNilWriter(t *testing.T) {
	assert.NotNil(t, NewLogger(nil, LevelInfo))
}

func TestWriterForwardsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	w := NewWriter(logger)
	n, err := w.Write([]byte("Removing generateEmail function...\n"))
	assert.NoError(t, err)
	assert.Equal(t, 35, n)
	assert.Contains(t, buf.String(), "Removing generateEmail function...")

	buf.Reset()
	_, err = w.Write([]byte("\n"))
	assert.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestWriterNilLogger(t *testing.T) {
	w := &Writer{}
	n, err := w.Write([]byte("ignored"))
	assert.NoError(t, err)
	assert.Equal(t, 7, n)
}
