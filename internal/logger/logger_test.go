package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBuffered() (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return New(log.New(&buf, "", 0)), &buf
}

func TestLogInfo(t *testing.T) {
	l, buf := newBuffered()
	l.LogInfo("room %s loaded", "Room1")
	assert.Equal(t, "[Info]: room Room1 loaded\n", buf.String())
}

func TestLogErrorf(t *testing.T) {
	l, buf := newBuffered()
	l.LogErrorf("failed: %v", "boom")
	assert.Equal(t, "[Error]: failed: boom\n", buf.String())
}

func TestLogDebugf(t *testing.T) {
	l, buf := newBuffered()
	l.LogDebugf("hidden")
	assert.Empty(t, buf.String())

	l.WithDebug(true).LogDebugf("shown %d", 1)
	assert.Equal(t, "[Debug]: shown 1\n", buf.String())
}

func TestLogFields(t *testing.T) {
	l, buf := newBuffered()
	l.LogFields("access", F("method", "GET"), F("status", 200))
	assert.Equal(t, "[Info]: access method=GET status=200\n", buf.String())
}

func TestLogFields_NoFields(t *testing.T) {
	l, buf := newBuffered()
	l.LogFields("plain")
	assert.Equal(t, "[Info]: plain\n", buf.String())
}
