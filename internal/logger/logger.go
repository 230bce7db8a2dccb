package logger

import (
	"fmt"
	"log"
	"strings"
)

type Logger struct {
	l     *log.Logger
	debug bool
}

// Field is a key=value pair appended to a log line.
type Field struct {
	Key   string
	Value any
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

func New(l *log.Logger) *Logger {
	return &Logger{l: l}
}

// WithDebug returns a logger that also prints LogDebugf lines.
func (l *Logger) WithDebug(enabled bool) *Logger {
	return &Logger{l: l.l, debug: enabled}
}

func (l *Logger) LogErrorf(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[Error]: %s\n", msg)
}

func (l *Logger) LogInfo(format string, v ...any) {
	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[Info]: %s\n", msg)
}

func (l *Logger) LogDebugf(format string, v ...any) {
	if !l.debug {
		return
	}

	msg := fmt.Sprintf(format, v...)
	l.l.Printf("[Debug]: %s\n", msg)
}

// LogFields writes msg at info level followed by the fields in order.
func (l *Logger) LogFields(msg string, fields ...Field) {
	var sb strings.Builder

	sb.WriteString(msg)

	for _, f := range fields {
		fmt.Fprintf(&sb, " %s=%v", f.Key, f.Value)
	}

	l.l.Printf("[Info]: %s\n", sb.String())
}
