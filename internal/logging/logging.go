// Package logging provides the structured, component-scoped logger used across
// the storefront. Records are emitted as JSON through log/slog.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Fields carries structured key/value context for a log record.
type Fields map[string]interface{}

var (
	level  = new(slog.LevelVar)
	root   atomic.Pointer[slog.Logger]
	exitFn = os.Exit
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput redirects every logger to w. Intended for main and tests.
func SetOutput(w io.Writer) {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	root.Store(slog.New(handler))
}

// SetLevel sets the minimum level by name (debug, info, warn, error).
// Unknown names fall back to info.
func SetLevel(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		level.Set(slog.LevelDebug)
	case "warn", "warning":
		level.Set(slog.LevelWarn)
	case "error":
		level.Set(slog.LevelError)
	default:
		level.Set(slog.LevelInfo)
	}
}

// LoggerV2 is a component-scoped structured logger.
type LoggerV2 struct {
	component string
}

// NewLoggerV2 creates a logger that tags every record with component.
func NewLoggerV2(component string) *LoggerV2 {
	return &LoggerV2{component: component}
}

// Component returns the name the logger was created with.
func (l *LoggerV2) Component() string {
	return l.component
}

func (l *LoggerV2) Debug(msg string, fields ...Fields) {
	l.log(slog.LevelDebug, msg, fields)
}

func (l *LoggerV2) Info(msg string, fields ...Fields) {
	l.log(slog.LevelInfo, msg, fields)
}

func (l *LoggerV2) Warn(msg string, fields ...Fields) {
	l.log(slog.LevelWarn, msg, fields)
}

func (l *LoggerV2) Error(msg string, fields ...Fields) {
	l.log(slog.LevelError, msg, fields)
}

// Fatal logs at error level and terminates the process.
func (l *LoggerV2) Fatal(msg string, fields ...Fields) {
	l.log(slog.LevelError, msg, fields)
	exitFn(1)
}

func (l *LoggerV2) log(lvl slog.Level, msg string, fields []Fields) {
	logger := root.Load()
	ctx := context.Background()
	if !logger.Enabled(ctx, lvl) {
		return
	}

	attrs := make([]slog.Attr, 0, 8)
	if l != nil && l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	for _, f := range fields {
		for k, v := range f {
			attrs = append(attrs, slog.Any(k, v))
		}
	}
	logger.LogAttrs(ctx, lvl, msg, attrs...)
}

// Infof logs a printf-style message without structured fields.
func Infof(format string, args ...interface{}) {
	root.Load().Info(fmt.Sprintf(format, args...))
}

// Info logs through the package-level logger.
func Info(msg string, fields ...Fields) {
	(&LoggerV2{}).Info(msg, fields...)
}
