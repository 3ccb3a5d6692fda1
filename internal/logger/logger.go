package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger writes JSON lines tagged with the service and host name
type Logger struct {
	service  string
	hostname string
	handler  *slog.Logger
}

func New(service string) *Logger {
	return NewWithWriter(service, os.Stdout)
}

// NewWithWriter is New with an explicit sink, used by tests
func NewWithWriter(service string, w io.Writer) *Logger {
	hostname, _ := os.Hostname()

	handler := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	return &Logger{
		service:  service,
		hostname: hostname,
		handler:  handler,
	}
}

func (l *Logger) Info(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelInfo, action, requestID, message, attrs...)
}

func (l *Logger) Debug(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelDebug, action, requestID, message, attrs...)
}

func (l *Logger) Warn(action, requestID, message string, attrs ...slog.Attr) {
	l.log(slog.LevelWarn, action, requestID, message, attrs...)
}

func (l *Logger) Error(action, requestID, message string, err error, attrs ...slog.Attr) {
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.log(slog.LevelError, action, requestID, message, attrs...)
}

func (l *Logger) log(level slog.Level, action, requestID, message string, attrs ...slog.Attr) {
	base := []slog.Attr{
		slog.String("service", l.service),
		slog.String("hostname", l.hostname),
		slog.String("action", action),
	}
	if requestID != "" {
		base = append(base, slog.String("request_id", requestID))
	}
	l.handler.LogAttrs(context.Background(), level, message, append(base, attrs...)...)
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewWithWriter("nop", io.Discard)
}
