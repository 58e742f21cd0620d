// Package logging configures the slog logger shared by the pmctl commands.
//
// Commands log nothing at the default level; --verbose switches the handler
// to debug so request and polling activity is visible on stderr. Tokens must
// only ever reach a log line through SanitizeToken.
package logging

import (
	"fmt"
	"io"
	"log/slog"
)

// Common attribute keys.
const (
	KeyOperation = "operation"
	KeyService   = "service"
	KeyError     = "error"
	KeyStatus    = "status"
	KeyDuration  = "duration"
)

// New returns a text logger writing to w. Verbose lowers the level to debug.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

// OrDiscard returns logger, or a discarding logger when it is nil.
func OrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// WithOperation returns a logger with the operation attribute set.
func WithOperation(logger *slog.Logger, operation string) *slog.Logger {
	return OrDiscard(logger).With(slog.String(KeyOperation, operation))
}

// WithService returns a logger with the service attribute set.
func WithService(logger *slog.Logger, service string) *slog.Logger {
	return OrDiscard(logger).With(slog.String(KeyService, service))
}

// Err returns an error attribute. A nil error yields an empty group, which
// slog omits.
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Group("")
	}
	return slog.String(KeyError, err.Error())
}

// SanitizeToken masks a secret down to its length.
func SanitizeToken(token string) string {
	if token == "" {
		return "<empty>"
	}
	return fmt.Sprintf("[token:%d chars]", len(token))
}
