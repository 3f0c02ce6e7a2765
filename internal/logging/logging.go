package logging

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New returns a leveled logger writing to w. Every record carries run_id.
func New(w io.Writer, level string, format string, runID string) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           parseLevel(level),
		Formatter:       parseFormatter(format),
		ReportTimestamp: true,
		Prefix:          "msgdump",
	})
	return slog.New(handler).With("run_id", runID)
}

func NewRunID() string {
	return uuid.NewString()
}

func parseLevel(level string) charmlog.Level {
	switch level {
	case "debug":
		return charmlog.DebugLevel
	case "warn":
		return charmlog.WarnLevel
	case "error":
		return charmlog.ErrorLevel
	default:
		return charmlog.InfoLevel
	}
}

func parseFormatter(format string) charmlog.Formatter {
	switch format {
	case "json":
		return charmlog.JSONFormatter
	case "logfmt":
		return charmlog.LogfmtFormatter
	default:
		return charmlog.TextFormatter
	}
}
