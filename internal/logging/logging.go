package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

var (
	// Logger is the global structured logger
	Logger *slog.Logger

	// Verbose enables debug logging
	Verbose bool

	handler *log.Logger
)

func init() {
	Setup(false, false, os.Stderr)
}

// Setup configures the logger based on verbosity and output preferences
func Setup(verbose bool, jsonOutput bool, w io.Writer) {
	Verbose = verbose

	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	if w == nil {
		w = os.Stderr
	}

	formatter := log.TextFormatter
	if jsonOutput {
		formatter = log.JSONFormatter
	}

	handler = log.NewWithOptions(w, log.Options{
		Level:     level,
		Prefix:    "udm",
		Formatter: formatter,
	})
	Logger = slog.New(handler)
}

// SetLevel applies a configured level name (DEBUG, INFO, WARNING, ERROR,
// CRITICAL). Verbose mode always wins over the configured level.
func SetLevel(name string) {
	if Verbose {
		return
	}
	handler.SetLevel(ParseLevel(name))
}

// ParseLevel maps a configured level name to a log level. Unknown names
// map to info.
func ParseLevel(name string) log.Level {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return log.DebugLevel
	case "WARNING", "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	case "CRITICAL":
		return log.FatalLevel
	default:
		return log.InfoLevel
	}
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}

// With returns a logger with additional attributes
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}
