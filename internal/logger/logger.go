// Package logger provides a lightweight, centralized logging facility
// with configurable verbosity levels.
//
// Design goals:
//   - Simple API (Errorf, Infof, Debugf, Tracef)
//   - Centralized verbosity control
//   - Structured output through log/slog, text or JSON
//   - Optional rotated log file
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("starting pricer")
//	logger.Debugf("spot=%f vol=%f", spot, vol)
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Level represents a logging verbosity level.
// Higher values mean more verbose logging.
type Level int

const (
	Error Level = iota // Error logs only critical failures.
	Info               // Info logs high-level application progress.
	Debug              // Debug logs detailed diagnostic information.
	Trace              // Trace logs very fine-grained execution details.
)

// levelTrace sits below slog's Debug.
const levelTrace = slog.LevelDebug - 4

// Config selects where and how log records are written.
type Config struct {
	Verbosity  int    `mapstructure:"verbosity"`   // 0=errors,1=info,2=debug,3=trace
	Format     string `mapstructure:"format"`      // "text" or "json"
	Output     string `mapstructure:"output"`      // "stderr", "file" or "both"
	FilePath   string `mapstructure:"file_path"`   // used when output includes a file
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after this size
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

var (
	level = new(slog.LevelVar)
	std   = newLogger(os.Stderr, "text")
)

func init() {
	level.Set(toSlog(Info))
}

// Init replaces the package logger according to cfg.
// Typically called once during application startup.
func Init(cfg Config) error {
	var out io.Writer = os.Stderr
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
	case "file", "both":
		if cfg.FilePath == "" {
			return fmt.Errorf("logger: output %q needs a file_path", cfg.Output)
		}
		if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0755); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		file := &lumberjack.Logger{
			Filename:   cfg.FilePath,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		out = file
		if strings.ToLower(cfg.Output) == "both" {
			out = io.MultiWriter(os.Stderr, file)
		}
	default:
		return fmt.Errorf("logger: unknown output %q", cfg.Output)
	}

	std = newLogger(out, cfg.Format)
	SetVerbosity(cfg.Verbosity)
	return nil
}

func newLogger(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if l, ok := a.Value.Any().(slog.Level); ok && l == levelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// SetVerbosity sets the global logging verbosity.
// Out of range values are clamped to Error or Trace.
func SetVerbosity(v int) {
	switch {
	case v < int(Error):
		v = int(Error)
	case v > int(Trace):
		v = int(Trace)
	}
	level.Set(toSlog(Level(v)))
}

// Enabled reports whether messages at l are currently written.
func Enabled(l Level) bool {
	return std.Enabled(context.Background(), toSlog(l))
}

// With returns a slog.Logger carrying attrs, sharing the package handler.
func With(args ...any) *slog.Logger {
	return std.With(args...)
}

func toSlog(l Level) slog.Level {
	switch l {
	case Error:
		return slog.LevelError
	case Info:
		return slog.LevelInfo
	case Debug:
		return slog.LevelDebug
	}
	return levelTrace
}

func logf(l Level, format string, args ...any) {
	sl := toSlog(l)
	ctx := context.Background()
	if !std.Enabled(ctx, sl) {
		return
	}
	std.Log(ctx, sl, fmt.Sprintf(format, args...))
}

// Errorf logs an error-level message.
// Use this for failures that require attention.
func Errorf(format string, args ...any) {
	logf(Error, format, args...)
}

// Infof logs an informational message.
// Use this for major lifecycle events.
func Infof(format string, args ...any) {
	logf(Info, format, args...)
}

// Debugf logs debugging information.
func Debugf(format string, args ...any) {
	logf(Debug, format, args...)
}

// Tracef logs very detailed execution traces.
// Use this sparingly due to high volume.
func Tracef(format string, args ...any) {
	logf(Trace, format, args...)
}
