package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Format represents the log output format
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// FileLoggerConfig holds configuration for file logging
type FileLoggerConfig struct {
	// Path is the log file path
	Path string
	// Format is the output format (json or text)
	Format Format
	// Level is the minimum log level
	Level Level
	// MaxSizeMB is the size in megabytes before rotation
	MaxSizeMB int
	// MaxBackups is the maximum number of rotated files to keep
	MaxBackups int
}

// FileLogger implements Logger on top of zerolog
type FileLogger struct {
	zl     zerolog.Logger
	closer io.Closer
}

// NewFileLogger creates a logger writing to a rotating file
func NewFileLogger(config FileLoggerConfig) (*FileLogger, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("log file path is required")
	}

	// Ensure directory exists
	dir := filepath.Dir(config.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	// Surface permission problems now rather than on first write
	file, err := os.OpenFile(config.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	file.Close()

	maxSize := config.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 10
	}

	rotator := &lumberjack.Logger{
		Filename:   config.Path,
		MaxSize:    maxSize,
		MaxBackups: config.MaxBackups,
		LocalTime:  true,
	}

	logger := NewWriterLogger(rotator, config.Format, config.Level)
	logger.closer = rotator
	return logger, nil
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer, format Format, level Level) *FileLogger {
	out := w
	if format == FormatText {
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	}

	return &FileLogger{
		zl: zerolog.New(out).Level(zerologLevel(level)).With().Timestamp().Logger(),
	}
}

// Debug logs a debug message
func (l *FileLogger) Debug(ctx context.Context, msg string, fields Fields) {
	l.zl.Debug().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Info logs an info message
func (l *FileLogger) Info(ctx context.Context, msg string, fields Fields) {
	l.zl.Info().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Warn logs a warning message
func (l *FileLogger) Warn(ctx context.Context, msg string, fields Fields) {
	l.zl.Warn().Fields(map[string]interface{}(fields)).Msg(msg)
}

// Error logs an error message
func (l *FileLogger) Error(ctx context.Context, msg string, err error, fields Fields) {
	l.zl.Error().Err(err).Fields(map[string]interface{}(fields)).Msg(msg)
}

// WithFields returns a logger with additional fields
func (l *FileLogger) WithFields(fields Fields) Logger {
	return &FileLogger{
		zl:     l.zl.With().Fields(map[string]interface{}(fields)).Logger(),
		closer: l.closer,
	}
}

// Close flushes and closes the logger
func (l *FileLogger) Close() error {
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) Level {
	switch s {
	case "debug", "DEBUG":
		return DebugLevel
	case "info", "INFO":
		return InfoLevel
	case "warn", "WARN", "warning", "WARNING":
		return WarnLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// ParseFormat parses a log format string, defaulting to text
func ParseFormat(s string) Format {
	if s == string(FormatJSON) {
		return FormatJSON
	}
	return FormatText
}
