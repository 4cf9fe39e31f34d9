package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/baditaflorin/go_sentiment_flow/internal/ports"
	"github.com/baditaflorin/l"
)

// StdLogger adapts the l.Logger to the ports.Logger interface.
type StdLogger struct {
	logger l.Logger
}

// NewStdLogger creates a new standard logger adapter with default configuration.
func NewStdLogger() (ports.Logger, error) {
	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      os.Stdout,
		JsonFormat:  false,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,      // 1MB buffer
		MaxFileSize: 10 * 1024 * 1024, // 10MB max file size
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, err
	}

	return &StdLogger{logger: logger}, nil
}

// NewServiceLogger creates the service's raw logger, writing to the given
// file (stdout when empty), optionally in JSON format. Wrap it with
// FromExisting where a ports.Logger is needed.
func NewServiceLogger(logFile string, jsonFormat bool) (l.Logger, error) {
	var output io.Writer = os.Stdout
	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
	}

	logger, err := l.NewStandardFactory().CreateLogger(l.Config{
		Output:      output,
		JsonFormat:  jsonFormat,
		AsyncWrite:  true,
		BufferSize:  1024 * 1024,       // 1MB
		MaxFileSize: 100 * 1024 * 1024, // 100MB
		MaxBackups:  5,
		AddSource:   true,
		Metrics:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return logger, nil
}

// Debug logs a debug message.
func (sl *StdLogger) Debug(msg string, keysAndValues ...interface{}) {
	sl.logger.Debug(msg, keysAndValues...)
}

// Info logs an info message.
func (sl *StdLogger) Info(msg string, keysAndValues ...interface{}) {
	sl.logger.Info(msg, keysAndValues...)
}

// Warn logs a warning message.
func (sl *StdLogger) Warn(msg string, keysAndValues ...interface{}) {
	sl.logger.Warn(msg, keysAndValues...)
}

// Error logs an error message.
func (sl *StdLogger) Error(msg string, keysAndValues ...interface{}) {
	sl.logger.Error(msg, keysAndValues...)
}

// Close closes the logger.
func (sl *StdLogger) Close() error {
	return sl.logger.Close()
}

// FromExisting creates a new StdLogger from an existing l.Logger.
func FromExisting(logger l.Logger) ports.Logger {
	return &StdLogger{logger: logger}
}
