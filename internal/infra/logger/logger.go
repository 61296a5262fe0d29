// internal/infra/logger/logger.go
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"homework_status_bot/internal/infra/config"

	"github.com/sirupsen/logrus"
)

// Log is the global logger instance
var Log = logrus.New()

// Init initializes the global logger based on application configuration.
// The returned closer releases the log file, if one was opened. A log file that
// cannot be opened is reported as an error but leaves the logger usable on stdout.
func Init(cfg *config.AppConfig) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	var fileErr error
	Log.SetOutput(os.Stdout) // Default output

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			// Keep going on stdout; the caller decides how loud to be about it.
			fileErr = fmt.Errorf("failed to open log file %s: %w", cfg.LogFile, err)
		} else {
			Log.SetOutput(io.MultiWriter(os.Stdout, f))
			closer = f
		}
	}

	// Set Log Level
	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		Log.Warnf("Invalid log level '%s', defaulting to 'info'. Error: %v", cfg.LogLevel, err)
		Log.SetLevel(logrus.InfoLevel)
	} else {
		Log.SetLevel(level)
	}

	Log.SetFormatter(formatterFor(cfg.Environment))

	Log.Info("Logger initialized successfully.")
	Log.Debugf("Log level set to: %s", Log.GetLevel().String())
	Log.Debugf("Log format set for environment: %s", cfg.Environment)
	return closer, fileErr
}

func formatterFor(environment string) logrus.Formatter {
	switch strings.ToLower(environment) {
	case "production", "staging":
		return &logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00", // ISO8601
		}
	default:
		return &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		}
	}
}

// Get returns the configured global logger.
func Get() *logrus.Logger {
	return Log
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
