package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/katyella/sprig-sample/internal/constants"
)

// Level is the verbosity of the analytics client and the application
type Level int

// Log levels, most verbose first
const (
	LevelVerbose Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

// String returns the string representation of a level
func (l Level) String() string {
	switch l {
	case LevelVerbose:
		return "verbose"
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelNone:
		return "none"
	default:
		return "unknown"
	}
}

// ParseLevel converts a level name into a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "trace":
		return LevelVerbose, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "none", "off":
		return LevelNone, nil
	}
	return LevelNone, fmt.Errorf("unknown log level %q", s)
}

// UnmarshalText lets a Level be read from YAML and flags
func (l *Level) UnmarshalText(text []byte) error {
	parsed, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// logrusLevel maps a Level onto logrus. LevelNone is handled by discarding output.
func (l Level) logrusLevel() logrus.Level {
	switch l {
	case LevelVerbose:
		return logrus.TraceLevel
	case LevelDebug:
		return logrus.DebugLevel
	case LevelInfo:
		return logrus.InfoLevel
	case LevelWarn:
		return logrus.WarnLevel
	default:
		return logrus.ErrorLevel
	}
}

// SetupLogger creates a logger for the application.
// In debug mode, logs go to a file, otherwise they're discarded so the
// terminal UI keeps the screen to itself.
func SetupLogger(debug bool, level Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})
	logger.SetLevel(level.logrusLevel())

	if !debug || level == LevelNone {
		logger.SetOutput(io.Discard)
		return logger
	}

	file, err := os.OpenFile(constants.LogFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, constants.LogFilePermissions)
	if err != nil {
		// Fallback to stderr if file creation fails
		logger.SetOutput(os.Stderr)
		return logger
	}
	logger.SetOutput(file)
	return logger
}

// New returns a logger writing to w at the given level. Used by tests and
// by callers that already own an output.
func New(w io.Writer, level Level) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
	logger.SetLevel(level.logrusLevel())
	if level == LevelNone {
		w = io.Discard
	}
	logger.SetOutput(w)
	return logger
}

// Derive returns a logger sharing parent's output and formatter but filtering
// at level. A nil parent yields a discarding logger.
func Derive(parent *logrus.Logger, level Level) *logrus.Logger {
	if parent == nil {
		return Discard()
	}
	logger := logrus.New()
	logger.SetFormatter(parent.Formatter)
	logger.SetLevel(level.logrusLevel())
	if level == LevelNone {
		logger.SetOutput(io.Discard)
	} else {
		logger.SetOutput(parent.Out)
	}
	return logger
}

// Discard returns a logger that drops everything
func Discard() *logrus.Logger {
	return New(io.Discard, LevelNone)
}

// Verbose logs a trace-level message
func Verbose(logger *logrus.Logger, msg string, args ...interface{}) {
	if logger != nil {
		logger.Tracef(msg, args...)
	}
}

// Debug logs a debug message
func Debug(logger *logrus.Logger, msg string, args ...interface{}) {
	if logger != nil {
		logger.Debugf(msg, args...)
	}
}

// Info logs an info message
func Info(logger *logrus.Logger, msg string, args ...interface{}) {
	if logger != nil {
		logger.Infof(msg, args...)
	}
}

// Warn logs a warning message
func Warn(logger *logrus.Logger, msg string, args ...interface{}) {
	if logger != nil {
		logger.Warnf(msg, args...)
	}
}

// Error logs an error message
func Error(logger *logrus.Logger, msg string, args ...interface{}) {
	if logger != nil {
		logger.Errorf(msg, args...)
	}
}
