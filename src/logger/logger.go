package logger

import (
	"fmt"
	"log"
	"os"
	"strings"
)

// -----------------------------------------------------------------------------

// Level ordering for the minimum-level filter
const (
	levelDebug = iota
	levelInfo
	levelWarning
	levelError
)

// -----------------------------------------------------------------------------

// Logger provides structured logging functionality
type Logger struct {
	name     string
	logger   *log.Logger
	minLevel int
}

// -----------------------------------------------------------------------------

// NewLogger creates a new Logger instance. minLevel is one of
// DEBUG/INFO/WARNING/ERROR; anything below it is dropped.
func NewLogger(minLevel string, name string) *Logger {
	l := &Logger{
		name:     name,
		logger:   log.New(os.Stdout, "", log.LstdFlags),
		minLevel: parseLevel(minLevel),
	}
	return l
}

// -----------------------------------------------------------------------------

// Named returns a logger sharing the level filter under a different component name
func (l *Logger) Named(name string) *Logger {
	return &Logger{name: name, logger: l.logger, minLevel: l.minLevel}
}

// -----------------------------------------------------------------------------

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(levelDebug, "DEBUG", format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(levelInfo, "INFO", format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs warning messages
func (l *Logger) Warning(format string, args ...interface{}) {
	l.emit(levelWarning, "WARNING", format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(levelError, "ERROR", format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] CRITICAL: %s", l.name, msg)
	os.Exit(1)
}

// -----------------------------------------------------------------------------

func (l *Logger) emit(level int, label string, format string, args ...interface{}) {
	if level < l.minLevel {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.logger.Printf("[%s] %s: %s", l.name, label, msg)
}

// -----------------------------------------------------------------------------

func parseLevel(s string) int {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return levelDebug
	case "WARNING":
		return levelWarning
	case "ERROR":
		return levelError
	default:
		return levelInfo
	}
}
