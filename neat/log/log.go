// Package log provides the leveled logger used throughout the NEAT core.
package log

import (
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
)

// Level is the logger output level.
type Level string

const (
	// LevelDebug the Debug log level.
	LevelDebug Level = "debug"
	// LevelInfo the Info log level.
	LevelInfo Level = "info"
	// LevelWarn the Warning log level.
	LevelWarn Level = "warn"
	// LevelError the Error log level.
	LevelError Level = "error"
)

var (
	// Current is the active log level of the process.
	Current Level = LevelInfo

	loggerDebug = log.New(os.Stdout, "DEBUG: ", log.Ltime|log.Lshortfile)
	loggerInfo  = log.New(os.Stdout, "INFO: ", log.Ltime|log.Lshortfile)
	loggerWarn  = log.New(os.Stdout, "WARN: ", log.Ltime|log.Lshortfile)
	loggerError = log.New(os.Stderr, "ERROR: ", log.Ltime|log.Lshortfile)
)

// Init sets the active log level from its string name.
func Init(level string) error {
	switch Level(level) {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		Current = Level(level)
		return nil
	default:
		return errors.Errorf("unsupported log level: [%s]", level)
	}
}

// Debug logs a debug-level message.
func Debug(message string) {
	if accept(LevelDebug) {
		_ = loggerDebug.Output(2, message)
	}
}

// Debugf logs a formatted debug-level message.
func Debugf(format string, args ...interface{}) {
	if accept(LevelDebug) {
		_ = loggerDebug.Output(2, fmt.Sprintf(format, args...))
	}
}

// Info logs an info-level message.
func Info(message string) {
	if accept(LevelInfo) {
		_ = loggerInfo.Output(2, message)
	}
}

// Infof logs a formatted info-level message.
func Infof(format string, args ...interface{}) {
	if accept(LevelInfo) {
		_ = loggerInfo.Output(2, fmt.Sprintf(format, args...))
	}
}

// Warn logs a warning-level message.
func Warn(message string) {
	if accept(LevelWarn) {
		_ = loggerWarn.Output(2, message)
	}
}

// Error logs an error-level message.
func Error(message string) {
	if accept(LevelError) {
		_ = loggerError.Output(2, message)
	}
}

func accept(target Level) bool {
	switch Current {
	case LevelDebug:
		return true
	case LevelInfo:
		return target == LevelInfo || target == LevelWarn || target == LevelError
	case LevelWarn:
		return target == LevelWarn || target == LevelError
	case LevelError:
		return target == LevelError
	default:
		return false
	}
}
