// Package logger is the process-wide leveled logger. Nothing is written until
// Init or SetOutput is called.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Level orders log severities.
type Level int

// Levels.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	globalLogger *log.Logger
	logFile      *os.File
	minLevel     = LevelInfo
	mu           sync.Mutex
)

// Init opens (appending) the log file at logPath and routes output there.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	logFile = f
	globalLogger = log.New(f, "", log.Ltime|log.Lmicroseconds)
	return nil
}

// SetOutput routes output to w, closing any log file opened by Init.
// A nil writer disables logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	if w == nil {
		globalLogger = nil
		return
	}
	globalLogger = log.New(w, "", log.Ltime|log.Lmicroseconds)
}

// SetLevel drops messages below l.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	minLevel = l
}

// Close closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
		globalLogger = nil
	}
}

func logf(l Level, tag, format string, v ...interface{}) {
	mu.Lock()
	defer mu.Unlock()

	if globalLogger != nil && l >= minLevel {
		globalLogger.Printf("["+tag+"] "+format, v...)
	}
}

// Debug logs a debug message.
func Debug(format string, v ...interface{}) { logf(LevelDebug, "DEBUG", format, v...) }

// Info logs an info message.
func Info(format string, v ...interface{}) { logf(LevelInfo, "INFO", format, v...) }

// Warn logs a warning message.
func Warn(format string, v ...interface{}) { logf(LevelWarn, "WARN", format, v...) }

// Error logs an error message.
func Error(format string, v ...interface{}) { logf(LevelError, "ERROR", format, v...) }
