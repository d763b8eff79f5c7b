// Package logger implements a logging adapter using charmbracelet/log.
package logger

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"go.trai.ch/lal/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// Logger implements ports.Logger using charmbracelet/log.
type Logger struct {
	mu     sync.RWMutex
	logger *log.Logger
}

// New creates a Logger writing to stderr at info level.
func New() *Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Logger writing to w at info level.
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{logger: newCharmLogger(w)}
}

func newCharmLogger(w io.Writer) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           log.InfoLevel,
		ReportTimestamp: false,
		ReportCaller:    false,
	})
}

// SetOutput updates the logger's output destination, keeping its level.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	level := l.logger.GetLevel()
	l.logger = newCharmLogger(w)
	l.logger.SetLevel(level)
}

// SetVerbose switches between debug and info level, adding timestamps in debug mode.
func (l *Logger) SetVerbose(verbose bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if verbose {
		l.logger.SetLevel(log.DebugLevel)
		l.logger.SetReportTimestamp(true)
		return
	}
	l.logger.SetLevel(log.InfoLevel)
	l.logger.SetReportTimestamp(false)
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error("operation failed", "err", err)
}
