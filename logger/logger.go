// Package logger provides the prefixed, leveled console logger shared by the
// services and the HTTP layer.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log"
)

const (
	errorColor   = "\033[31m"
	infoColor    = "\033[32m"
	warningColor = "\033[33m"
	colorReset   = "\033[0m"
)

var ErrNilWriter = errors.New("logger: nil writer")

// Logger writes lines of the form "[NAME] [LEVEL] message".
type Logger struct {
	name   string
	color  string
	logger *log.Logger
}

// New creates a Logger named name whose prefix is printed in color.
// An empty color disables coloring.
func New(name, color string, w io.Writer) (*Logger, error) {
	if w == nil {
		return nil, ErrNilWriter
	}

	return &Logger{
		name:   name,
		color:  color,
		logger: log.New(w, "", log.LstdFlags),
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.print("INFO", infoColor, msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.print("WARNING", warningColor, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.print("ERROR", errorColor, msg)
}

func (l *Logger) print(level, levelColor, msg string) {
	if l.color == "" {
		l.logger.Printf("[%s] [%s] %s", l.name, level, msg)
		return
	}
	l.logger.Print(fmt.Sprintf("%s[%s]%s %s[%s]%s %s", l.color, l.name, colorReset, levelColor, level, colorReset, msg))
}
