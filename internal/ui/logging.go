package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	debugLabel = color.New(color.FgHiBlack).Sprint("[DEBUG]")
	infoLabel  = color.New(color.FgBlue).Sprint("[INFO]")
	warnLabel  = color.New(color.FgYellow).Sprint("[WARN]")
	errorLabel = color.New(color.Bold, color.FgRed).Sprint("[ERROR]")
)

type Logger struct {
	Debug bool
	out   io.Writer
}

func NewLogger(debug bool) *Logger {
	return &Logger{Debug: debug, out: color.Output}
}

// NewLoggerTo is NewLogger writing to w instead of stdout.
func NewLoggerTo(w io.Writer, debug bool) *Logger {
	return &Logger{Debug: debug, out: w}
}

func (l *Logger) printf(label, format string, args ...any) {
	w := l.out
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, label+" "+format, args...)
}

func (l *Logger) Debugf(format string, args ...any) {
	if l.Debug {
		l.printf(debugLabel, format, args...)
	}
}

func (l *Logger) Infof(format string, args ...any) {
	l.printf(infoLabel, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.printf(warnLabel, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.printf(errorLabel, format, args...)
}
