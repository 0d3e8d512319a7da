// Package logger provides structured logging for redtime.
//
// All log output goes to the given writer (normally stderr): stdout is
// reserved for the completion protocol and command output.
package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Logger wraps logrus with a chained-field API.
type Logger struct {
	log *logrus.Logger
}

// Entry accumulates fields before emitting a message.
type Entry struct {
	entry *logrus.Entry
	level logrus.Level
}

// New creates a logger at the given level, writing to output.
// Unknown levels fall back to warn, which keeps completion paths quiet.
func New(level string, output io.Writer) *Logger {
	if output == nil {
		output = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(output)

	logLevel, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		logLevel = logrus.WarnLevel
	}
	log.SetLevel(logLevel)

	log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
		PadLevelText:     true,
	})

	return &Logger{log: log}
}

func (l *Logger) at(level logrus.Level) *Entry {
	return &Entry{entry: logrus.NewEntry(l.log), level: level}
}

// Debug starts a debug-level entry.
func (l *Logger) Debug() *Entry { return l.at(logrus.DebugLevel) }

// Info starts an info-level entry.
func (l *Logger) Info() *Entry { return l.at(logrus.InfoLevel) }

// Warn starts a warn-level entry.
func (l *Logger) Warn() *Entry { return l.at(logrus.WarnLevel) }

// Error starts an error-level entry.
func (l *Logger) Error() *Entry { return l.at(logrus.ErrorLevel) }

// Str adds a string field.
func (e *Entry) Str(key, value string) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Int adds an int field.
func (e *Entry) Int(key string, value int) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Bool adds a bool field.
func (e *Entry) Bool(key string, value bool) *Entry {
	e.entry = e.entry.WithField(key, value)
	return e
}

// Err adds an error field. Nil errors are ignored.
func (e *Entry) Err(err error) *Entry {
	if err != nil {
		e.entry = e.entry.WithError(err)
	}
	return e
}

// Dur adds a duration field, in milliseconds for readability.
func (e *Entry) Dur(key string, duration time.Duration) *Entry {
	ms := float64(duration.Microseconds()) / 1000.0
	e.entry = e.entry.WithField(key, ms)
	return e
}

// Msg emits the message with all accumulated fields.
func (e *Entry) Msg(msg string) {
	e.entry.Log(e.level, msg)
}
