// Package log wraps logmatic for the runtime and capability layers around
// the head-logic core. The reducer package itself never logs; it stays
// side-effect-free and returns effects as data instead.
package log

import (
	"fmt"

	"github.com/mborders/logmatic"
)

// Logger is a per-head structured logger, tagged with the party identity
// it belongs to so log lines from multiple heads in the same process can
// be told apart.
type Logger struct {
	inner *logmatic.Logger
	party string
}

// New returns a Logger for the given party identity, at info level or, if
// verbose is set, at trace level.
func New(party string, verbose bool) *Logger {
	l := logmatic.NewLogger()
	if verbose {
		l.SetLevel(logmatic.TRACE)
	} else {
		l.SetLevel(logmatic.INFO)
	}
	return &Logger{inner: l, party: party}
}

func (l *Logger) prefix(format string) string {
	return fmt.Sprintf("[%s] %s", l.party, format)
}

func (l *Logger) Trace(format string, args ...interface{}) { l.inner.Trace(l.prefix(format), args...) }
func (l *Logger) Debug(format string, args ...interface{}) { l.inner.Debug(l.prefix(format), args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.inner.Info(l.prefix(format), args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.inner.Warn(l.prefix(format), args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.inner.Error(l.prefix(format), args...) }
