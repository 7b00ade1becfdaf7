// Package log provides a structured logger with four levels (debug, info, warn, error).
package log

import (
	"fmt"
	"maps"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"github.com/datarhei/sheepcounter/encoding/json"
)

// Level is the severity of a log event.
type Level uint

const (
	Lsilent Level = 0
	Lerror  Level = 1
	Lwarn   Level = 2
	Linfo   Level = 3
	Ldebug  Level = 4
)

// String returns the name of the level.
func (level Level) String() string {
	switch level {
	case Lsilent:
		return "SILENT"
	case Lerror:
		return "ERROR"
	case Lwarn:
		return "WARN"
	case Linfo:
		return "INFO"
	case Ldebug:
		return "DEBUG"
	}

	return "UNKNOWN"
}

func (level *Level) MarshalJSON() ([]byte, error) {
	return json.Marshal(level.String())
}

// ParseLevel returns the level for the given name. Unknown names yield Linfo.
func ParseLevel(name string) Level {
	switch strings.ToLower(name) {
	case "silent":
		return Lsilent
	case "error":
		return Lerror
	case "warn":
		return Lwarn
	case "debug":
		return Ldebug
	}

	return Linfo
}

type Fields map[string]interface{}

// Logger writes structured log events to an output.
//
// An event is only written if its level is at least as severe as the
// level of the output. The component names the part of the application
// that wrote the event.
type Logger interface {
	// WithOutput returns a copy of the Logger that writes to w.
	WithOutput(w Writer) Logger

	// WithComponent returns a copy of the Logger with a different component.
	WithComponent(component string) Logger

	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger

	// Log writes the event. The message is formatted according to fmt.Printf.
	Log(format string, args ...interface{})

	Debug() Logger
	Info() Logger
	Warn() Logger
	Error() Logger

	// Write implements io.Writer. Each write is logged as one event.
	Write(p []byte) (int, error)

	Close()
}

type logger struct {
	output     Writer
	component  string
	modulePath string
}

// New returns a Logger for the given component without an output. Use
// WithOutput to make it actually write something.
func New(component string) Logger {
	l := &logger{
		component: component,
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		l.modulePath = info.Path
	}

	return l
}

func (l *logger) clone() *logger {
	return &logger{
		output:     l.output,
		component:  l.component,
		modulePath: l.modulePath,
	}
}

func (l *logger) Close() {
	if l.output != nil {
		l.output.Close()
	}
}

func (l *logger) WithOutput(w Writer) Logger {
	c := l.clone()
	c.output = w

	return c
}

func (l *logger) WithComponent(component string) Logger {
	c := l.clone()
	c.component = component

	return c
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return newEvent(l).WithField(key, value)
}

func (l *logger) WithFields(f Fields) Logger {
	return newEvent(l).WithFields(f)
}

func (l *logger) WithError(err error) Logger {
	return newEvent(l).WithError(err)
}

func (l *logger) Log(format string, args ...interface{}) {
	newEvent(l).Log(format, args...)
}

func (l *logger) Debug() Logger { return newEvent(l).Debug() }
func (l *logger) Info() Logger  { return newEvent(l).Info() }
func (l *logger) Warn() Logger  { return newEvent(l).Warn() }
func (l *logger) Error() Logger { return newEvent(l).Error() }

func (l *logger) Write(p []byte) (int, error) {
	return newEvent(l).Write(p)
}

// Event is a single log entry. It implements Logger so that fields and
// the level can be chained before calling Log.
type Event struct {
	logger *logger

	Time      time.Time
	Level     Level
	Component string
	Caller    string
	Message   string

	Data Fields
}

func newEvent(l *logger) *Event {
	return &Event{
		logger:    l,
		Component: l.component,
		Data:      Fields{},
	}
}

func (e *Event) clone() *Event {
	return &Event{
		logger:    e.logger,
		Time:      e.Time,
		Level:     e.Level,
		Component: e.Component,
		Caller:    e.Caller,
		Message:   e.Message,
		Data:      maps.Clone(e.Data),
	}
}

func (e *Event) Close() {
	e.logger.Close()
}

func (e *Event) WithOutput(w Writer) Logger {
	return e.logger.WithOutput(w)
}

func (e *Event) WithComponent(component string) Logger {
	c := e.clone()
	c.Component = component

	return c
}

func (e *Event) WithField(key string, value interface{}) Logger {
	return e.WithFields(Fields{key: value})
}

func (e *Event) WithFields(f Fields) Logger {
	c := e.clone()

	for k, v := range f {
		c.Data[k] = v
	}

	return c
}

func (e *Event) WithError(err error) Logger {
	if err == nil {
		return e
	}

	return e.WithField("error", err)
}

func (e *Event) withLevel(level Level) Logger {
	c := e.clone()
	c.Level = level

	return c
}

func (e *Event) Debug() Logger { return e.withLevel(Ldebug) }
func (e *Event) Info() Logger  { return e.withLevel(Linfo) }
func (e *Event) Warn() Logger  { return e.withLevel(Lwarn) }
func (e *Event) Error() Logger { return e.withLevel(Lerror) }

func (e *Event) Log(format string, args ...interface{}) {
	if e.logger.output == nil {
		return
	}

	_, file, line, _ := runtime.Caller(1)
	file = strings.TrimPrefix(file, e.logger.modulePath)

	n := e.clone()
	n.Time = time.Now()
	n.Caller = fmt.Sprintf("%s:%d", file, line)

	if n.Level == Lsilent {
		n.Level = Ldebug
	}

	if len(format) != 0 {
		if len(args) == 0 {
			n.Message = format
		} else {
			n.Message = fmt.Sprintf(format, args...)
		}
	}

	e.logger.output.Write(n)
}

func (e *Event) Write(p []byte) (int, error) {
	e.Log("%s", strings.TrimSpace(string(p)))

	return len(p), nil
}
