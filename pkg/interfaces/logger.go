// Package interfaces holds the contracts host applications implement to plug
// their own infrastructure into the content build steps.
package interfaces

import "context"

// Logger is the leveled logger every build step writes to. Arguments after
// the message are alternating key/value pairs. The method set matches
// github.com/goliatone/go-logger so its loggers fit without an adapter.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider returns the logger for a module name such as
// "contentkit.organize".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry fields on every
// entry. Callers go through logging.WithFields, which skips loggers without it.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
