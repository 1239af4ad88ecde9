package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

const (
	rootModule     = "contentkit"
	sanitizeModule = "contentkit.sanitize"
	organizeModule = "contentkit.organize"
	verifyModule   = "contentkit.verify"
	journalModule  = "contentkit.journal"
)

const (
	fieldFilePath = "file_path"
	fieldFileKind = "file_kind"
	fieldStep     = "step"
	fieldRunID    = "run_id"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered per step.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SanitizeLogger returns the logger namespace reserved for the slug sanitizer.
func SanitizeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sanitizeModule)
}

// OrganizeLogger returns the logger namespace reserved for the blog organizer.
func OrganizeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, organizeModule)
}

// VerifyLogger returns the logger namespace reserved for content verification.
func VerifyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, verifyModule)
}

// JournalLogger returns the logger namespace reserved for the run journal.
func JournalLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, journalModule)
}

// WithFileContext enriches logger with the file being processed, its content
// kind and the step. Empty values are ignored.
func WithFileContext(logger interfaces.Logger, path, kind, step string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFilePath] = trimmed
	}
	if trimmed := strings.TrimSpace(kind); trimmed != "" {
		fields[fieldFileKind] = trimmed
	}
	if trimmed := strings.TrimSpace(step); trimmed != "" {
		fields[fieldStep] = trimmed
	}
	return WithFields(logger, fields)
}

// WithRunID tags every entry of logger with the run identifier.
func WithRunID(logger interfaces.Logger, runID string) interfaces.Logger {
	if strings.TrimSpace(runID) == "" {
		return logger
	}
	return WithFields(logger, map[string]any{fieldRunID: runID})
}

// WithFields applies fields when logger implements interfaces.FieldsLogger
// and returns logger unchanged otherwise. The map is copied.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok || len(fields) == 0 {
		return logger
	}
	copied := make(map[string]any, len(fields))
	for key, value := range fields {
		copied[key] = value
	}
	return fl.WithFields(copied)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
