package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "contentkit.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerUsesProviderAndAnnotatesFields(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = OrganizeLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != organizeModule {
		t.Fatalf("expected module %s, got %v", organizeModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != organizeModule {
		t.Fatalf("expected module field %s, got %v", organizeModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	provider := &stubProvider{logger: &recordingLogger{}}
	_ = ModuleLogger(provider, "")
	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestStepLoggersRequestTheirModules(t *testing.T) {
	cases := map[string]func(interfaces.LoggerProvider) interfaces.Logger{
		sanitizeModule: SanitizeLogger,
		verifyModule:   VerifyLogger,
		journalModule:  JournalLogger,
	}
	for module, build := range cases {
		provider := &stubProvider{logger: &recordingLogger{}}
		_ = build(provider)
		if len(provider.requested) == 0 || provider.requested[0] != module {
			t.Fatalf("expected %s request, got %v", module, provider.requested)
		}
	}
}

func TestWithFileContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithFileContext(rec, " src/content/blog/a.md ", "", "organize")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldFilePath] != "src/content/blog/a.md" || fields[fieldStep] != "organize" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields[fieldFileKind]; ok {
		t.Fatalf("expected empty kind to be skipped, got %v", fields)
	}
}

func TestWithRunID(t *testing.T) {
	rec := &recordingLogger{}
	_ = WithRunID(rec, "")
	if len(rec.fields) != 0 {
		t.Fatal("expected empty run id to be ignored")
	}
	_ = WithRunID(rec, "abc")
	if rec.fields[0][fieldRunID] != "abc" {
		t.Fatalf("unexpected fields %v", rec.fields)
	}
}
