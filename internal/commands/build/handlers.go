package buildcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/categories"
	"github.com/goliatone/go-contentkit/internal/commands"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/organize"
	"github.com/goliatone/go-contentkit/internal/sanitize"
	"github.com/goliatone/go-contentkit/internal/verify"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

const (
	sanitizeOperation = "build.sanitize_slugs"
	organizeOperation = "build.organize_blog"
	verifyOperation   = "build.verify_content"
)

var (
	_ command.Commander[SanitizeSlugsCommand] = (*SanitizeSlugsHandler)(nil)
	_ command.Commander[OrganizeBlogCommand]  = (*OrganizeBlogHandler)(nil)
	_ command.Commander[VerifyContentCommand] = (*VerifyContentHandler)(nil)
)

// Loggers groups the loggers handed to the build steps.
type Loggers struct {
	Command  interfaces.Logger
	Sanitize interfaces.Logger
	Organize interfaces.Logger
	Verify   interfaces.Logger
}

// LoggersFromProvider derives module loggers from provider.
func LoggersFromProvider(provider interfaces.LoggerProvider) Loggers {
	return Loggers{
		Command:  commands.CommandLogger(provider, "build"),
		Sanitize: logging.SanitizeLogger(provider),
		Organize: logging.OrganizeLogger(provider),
		Verify:   logging.VerifyLogger(provider),
	}
}

func (l Loggers) orNoOp() Loggers {
	fill := func(logger interfaces.Logger) interfaces.Logger {
		if logger == nil {
			return logging.NoOp()
		}
		return logger
	}
	return Loggers{
		Command:  fill(l.Command),
		Sanitize: fill(l.Sanitize),
		Organize: fill(l.Organize),
		Verify:   fill(l.Verify),
	}
}

func deliver(ctx context.Context, sink ReportSink, report *batch.Report) {
	if sink != nil && report != nil {
		sink.HandleReport(ctx, report)
	}
}

func allowList(names []string) (categories.AllowList, error) {
	if len(names) == 0 {
		return categories.DefaultList(), nil
	}
	return categories.New(names)
}

// SanitizeSlugsHandler runs the slug sanitizer.
type SanitizeSlugsHandler struct {
	inner *commands.Handler[SanitizeSlugsCommand]
}

// NewSanitizeSlugsHandler creates a handler delivering reports to sink.
func NewSanitizeSlugsHandler(loggers Loggers, sink ReportSink, opts ...commands.HandlerOption[SanitizeSlugsCommand]) *SanitizeSlugsHandler {
	loggers = loggers.orNoOp()

	exec := func(ctx context.Context, msg SanitizeSlugsCommand) error {
		svc, err := sanitize.NewService(sanitize.Config{
			RecordDirs: msg.RecordDirs,
			BlogRoot:   msg.BlogRoot,
			DryRun:     msg.DryRun,
		}, sanitize.WithLogger(loggers.Sanitize), sanitize.WithRunID(msg.RunID))
		if err != nil {
			return err
		}
		report, err := svc.Run(ctx)
		deliver(ctx, sink, report)
		return err
	}

	handlerOpts := []commands.HandlerOption[SanitizeSlugsCommand]{
		commands.WithLogger[SanitizeSlugsCommand](loggers.Command),
		commands.WithOperation[SanitizeSlugsCommand](sanitizeOperation),
		commands.WithMessageFields(func(msg SanitizeSlugsCommand) map[string]any {
			fields := map[string]any{
				"blog_root":   msg.BlogRoot,
				"record_dirs": len(msg.RecordDirs),
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SanitizeSlugsCommand](loggers.Command)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &SanitizeSlugsHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[SanitizeSlugsCommand].
func (h *SanitizeSlugsHandler) Execute(ctx context.Context, msg SanitizeSlugsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// OrganizeBlogHandler runs the blog organizer.
type OrganizeBlogHandler struct {
	inner *commands.Handler[OrganizeBlogCommand]
}

// NewOrganizeBlogHandler creates a handler delivering reports to sink.
func NewOrganizeBlogHandler(loggers Loggers, sink ReportSink, opts ...commands.HandlerOption[OrganizeBlogCommand]) *OrganizeBlogHandler {
	loggers = loggers.orNoOp()

	exec := func(ctx context.Context, msg OrganizeBlogCommand) error {
		list, err := allowList(msg.Categories)
		if err != nil {
			return err
		}
		org, err := organize.New(organize.Config{
			BlogRoot:   msg.BlogRoot,
			Categories: list,
			DryRun:     msg.DryRun,
		}, organize.WithLogger(loggers.Organize), organize.WithRunID(msg.RunID))
		if err != nil {
			return err
		}
		report, err := org.Run(ctx)
		deliver(ctx, sink, report)
		return err
	}

	handlerOpts := []commands.HandlerOption[OrganizeBlogCommand]{
		commands.WithLogger[OrganizeBlogCommand](loggers.Command),
		commands.WithOperation[OrganizeBlogCommand](organizeOperation),
		commands.WithMessageFields(func(msg OrganizeBlogCommand) map[string]any {
			fields := map[string]any{"blog_root": msg.BlogRoot}
			if len(msg.Categories) > 0 {
				fields["categories"] = len(msg.Categories)
			}
			if msg.DryRun {
				fields["dry_run"] = true
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[OrganizeBlogCommand](loggers.Command)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &OrganizeBlogHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[OrganizeBlogCommand].
func (h *OrganizeBlogHandler) Execute(ctx context.Context, msg OrganizeBlogCommand) error {
	return h.inner.Execute(ctx, msg)
}

// VerifyContentHandler runs the read-only audit. Violations are reported
// through the sink, not as an error.
type VerifyContentHandler struct {
	inner *commands.Handler[VerifyContentCommand]
}

// NewVerifyContentHandler creates a handler delivering reports to sink.
func NewVerifyContentHandler(loggers Loggers, sink ReportSink, opts ...commands.HandlerOption[VerifyContentCommand]) *VerifyContentHandler {
	loggers = loggers.orNoOp()

	exec := func(ctx context.Context, msg VerifyContentCommand) error {
		list, err := allowList(msg.Categories)
		if err != nil {
			return err
		}
		checker, err := verify.New(verify.Config{
			BlogRoot:   msg.BlogRoot,
			RecordDirs: msg.RecordDirs,
			Categories: list,
		}, verify.WithLogger(loggers.Verify), verify.WithRunID(msg.RunID))
		if err != nil {
			return err
		}
		report, err := checker.Run(ctx)
		deliver(ctx, sink, report)
		return err
	}

	handlerOpts := []commands.HandlerOption[VerifyContentCommand]{
		commands.WithLogger[VerifyContentCommand](loggers.Command),
		commands.WithOperation[VerifyContentCommand](verifyOperation),
		commands.WithMessageFields(func(msg VerifyContentCommand) map[string]any {
			return map[string]any{
				"blog_root":   msg.BlogRoot,
				"record_dirs": len(msg.RecordDirs),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[VerifyContentCommand](loggers.Command)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &VerifyContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[VerifyContentCommand].
func (h *VerifyContentHandler) Execute(ctx context.Context, msg VerifyContentCommand) error {
	return h.inner.Execute(ctx, msg)
}
