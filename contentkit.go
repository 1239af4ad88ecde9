package contentkit

import (
	"context"

	"github.com/goliatone/go-contentkit/internal/batch"
	buildcmd "github.com/goliatone/go-contentkit/internal/commands/build"
	"github.com/goliatone/go-contentkit/internal/di"
	"github.com/goliatone/go-contentkit/internal/journal"
	"github.com/goliatone/go-contentkit/internal/sanitize"
	"github.com/goliatone/go-contentkit/internal/verify"
)

// Report exports the per-run outcome report.
type Report = batch.Report

// Outcome exports a single per-file outcome.
type Outcome = batch.Outcome

// JournalRepository exports the run history contract.
type JournalRepository = journal.Repository

// Module represents the content build runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.container.Config
}

// Journal returns the run history, nil when no journal is configured.
func (m *Module) Journal() JournalRepository {
	return m.container.Journal()
}

// SanitizeSlugs folds diacritics out of record and document file names and
// their slug fields.
func (m *Module) SanitizeSlugs(ctx context.Context) (*Report, error) {
	cfg := m.container.Config
	m.header(batch.StepSanitize)

	msg := buildcmd.SanitizeSlugsCommand{
		BlogRoot: cfg.BlogRoot(),
		DryRun:   cfg.DryRun,
	}
	for _, dir := range cfg.ResolvedRecordDirs() {
		msg.RecordDirs = append(msg.RecordDirs, recordDir(dir))
	}
	err := m.container.Handlers().Sanitize.Execute(ctx, msg)
	return m.container.LastReport(), err
}

// OrganizeBlog moves blog documents into the directory named by their category.
func (m *Module) OrganizeBlog(ctx context.Context) (*Report, error) {
	cfg := m.container.Config
	m.header(batch.StepOrganize)

	err := m.container.Handlers().Organize.Execute(ctx, buildcmd.OrganizeBlogCommand{
		BlogRoot:   cfg.BlogRoot(),
		Categories: cfg.Categories,
		DryRun:     cfg.DryRun,
	})
	return m.container.LastReport(), err
}

// VerifyContent checks the content tree without modifying it. Violations are
// reported as outcomes; use Clean to decide whether the tree passes.
func (m *Module) VerifyContent(ctx context.Context) (*Report, error) {
	cfg := m.container.Config
	m.header(batch.StepVerify)

	msg := buildcmd.VerifyContentCommand{
		BlogRoot:   cfg.BlogRoot(),
		Categories: cfg.Categories,
	}
	for _, dir := range cfg.ResolvedRecordDirs() {
		msg.RecordDirs = append(msg.RecordDirs, recordDir(dir))
	}
	err := m.container.Handlers().Verify.Execute(ctx, msg)
	return m.container.LastReport(), err
}

// Clean reports whether a verify report carries neither violations nor failures.
func Clean(report *Report) bool {
	return report != nil && verify.Clean(report)
}

// Close releases resources held by the module.
func (m *Module) Close() error {
	if m == nil {
		return nil
	}
	return m.container.Close()
}

func (m *Module) header(step batch.Step) {
	if printer := m.container.Printer(); printer != nil {
		printer.Header(step, m.container.Config.DryRun && step != batch.StepVerify)
	}
}

func recordDir(dir RecordDirConfig) sanitize.RecordDir {
	return sanitize.RecordDir{Path: dir.Path, Kind: dir.Kind}
}
