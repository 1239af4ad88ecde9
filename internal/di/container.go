package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/goliatone/go-contentkit/internal/batch"
	buildcmd "github.com/goliatone/go-contentkit/internal/commands/build"
	"github.com/goliatone/go-contentkit/internal/journal"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/logging/console"
	"github.com/goliatone/go-contentkit/internal/logging/gologger"
	"github.com/goliatone/go-contentkit/internal/report"
	"github.com/goliatone/go-contentkit/internal/runtimeconfig"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// Option mutates the container before handlers are built.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithJournal injects a journal repository instead of opening the configured DSN.
func WithJournal(repo journal.Repository) Option {
	return func(c *Container) {
		if repo != nil {
			c.journal = repo
		}
	}
}

// WithOutput redirects the console report. Nil writers keep stdout and stderr.
func WithOutput(out, errOut io.Writer) Option {
	return func(c *Container) {
		c.printer = report.NewPrinter(out, errOut)
	}
}

// WithoutPrinter disables the console report.
func WithoutPrinter() Option {
	return func(c *Container) {
		c.printer = nil
		c.printerDisabled = true
	}
}

// WithReportSink adds a sink that receives every report.
func WithReportSink(sink buildcmd.ReportSink) Option {
	return func(c *Container) {
		if sink != nil {
			c.sinks = append(c.sinks, sink)
		}
	}
}

// WithCommandRegistry registers the build handlers with reg.
func WithCommandRegistry(reg buildcmd.CommandRegistry) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// Container wires the configured services together.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider  interfaces.LoggerProvider
	journal         journal.Repository
	closeJournal    func() error
	printer         *report.Printer
	printerDisabled bool
	sinks           []buildcmd.ReportSink
	registry        buildcmd.CommandRegistry
	handlers        *buildcmd.HandlerSet

	mu   sync.Mutex
	last *batch.Report
}

// NewContainer validates cfg and builds the logger provider, the optional
// journal, and the build command handlers.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}
	if c.printer == nil && !c.printerDisabled {
		c.printer = report.NewPrinter(nil, nil)
	}

	logger := logging.ModuleLogger(c.loggerProvider, "contentkit.di")
	c.configureJournal(logger)

	sinks := []buildcmd.ReportSink{
		buildcmd.SinkFunc(c.remember),
		buildcmd.PrinterSink(c.printer),
	}
	if c.journal != nil {
		sinks = append(sinks, buildcmd.JournalSink(c.journal, logging.JournalLogger(c.loggerProvider)))
	}
	sinks = append(sinks, c.sinks...)

	handlers, err := buildcmd.RegisterBuildCommands(
		c.registry,
		buildcmd.LoggersFromProvider(c.loggerProvider),
		buildcmd.Sinks(sinks...),
	)
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("register build commands: %w", err)
	}
	c.handlers = handlers

	logger.Debug("container.configured",
		"logging_provider", cfg.LoggingProvider(),
		"journal", c.journal != nil,
	)
	return c, nil
}

// configureJournal opens the configured DSN. An unreachable journal is
// logged and left disabled so the build steps still run.
func (c *Container) configureJournal(logger interfaces.Logger) {
	if c.journal != nil || c.Config.Journal.DSN == "" {
		return
	}
	repo, closeFn, err := journal.OpenRepository(context.Background(), c.Config.Journal.DSN)
	if err != nil {
		logger.Warn("journal.open.failed", "error", err)
		return
	}
	c.journal = repo
	c.closeJournal = closeFn
}

func newLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	provider := runtimeconfig.Config{Logging: cfg}.LoggingProvider()
	switch provider {
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:  cfg.Level,
			Format: cfg.Format,
		})
	case "console", "":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, provider)
	}
}

func (c *Container) remember(_ context.Context, r *batch.Report) {
	c.mu.Lock()
	c.last = r
	c.mu.Unlock()
}

// LastReport returns the report of the most recent run.
func (c *Container) LastReport() *batch.Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// Journal returns the journal repository, nil when disabled.
func (c *Container) Journal() journal.Repository {
	return c.journal
}

// Printer returns the console printer, nil when disabled.
func (c *Container) Printer() *report.Printer {
	return c.printer
}

// Handlers returns the build command handlers.
func (c *Container) Handlers() *buildcmd.HandlerSet {
	return c.handlers
}

// Close releases the journal connection when the container opened it.
func (c *Container) Close() error {
	if c == nil || c.closeJournal == nil {
		return nil
	}
	closeFn := c.closeJournal
	c.closeJournal = nil
	if err := closeFn(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
