package bootstrap

import (
	"flag"
	"fmt"
	"io"
	"strings"

	contentkit "github.com/goliatone/go-contentkit"
	"github.com/goliatone/go-contentkit/internal/di"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// Options captures configuration shared by the content CLIs.
type Options struct {
	Root           string
	ConfigPath     string
	DryRun         bool
	JournalDSN     string
	LoggerProvider interfaces.LoggerProvider
	Out            io.Writer
	ErrOut         io.Writer
}

// Module wraps the contentkit module and a CLI scoped logger.
type Module struct {
	Module *contentkit.Module
	Logger interfaces.Logger
}

// Close releases the wrapped module.
func (m *Module) Close() error {
	if m == nil || m.Module == nil {
		return nil
	}
	return m.Module.Close()
}

// BindFlags registers the flags every content CLI accepts.
func BindFlags(fs *flag.FlagSet, opts *Options) {
	fs.StringVar(&opts.Root, "root", ".", "Project root the content directories are resolved against")
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to a contentkit.yaml file (defaults to <root>/contentkit.yaml when present)")
	fs.StringVar(&opts.JournalDSN, "journal", "", "Journal DSN (sqlite file or postgres:// URL) recording every run")
}

// BuildModule loads configuration for opts.Root and constructs the module.
// Flag values override the loaded configuration.
func BuildModule(opts Options) (*Module, error) {
	root := strings.TrimSpace(opts.Root)
	if root == "" {
		root = "."
	}

	cfg, err := contentkit.LoadConfig(root, strings.TrimSpace(opts.ConfigPath))
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.DryRun {
		cfg.DryRun = true
	}
	if dsn := strings.TrimSpace(opts.JournalDSN); dsn != "" {
		cfg.Journal.DSN = dsn
	}

	diOpts := []di.Option{di.WithOutput(opts.Out, opts.ErrOut)}
	if opts.LoggerProvider != nil {
		diOpts = append(diOpts, di.WithLoggerProvider(opts.LoggerProvider))
	}

	module, err := contentkit.New(cfg, diOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise contentkit module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: logging.ModuleLogger(module.Container().LoggerProvider(), "contentkit.cli"),
	}, nil
}
