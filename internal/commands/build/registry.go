package buildcmd

import (
	"github.com/goliatone/go-contentkit/internal/commands"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the handlers produced by RegisterBuildCommands.
type HandlerSet struct {
	Sanitize *SanitizeSlugsHandler
	Organize *OrganizeBlogHandler
	Verify   *VerifyContentHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	sanitizeOpts []commands.HandlerOption[SanitizeSlugsCommand]
	organizeOpts []commands.HandlerOption[OrganizeBlogCommand]
	verifyOpts   []commands.HandlerOption[VerifyContentCommand]
}

// WithSanitizeHandlerOptions forwards options to the sanitize handler.
func WithSanitizeHandlerOptions(opts ...commands.HandlerOption[SanitizeSlugsCommand]) Option {
	return func(cfg *options) {
		cfg.sanitizeOpts = append(cfg.sanitizeOpts, opts...)
	}
}

// WithOrganizeHandlerOptions forwards options to the organize handler.
func WithOrganizeHandlerOptions(opts ...commands.HandlerOption[OrganizeBlogCommand]) Option {
	return func(cfg *options) {
		cfg.organizeOpts = append(cfg.organizeOpts, opts...)
	}
}

// WithVerifyHandlerOptions forwards options to the verify handler.
func WithVerifyHandlerOptions(opts ...commands.HandlerOption[VerifyContentCommand]) Option {
	return func(cfg *options) {
		cfg.verifyOpts = append(cfg.verifyOpts, opts...)
	}
}

// RegisterBuildCommands builds the content build handlers and registers them
// with reg when it is non-nil.
func RegisterBuildCommands(reg CommandRegistry, loggers Loggers, sink ReportSink, opts ...Option) (*HandlerSet, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	set := &HandlerSet{
		Sanitize: NewSanitizeSlugsHandler(loggers, sink, cfg.sanitizeOpts...),
		Organize: NewOrganizeBlogHandler(loggers, sink, cfg.organizeOpts...),
		Verify:   NewVerifyContentHandler(loggers, sink, cfg.verifyOpts...),
	}

	if reg != nil {
		for _, handler := range []any{set.Sanitize, set.Organize, set.Verify} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
