package bootstrap

import (
	"io"

	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// QuietBuilder returns a BuildModule variant that discards logs and writes
// the console report to out. CLI tests swap it in for the default builder.
func QuietBuilder(out io.Writer) func(Options) (*Module, error) {
	return func(opts Options) (*Module, error) {
		opts.LoggerProvider = discardProvider{}
		opts.Out = out
		opts.ErrOut = out
		return BuildModule(opts)
	}
}

type discardProvider struct{}

func (discardProvider) GetLogger(string) interfaces.Logger { return logging.NoOp() }
