package commands

import (
	"strings"

	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// CommandLogger returns the logger for the handlers of one command group,
// named contentkit.commands.<group>.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	if group = strings.TrimSpace(group); group == "" {
		group = "default"
	}
	return logging.WithFields(
		logging.ModuleLogger(provider, "contentkit.commands."+group),
		map[string]any{"component": "command"},
	)
}
