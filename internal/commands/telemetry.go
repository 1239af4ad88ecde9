package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// TelemetryStatus is the result category of one execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a finished execution.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked once per execution, after the step returns.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs the outcome with logger: completions at INFO,
// cancellations at WARN and failures at ERROR.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		logOutcome(logging.WithFields(logger, info.Fields), info.Status, info.Duration, info.Error)
	}
}

func logOutcome(logger interfaces.Logger, status TelemetryStatus, took time.Duration, err error) {
	ms := took.Milliseconds()
	switch status {
	case TelemetryStatusSuccess:
		logger.Info("command.completed", "duration_ms", ms)
	case TelemetryStatusContextError:
		logger.Warn("command.cancelled", "duration_ms", ms, "error", err)
	default:
		logger.Error("command.failed", "duration_ms", ms, "error", err)
	}
}
