package buildcmd

import (
	"context"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/journal"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/report"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// ReportSink receives the report of every completed run. Sinks handle their
// own failures; a sink never fails the command.
type ReportSink interface {
	HandleReport(ctx context.Context, report *batch.Report)
}

// SinkFunc adapts a function to ReportSink.
type SinkFunc func(ctx context.Context, report *batch.Report)

// HandleReport implements ReportSink.
func (fn SinkFunc) HandleReport(ctx context.Context, report *batch.Report) {
	if fn != nil {
		fn(ctx, report)
	}
}

// Sinks fans a report out to every non-nil sink in order.
func Sinks(sinks ...ReportSink) ReportSink {
	return SinkFunc(func(ctx context.Context, r *batch.Report) {
		for _, sink := range sinks {
			if sink != nil {
				sink.HandleReport(ctx, r)
			}
		}
	})
}

// PrinterSink renders reports with printer.
func PrinterSink(printer *report.Printer) ReportSink {
	return SinkFunc(func(_ context.Context, r *batch.Report) {
		if printer != nil {
			printer.Print(r)
		}
	})
}

// JournalSink records reports in repo. Failures are logged and swallowed.
func JournalSink(repo journal.Repository, logger interfaces.Logger) ReportSink {
	if logger == nil {
		logger = logging.NoOp()
	}
	return SinkFunc(func(ctx context.Context, r *batch.Report) {
		if repo == nil || r == nil {
			return
		}
		scoped := logging.WithRunID(logger, r.RunID.String())
		if err := repo.Record(ctx, r); err != nil {
			scoped.Error("journal.record.failed", "error", err)
			return
		}
		scoped.Debug("journal.record.completed", "outcomes", len(r.Outcomes))
	})
}
