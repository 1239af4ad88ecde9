// Package journal keeps a history of content runs: one row per file outcome,
// grouped by run id.
package journal

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/batch"
)

// ErrRunNotFound indicates that no outcomes were journaled for a run id.
var ErrRunNotFound = errors.New("journal: run not found")

// Run summarises one journaled run.
type Run struct {
	ID         uuid.UUID
	Step       batch.Step
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   int
	Changed    int
	Failed     int
}

// Entry is a journaled outcome.
type Entry struct {
	RunID    uuid.UUID
	Sequence int
	Outcome  batch.Outcome
	// Error holds the message of Outcome.Err; the error value itself is not
	// persisted.
	Error string
}

// Repository persists run reports and emits an event per recorded run.
type Repository interface {
	Record(ctx context.Context, report *batch.Report) error
	Runs(ctx context.Context, limit int) ([]Run, error)
	Outcomes(ctx context.Context, runID uuid.UUID) ([]Entry, error)
	Subscribe(ctx context.Context) (<-chan RecordedEvent, error)
}

// RecordedEvent reports a run written to the journal.
type RecordedEvent struct {
	Run Run
}

func summarize(report *batch.Report) Run {
	return Run{
		ID:         report.RunID,
		Step:       report.Step,
		DryRun:     report.DryRun,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		Outcomes:   len(report.Outcomes),
		Changed:    report.Changed(),
		Failed:     report.Count(batch.StatusFailed),
	}
}

func entriesFor(report *batch.Report) []Entry {
	entries := make([]Entry, 0, len(report.Outcomes))
	for i, outcome := range report.Outcomes {
		entry := Entry{RunID: report.RunID, Sequence: i, Outcome: outcome}
		if outcome.Err != nil {
			entry.Error = outcome.Err.Error()
		}
		entries = append(entries, entry)
	}
	return entries
}
