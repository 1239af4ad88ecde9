package batch

import (
	"time"

	"github.com/google/uuid"
)

// Report aggregates the outcomes of one run.
type Report struct {
	RunID      uuid.UUID
	Step       Step
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Outcomes   []Outcome
}

// NewReport starts a report for step under runID. A nil runID gets a fresh one.
func NewReport(runID uuid.UUID, step Step, now time.Time) *Report {
	if runID == uuid.Nil {
		runID = uuid.New()
	}
	return &Report{
		RunID:     runID,
		Step:      step,
		StartedAt: now,
	}
}

// Add appends an outcome, stamping it with at when it carries no timestamp.
func (r *Report) Add(outcome Outcome, at time.Time) {
	if outcome.At.IsZero() {
		outcome.At = at
	}
	r.Outcomes = append(r.Outcomes, outcome)
}

// Merge appends every outcome of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Outcomes = append(r.Outcomes, other.Outcomes...)
}

// Finish stamps the end of the run.
func (r *Report) Finish(now time.Time) {
	r.FinishedAt = now
}

// Count returns how many outcomes carry status.
func (r *Report) Count(status Status) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == status {
			n++
		}
	}
	return n
}

// CountReason returns how many outcomes carry status and reason.
func (r *Report) CountReason(status Status, reason Reason) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, outcome := range r.Outcomes {
		if outcome.Status == status && outcome.Reason == reason {
			n++
		}
	}
	return n
}

// Filter returns the outcomes with status.
func (r *Report) Filter(status Status) []Outcome {
	if r == nil {
		return nil
	}
	var out []Outcome
	for _, outcome := range r.Outcomes {
		if outcome.Status == status {
			out = append(out, outcome)
		}
	}
	return out
}

// Changed returns how many files were fixed or moved.
func (r *Report) Changed() int {
	return r.Count(StatusFixed) + r.Count(StatusMoved)
}

// Failed returns the failed outcomes.
func (r *Report) Failed() []Outcome {
	return r.Filter(StatusFailed)
}

// Duration is the wall time between start and finish.
func (r *Report) Duration() time.Duration {
	if r == nil || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Summary is the compact view of a report used in logs.
func (r *Report) Summary() map[string]any {
	return map[string]any{
		"run_id":     r.RunID.String(),
		"step":       string(r.Step),
		"dry_run":    r.DryRun,
		"fixed":      r.Count(StatusFixed),
		"moved":      r.Count(StatusMoved),
		"skipped":    r.Count(StatusSkipped),
		"failed":     r.Count(StatusFailed),
		"violations": r.Count(StatusViolation),
	}
}
