// Package batch models the per-file results of a best-effort content run.
// Drivers never abort on a single file: each file yields an Outcome and the
// outcomes are aggregated into a Report.
package batch

import (
	"fmt"
	"time"
)

// Status is the terminal state of one file in a run.
type Status string

const (
	// StatusFixed marks a file that was rewritten or renamed.
	StatusFixed Status = "fixed"
	// StatusMoved marks a file relocated into its category directory.
	StatusMoved Status = "moved"
	// StatusSkipped marks a file intentionally left untouched; Reason says why.
	StatusSkipped Status = "skipped"
	// StatusFailed marks a file whose processing hit an error.
	StatusFailed Status = "failed"
	// StatusViolation marks a file that breaks a content invariant during verification.
	StatusViolation Status = "violation"
)

// Reason qualifies skipped and violation outcomes.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonNoCategory         Reason = "no-category"
	ReasonInvalidCategory    Reason = "invalid-category"
	ReasonAlreadyPlaced      Reason = "already-placed"
	ReasonNoFrontMatter      Reason = "no-front-matter"
	ReasonEmptySlug          Reason = "empty-slug"
	ReasonDirectoryMissing   Reason = "directory-missing"
	ReasonNonASCIIName       Reason = "non-ascii-name"
	ReasonNonASCIIField      Reason = "non-ascii-field"
	ReasonMisplaced          Reason = "misplaced"
	ReasonInvalidFrontMatter Reason = "invalid-front-matter"
)

// Step names the build step that produced an outcome.
type Step string

const (
	StepSanitize          Step = "sanitize"
	StepSanitizeRecords   Step = "sanitize.records"
	StepSanitizeDocuments Step = "sanitize.documents"
	StepOrganize          Step = "organize"
	StepVerify            Step = "verify"
)

// Outcome is the tagged result for a single file.
type Outcome struct {
	Step   Step
	Kind   string
	Path   string
	Target string
	Status Status
	Reason Reason
	Detail string
	Err    error
	At     time.Time
}

// Fixed builds a success outcome for a rewritten file.
func Fixed(step Step, path, target string) Outcome {
	return Outcome{Step: step, Path: path, Target: target, Status: StatusFixed}
}

// Moved builds a success outcome for a relocated file.
func Moved(step Step, path, target string) Outcome {
	return Outcome{Step: step, Path: path, Target: target, Status: StatusMoved}
}

// Skipped builds an outcome for a file left untouched on purpose.
func Skipped(step Step, path string, reason Reason, detail string) Outcome {
	return Outcome{Step: step, Path: path, Status: StatusSkipped, Reason: reason, Detail: detail}
}

// Failed builds an outcome for a file whose processing errored.
func Failed(step Step, path string, err error) Outcome {
	return Outcome{Step: step, Path: path, Status: StatusFailed, Err: err}
}

// Violation builds a verification finding.
func Violation(step Step, path string, reason Reason, detail string) Outcome {
	return Outcome{Step: step, Path: path, Status: StatusViolation, Reason: reason, Detail: detail}
}

// WithKind labels the outcome with the content kind (e.g. "Blog Category").
func (o Outcome) WithKind(kind string) Outcome {
	o.Kind = kind
	return o
}

// WithDetail attaches a human readable detail.
func (o Outcome) WithDetail(detail string) Outcome {
	o.Detail = detail
	return o
}

// Message renders the error or detail carried by the outcome.
func (o Outcome) Message() string {
	if o.Err != nil {
		return o.Err.Error()
	}
	return o.Detail
}

// String is used in log fields and test failures.
func (o Outcome) String() string {
	switch {
	case o.Target != "":
		return fmt.Sprintf("%s %s %s -> %s", o.Step, o.Status, o.Path, o.Target)
	case o.Reason != ReasonNone:
		return fmt.Sprintf("%s %s(%s) %s", o.Step, o.Status, o.Reason, o.Path)
	default:
		return fmt.Sprintf("%s %s %s", o.Step, o.Status, o.Path)
	}
}
