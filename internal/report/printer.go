// Package report renders batch reports for people running the build tools:
// progress and a summary on the output stream, per-file errors on the error
// stream.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/goliatone/go-contentkit/internal/batch"
)

// Printer writes human-readable reports.
type Printer struct {
	out    io.Writer
	errOut io.Writer
}

// NewPrinter returns a printer writing to out and errOut. Nil writers default
// to stdout and stderr.
func NewPrinter(out, errOut io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	return &Printer{out: out, errOut: errOut}
}

// Print renders a report according to the step that produced it.
func (p *Printer) Print(report *batch.Report) {
	if report == nil {
		return
	}
	switch report.Step {
	case batch.StepOrganize:
		p.printOrganize(report)
	case batch.StepVerify:
		p.printVerify(report)
	default:
		p.printSanitize(report)
	}
}

// Header announces a step before it runs.
func (p *Printer) Header(step batch.Step, dryRun bool) {
	var title string
	switch step {
	case batch.StepOrganize:
		title = "Organizing blog posts by category..."
	case batch.StepVerify:
		title = "Verifying content tree..."
	default:
		title = "Sanitizing Vietnamese slugs to ASCII..."
	}
	if dryRun {
		title += " (dry run)"
	}
	fmt.Fprintf(p.out, "\n%s\n\n", title)
}

func (p *Printer) printSanitize(report *batch.Report) {
	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case batch.StatusFixed:
			fmt.Fprintf(p.out, "[%s] Renamed: %s -> %s\n", kindLabel(outcome), base(outcome.Path), base(outcome.Target))
			if outcome.Detail != "" {
				fmt.Fprintf(p.out, "   Updated %s\n", outcome.Detail)
			}
		case batch.StatusSkipped:
			p.printSkipped(outcome)
		case batch.StatusFailed:
			fmt.Fprintf(p.errOut, "Error processing %s: %v\n", base(outcome.Path), outcome.Err)
		}
	}

	fixed := report.Count(batch.StatusFixed)
	fmt.Fprintln(p.out, "\nSummary:")
	switch {
	case fixed == 0:
		fmt.Fprintln(p.out, "All files already have ASCII-compliant names!")
	case report.DryRun:
		fmt.Fprintf(p.out, "Would fix %d file(s) with Vietnamese diacritics.\n", fixed)
	default:
		fmt.Fprintf(p.out, "Fixed %d file(s) with Vietnamese diacritics.\n", fixed)
	}
	p.printFailures(report)
}

func (p *Printer) printOrganize(report *batch.Report) {
	found := 0
	for _, outcome := range report.Outcomes {
		if outcome.Reason != batch.ReasonDirectoryMissing {
			found++
		}
	}
	fmt.Fprintf(p.out, "Found %d blog post(s)\n\n", found)

	for _, outcome := range report.Outcomes {
		name := base(outcome.Path)
		switch outcome.Status {
		case batch.StatusMoved:
			fmt.Fprintf(p.out, "Moved: %s -> %s/\n", name, outcome.Detail)
		case batch.StatusSkipped:
			switch outcome.Reason {
			case batch.ReasonAlreadyPlaced:
			case batch.ReasonNoCategory:
				fmt.Fprintf(p.out, "No category found in: %s\n", name)
			case batch.ReasonInvalidCategory:
				fmt.Fprintf(p.out, "Invalid category %q in: %s\n", outcome.Detail, name)
			default:
				p.printSkipped(outcome)
			}
		case batch.StatusFailed:
			fmt.Fprintf(p.errOut, "Error moving %s: %v\n", name, outcome.Err)
		}
	}

	moved := report.Count(batch.StatusMoved)
	switch {
	case moved == 0:
		fmt.Fprintln(p.out, "All blog posts are already in the correct folders!")
	case report.DryRun:
		fmt.Fprintf(p.out, "\nWould move %d file(s) to their correct category folders.\n", moved)
	default:
		fmt.Fprintf(p.out, "\nMoved %d file(s) to their correct category folders.\n", moved)
	}
	p.printFailures(report)
}

func (p *Printer) printVerify(report *batch.Report) {
	files := map[string]struct{}{}
	for _, outcome := range report.Outcomes {
		switch outcome.Status {
		case batch.StatusViolation:
			files[outcome.Path] = struct{}{}
			fmt.Fprintf(p.out, "[%s] %s: %s", kindLabel(outcome), outcome.Path, outcome.Reason)
			if outcome.Detail != "" {
				fmt.Fprintf(p.out, " (%s)", outcome.Detail)
			}
			fmt.Fprintln(p.out)
		case batch.StatusSkipped:
			p.printSkipped(outcome)
		case batch.StatusFailed:
			fmt.Fprintf(p.errOut, "Error checking %s: %v\n", outcome.Path, outcome.Err)
		}
	}

	violations := report.Count(batch.StatusViolation)
	if violations == 0 {
		fmt.Fprintln(p.out, "No violations found.")
	} else {
		fmt.Fprintf(p.out, "\nFound %d violation(s) in %d file(s).\n", violations, len(files))
	}
	p.printFailures(report)
}

func (p *Printer) printSkipped(outcome batch.Outcome) {
	switch outcome.Reason {
	case batch.ReasonDirectoryMissing:
		fmt.Fprintf(p.out, "Directory not found: %s\n", outcome.Path)
	default:
		fmt.Fprintf(p.out, "Skipped %s: %s", base(outcome.Path), outcome.Reason)
		if outcome.Detail != "" {
			fmt.Fprintf(p.out, " (%s)", outcome.Detail)
		}
		fmt.Fprintln(p.out)
	}
}

func (p *Printer) printFailures(report *batch.Report) {
	if failed := report.Count(batch.StatusFailed); failed > 0 {
		fmt.Fprintf(p.errOut, "%d file(s) could not be processed.\n", failed)
	}
}

func kindLabel(outcome batch.Outcome) string {
	if outcome.Kind == "" {
		return "File"
	}
	return outcome.Kind
}

func base(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path)
}
