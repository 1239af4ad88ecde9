package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/batch"
)

var testTime = time.Unix(1700000000, 0)

func newReport(step batch.Step, outcomes ...batch.Outcome) *batch.Report {
	report := batch.NewReport(uuid.New(), step, testTime)
	for _, outcome := range outcomes {
		report.Add(outcome, testTime)
	}
	report.Finish(testTime)
	return report
}

func render(report *batch.Report) (string, string) {
	var out, errOut bytes.Buffer
	NewPrinter(&out, &errOut).Print(report)
	return out.String(), errOut.String()
}

func TestPrintSanitizeNothingToFix(t *testing.T) {
	out, errOut := render(newReport(batch.StepSanitize))
	if !strings.Contains(out, "All files already have ASCII-compliant names!") {
		t.Fatalf("unexpected output %q", out)
	}
	if errOut != "" {
		t.Fatalf("expected empty error stream, got %q", errOut)
	}
}

func TestPrintSanitizeFixedAndFailed(t *testing.T) {
	report := newReport(batch.StepSanitize,
		batch.Fixed(batch.StepSanitizeRecords, "dir/dịch-vụ.json", "dir/dich-vu-cu.json").WithKind("Blog Category").WithDetail("slug dich-vu-cu -> dich-vu-cu"),
		batch.Skipped(batch.StepSanitizeRecords, "missing", batch.ReasonDirectoryMissing, "directory not found"),
		batch.Failed(batch.StepSanitizeDocuments, "blog/bài.md", errors.New("permission denied")),
	)
	out, errOut := render(report)

	for _, want := range []string{
		"[Blog Category] Renamed: dịch-vụ.json -> dich-vu-cu.json",
		"Updated slug dich-vu-cu -> dich-vu-cu",
		"Directory not found: missing",
		"Fixed 1 file(s) with Vietnamese diacritics.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.Contains(errOut, "Error processing bài.md: permission denied") {
		t.Fatalf("expected error line, got %q", errOut)
	}
	if strings.Contains(out, "permission denied") {
		t.Fatal("errors must not go to the output stream")
	}
}

func TestPrintOrganize(t *testing.T) {
	report := newReport(batch.StepOrganize,
		batch.Moved(batch.StepOrganize, "blog/xe.md", "blog/bao-duong/xe.md").WithDetail("bao-duong"),
		batch.Skipped(batch.StepOrganize, "blog/a.md", batch.ReasonNoCategory, "no category field"),
		batch.Skipped(batch.StepOrganize, "blog/b.md", batch.ReasonInvalidCategory, "not-a-real-category"),
		batch.Skipped(batch.StepOrganize, "blog/bao-duong/c.md", batch.ReasonAlreadyPlaced, "bao-duong"),
	)
	out, _ := render(report)

	for _, want := range []string{
		"Found 4 blog post(s)",
		"Moved: xe.md -> bao-duong/",
		"No category found in: a.md",
		`Invalid category "not-a-real-category" in: b.md`,
		"Moved 1 file(s) to their correct category folders.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "c.md") {
		t.Fatal("documents already in place are not printed")
	}
}

func TestPrintOrganizeNothingMoved(t *testing.T) {
	out, _ := render(newReport(batch.StepOrganize))
	if !strings.Contains(out, "All blog posts are already in the correct folders!") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestPrintDryRunSummaries(t *testing.T) {
	report := newReport(batch.StepOrganize, batch.Moved(batch.StepOrganize, "blog/xe.md", "blog/bao-duong/xe.md").WithDetail("bao-duong"))
	report.DryRun = true
	out, _ := render(report)
	if !strings.Contains(out, "Would move 1 file(s)") {
		t.Fatalf("expected dry-run summary, got %q", out)
	}
}

func TestPrintVerify(t *testing.T) {
	report := newReport(batch.StepVerify,
		batch.Violation(batch.StepVerify, "blog/xe-tải.md", batch.ReasonNonASCIIName, "suggest xe-tai").WithKind("Blog"),
		batch.Violation(batch.StepVerify, "blog/xe-tải.md", batch.ReasonMisplaced, "expected in bao-duong").WithKind("Blog"),
	)
	out, _ := render(report)
	if !strings.Contains(out, "[Blog] blog/xe-tải.md: non-ascii-name (suggest xe-tai)") {
		t.Fatalf("unexpected output %q", out)
	}
	if !strings.Contains(out, "Found 2 violation(s) in 1 file(s).") {
		t.Fatalf("unexpected summary %q", out)
	}

	clean, _ := render(newReport(batch.StepVerify))
	if !strings.Contains(clean, "No violations found.") {
		t.Fatalf("unexpected clean output %q", clean)
	}
}

func TestHeader(t *testing.T) {
	var out bytes.Buffer
	NewPrinter(&out, &bytes.Buffer{}).Header(batch.StepSanitize, true)
	if !strings.Contains(out.String(), "Sanitizing Vietnamese slugs to ASCII... (dry run)") {
		t.Fatalf("unexpected header %q", out.String())
	}
}
