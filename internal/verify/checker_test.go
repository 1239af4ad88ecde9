package verify

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/sanitize"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func runChecker(t *testing.T, cfg Config) *batch.Report {
	t.Helper()
	checker, err := New(cfg, WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report, err := checker.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return report
}

func reasons(report *batch.Report) map[batch.Reason]int {
	out := map[batch.Reason]int{}
	for _, outcome := range report.Filter(batch.StatusViolation) {
		out[outcome.Reason]++
	}
	return out
}

func TestNewRequiresInput(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error without directories")
	}
}

func TestCleanTreeHasNoViolations(t *testing.T) {
	root := t.TempDir()
	blog := filepath.Join(root, "blog")
	records := filepath.Join(root, "categories")
	writeFile(t, filepath.Join(blog, "bao-duong", "thay-dau.md"), "---\nslug: thay-dau\nid: thay-dau\ncategory: bao-duong\n---\nbody\n")
	writeFile(t, filepath.Join(records, "dich-vu.json"), `{"id":"dich-vu","slug":"dich-vu","name":"Dịch vụ"}`)

	report := runChecker(t, Config{
		BlogRoot:   blog,
		RecordDirs: []sanitize.RecordDir{{Path: records, Kind: "Product Category"}},
	})
	if !Clean(report) {
		t.Fatalf("expected clean report, got %v", report.Outcomes)
	}
	if len(report.Outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %v", report.Outcomes)
	}
}

func TestDocumentViolations(t *testing.T) {
	blog := t.TempDir()
	writeFile(t, filepath.Join(blog, "xe-tải.md"), "---\nslug: xe-tải\ncategory: bao-duong\n---\n")
	writeFile(t, filepath.Join(blog, "bao-duong", "unknown.md"), "---\ncategory: not-a-real-category\n---\n")
	writeFile(t, filepath.Join(blog, "bao-duong", "plain.md"), "# no metadata\n")
	writeFile(t, filepath.Join(blog, "bao-duong", "broken.md"), "---\ntitle: [unclosed\n---\n")

	report := runChecker(t, Config{BlogRoot: blog})
	if Clean(report) {
		t.Fatal("expected violations")
	}

	got := reasons(report)
	want := map[batch.Reason]int{
		batch.ReasonNonASCIIName:       1,
		batch.ReasonNonASCIIField:      1,
		batch.ReasonMisplaced:          1,
		batch.ReasonInvalidCategory:    1,
		batch.ReasonNoCategory:         1,
		batch.ReasonInvalidFrontMatter: 1,
	}
	for reason, count := range want {
		if got[reason] != count {
			t.Fatalf("reason %s: got %d, want %d (all: %v)", reason, got[reason], count, report.Outcomes)
		}
	}

	for _, outcome := range report.Filter(batch.StatusViolation) {
		if outcome.Kind != "Blog" {
			t.Fatalf("expected Blog kind, got %q", outcome.Kind)
		}
		if outcome.Reason == batch.ReasonNonASCIIName && !strings.Contains(outcome.Detail, "suggest xe-tai") {
			t.Fatalf("expected suggestion, got %q", outcome.Detail)
		}
	}
}

func TestNestedCategoryFolderIsMisplaced(t *testing.T) {
	blog := t.TempDir()
	writeFile(t, filepath.Join(blog, "archive", "bao-duong", "post.md"), "---\ncategory: bao-duong\n---\n")
	writeFile(t, filepath.Join(blog, "bao-duong", "placed.md"), "---\ncategory: bao-duong\n---\n")

	report := runChecker(t, Config{BlogRoot: blog + string(filepath.Separator)})
	misplaced := 0
	for _, outcome := range report.Filter(batch.StatusViolation) {
		if outcome.Reason != batch.ReasonMisplaced {
			t.Fatalf("unexpected violation %v", outcome)
		}
		if filepath.Base(outcome.Path) != "post.md" {
			t.Fatalf("expected only the nested document flagged, got %s", outcome.Path)
		}
		misplaced++
	}
	if misplaced != 1 {
		t.Fatalf("expected one misplaced document, got %v", report.Outcomes)
	}
}

func TestRecordViolations(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "dịch-vụ.json"), `{"id":"dich-vu","slug":"dich-vu"}`)
	writeFile(t, filepath.Join(dir, "xe-tai.json"), `{"id":"Xe Tải","slug":"xe-tai"}`)
	writeFile(t, filepath.Join(dir, "bad.json"), `{"slug":42}`)

	report := runChecker(t, Config{RecordDirs: []sanitize.RecordDir{{Path: dir, Kind: "Blog Category"}}})

	got := reasons(report)
	if got[batch.ReasonNonASCIIName] != 1 || got[batch.ReasonNonASCIIField] != 1 || got[batch.ReasonInvalidFrontMatter] != 1 {
		t.Fatalf("unexpected violations %v", report.Outcomes)
	}
	for _, outcome := range report.Filter(batch.StatusViolation) {
		if outcome.Reason == batch.ReasonNonASCIIField && !strings.Contains(outcome.Detail, "suggest xe-tai") {
			t.Fatalf("expected suggestion in %q", outcome.Detail)
		}
	}
}

func TestMissingDirectoriesAreSkipped(t *testing.T) {
	root := t.TempDir()
	report := runChecker(t, Config{
		BlogRoot:   filepath.Join(root, "blog"),
		RecordDirs: []sanitize.RecordDir{{Path: filepath.Join(root, "records"), Kind: "Blog Category"}},
	})
	if report.CountReason(batch.StatusSkipped, batch.ReasonDirectoryMissing) != 2 {
		t.Fatalf("expected two missing directories, got %v", report.Outcomes)
	}
	if !Clean(report) {
		t.Fatal("missing directories are not violations")
	}
}

func TestCheckerDoesNotModifyTree(t *testing.T) {
	blog := t.TempDir()
	path := filepath.Join(blog, "xe-tải.md")
	content := "---\nslug: xe-tải\ncategory: bao-duong\n---\n"
	writeFile(t, path, content)

	runChecker(t, Config{BlogRoot: blog})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected file to remain: %v", err)
	}
	if string(data) != content {
		t.Fatalf("file modified: %q", data)
	}
	if _, err := os.Stat(filepath.Join(blog, "bao-duong")); err == nil {
		t.Fatal("verify must not create directories")
	}
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker, err := New(Config{BlogRoot: t.TempDir()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := checker.Run(ctx); err == nil {
		t.Fatal("expected context error")
	}
}
