package sanitize

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/markdown"
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

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func assertMissing(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected %s to be gone, stat err = %v", path, err)
	}
}

func newTestService(t *testing.T, cfg Config) *Service {
	t.Helper()
	svc, err := NewService(cfg, WithClock(func() time.Time { return time.Unix(1700000000, 0) }))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestNewServiceRequiresInput(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatal("expected error without directories")
	}
}

func TestSanitizeRecordsRenamesFromSlug(t *testing.T) {
	dir := t.TempDir()
	original := filepath.Join(dir, "dịch-vụ.json")
	writeFile(t, original, `{"id":"dich-vu-cu","slug":"dich-vu-cu"}`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir, Kind: "Blog Category"}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir, Kind: "Blog Category"})

	if len(outcomes) != 1 || outcomes[0].Status != batch.StatusFixed {
		t.Fatalf("expected one fixed outcome, got %v", outcomes)
	}
	if outcomes[0].Kind != "Blog Category" {
		t.Fatalf("expected kind to be recorded, got %q", outcomes[0].Kind)
	}
	assertMissing(t, original)

	got := readFile(t, filepath.Join(dir, "dich-vu-cu.json"))
	want := "{\n  \"id\": \"dich-vu-cu\",\n  \"slug\": \"dich-vu-cu\"\n}"
	if got != want {
		t.Fatalf("unexpected record\nwant: %s\ngot:  %s", want, got)
	}
}

func TestSanitizeRecordsFoldsDiacriticSlugAndKeepsKeyOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Dịch vụ.json"), `{"title": "Dịch vụ & <bảo hành>", "meta": {"order": 2, "tags": ["a"]}, "slug": "Dịch vụ"}`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 1 || outcomes[0].Status != batch.StatusFixed {
		t.Fatalf("unexpected outcomes %v", outcomes)
	}
	if outcomes[0].Detail != "slug Dịch vụ -> dich-vu" {
		t.Fatalf("unexpected detail %q", outcomes[0].Detail)
	}

	got := readFile(t, filepath.Join(dir, "dich-vu.json"))
	want := "{\n" +
		"  \"title\": \"Dịch vụ & <bảo hành>\",\n" +
		"  \"meta\": {\n    \"order\": 2,\n    \"tags\": [\n      \"a\"\n    ]\n  },\n" +
		"  \"slug\": \"dich-vu\",\n" +
		"  \"id\": \"dich-vu\"\n" +
		"}"
	if got != want {
		t.Fatalf("unexpected record\nwant: %s\ngot:  %s", want, got)
	}
}

func TestSanitizeRecordsFallsBackToIDThenFilename(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Tư vấn.json"), `{"id":"Tư vấn mua xe"}`)
	writeFile(t, filepath.Join(dir, "bảo-dưỡng.json"), `{"name":"x"}`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 2 {
		t.Fatalf("expected two outcomes, got %v", outcomes)
	}

	if got := readFile(t, filepath.Join(dir, "tu-van-mua-xe.json")); !strings.Contains(got, `"slug": "tu-van-mua-xe"`) {
		t.Fatalf("expected slug derived from id, got %s", got)
	}
	if got := readFile(t, filepath.Join(dir, "bao-duong.json")); !strings.Contains(got, `"id": "bao-duong"`) {
		t.Fatalf("expected id derived from filename, got %s", got)
	}
}

func TestSanitizeRecordsLeavesASCIINamesUntouched(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bao-duong.json")
	content := `{"id":"Bảo dưỡng","slug":"Bảo dưỡng"}`
	writeFile(t, path, content)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	if outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir}); len(outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %v", outcomes)
	}
	if readFile(t, path) != content {
		t.Fatal("expected ASCII-named record to be left as is")
	}
}

func TestSanitizeRecordsContinuesAfterFailures(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "hỏng.json")
	wrongType := filepath.Join(dir, "kiểu.json")
	writeFile(t, broken, `{"id":`)
	writeFile(t, wrongType, `{"slug": 5}`)
	writeFile(t, filepath.Join(dir, "đúng.json"), `{"slug":"đúng"}`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})

	var failed, fixed int
	for _, outcome := range outcomes {
		switch outcome.Status {
		case batch.StatusFailed:
			failed++
			if outcome.Err == nil {
				t.Fatalf("expected error on failed outcome %v", outcome)
			}
		case batch.StatusFixed:
			fixed++
		}
	}
	if failed != 2 || fixed != 1 {
		t.Fatalf("expected 2 failed and 1 fixed, got %v", outcomes)
	}
	readFile(t, broken)
	readFile(t, wrongType)
	readFile(t, filepath.Join(dir, "dung.json"))
}

func TestSanitizeRecordsRejectsNonObjects(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "mảng.json"), `["a"]`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 1 || outcomes[0].Status != batch.StatusFailed {
		t.Fatalf("expected failure for array record, got %v", outcomes)
	}
}

func TestSanitizeRecordsRejectsTrailingContent(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "dịch-vụ.json")
	writeFile(t, source, `{"slug":"dịch-vụ"} {"broken": `)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 1 || outcomes[0].Status != batch.StatusFailed {
		t.Fatalf("expected failure for trailing content, got %v", outcomes)
	}
	if !strings.Contains(readFile(t, source), `{"broken": `) {
		t.Fatal("expected original record to be left untouched")
	}
	assertMissing(t, filepath.Join(dir, "dich-vu.json"))
}

func TestSanitizeRecordsRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "dich-vu.json")
	writeFile(t, existing, `{"slug":"dich-vu","keep":true}`)
	source := filepath.Join(dir, "dịch-vụ.json")
	writeFile(t, source, `{"slug":"dịch-vụ"}`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 1 || !errors.Is(outcomes[0].Err, ErrTargetExists) {
		t.Fatalf("expected ErrTargetExists, got %v", outcomes)
	}
	if !strings.Contains(readFile(t, existing), `"keep":true`) {
		t.Fatal("expected existing record to be preserved")
	}
	readFile(t, source)
}

func TestSanitizeRecordsSkipsEmptySlug(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ả.json")
	writeFile(t, path, `{"slug":"???"}`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 1 || outcomes[0].Reason != batch.ReasonEmptySlug {
		t.Fatalf("expected empty-slug skip, got %v", outcomes)
	}
	readFile(t, path)
}

func TestSanitizeRecordsMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 1 || outcomes[0].Reason != batch.ReasonDirectoryMissing {
		t.Fatalf("expected directory-missing outcome, got %v", outcomes)
	}
}

func TestSanitizeRecordsDryRun(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dịch-vụ.json")
	writeFile(t, path, `{"slug":"dịch-vụ"}`)

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: dir}}, DryRun: true})
	outcomes := svc.SanitizeRecords(context.Background(), RecordDir{Path: dir})
	if len(outcomes) != 1 || outcomes[0].Status != batch.StatusFixed {
		t.Fatalf("expected planned fix, got %v", outcomes)
	}
	if outcomes[0].Target != filepath.Join(dir, "dich-vu.json") {
		t.Fatalf("unexpected target %s", outcomes[0].Target)
	}
	readFile(t, path)
	assertMissing(t, filepath.Join(dir, "dich-vu.json"))
}

const diacriticDocument = `---
title: "Xe tải nặng"
slug: xe-tải-nặng
id: "xe-tải-nặng"
category: "Bảo dưỡng"
---
# Xe tải nặng

Thân bài giữ nguyên: slug: không-đổi
`

func TestSanitizeDocumentsRewritesMetadataAndRenames(t *testing.T) {
	root := t.TempDir()
	original := filepath.Join(root, "bao-duong", "xe-tải-nặng.md")
	writeFile(t, original, diacriticDocument)

	svc := newTestService(t, Config{BlogRoot: root})
	outcomes := svc.SanitizeDocuments(context.Background(), root)
	if len(outcomes) != 1 || outcomes[0].Status != batch.StatusFixed {
		t.Fatalf("expected one fixed outcome, got %v", outcomes)
	}
	assertMissing(t, original)

	renamed := filepath.Join(root, "bao-duong", "xe-tai-nang.md")
	got := readFile(t, renamed)

	fields, ok := markdown.Parse([]byte(got))
	if !ok {
		t.Fatal("expected metadata block in rewritten document")
	}
	expect := map[string]string{
		"slug":     "xe-tai-nang",
		"id":       "xe-tai-nang",
		"category": "bao-duong",
		"title":    "Xe tải nặng",
	}
	for key, want := range expect {
		if value, _ := fields.Get(key); value != want {
			t.Fatalf("field %s = %q, want %q", key, value, want)
		}
	}
	if !strings.Contains(got, "\nslug: xe-tai-nang\n") {
		t.Fatalf("expected unquoted slug line, got %s", got)
	}

	before, _ := markdown.Extract([]byte(diacriticDocument))
	after, _ := markdown.Extract([]byte(got))
	if string(before.Body) != string(after.Body) {
		t.Fatalf("body changed\nbefore: %q\nafter:  %q", before.Body, after.Body)
	}
}

func TestSanitizeDocumentsDoesNotInventFields(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "bài-viết.md"), "---\ntitle: Bài viết\n---\nbody\n")

	svc := newTestService(t, Config{BlogRoot: root})
	outcomes := svc.SanitizeDocuments(context.Background(), root)
	if len(outcomes) != 1 || outcomes[0].Status != batch.StatusFixed {
		t.Fatalf("unexpected outcomes %v", outcomes)
	}
	if got := readFile(t, filepath.Join(root, "bai-viet.md")); got != "---\ntitle: Bài viết\n---\nbody\n" {
		t.Fatalf("unexpected document %q", got)
	}
}

func TestSanitizeDocumentsSkipsWithoutFrontMatter(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "tin-tuc-nganh-van-tai", "ghi-chú.md")
	writeFile(t, path, "# Không có metadata\n")

	svc := newTestService(t, Config{BlogRoot: root})
	outcomes := svc.SanitizeDocuments(context.Background(), root)
	if len(outcomes) != 1 || outcomes[0].Reason != batch.ReasonNoFrontMatter {
		t.Fatalf("expected no-front-matter skip, got %v", outcomes)
	}
	readFile(t, path)
}

func TestSanitizeDocumentsOnlyDescendsOneLevel(t *testing.T) {
	root := t.TempDir()
	deep := filepath.Join(root, "a", "b", "sâu.md")
	writeFile(t, deep, "---\nslug: sâu\n---\n")
	plain := filepath.Join(root, "a", "plain.md")
	writeFile(t, plain, "---\nslug: vẫn-giữ\n---\n")

	svc := newTestService(t, Config{BlogRoot: root})
	if outcomes := svc.SanitizeDocuments(context.Background(), root); len(outcomes) != 0 {
		t.Fatalf("expected no outcomes, got %v", outcomes)
	}
	readFile(t, deep)
	if readFile(t, plain) != "---\nslug: vẫn-giữ\n---\n" {
		t.Fatal("expected ASCII-named document to be left alone")
	}
}

func TestRunAggregatesEverySource(t *testing.T) {
	base := t.TempDir()
	blogCategories := filepath.Join(base, "blog-categories")
	productCategories := filepath.Join(base, "categories")
	blog := filepath.Join(base, "blog")

	writeFile(t, filepath.Join(blogCategories, "Bảo dưỡng.json"), `{"slug":"Bảo dưỡng"}`)
	writeFile(t, filepath.Join(productCategories, "xe-tai.json"), `{"slug":"xe-tai"}`)
	writeFile(t, filepath.Join(blog, "bao-duong", "lốp-xe.md"), "---\ncategory: Bảo dưỡng\n---\nbody")

	runID := uuid.New()
	svc, err := NewService(Config{
		RecordDirs: []RecordDir{
			{Path: blogCategories, Kind: "Blog Category"},
			{Path: productCategories, Kind: "Product Category"},
			{Path: filepath.Join(base, "missing"), Kind: "Other"},
		},
		BlogRoot: blog,
	}, WithRunID(runID))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	report, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if report.RunID != runID {
		t.Fatalf("expected run id %s, got %s", runID, report.RunID)
	}
	if report.Count(batch.StatusFixed) != 2 {
		t.Fatalf("expected 2 fixed files, got %v", report.Outcomes)
	}
	if report.CountReason(batch.StatusSkipped, batch.ReasonDirectoryMissing) != 1 {
		t.Fatalf("expected missing directory to be reported, got %v", report.Outcomes)
	}
	if report.FinishedAt.IsZero() {
		t.Fatal("expected report to be finished")
	}

	second, err := svc.Run(context.Background())
	if err != nil {
		t.Fatalf("second Run: %v", err)
	}
	if second.Count(batch.StatusFixed) != 0 {
		t.Fatalf("expected second run to fix nothing, got %v", second.Outcomes)
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := newTestService(t, Config{RecordDirs: []RecordDir{{Path: t.TempDir()}}})
	if _, err := svc.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
