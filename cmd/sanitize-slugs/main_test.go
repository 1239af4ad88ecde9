package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-contentkit/cmd/internal/bootstrap"
	"github.com/goliatone/go-contentkit/pkg/testsupport"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := testsupport.WriteFile(path, body); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestRunSanitizeRenamesDocuments(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	var out bytes.Buffer
	moduleBuilder = bootstrap.QuietBuilder(&out)

	root := t.TempDir()
	blog := filepath.Join(root, "src", "content", "blog")
	writeFile(t, filepath.Join(blog, "dịch-vụ.md"), "---\nslug: dịch-vụ\n---\nbody\n")

	if err := runSanitize([]string{"-root", root}); err != nil {
		t.Fatalf("runSanitize returned error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(blog, "dich-vu.md"))
	if err != nil {
		t.Fatalf("expected renamed document: %v", err)
	}
	if !strings.Contains(string(data), "slug: dich-vu") {
		t.Fatalf("expected slug rewritten, got %q", data)
	}
	if !strings.Contains(out.String(), "Fixed 1 file(s) with Vietnamese diacritics.") {
		t.Fatalf("expected summary, got %q", out.String())
	}
}

func TestRunSanitizeDryRunLeavesTree(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	var out bytes.Buffer
	moduleBuilder = bootstrap.QuietBuilder(&out)

	root := t.TempDir()
	path := filepath.Join(root, "src", "content", "blog", "dịch-vụ.md")
	writeFile(t, path, "---\nslug: dịch-vụ\n---\nbody\n")

	if err := runSanitize([]string{"-root", root, "-dry-run"}); err != nil {
		t.Fatalf("runSanitize returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected document untouched: %v", err)
	}
	if !strings.Contains(out.String(), "(dry run)") {
		t.Fatalf("expected dry-run header, got %q", out.String())
	}
}
