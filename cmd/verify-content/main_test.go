package main

import (
	"bytes"
	"errors"
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

func TestRunVerifyCleanTree(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	var out bytes.Buffer
	moduleBuilder = bootstrap.QuietBuilder(&out)

	root := t.TempDir()
	blog := filepath.Join(root, "src", "content", "blog")
	writeFile(t, filepath.Join(blog, "bao-duong", "lich.md"), "---\nslug: lich\ncategory: bao-duong\n---\nbody\n")

	if err := runVerify([]string{"-root", root}); err != nil {
		t.Fatalf("runVerify returned error: %v", err)
	}
	if !strings.Contains(out.String(), "No violations found.") {
		t.Fatalf("expected clean summary, got %q", out.String())
	}
}

func TestRunVerifyReportsViolations(t *testing.T) {
	original := moduleBuilder
	defer func() { moduleBuilder = original }()

	var out bytes.Buffer
	moduleBuilder = bootstrap.QuietBuilder(&out)

	root := t.TempDir()
	blog := filepath.Join(root, "src", "content", "blog")
	writeFile(t, filepath.Join(blog, "lịch.md"), "---\ncategory: bao-duong\n---\nbody\n")

	err := runVerify([]string{"-root", root})
	if !errors.Is(err, errContentInvalid) {
		t.Fatalf("expected errContentInvalid, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(blog, "lịch.md")); statErr != nil {
		t.Fatalf("verify must not modify the tree: %v", statErr)
	}
}
