package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestBuildModuleAppliesFlagOverrides(t *testing.T) {
	root := t.TempDir()
	dsn := filepath.Join(root, "journal.db")

	module, err := BuildModule(Options{
		Root:           root,
		DryRun:         true,
		JournalDSN:     dsn,
		LoggerProvider: discardProvider{},
		Out:            &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	defer module.Close()

	cfg := module.Module.Config()
	if !cfg.DryRun {
		t.Fatal("expected -dry-run to override configuration")
	}
	if cfg.Journal.DSN != dsn {
		t.Fatalf("expected journal dsn %q, got %q", dsn, cfg.Journal.DSN)
	}
	if module.Module.Journal() == nil {
		t.Fatal("expected journal to be opened")
	}
	if module.Logger == nil {
		t.Fatal("expected CLI logger")
	}
}

func TestBuildModuleReadsConfigFile(t *testing.T) {
	root := t.TempDir()
	yaml := "blog_dir: posts\ndry_run: true\n"
	if err := os.WriteFile(filepath.Join(root, "contentkit.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	module, err := BuildModule(Options{Root: root, LoggerProvider: discardProvider{}, Out: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	defer module.Close()

	cfg := module.Module.Config()
	if cfg.BlogRoot() != filepath.Join(root, "posts") {
		t.Fatalf("unexpected blog root %q", cfg.BlogRoot())
	}
	if !cfg.DryRun {
		t.Fatal("expected dry_run from config file")
	}
	report, err := module.Module.OrganizeBlog(context.Background())
	if err != nil {
		t.Fatalf("OrganizeBlog: %v", err)
	}
	if report == nil || !report.DryRun {
		t.Fatalf("expected dry-run report, got %#v", report)
	}
}

func TestBuildModuleMissingConfigFile(t *testing.T) {
	_, err := BuildModule(Options{
		Root:           t.TempDir(),
		ConfigPath:     "nope.yaml",
		LoggerProvider: discardProvider{},
	})
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
}
