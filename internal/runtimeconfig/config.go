package runtimeconfig

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-contentkit/internal/categories"
	"github.com/goliatone/go-contentkit/internal/journal"
)

var ErrRootRequired = errors.New("contentkit config: project root is required")
var ErrBlogDirRequired = errors.New("contentkit config: blog directory is required")
var ErrRecordDirInvalid = errors.New("contentkit config: record directory needs a path and a kind")
var ErrCategoriesInvalid = errors.New("contentkit config: category allow-list is invalid")
var ErrLoggingProviderRequired = errors.New("contentkit config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("contentkit config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("contentkit config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("contentkit config: logging format is invalid")
var ErrJournalDSNInvalid = errors.New("contentkit config: journal dsn is invalid")

// Config aggregates the content locations and ambient settings shared by the
// build tools. Relative directories resolve against Root.
type Config struct {
	Root       string            `mapstructure:"root"`
	BlogDir    string            `mapstructure:"blog_dir"`
	RecordDirs []RecordDirConfig `mapstructure:"record_dirs"`
	Categories []string          `mapstructure:"categories"`
	DryRun     bool              `mapstructure:"dry_run"`
	Logging    LoggingConfig     `mapstructure:"logging"`
	Journal    JournalConfig     `mapstructure:"journal"`
}

// RecordDirConfig names a directory of JSON category records.
type RecordDirConfig struct {
	Path string `mapstructure:"path"`
	Kind string `mapstructure:"kind"`
}

// LoggingConfig selects the logger provider.
type LoggingConfig struct {
	Provider string `mapstructure:"provider"`
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
}

// JournalConfig enables the run journal when DSN is set.
type JournalConfig struct {
	DSN string `mapstructure:"dsn"`
}

// DefaultRecordDirs are the record directories of the site.
func DefaultRecordDirs() []RecordDirConfig {
	return []RecordDirConfig{
		{Path: "src/content/blog-categories", Kind: "Blog Category"},
		{Path: "src/content/categories", Kind: "Product Category"},
	}
}

// DefaultConfig returns the layout of the site's content tree.
func DefaultConfig() Config {
	return Config{
		Root:       ".",
		BlogDir:    "src/content/blog",
		RecordDirs: DefaultRecordDirs(),
		Categories: append([]string(nil), categories.Default...),
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Root) == "" {
		return ErrRootRequired
	}
	if strings.TrimSpace(cfg.BlogDir) == "" {
		return ErrBlogDirRequired
	}
	for i, dir := range cfg.RecordDirs {
		if strings.TrimSpace(dir.Path) == "" || strings.TrimSpace(dir.Kind) == "" {
			return fmt.Errorf("%w: entry %d", ErrRecordDirInvalid, i)
		}
	}
	if _, err := categories.New(cfg.Categories); err != nil {
		return fmt.Errorf("%w: %v", ErrCategoriesInvalid, err)
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}

	if dsn := strings.TrimSpace(cfg.Journal.DSN); dsn != "" {
		if _, err := journal.DetectDriver(dsn); err != nil {
			return fmt.Errorf("%w: %v", ErrJournalDSNInvalid, err)
		}
	}
	return nil
}

// BlogRoot resolves the blog directory against Root.
func (cfg Config) BlogRoot() string {
	return cfg.resolve(cfg.BlogDir)
}

// ResolvedRecordDirs returns the record directories resolved against Root.
func (cfg Config) ResolvedRecordDirs() []RecordDirConfig {
	out := make([]RecordDirConfig, 0, len(cfg.RecordDirs))
	for _, dir := range cfg.RecordDirs {
		out = append(out, RecordDirConfig{Path: cfg.resolve(dir.Path), Kind: dir.Kind})
	}
	return out
}

// AllowList builds the category allow-list.
func (cfg Config) AllowList() (categories.AllowList, error) {
	list, err := categories.New(cfg.Categories)
	if err != nil {
		return categories.AllowList{}, fmt.Errorf("%w: %v", ErrCategoriesInvalid, err)
	}
	return list, nil
}

// LoggingProvider returns the normalised provider name.
func (cfg Config) LoggingProvider() string {
	return normalizeProvider(cfg.Logging.Provider)
}

func (cfg Config) resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.Root, filepath.FromSlash(path))
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
