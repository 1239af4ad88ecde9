// Package verify audits a content tree without modifying it. It reports every
// file name, identifier, and category placement that the sanitize and
// organize steps would still need to fix.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goliatone/go-slug"
	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/categories"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/markdown"
	"github.com/goliatone/go-contentkit/internal/sanitize"
	"github.com/goliatone/go-contentkit/internal/translit"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

const (
	documentExt  = ".md"
	recordExt    = ".json"
	documentKind = "Blog"
)

// identifierFields must hold slugs whenever they are present.
var identifierFields = []string{"slug", "id"}

// Config lists the trees to audit.
type Config struct {
	BlogRoot   string
	RecordDirs []sanitize.RecordDir
	Categories categories.AllowList
}

// Option customises a Checker.
type Option func(*Checker)

// WithLogger sets the logger used for violations.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(c *Checker) {
		if now != nil {
			c.now = now
		}
	}
}

// WithRunID pins the run identifier.
func WithRunID(id uuid.UUID) Option {
	return func(c *Checker) {
		c.runID = id
	}
}

// Checker runs the read-only audit.
type Checker struct {
	cfg    Config
	schema *sanitize.RecordSchema
	logger interfaces.Logger
	now    func() time.Time
	runID  uuid.UUID
}

// New builds a Checker for cfg.
func New(cfg Config, opts ...Option) (*Checker, error) {
	if strings.TrimSpace(cfg.BlogRoot) == "" && len(cfg.RecordDirs) == 0 {
		return nil, fmt.Errorf("verify: no record directories or blog root configured")
	}
	if cfg.Categories.Len() == 0 {
		cfg.Categories = categories.DefaultList()
	}
	schema, err := sanitize.NewRecordSchema()
	if err != nil {
		return nil, err
	}
	c := &Checker{
		cfg:    cfg,
		schema: schema,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Run audits the record directories, then the blog tree.
func (c *Checker) Run(ctx context.Context) (*batch.Report, error) {
	report := batch.NewReport(c.runID, batch.StepVerify, c.now())
	logger := logging.WithRunID(c.logger, report.RunID.String())

	for _, dir := range c.cfg.RecordDirs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		for _, outcome := range c.checkRecords(ctx, logger, dir) {
			report.Add(outcome, c.now())
		}
	}
	if strings.TrimSpace(c.cfg.BlogRoot) != "" {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		for _, outcome := range c.checkDocuments(ctx, logger) {
			report.Add(outcome, c.now())
		}
	}
	if err := ctx.Err(); err != nil {
		return report, err
	}

	report.Finish(c.now())
	logging.WithFields(logger, report.Summary()).Info("verify.run.completed")
	return report, nil
}

// Clean reports whether a verify report found nothing to fix.
func Clean(report *batch.Report) bool {
	return report.Count(batch.StatusViolation) == 0 && report.Count(batch.StatusFailed) == 0
}

func (c *Checker) checkRecords(ctx context.Context, logger interfaces.Logger, dir sanitize.RecordDir) []batch.Outcome {
	loader := markdown.NewLoader(markdown.LoaderConfig{
		Root:     dir.Path,
		Pattern:  "*" + recordExt,
		MaxDepth: markdown.RootOnly,
	})
	paths, err := loader.Discover(ctx)
	if err != nil {
		return c.discoverFailure(logger, dir.Path, dir.Kind, err)
	}

	var outcomes []batch.Outcome
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		found := c.checkRecord(path)
		outcomes = append(outcomes, c.record(logger, path, dir.Kind, found)...)
	}
	return outcomes
}

func (c *Checker) checkRecord(path string) []batch.Outcome {
	step := batch.StepVerify
	var found []batch.Outcome

	base := strings.TrimSuffix(filepath.Base(path), recordExt)
	if !translit.IsSlug(base) {
		found = append(found, batch.Violation(step, path, batch.ReasonNonASCIIName, suggestion(base)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return append(found, batch.Failed(step, path, fmt.Errorf("read %s: %w", filepath.Base(path), err)))
	}
	if err := c.schema.Validate(data); err != nil {
		return append(found, batch.Violation(step, path, batch.ReasonInvalidFrontMatter, err.Error()))
	}

	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return append(found, batch.Violation(step, path, batch.ReasonInvalidFrontMatter, err.Error()))
	}
	for _, key := range identifierFields {
		value, _ := fields[key].(string)
		if value != "" && !translit.IsSlug(value) {
			found = append(found, batch.Violation(step, path, batch.ReasonNonASCIIField, fieldDetail(key, value)))
		}
	}
	return found
}

func (c *Checker) checkDocuments(ctx context.Context, logger interfaces.Logger) []batch.Outcome {
	root := c.cfg.BlogRoot
	loader := markdown.NewLoader(markdown.LoaderConfig{
		Root:    root,
		Pattern: "*" + documentExt,
	})
	paths, err := loader.Discover(ctx)
	if err != nil {
		return c.discoverFailure(logger, root, documentKind, err)
	}

	var outcomes []batch.Outcome
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		found := c.checkDocument(path)
		outcomes = append(outcomes, c.record(logger, path, documentKind, found)...)
	}
	return outcomes
}

func (c *Checker) checkDocument(path string) []batch.Outcome {
	step := batch.StepVerify
	var found []batch.Outcome

	base := strings.TrimSuffix(filepath.Base(path), documentExt)
	if !translit.IsSlug(base) {
		found = append(found, batch.Violation(step, path, batch.ReasonNonASCIIName, suggestion(base)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return append(found, batch.Failed(step, path, fmt.Errorf("read %s: %w", filepath.Base(path), err)))
	}
	meta, _, err := markdown.DecodeMetadata(data)
	if err != nil {
		return append(found, batch.Violation(step, path, batch.ReasonInvalidFrontMatter, err.Error()))
	}

	values := map[string]string{"slug": meta.Slug, "id": meta.ID}
	for _, key := range identifierFields {
		if value := strings.TrimSpace(values[key]); value != "" && !translit.IsSlug(value) {
			found = append(found, batch.Violation(step, path, batch.ReasonNonASCIIField, fieldDetail(key, value)))
		}
	}

	category := strings.TrimSpace(meta.Category)
	switch {
	case category == "":
		found = append(found, batch.Violation(step, path, batch.ReasonNoCategory, "no category field"))
	case !c.cfg.Categories.Contains(category):
		found = append(found, batch.Violation(step, path, batch.ReasonInvalidCategory, category))
	case filepath.Clean(filepath.Dir(path)) != filepath.Join(c.cfg.BlogRoot, category):
		found = append(found, batch.Violation(step, path, batch.ReasonMisplaced, "expected in "+category))
	}
	return found
}

func (c *Checker) discoverFailure(logger interfaces.Logger, root, kind string, err error) []batch.Outcome {
	step := batch.StepVerify
	scoped := logging.WithFileContext(logger, root, kind, string(step))
	if errors.Is(err, markdown.ErrDirectoryMissing) {
		scoped.Warn("verify.directory.missing")
		return []batch.Outcome{batch.Skipped(step, root, batch.ReasonDirectoryMissing, "directory not found").WithKind(kind)}
	}
	scoped.Error("verify.directory.failed", "error", err)
	return []batch.Outcome{batch.Failed(step, root, err).WithKind(kind)}
}

func (c *Checker) record(logger interfaces.Logger, path, kind string, found []batch.Outcome) []batch.Outcome {
	scoped := logging.WithFileContext(logger, path, kind, string(batch.StepVerify))
	for i := range found {
		found[i] = found[i].WithKind(kind)
		switch found[i].Status {
		case batch.StatusViolation:
			scoped.Warn("verify.file.violation", "reason", string(found[i].Reason), "detail", found[i].Detail)
		case batch.StatusFailed:
			scoped.Error("verify.file.failed", "error", found[i].Err)
		}
	}
	return found
}

func fieldDetail(key, value string) string {
	detail := fmt.Sprintf("%s %q", key, value)
	if s := suggestion(value); s != "" {
		detail += ", " + s
	}
	return detail
}

// suggestion proposes the slug a fix would produce. Values the substitution
// table cannot fold are run through the general slug normalizer instead.
func suggestion(value string) string {
	if folded := translit.Slugify(value); folded != "" {
		return "suggest " + folded
	}
	normalized, err := slug.Normalize(value)
	if err != nil || normalized == "" || !slug.IsValid(normalized) {
		return ""
	}
	return "suggest " + normalized
}
