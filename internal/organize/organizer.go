// Package organize moves blog documents into the directory named after their
// `category` metadata field.
//
// A document is moved only when its category is allow-listed and it does not
// already sit directly in <blog root>/<category>. Running the organizer twice
// in a row moves nothing the second time.
package organize

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/categories"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/markdown"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// ErrDestinationExists is returned when a different file already occupies the
// destination path.
var ErrDestinationExists = errors.New("destination file already exists")

const (
	categoryField = "category"
	documentKind  = "Blog"
)

// Config describes the blog tree to organize.
type Config struct {
	BlogRoot   string
	Categories categories.AllowList
	DryRun     bool
}

// Option customises an Organizer.
type Option func(*Organizer)

// WithLogger sets the logger used for per-file entries.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *Organizer) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(o *Organizer) {
		if now != nil {
			o.now = now
		}
	}
}

// WithRunID pins the run identifier.
func WithRunID(id uuid.UUID) Option {
	return func(o *Organizer) {
		o.runID = id
	}
}

// WithRename swaps the function used to move files.
func WithRename(rename func(oldPath, newPath string) error) Option {
	return func(o *Organizer) {
		if rename != nil {
			o.rename = rename
		}
	}
}

// Organizer relocates documents into their category directories.
type Organizer struct {
	cfg    Config
	logger interfaces.Logger
	now    func() time.Time
	runID  uuid.UUID
	rename func(oldPath, newPath string) error
}

// New builds an Organizer. An empty allow-list falls back to the default one.
func New(cfg Config, opts ...Option) (*Organizer, error) {
	if strings.TrimSpace(cfg.BlogRoot) == "" {
		return nil, fmt.Errorf("organize: blog root is required")
	}
	if cfg.Categories.Len() == 0 {
		cfg.Categories = categories.DefaultList()
	}
	o := &Organizer{
		cfg:    cfg,
		logger: logging.NoOp(),
		now:    time.Now,
		rename: os.Rename,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Run ensures the category directories exist, then processes every document
// below the blog root.
func (o *Organizer) Run(ctx context.Context) (*batch.Report, error) {
	report := batch.NewReport(o.runID, batch.StepOrganize, o.now())
	report.DryRun = o.cfg.DryRun
	logger := logging.WithRunID(o.logger, report.RunID.String())

	if err := o.ensureDirectories(logger); err != nil {
		return report, err
	}

	loader := markdown.NewLoader(markdown.LoaderConfig{
		Root:    o.cfg.BlogRoot,
		Pattern: "*.md",
	})
	paths, err := loader.Discover(ctx)
	if errors.Is(err, markdown.ErrDirectoryMissing) && o.cfg.DryRun {
		logger.Warn("organize.directory.missing", "directory", o.cfg.BlogRoot)
		report.Add(batch.Skipped(batch.StepOrganize, o.cfg.BlogRoot, batch.ReasonDirectoryMissing, "directory not found"), o.now())
		report.Finish(o.now())
		return report, nil
	}
	if err != nil {
		return report, fmt.Errorf("organize: discover documents: %w", err)
	}
	logger.Info("organize.documents.found", "count", len(paths))

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome := o.organize(path).WithKind(documentKind)
		o.logOutcome(logging.WithFileContext(logger, path, documentKind, string(batch.StepOrganize)), outcome)
		report.Add(outcome, o.now())
	}

	report.Finish(o.now())
	logging.WithFields(logger, report.Summary()).Info("organize.run.completed")
	return report, nil
}

// ensureDirectories creates every allow-listed category directory. In dry-run
// mode nothing is created.
func (o *Organizer) ensureDirectories(logger interfaces.Logger) error {
	for _, name := range o.cfg.Categories.Names() {
		dir := filepath.Join(o.cfg.BlogRoot, name)
		if _, err := os.Stat(dir); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("organize: stat %s: %w", dir, err)
		}
		if o.cfg.DryRun {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("organize: create %s: %w", dir, err)
		}
		logger.Info("organize.directory.created", "directory", name)
	}
	return nil
}

// organize decides the fate of a single document.
func (o *Organizer) organize(path string) batch.Outcome {
	step := batch.StepOrganize

	data, err := os.ReadFile(path)
	if err != nil {
		return batch.Failed(step, path, fmt.Errorf("read %s: %w", filepath.Base(path), err))
	}

	fields, ok := markdown.Parse(data)
	if !ok {
		return batch.Skipped(step, path, batch.ReasonNoCategory, "no front matter")
	}
	category, ok := fields.Get(categoryField)
	if !ok || category == "" {
		return batch.Skipped(step, path, batch.ReasonNoCategory, "no category field")
	}
	if !o.cfg.Categories.Contains(category) {
		return batch.Skipped(step, path, batch.ReasonInvalidCategory, category)
	}

	name := filepath.Base(path)
	dir := filepath.Join(o.cfg.BlogRoot, category)
	if filepath.Clean(filepath.Dir(path)) == dir {
		return batch.Skipped(step, path, batch.ReasonAlreadyPlaced, category)
	}

	target := filepath.Join(dir, name)
	if _, err := os.Stat(target); err == nil {
		return batch.Failed(step, path, fmt.Errorf("%w: %s/%s", ErrDestinationExists, category, name))
	}
	if o.cfg.DryRun {
		return batch.Moved(step, path, target).WithDetail(category)
	}
	if err := o.rename(path, target); err != nil {
		return batch.Failed(step, path, fmt.Errorf("move %s: %w", name, err))
	}
	return batch.Moved(step, path, target).WithDetail(category)
}

func (o *Organizer) logOutcome(logger interfaces.Logger, outcome batch.Outcome) {
	switch outcome.Status {
	case batch.StatusMoved:
		logger.Info("organize.file.moved", "target", outcome.Target, "category", outcome.Detail)
	case batch.StatusSkipped:
		if outcome.Reason == batch.ReasonAlreadyPlaced {
			logger.Debug("organize.file.in_place")
			return
		}
		logger.Warn("organize.file.skipped", "reason", string(outcome.Reason), "detail", outcome.Detail)
	case batch.StatusFailed:
		logger.Error("organize.file.failed", "error", outcome.Err)
	}
}
