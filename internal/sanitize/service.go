// Package sanitize folds Vietnamese file names and identifiers in category
// records and blog documents into ASCII slugs, renaming files in place.
//
// Only files whose name contains a diacritic are touched. Every file yields a
// batch.Outcome; a failure on one file never stops the run.
package sanitize

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

// RecordDir is a directory of JSON category records and the label used when
// reporting on it.
type RecordDir struct {
	Path string
	Kind string
}

// Config describes where the sanitizer looks for content.
type Config struct {
	RecordDirs []RecordDir
	BlogRoot   string
	DryRun     bool
}

// Option customises a Service.
type Option func(*Service)

// WithLogger sets the logger used for per-file entries.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used to stamp outcomes.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithRunID pins the run identifier instead of generating one per run.
func WithRunID(id uuid.UUID) Option {
	return func(s *Service) {
		s.runID = id
	}
}

// Service runs the record and document sanitizers.
type Service struct {
	cfg    Config
	schema *RecordSchema
	logger interfaces.Logger
	now    func() time.Time
	runID  uuid.UUID
}

// NewService builds a sanitizer for cfg.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	if strings.TrimSpace(cfg.BlogRoot) == "" && len(cfg.RecordDirs) == 0 {
		return nil, fmt.Errorf("sanitize: no record directories or blog root configured")
	}
	schema, err := NewRecordSchema()
	if err != nil {
		return nil, err
	}
	s := &Service{
		cfg:    cfg,
		schema: schema,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Run sanitizes every record directory in order, then the blog documents,
// and returns the aggregated report.
func (s *Service) Run(ctx context.Context) (*batch.Report, error) {
	report := batch.NewReport(s.runID, batch.StepSanitize, s.now())
	report.DryRun = s.cfg.DryRun
	logger := logging.WithRunID(s.logger, report.RunID.String())

	for _, dir := range s.cfg.RecordDirs {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		for _, outcome := range s.sanitizeRecords(ctx, logger, dir) {
			report.Add(outcome, s.now())
		}
	}

	if strings.TrimSpace(s.cfg.BlogRoot) != "" {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		for _, outcome := range s.sanitizeDocuments(ctx, logger, s.cfg.BlogRoot) {
			report.Add(outcome, s.now())
		}
	}

	report.Finish(s.now())
	logging.WithFields(logger, report.Summary()).Info("sanitize.run.completed")
	return report, nil
}

// SanitizeRecords processes a single record directory.
func (s *Service) SanitizeRecords(ctx context.Context, dir RecordDir) []batch.Outcome {
	return s.sanitizeRecords(ctx, s.logger, dir)
}

// SanitizeDocuments processes the blog root.
func (s *Service) SanitizeDocuments(ctx context.Context, blogRoot string) []batch.Outcome {
	return s.sanitizeDocuments(ctx, s.logger, blogRoot)
}
