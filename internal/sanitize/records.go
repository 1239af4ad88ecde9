package sanitize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/markdown"
	"github.com/goliatone/go-contentkit/internal/translit"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

const recordExt = ".json"

func (s *Service) sanitizeRecords(ctx context.Context, logger interfaces.Logger, dir RecordDir) []batch.Outcome {
	step := batch.StepSanitizeRecords
	loader := markdown.NewLoader(markdown.LoaderConfig{
		Root:     dir.Path,
		Pattern:  "*" + recordExt,
		MaxDepth: markdown.RootOnly,
	})

	paths, err := loader.Discover(ctx)
	if err != nil {
		if errors.Is(err, markdown.ErrDirectoryMissing) {
			logging.WithFileContext(logger, dir.Path, dir.Kind, string(step)).Warn("sanitize.directory.missing")
			return []batch.Outcome{
				batch.Skipped(step, dir.Path, batch.ReasonDirectoryMissing, "directory not found").WithKind(dir.Kind),
			}
		}
		logging.WithFileContext(logger, dir.Path, dir.Kind, string(step)).Error("sanitize.directory.failed", "error", err)
		return []batch.Outcome{batch.Failed(step, dir.Path, err).WithKind(dir.Kind)}
	}

	var outcomes []batch.Outcome
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		if !translit.HasDiacritics(filepath.Base(path)) {
			continue
		}
		outcome := s.sanitizeRecord(path).WithKind(dir.Kind)
		logOutcome(logging.WithFileContext(logger, path, dir.Kind, string(step)), outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (s *Service) sanitizeRecord(path string) batch.Outcome {
	step := batch.StepSanitizeRecords

	data, err := os.ReadFile(path)
	if err != nil {
		return batch.Failed(step, path, fmt.Errorf("read %s: %w", filepath.Base(path), err))
	}
	if err := s.schema.Validate(data); err != nil {
		return batch.Failed(step, path, err)
	}
	rec, err := decodeRecord(data)
	if err != nil {
		return batch.Failed(step, path, err)
	}

	source := recordSlugSource(rec, path)
	newSlug := slugFor(source)
	if newSlug == "" {
		return batch.Skipped(step, path, batch.ReasonEmptySlug, fmt.Sprintf("%q folds to an empty slug", source))
	}

	oldSlug := rec.stringField("slug")
	if err := rec.setString("id", newSlug); err != nil {
		return batch.Failed(step, path, err)
	}
	if err := rec.setString("slug", newSlug); err != nil {
		return batch.Failed(step, path, err)
	}

	target := filepath.Join(filepath.Dir(path), newSlug+recordExt)
	if err := checkTarget(path, target); err != nil {
		return batch.Failed(step, path, err)
	}

	detail := fmt.Sprintf("slug %s -> %s", oldSlug, newSlug)
	if s.cfg.DryRun {
		return batch.Fixed(step, path, target).WithDetail(detail)
	}

	encoded, err := rec.encode()
	if err != nil {
		return batch.Failed(step, path, err)
	}
	if err := replaceFile(path, target, encoded); err != nil {
		return batch.Failed(step, path, err)
	}
	return batch.Fixed(step, path, target).WithDetail(detail)
}

// recordSlugSource picks the value the new slug is derived from: slug, then
// id, then the file name without extension.
func recordSlugSource(rec *record, path string) string {
	if value := strings.TrimSpace(rec.stringField("slug")); value != "" {
		return value
	}
	if value := strings.TrimSpace(rec.stringField("id")); value != "" {
		return value
	}
	return strings.TrimSuffix(filepath.Base(path), recordExt)
}

// slugFor folds value through the substitution table and falls back to the
// general slug normalizer when letters outside the table were all dropped.
func slugFor(value string) string {
	if folded := translit.Slugify(value); folded != "" {
		return folded
	}
	if strings.IndexFunc(value, unicode.IsLetter) < 0 {
		return ""
	}
	normalized, err := slug.Normalize(value)
	if err != nil {
		return ""
	}
	return translit.Slugify(normalized)
}

func logOutcome(logger interfaces.Logger, outcome batch.Outcome) {
	switch outcome.Status {
	case batch.StatusFixed:
		logger.Info("sanitize.file.fixed", "target", outcome.Target, "detail", outcome.Detail)
	case batch.StatusSkipped:
		logger.Warn("sanitize.file.skipped", "reason", string(outcome.Reason), "detail", outcome.Detail)
	case batch.StatusFailed:
		logger.Error("sanitize.file.failed", "error", outcome.Err)
	}
}
