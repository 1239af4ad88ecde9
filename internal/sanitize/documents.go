package sanitize

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-contentkit/internal/batch"
	"github.com/goliatone/go-contentkit/internal/logging"
	"github.com/goliatone/go-contentkit/internal/markdown"
	"github.com/goliatone/go-contentkit/internal/translit"
	"github.com/goliatone/go-contentkit/pkg/interfaces"
)

const (
	documentExt  = ".md"
	documentKind = "Blog"
)

// documentFields are the metadata keys rewritten to their slug form.
var documentFields = []string{"slug", "id", "category"}

func (s *Service) sanitizeDocuments(ctx context.Context, logger interfaces.Logger, root string) []batch.Outcome {
	step := batch.StepSanitizeDocuments
	loader := markdown.NewLoader(markdown.LoaderConfig{
		Root:     root,
		Pattern:  "*" + documentExt,
		MaxDepth: 1,
	})

	paths, err := loader.Discover(ctx)
	if err != nil {
		if errors.Is(err, markdown.ErrDirectoryMissing) {
			logging.WithFileContext(logger, root, documentKind, string(step)).Warn("sanitize.directory.missing")
			return []batch.Outcome{
				batch.Skipped(step, root, batch.ReasonDirectoryMissing, "directory not found").WithKind(documentKind),
			}
		}
		logging.WithFileContext(logger, root, documentKind, string(step)).Error("sanitize.directory.failed", "error", err)
		return []batch.Outcome{batch.Failed(step, root, err).WithKind(documentKind)}
	}

	var outcomes []batch.Outcome
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		if !translit.HasDiacritics(filepath.Base(path)) {
			continue
		}
		outcome := s.sanitizeDocument(path).WithKind(documentKind)
		logOutcome(logging.WithFileContext(logger, path, documentKind, string(step)), outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (s *Service) sanitizeDocument(path string) batch.Outcome {
	step := batch.StepSanitizeDocuments

	data, err := os.ReadFile(path)
	if err != nil {
		return batch.Failed(step, path, fmt.Errorf("read %s: %w", filepath.Base(path), err))
	}

	block, ok := markdown.Extract(data)
	if !ok {
		return batch.Skipped(step, path, batch.ReasonNoFrontMatter, "no front matter block")
	}

	base := strings.TrimSuffix(filepath.Base(path), documentExt)
	newBase := translit.Slugify(base)
	if newBase == "" {
		return batch.Skipped(step, path, batch.ReasonEmptySlug, fmt.Sprintf("%q folds to an empty slug", base))
	}

	var changes []string
	for _, key := range documentFields {
		updated, change, _ := block.RewriteField(key, translit.Slugify)
		block = updated
		if change.Changed() {
			changes = append(changes, fmt.Sprintf("%s %s -> %s", change.Key, change.Old, change.New))
		}
	}

	target := filepath.Join(filepath.Dir(path), newBase+documentExt)
	if err := checkTarget(path, target); err != nil {
		return batch.Failed(step, path, err)
	}

	detail := strings.Join(changes, ", ")
	if s.cfg.DryRun {
		return batch.Fixed(step, path, target).WithDetail(detail)
	}
	if err := replaceFile(path, target, block.Assemble()); err != nil {
		return batch.Failed(step, path, err)
	}
	return batch.Fixed(step, path, target).WithDetail(detail)
}
