package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDirectoryMissing is returned when the directory to scan does not exist.
var ErrDirectoryMissing = errors.New("markdown loader: directory not found")

// RootOnly limits discovery to the files directly inside the root.
const RootOnly = -1

// LoaderConfig configures how files are discovered below a root directory.
type LoaderConfig struct {
	// Root is the directory the walk starts from.
	Root string
	// Pattern limits discovered files to those whose base name matches the glob (defaults to "*.md").
	Pattern string
	// MaxDepth bounds how many directory levels below Root are visited. Zero
	// means unlimited, RootOnly restricts discovery to Root itself.
	MaxDepth int
}

// Loader discovers content files on the local filesystem.
type Loader struct {
	root     string
	pattern  string
	maxDepth int
}

// NewLoader constructs a Loader for the supplied configuration.
func NewLoader(cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	return &Loader{
		root:     filepath.Clean(cfg.Root),
		pattern:  pattern,
		maxDepth: cfg.MaxDepth,
	}
}

// Root returns the cleaned root directory.
func (l *Loader) Root() string {
	return l.root
}

// Discover walks the root and returns the matching file paths joined with the
// root, sorted lexically. A missing root yields ErrDirectoryMissing.
func (l *Loader) Discover(ctx context.Context) ([]string, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	info, err := os.Stat(l.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDirectoryMissing, l.root)
		}
		return nil, fmt.Errorf("markdown loader stat %s: %w", l.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown loader: %s is not a directory", l.root)
	}

	var paths []string
	walkErr := fs.WalkDir(os.DirFS(l.root), ".", func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if d.IsDir() {
			if path != "." && !l.withinDepth(path) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !l.matches(d.Name()) {
			return nil
		}
		paths = append(paths, filepath.Join(l.root, filepath.FromSlash(path)))
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(paths)
	return paths, nil
}

// withinDepth reports whether files inside dir (slash separated, relative to
// the root) may be visited.
func (l *Loader) withinDepth(dir string) bool {
	switch {
	case l.maxDepth == 0:
		return true
	case l.maxDepth < 0:
		return false
	}
	return strings.Count(dir, "/")+1 <= l.maxDepth
}

func (l *Loader) matches(name string) bool {
	match, err := filepath.Match(l.pattern, name)
	if err != nil {
		return false
	}
	return match
}
