package buildcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-contentkit/internal/sanitize"
	"github.com/goliatone/go-contentkit/internal/translit"
)

const (
	sanitizeSlugsMessageType   = "contentkit.build.sanitize_slugs"
	organizeBlogMessageType    = "contentkit.build.organize_blog"
	verifyContentMessageType   = "contentkit.build.verify_content"
	errCodeInputRequired       = "contentkit.build.input_required"
	errCodeBlogRootRequired    = "contentkit.build.blog_root_required"
	errCodeRecordDirIncomplete = "contentkit.build.record_dir_incomplete"
	errCodeCategoryInvalid     = "contentkit.build.category_invalid"
)

// SanitizeSlugsCommand folds diacritics out of record and document file
// names below the given directories.
type SanitizeSlugsCommand struct {
	// RecordDirs lists the JSON category record directories, in processing order.
	RecordDirs []sanitize.RecordDir `json:"record_dirs,omitempty"`
	// BlogRoot is the blog document tree.
	BlogRoot string `json:"blog_root,omitempty"`
	// DryRun reports planned renames without touching the filesystem.
	DryRun bool `json:"dry_run,omitempty"`
	// RunID pins the run identifier; a new one is generated when nil.
	RunID uuid.UUID `json:"run_id,omitempty"`
}

// Type implements command.Message.
func (SanitizeSlugsCommand) Type() string { return sanitizeSlugsMessageType }

// Validate requires at least one directory and complete record entries.
func (cmd SanitizeSlugsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlogRoot, validation.By(func(any) error {
			if strings.TrimSpace(cmd.BlogRoot) == "" && len(cmd.RecordDirs) == 0 {
				return validation.NewError(errCodeInputRequired, "a blog root or record directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.RecordDirs, validation.By(validateRecordDirs)),
	)
}

// OrganizeBlogCommand moves blog documents into their category directories.
type OrganizeBlogCommand struct {
	// BlogRoot is the blog document tree.
	BlogRoot string `json:"blog_root"`
	// Categories overrides the default allow-list when non-empty.
	Categories []string `json:"categories,omitempty"`
	// DryRun reports planned moves without touching the filesystem.
	DryRun bool `json:"dry_run,omitempty"`
	// RunID pins the run identifier; a new one is generated when nil.
	RunID uuid.UUID `json:"run_id,omitempty"`
}

// Type implements command.Message.
func (OrganizeBlogCommand) Type() string { return organizeBlogMessageType }

// Validate requires a blog root and slug-shaped categories.
func (cmd OrganizeBlogCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlogRoot, validation.By(requireBlogRoot)),
		validation.Field(&cmd.Categories, validation.Each(validation.By(validateCategory))),
	)
}

// VerifyContentCommand audits the content tree without modifying it.
type VerifyContentCommand struct {
	RecordDirs []sanitize.RecordDir `json:"record_dirs,omitempty"`
	BlogRoot   string               `json:"blog_root,omitempty"`
	Categories []string             `json:"categories,omitempty"`
	RunID      uuid.UUID            `json:"run_id,omitempty"`
}

// Type implements command.Message.
func (VerifyContentCommand) Type() string { return verifyContentMessageType }

// Validate requires at least one directory.
func (cmd VerifyContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.BlogRoot, validation.By(func(any) error {
			if strings.TrimSpace(cmd.BlogRoot) == "" && len(cmd.RecordDirs) == 0 {
				return validation.NewError(errCodeInputRequired, "a blog root or record directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.RecordDirs, validation.By(validateRecordDirs)),
		validation.Field(&cmd.Categories, validation.Each(validation.By(validateCategory))),
	)
}

func requireBlogRoot(value any) error {
	root, _ := value.(string)
	if strings.TrimSpace(root) == "" {
		return validation.NewError(errCodeBlogRootRequired, "blog root is required")
	}
	return nil
}

func validateRecordDirs(value any) error {
	dirs, _ := value.([]sanitize.RecordDir)
	for _, dir := range dirs {
		if strings.TrimSpace(dir.Path) == "" || strings.TrimSpace(dir.Kind) == "" {
			return validation.NewError(errCodeRecordDirIncomplete, "record directories need a path and a kind")
		}
	}
	return nil
}

func validateCategory(value any) error {
	name, _ := value.(string)
	if !translit.IsSlug(name) {
		return validation.NewError(errCodeCategoryInvalid, "category must be a lowercase slug")
	}
	return nil
}
