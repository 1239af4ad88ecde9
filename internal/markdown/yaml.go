package markdown

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"
)

// Metadata is the typed view the site generator reads from a document's
// front matter. Unknown keys land in Custom.
type Metadata struct {
	ID       string         `yaml:"id"`
	Slug     string         `yaml:"slug"`
	Title    string         `yaml:"title"`
	Category string         `yaml:"category"`
	Draft    bool           `yaml:"draft"`
	Custom   map[string]any `yaml:",inline"`
}

// DecodeMetadata decodes the front matter with a full YAML reader. Documents
// without front matter return an empty Metadata and the source as body.
func DecodeMetadata(source []byte) (Metadata, []byte, error) {
	var meta Metadata

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return Metadata{}, nil, fmt.Errorf("decode front matter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}
