// Package markdown reads and rewrites the metadata block at the top of content
// documents and discovers document files below a content root.
//
// The block grammar is deliberately small: a `---` line, flat `key: value` or
// `key: "value"` lines, and a closing `---` line. Extract and Parse return a
// tagged result (ok == false when no block exists) instead of an error, and
// lines outside the grammar are ignored. DecodeMetadata offers the full YAML
// view through adrg/frontmatter for validation.
package markdown
