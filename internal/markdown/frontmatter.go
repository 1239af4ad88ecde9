package markdown

import (
	"regexp"
	"strings"
	"sync"
)

var (
	blockPattern = regexp.MustCompile(`\A---\r?\n([\s\S]*?)\r?\n---`)
	linePattern  = regexp.MustCompile(`^(\w+):\s*"?([^"]*)"?$`)
	lineSplitter = regexp.MustCompile(`\r?\n`)
)

// Block is the metadata block found at the top of a document together with
// the body that follows the closing delimiter.
type Block struct {
	// Raw holds the text between the delimiter lines, without the delimiters.
	Raw string
	// Body is everything after the closing delimiter, byte for byte.
	Body []byte
}

// Fields is the flat key/value view of a metadata block.
type Fields map[string]string

// Get returns the trimmed value stored under key.
func (f Fields) Get(key string) (string, bool) {
	if f == nil {
		return "", false
	}
	value, ok := f[key]
	if !ok {
		return "", false
	}
	return strings.TrimSpace(value), true
}

// Extract locates the metadata block. ok is false when the document does not
// open with a delimited block.
func Extract(source []byte) (Block, bool) {
	loc := blockPattern.FindSubmatchIndex(source)
	if loc == nil {
		return Block{}, false
	}
	return Block{
		Raw:  string(source[loc[2]:loc[3]]),
		Body: source[loc[1]:],
	}, true
}

// Parse extracts the flat key/value pairs of the metadata block. Lines that
// do not follow the `key: value` or `key: "value"` grammar are ignored. ok is
// false when no block exists.
func Parse(source []byte) (Fields, bool) {
	block, ok := Extract(source)
	if !ok {
		return nil, false
	}
	return block.Fields(), true
}

// Fields parses the block lines. Later keys win over earlier duplicates.
func (b Block) Fields() Fields {
	fields := Fields{}
	for _, line := range lineSplitter.Split(b.Raw, -1) {
		match := linePattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		fields[match[1]] = match[2]
	}
	return fields
}

// RewriteField replaces the first `key:` line of the block with
// `key: fn(value)`, where value is the raw value stripped of quotes and
// surrounding space. It reports the old and new values and whether a line was
// rewritten. Missing keys are left missing, and a rewrite that would produce an
// empty value keeps the original line.
func (b Block) RewriteField(key string, fn func(string) string) (Block, FieldChange, bool) {
	pattern := fieldPattern(key)
	loc := pattern.FindStringSubmatchIndex(b.Raw)
	if loc == nil {
		return b, FieldChange{}, false
	}

	old := strings.TrimSpace(strings.NewReplacer(`"`, "", `'`, "").Replace(b.Raw[loc[2]:loc[3]]))
	updated := fn(old)
	if updated == "" {
		return b, FieldChange{Key: key, Old: old}, false
	}

	line := key + ": " + updated
	b.Raw = b.Raw[:loc[0]] + line + b.Raw[loc[1]:]
	return b, FieldChange{Key: key, Old: old, New: updated}, true
}

// Assemble renders the block back in front of the untouched body.
func (b Block) Assemble() []byte {
	out := make([]byte, 0, len(b.Raw)+len(b.Body)+8)
	out = append(out, "---\n"...)
	out = append(out, b.Raw...)
	out = append(out, "\n---"...)
	out = append(out, b.Body...)
	return out
}

// FieldChange records a metadata value rewritten by RewriteField.
type FieldChange struct {
	Key string
	Old string
	New string
}

// Changed reports whether the rewrite altered the value.
func (c FieldChange) Changed() bool {
	return c.New != "" && c.Old != c.New
}

// fieldPatterns caches compiled line patterns by key.
var fieldPatterns sync.Map

func fieldPattern(key string) *regexp.Regexp {
	if cached, ok := fieldPatterns.Load(key); ok {
		return cached.(*regexp.Regexp)
	}
	compiled := regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `:[ \t]*([^\r\n]+)`)
	actual, _ := fieldPatterns.LoadOrStore(key, compiled)
	return actual.(*regexp.Regexp)
}
