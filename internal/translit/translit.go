// Package translit folds Vietnamese identifiers into ASCII slugs.
//
// Slugify is pure and idempotent: Slugify(Slugify(s)) == Slugify(s). Its output
// either matches ^[a-z0-9]+(-[a-z0-9]+)*$ or is empty; callers decide what an
// empty slug means for them.
package translit

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Slugify transliterates s through the substitution table, lower-cases it,
// turns whitespace runs into a single hyphen and drops anything outside
// [a-z0-9-]. Hyphen runs are collapsed and edge hyphens trimmed.
func Slugify(s string) string {
	if s == "" {
		return ""
	}

	// Filenames coming from some filesystems are decomposed (NFD); compose
	// them so precomposed table entries match.
	composed := norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(composed))

	pendingHyphen := false
	for _, r := range composed {
		if ascii, ok := table[r]; ok {
			r = ascii
		}
		r = unicode.ToLower(r)

		switch {
		case unicode.IsSpace(r), r == '-':
			pendingHyphen = true
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
		}
	}
	return b.String()
}

// HasDiacritics reports whether s contains at least one character from the
// substitution table.
func HasDiacritics(s string) bool {
	for _, r := range norm.NFC.String(s) {
		if _, ok := table[r]; ok {
			return true
		}
	}
	return false
}

// IsSlug reports whether s is already a canonical ASCII slug.
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}
