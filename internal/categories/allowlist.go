// Package categories holds the blog category allow-list. Every name is both
// the value of a document's `category` field and the directory that document
// lives in below the blog root.
package categories

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-contentkit/internal/translit"
)

// Default is the allow-list used when no configuration overrides it.
var Default = []string{
	"tin-tuc-nganh-van-tai",
	"danh-gia-xe",
	"kinh-nghiem-lai-xe",
	"bao-duong",
	"tu-van-mua-xe",
	"cong-nghe-va-doi-moi",
	"luat-giao-thong",
}

// AllowList is an immutable set of valid category names. Membership is an
// exact string match.
type AllowList struct {
	names []string
	index map[string]struct{}
}

// New builds an allow-list from names, rejecting empty lists and names that
// are not slugs. Duplicates are collapsed, keeping first-seen order.
func New(names []string) (AllowList, error) {
	if len(names) == 0 {
		return AllowList{}, fmt.Errorf("categories: allow-list is empty")
	}
	list := AllowList{
		names: make([]string, 0, len(names)),
		index: make(map[string]struct{}, len(names)),
	}
	for _, name := range names {
		if !translit.IsSlug(name) {
			return AllowList{}, fmt.Errorf("categories: %q is not a valid category slug", name)
		}
		if _, seen := list.index[name]; seen {
			continue
		}
		list.index[name] = struct{}{}
		list.names = append(list.names, name)
	}
	return list, nil
}

// MustNew is New for package-level values; it panics on invalid input.
func MustNew(names []string) AllowList {
	list, err := New(names)
	if err != nil {
		panic(err)
	}
	return list
}

// DefaultList returns the built-in allow-list.
func DefaultList() AllowList {
	return MustNew(Default)
}

// Contains reports whether name is allow-listed.
func (l AllowList) Contains(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Names returns a copy of the allow-listed names in declaration order.
func (l AllowList) Names() []string {
	return append([]string(nil), l.names...)
}

// Len reports how many categories are allow-listed.
func (l AllowList) Len() int {
	return len(l.names)
}

// String renders the list for log fields.
func (l AllowList) String() string {
	return strings.Join(l.names, ",")
}
