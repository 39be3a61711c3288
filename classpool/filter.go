package classpool

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// NameFilter matches internal class names against a list of wildcard
// patterns. The first pattern that matches decides: a pattern prefixed with
// '!' rejects the name, any other accepts it. Names no pattern matches are
// rejected.
//
// '?' matches one character and '*' any run of characters within a package
// level; "**" crosses package boundaries. Patterns may use '.' or '/' as
// the package separator.
type NameFilter struct {
	entries []filterEntry
}

type filterEntry struct {
	pattern string
	negate  bool
}

// NewNameFilter parses patterns, each of which may itself be a
// comma-separated list.
func NewNameFilter(patterns ...string) (*NameFilter, error) {
	f := &NameFilter{}
	for _, list := range patterns {
		for _, p := range strings.Split(list, ",") {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			entry := filterEntry{}
			if strings.HasPrefix(p, "!") {
				entry.negate = true
				p = p[1:]
			}
			entry.pattern = strings.ReplaceAll(p, ".", "/")
			if !doublestar.ValidatePattern(entry.pattern) {
				return nil, fmt.Errorf("invalid class name pattern %q", p)
			}
			f.entries = append(f.entries, entry)
		}
	}
	return f, nil
}

// MustNameFilter is like NewNameFilter but panics on invalid patterns.
func MustNameFilter(patterns ...string) *NameFilter {
	f, err := NewNameFilter(patterns...)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *NameFilter) Matches(className string) bool {
	if f == nil {
		return false
	}
	for _, e := range f.entries {
		if ok, _ := doublestar.Match(e.pattern, className); ok {
			return !e.negate
		}
	}
	return false
}

func (f *NameFilter) Empty() bool {
	return f == nil || len(f.entries) == 0
}

func (f *NameFilter) String() string {
	if f == nil {
		return ""
	}
	parts := make([]string, len(f.entries))
	for i, e := range f.entries {
		if e.negate {
			parts[i] = "!" + e.pattern
		} else {
			parts[i] = e.pattern
		}
	}
	return strings.Join(parts, ",")
}
