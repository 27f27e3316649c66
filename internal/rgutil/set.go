// Package rgutil holds small data-structure helpers shared across redhorse's
// packages: an ordered string set used for FIRST sets and lookahead sets, and
// formatting helpers for human-readable error messages.
package rgutil

import (
	"sort"
	"strings"
)

// StringSet is a set of strings with deterministic iteration via Ordered.
// Lookahead sets and FIRST sets are built from it.
type StringSet map[string]struct{}

// NewStringSet returns an empty StringSet, optionally seeded with of.
func NewStringSet(of ...string) StringSet {
	s := make(StringSet, len(of))
	for _, v := range of {
		s.Add(v)
	}
	return s
}

// Add adds v to the set. Has no effect if v is already present.
func (s StringSet) Add(v string) {
	s[v] = struct{}{}
}

// AddAll adds every member of o to s.
func (s StringSet) AddAll(o StringSet) bool {
	var changed bool
	for v := range o {
		if !s.Has(v) {
			s.Add(v)
			changed = true
		}
	}
	return changed
}

// Has returns whether v is a member of s.
func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Len returns the number of members of s.
func (s StringSet) Len() int {
	return len(s)
}

// Copy returns a shallow copy of s.
func (s StringSet) Copy() StringSet {
	newS := make(StringSet, len(s))
	for v := range s {
		newS.Add(v)
	}
	return newS
}

// Ordered returns the members of s sorted alphabetically. Used wherever
// output needs to be deterministic, e.g. debug stringification.
func (s StringSet) Ordered() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Equal returns whether s and o contain exactly the same members.
func (s StringSet) Equal(o StringSet) bool {
	if len(s) != len(o) {
		return false
	}
	for v := range s {
		if !o.Has(v) {
			return false
		}
	}
	return true
}

// String renders s as a braced, comma-separated, alphabetized list.
func (s StringSet) String() string {
	var sb strings.Builder
	sb.WriteRune('{')
	sb.WriteString(strings.Join(s.Ordered(), ", "))
	sb.WriteRune('}')
	return sb.String()
}

// MakeTextList joins items into an English list with an Oxford comma,
// e.g. ["a","b","c"] -> "a, b, and c".
func MakeTextList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return items[0] + " and " + items[1]
	default:
		cp := make([]string, len(items))
		copy(cp, items)
		cp[len(cp)-1] = "and " + cp[len(cp)-1]
		return strings.Join(cp, ", ")
	}
}

// ArticleFor returns "a" or "an" depending on whether s begins with a vowel
// sound, for use composing "expected a FOO" style messages.
func ArticleFor(s string, capital bool) string {
	article := "a"
	if len(s) > 0 && strings.ContainsRune("aeiouAEIOU", rune(s[0])) {
		article = "an"
	}
	if capital {
		return strings.ToUpper(article[:1]) + article[1:]
	}
	return article
}
