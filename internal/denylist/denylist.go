// Package denylist rejects comment text containing configured disallowed
// words. Matching is substring-based and case-insensitive on both sides;
// there is no normalization beyond lower-casing, so lookalike spellings are
// not caught. Moderation beyond this static list is out of scope.
package denylist

import "strings"

// Filter holds the lower-cased word list, built once at startup.
type Filter struct {
	words []string
}

// New builds a filter from the configured word list. Empty entries are
// dropped.
func New(words []string) *Filter {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			lowered = append(lowered, w)
		}
	}
	return &Filter{words: lowered}
}

// Contains reports whether text contains any disallowed word as a
// case-insensitive substring.
func (f *Filter) Contains(text string) bool {
	lowered := strings.ToLower(text)
	for _, w := range f.words {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
