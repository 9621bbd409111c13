package tagging

import (
	"strings"
)

// ParseTags splits a raw model response into a clean tag list. Responses are
// expected to be a single comma-separated line but models sometimes emit
// newlines instead, so both are treated as delimiters. Tags are trimmed,
// empties dropped, and duplicates removed case-insensitively with the first
// spelling winning. An empty result means the response was unusable.
func ParseTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	return dedupe(fields)
}

// MergeTags returns the case-insensitive, whitespace-trimmed union of the
// existing and candidate tag sets. Existing tags keep their catalog order and
// spelling; candidates not already present append in response order. This
// keeps dry-run previews stable against the catalog's current state.
func MergeTags(existing, candidates []string) []string {
	return dedupe(append(append([]string{}, existing...), candidates...))
}

// dedupe trims each tag and removes case-insensitive duplicates, preserving
// the order and spelling of first occurrence. "Sci-Fi" and "sci-fi" are the
// same tag.
func dedupe(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	result := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, tag)
	}
	return result
}
