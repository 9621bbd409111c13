package tagging

import (
	"reflect"
	"testing"
)

func TestParseTags(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "single comma-separated line",
			raw:      "Fantasy,Epic Fantasy,Magic",
			expected: []string{"Fantasy", "Epic Fantasy", "Magic"},
		},
		{
			name:     "trims whitespace around tags",
			raw:      "  Fantasy , Magic ,Quest ",
			expected: []string{"Fantasy", "Magic", "Quest"},
		},
		{
			name:     "newlines treated as delimiters",
			raw:      "Fantasy\nMagic\r\nQuest",
			expected: []string{"Fantasy", "Magic", "Quest"},
		},
		{
			name:     "drops empty entries",
			raw:      "Fantasy,,Magic,   ,",
			expected: []string{"Fantasy", "Magic"},
		},
		{
			name:     "case-insensitive dedup keeps first spelling",
			raw:      "Sci-Fi,sci-fi,SCI-FI,Space Opera",
			expected: []string{"Sci-Fi", "Space Opera"},
		},
		{
			name:     "empty response",
			raw:      "",
			expected: []string{},
		},
		{
			name:     "whitespace-only response",
			raw:      "  \n  ",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseTags(tt.raw)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestMergeTags(t *testing.T) {
	tests := []struct {
		name       string
		existing   []string
		candidates []string
		expected   []string
	}{
		{
			name:       "union preserves existing order then appends new",
			existing:   []string{"Fiction"},
			candidates: []string{"Fantasy", "adventure"},
			expected:   []string{"Fiction", "Fantasy", "adventure"},
		},
		{
			name:       "case-insensitive duplicates collapse to existing spelling",
			existing:   []string{"Sci-Fi", "Romance"},
			candidates: []string{"sci-fi", "Humor"},
			expected:   []string{"Sci-Fi", "Romance", "Humor"},
		},
		{
			name:       "whitespace differences are duplicates",
			existing:   []string{"Fantasy"},
			candidates: []string{" Fantasy ", "Magic"},
			expected:   []string{"Fantasy", "Magic"},
		},
		{
			name:       "empty existing",
			existing:   nil,
			candidates: []string{"Sci-Fi"},
			expected:   []string{"Sci-Fi"},
		},
		{
			name:       "empty candidates",
			existing:   []string{"Fiction"},
			candidates: nil,
			expected:   []string{"Fiction"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MergeTags(tt.existing, tt.candidates)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestMergeTagsDoesNotMutateInputs(t *testing.T) {
	existing := []string{"Fiction", "Drama"}
	candidates := []string{"Fantasy"}

	MergeTags(existing, candidates)

	if !reflect.DeepEqual(existing, []string{"Fiction", "Drama"}) {
		t.Errorf("existing slice was mutated: %v", existing)
	}
	if !reflect.DeepEqual(candidates, []string{"Fantasy"}) {
		t.Errorf("candidates slice was mutated: %v", candidates)
	}
}
