package calibre

import (
	"reflect"
	"testing"
)

func TestDecodeBooks(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected []Book
		wantErr  bool
	}{
		{
			name: "full records",
			output: `[
  {"id": 1, "title": "Dune", "comments": "Spice.", "tags": ["Sci-Fi", "Classic"]},
  {"id": 2, "title": "Emma", "comments": "", "tags": []}
]`,
			expected: []Book{
				{ID: 1, Title: "Dune", Comments: "Spice.", Tags: []string{"Sci-Fi", "Classic"}},
				{ID: 2, Title: "Emma", Comments: "", Tags: []string{}},
			},
		},
		{
			name:   "missing optional fields",
			output: `[{"id": 7, "title": "Untitled"}]`,
			expected: []Book{
				{ID: 7, Title: "Untitled"},
			},
		},
		{
			name:     "empty library",
			output:   `[]`,
			expected: nil,
		},
		{
			name:    "not json",
			output:  `calibredb: error: no such library`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := decodeBooks([]byte(tt.output))
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error, got %v", books)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !reflect.DeepEqual(books, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, books)
			}
		})
	}
}
