package snapshot

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.parquet")

	rows := []Row{
		{ID: 1, Title: "Dune", Tags: []string{"Sci-Fi", "Classic"}},
		{ID: 2, Title: "Emma", Tags: nil},
		{ID: 3, Title: "Hamlet", Tags: []string{"Drama"}},
	}

	if err := Save(path, rows); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(loaded) != len(rows) {
		t.Fatalf("Expected %d rows, got %d", len(rows), len(loaded))
	}
	for i, row := range loaded {
		if row.ID != rows[i].ID {
			t.Errorf("Row %d: expected ID %d, got %d", i, rows[i].ID, row.ID)
		}
		if row.Title != rows[i].Title {
			t.Errorf("Row %d: expected title %q, got %q", i, rows[i].Title, row.Title)
		}
		if len(row.Tags) != len(rows[i].Tags) {
			t.Errorf("Row %d: expected tags %v, got %v", i, rows[i].Tags, row.Tags)
			continue
		}
		if len(row.Tags) > 0 && !reflect.DeepEqual(row.Tags, rows[i].Tags) {
			t.Errorf("Row %d: expected tags %v, got %v", i, rows[i].Tags, row.Tags)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.parquet")); err == nil {
		t.Errorf("Expected error for missing file")
	}
}
