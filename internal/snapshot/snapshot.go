package snapshot

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/parquet-go/parquet-go"
)

// Row is one book's tag state at snapshot time.
type Row struct {
	ID    int64    `parquet:"id"`
	Title string   `parquet:"title"`
	Tags  []string `parquet:"tags,list"`
}

// Save writes rows to a parquet file at path, replacing any existing file.
func Save(path string, rows []Row) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer file.Close()

	writer := parquet.NewGenericWriter[Row](file)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("failed to write snapshot rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize snapshot: %w", err)
	}

	slog.Info("Snapshot written", "path", path, "rows", len(rows))
	return nil
}

// Load reads all rows from a parquet snapshot file.
func Load(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat snapshot file: %w", err)
	}

	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	reader := parquet.NewGenericReader[Row](pf)
	defer reader.Close()

	var rows []Row
	batch := make([]Row, 128) // Read in batches

	for {
		n, err := reader.Read(batch)
		if n > 0 {
			rows = append(rows, batch[:n]...)
		}
		if err != nil {
			break
		}
	}

	slog.Debug("Snapshot loaded", "path", path, "rows", len(rows))
	return rows, nil
}
