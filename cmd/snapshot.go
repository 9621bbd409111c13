package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/lehigh-university-libraries/shelftagger/internal/calibre"
	"github.com/lehigh-university-libraries/shelftagger/internal/snapshot"
	"github.com/spf13/cobra"
)

func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Back up and restore Calibre tag sets",
		Long: `Tag writes through calibredb have no undo. The snapshot commands export
each book's current tag set to a parquet file before a tagging run, and
write those tag sets back if a run needs to be reverted.`,
	}

	cmd.AddCommand(newSnapshotSaveCmd())
	cmd.AddCommand(newSnapshotRestoreCmd())

	return cmd
}

func newSnapshotSaveCmd() *cobra.Command {
	var (
		libraryPath string
		out         string
		limit       int
	)

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Export current tags to a parquet file",
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := calibre.NewCLI(libraryPath)

			books, err := catalog.ListBooks(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list books: %w", err)
			}

			rows := make([]snapshot.Row, 0, len(books))
			for _, b := range books {
				rows = append(rows, snapshot.Row{ID: b.ID, Title: b.Title, Tags: b.Tags})
			}

			return snapshot.Save(out, rows)
		},
	}

	cmd.Flags().StringVar(&libraryPath, "library-path", "", "Full path to the Calibre library folder (required)")
	cmd.Flags().StringVar(&out, "out", "", "Path of the parquet file to write (required)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit the number of books to snapshot (0 = all)")
	_ = cmd.MarkFlagRequired("library-path")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func newSnapshotRestoreCmd() *cobra.Command {
	var (
		libraryPath string
		in          string
		dryRun      bool
	)

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Write snapshotted tag sets back to the library",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := snapshot.Load(in)
			if err != nil {
				return err
			}

			catalog := calibre.NewCLI(libraryPath)

			var restored, failed int
			for i, row := range rows {
				if err := cmd.Context().Err(); err != nil {
					return err
				}

				if dryRun {
					slog.Info("Dry run, would restore tags",
						"progress", fmt.Sprintf("%d/%d", i+1, len(rows)),
						"id", row.ID,
						"title", row.Title,
						"tags", strings.Join(row.Tags, ","))
					continue
				}

				if err := catalog.SetTags(cmd.Context(), row.ID, row.Tags); err != nil {
					slog.Warn("Failed to restore tags", "id", row.ID, "err", err)
					failed++
					continue
				}
				restored++
			}

			slog.Info("Restore complete", "total", len(rows), "restored", restored, "failed", failed)

			if len(rows) > 0 && failed == len(rows) {
				return fmt.Errorf("all %d books failed to restore", len(rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryPath, "library-path", "", "Full path to the Calibre library folder (required)")
	cmd.Flags().StringVar(&in, "in", "", "Path of the parquet snapshot to restore (required)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be restored without writing to the library")
	_ = cmd.MarkFlagRequired("library-path")
	_ = cmd.MarkFlagRequired("in")

	return cmd
}

// ensureDir creates dir if it does not already exist.
func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
