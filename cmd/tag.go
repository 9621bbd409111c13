package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/lehigh-university-libraries/shelftagger/internal/calibre"
	"github.com/lehigh-university-libraries/shelftagger/internal/config"
	"github.com/lehigh-university-libraries/shelftagger/internal/gemini"
	"github.com/lehigh-university-libraries/shelftagger/internal/ollama"
	"github.com/lehigh-university-libraries/shelftagger/internal/openai"
	"github.com/lehigh-university-libraries/shelftagger/internal/snapshot"
	"github.com/lehigh-university-libraries/shelftagger/internal/tagging"
	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	var (
		libraryPath string
		provider    string
		model       string
		limit       int
		dryRun      bool
		overwrite   bool
		temperature float64
		reportDir   string
		snapshotDir string
	)

	cmd := &cobra.Command{
		Use:   "tag",
		Short: "Generate and apply tags for books in a Calibre library",
		Long: `Processes books in the library's listing order: asks the selected LLM
backend for 8-12 descriptive tags per book, merges them with the book's
existing tags (or replaces them with --overwrite), and writes the result
back through calibredb.

With --provider all (the default), configured backends are tried per book
in a fixed order (gemini, openai, ollama) and the first usable response
wins. A book whose generation or write fails is logged and skipped;
processing continues with the next book.`,
		Example: `  # Preview tags for the first 5 books without writing anything
  shelftagger tag --library-path ~/Calibre\ Library --limit 5 --dry-run

  # Tag the whole library with Gemini, saving a backup of current tags first
  shelftagger tag --library-path ~/Calibre\ Library --provider gemini --snapshot-dir backups`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromEnv()

			backends, err := buildBackends(cfg, provider, model)
			if err != nil {
				return err
			}

			catalog := calibre.NewCLI(libraryPath)

			if snapshotDir != "" && !dryRun {
				if err := saveSnapshot(cmd, catalog, snapshotDir, limit); err != nil {
					return err
				}
			}

			svc := tagging.NewService(catalog, backends, tagging.Options{
				Limit:       limit,
				DryRun:      dryRun,
				Overwrite:   overwrite,
				Temperature: temperature,
			})

			summary, err := svc.Run(cmd.Context())
			if err != nil {
				return err
			}

			if reportDir != "" {
				path, err := tagging.SaveReport(reportDir, tagging.ReportConfig{
					LibraryPath: libraryPath,
					Provider:    provider,
					Model:       model,
					Limit:       limit,
					DryRun:      dryRun,
					Overwrite:   overwrite,
				}, summary)
				if err != nil {
					slog.Error("Unable to save report", "err", err)
				} else {
					slog.Info("Report saved", "path", path)
				}
			}

			if summary.Total > 0 && summary.Failed == summary.Total {
				return fmt.Errorf("all %d books failed", summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryPath, "library-path", "", "Full path to the Calibre library folder (required)")
	cmd.Flags().StringVar(&provider, "provider", "all", "Generation backend: gemini, openai, ollama, or all")
	cmd.Flags().StringVar(&model, "model", "", "Override the backend's configured model")
	cmd.Flags().IntVar(&limit, "limit", 0, "Limit the number of books to process (0 = all)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would be done without writing to the library")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing tags instead of merging")
	cmd.Flags().Float64Var(&temperature, "temperature", 0.7, "Sampling temperature for the generation backend")
	cmd.Flags().StringVar(&reportDir, "report", "", "Directory to write a YAML run report into")
	cmd.Flags().StringVar(&snapshotDir, "snapshot-dir", "", "Directory to write a parquet backup of current tags before the first write")
	_ = cmd.MarkFlagRequired("library-path")

	return cmd
}

// buildBackends resolves the --provider flag against the configured
// credentials. With "all", backends missing credentials are left out of the
// per-book fallback order rather than failing the run.
func buildBackends(cfg config.Config, provider, model string) ([]tagging.Backend, error) {
	g := gemini.New(cfg.GeminiAPIKeys)
	o := openai.New(cfg.OpenAIAPIKey)
	l := ollama.New(cfg.OllamaURL)

	switch provider {
	case "gemini":
		if !g.Configured() {
			return nil, fmt.Errorf("GEMINI_API_KEY not set")
		}
		return []tagging.Backend{{Name: "gemini", Model: cfg.ModelFor("gemini", model), Provider: g}}, nil
	case "openai":
		if !o.Configured() {
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return []tagging.Backend{{Name: "openai", Model: cfg.ModelFor("openai", model), Provider: o}}, nil
	case "ollama":
		return []tagging.Backend{{Name: "ollama", Model: cfg.ModelFor("ollama", model), Provider: l}}, nil
	case "all", "":
		var backends []tagging.Backend
		if g.Configured() {
			backends = append(backends, tagging.Backend{Name: "gemini", Model: cfg.ModelFor("gemini", model), Provider: g})
		}
		if o.Configured() {
			backends = append(backends, tagging.Backend{Name: "openai", Model: cfg.ModelFor("openai", model), Provider: o})
		}
		backends = append(backends, tagging.Backend{Name: "ollama", Model: cfg.ModelFor("ollama", model), Provider: l})
		return backends, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func saveSnapshot(cmd *cobra.Command, catalog calibre.Catalog, dir string, limit int) error {
	books, err := catalog.ListBooks(cmd.Context(), limit)
	if err != nil {
		return fmt.Errorf("failed to snapshot library before tagging: %w", err)
	}

	rows := make([]snapshot.Row, 0, len(books))
	for _, b := range books {
		rows = append(rows, snapshot.Row{ID: b.ID, Title: b.Title, Tags: b.Tags})
	}

	path := filepath.Join(dir, fmt.Sprintf("tags_%s.parquet", time.Now().Format("2006-01-02_15-04-05")))
	if err := ensureDir(dir); err != nil {
		return err
	}
	return snapshot.Save(path, rows)
}
