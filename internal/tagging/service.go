package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lehigh-university-libraries/shelftagger/internal/calibre"
	"github.com/lehigh-university-libraries/shelftagger/internal/providers"
)

// Status is the terminal state of one book's processing step.
type Status string

const (
	// StatusApplied means the merged tag set was written to the catalog.
	StatusApplied Status = "applied"
	// StatusSkipped means dry-run mode computed but did not write the tag set.
	StatusSkipped Status = "skipped"
	// StatusFailed means generation or the catalog write failed; the book
	// was left untouched and processing continued.
	StatusFailed Status = "failed"
)

// Backend pairs a generation provider with the name and model it runs under.
type Backend struct {
	Name     string
	Model    string
	Provider providers.Provider
}

// Options is the immutable run configuration for one tagging pass.
type Options struct {
	Limit       int
	DryRun      bool
	Overwrite   bool
	Temperature float64
}

// BookResult records the outcome for one book.
type BookResult struct {
	ID       int64
	Title    string
	Status   Status
	Tags     []string
	Provider string
	Error    string
}

// RunSummary aggregates per-book outcomes for one run.
type RunSummary struct {
	Total   int
	Applied int
	Skipped int
	Failed  int
	Results []BookResult
}

// Service drives one sequential tagging pass over the catalog: list books,
// generate candidate tags per book, merge, and apply.
type Service struct {
	catalog  calibre.Catalog
	backends []Backend
	opts     Options
}

// NewService returns a Service. Backends are tried in the given order per
// book; the first that yields a usable tag list wins.
func NewService(catalog calibre.Catalog, backends []Backend, opts Options) *Service {
	return &Service{
		catalog:  catalog,
		backends: backends,
		opts:     opts,
	}
}

// Run processes up to opts.Limit books in the catalog's listing order. A
// failure to list books aborts the run; per-book failures are recorded and
// processing continues. Cancellation is honored at book boundaries only, so
// no book is left mid-write.
func (s *Service) Run(ctx context.Context) (*RunSummary, error) {
	if len(s.backends) == 0 {
		return nil, fmt.Errorf("no generation backends configured")
	}

	books, err := s.catalog.ListBooks(ctx, s.opts.Limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	slog.Info("Found books to process", "count", len(books), "dry_run", s.opts.DryRun, "overwrite", s.opts.Overwrite)

	summary := &RunSummary{
		Total:   len(books),
		Results: make([]BookResult, 0, len(books)),
	}

	for i, book := range books {
		if err := ctx.Err(); err != nil {
			slog.Warn("Run interrupted", "processed", i, "remaining", len(books)-i)
			return summary, err
		}

		slog.Info("Processing book",
			"progress", fmt.Sprintf("%d/%d", i+1, len(books)),
			"id", book.ID,
			"title", book.Title)

		summary.record(s.processBook(ctx, book))
	}

	slog.Info("Tagging run complete",
		"total", summary.Total,
		"applied", summary.Applied,
		"skipped", summary.Skipped,
		"failed", summary.Failed)

	return summary, nil
}

func (s *Service) processBook(ctx context.Context, book calibre.Book) BookResult {
	result := BookResult{
		ID:    book.ID,
		Title: book.Title,
	}

	if strings.TrimSpace(book.Comments) == "" {
		result.Status = StatusFailed
		result.Error = "no description available"
		slog.Warn("Skipping book without description", "id", book.ID, "title", book.Title)
		return result
	}

	candidates, backendName, err := s.generate(ctx, book)
	if err != nil {
		result.Status = StatusFailed
		result.Error = fmt.Sprintf("failed to generate tags: %v", err)
		slog.Warn("Tag generation failed", "id", book.ID, "title", book.Title, "err", err)
		return result
	}
	result.Provider = backendName

	// generate never returns an empty candidate set, so overwrite mode
	// cannot silently erase a book's existing tags.
	if s.opts.Overwrite {
		result.Tags = candidates
	} else {
		result.Tags = MergeTags(book.Tags, candidates)
	}

	if s.opts.DryRun {
		result.Status = StatusSkipped
		slog.Info("Dry run, would apply tags", "id", book.ID, "title", book.Title, "tags", strings.Join(result.Tags, ","))
		return result
	}

	if err := s.catalog.SetTags(ctx, book.ID, result.Tags); err != nil {
		result.Status = StatusFailed
		result.Error = fmt.Sprintf("failed to write tags: %v", err)
		slog.Warn("Catalog rejected tag update", "id", book.ID, "err", err)
		return result
	}

	result.Status = StatusApplied
	slog.Info("Applied tags", "id", book.ID, "tags", strings.Join(result.Tags, ","))
	return result
}

// generate builds the prompt once and tries each backend in order, returning
// the first non-empty parsed tag set along with the backend that produced it.
func (s *Service) generate(ctx context.Context, book calibre.Book) ([]string, string, error) {
	prompt := BuildPrompt(book.Title, book.Comments)

	var lastErr error
	for _, b := range s.backends {
		text, err := b.Provider.GenerateText(ctx, providers.Request{
			Model:       b.Model,
			Temperature: s.opts.Temperature,
			Prompt:      prompt,
		})
		if err != nil {
			slog.Warn("Backend failed", "backend", b.Name, "id", book.ID, "err", err)
			lastErr = err
			continue
		}

		tags := ParseTags(text)
		if len(tags) == 0 {
			lastErr = fmt.Errorf("no tags in response from %s", b.Name)
			slog.Warn("Backend returned unusable response", "backend", b.Name, "id", book.ID)
			continue
		}

		return tags, b.Name, nil
	}

	return nil, "", lastErr
}

func (r *RunSummary) record(result BookResult) {
	r.Results = append(r.Results, result)
	switch result.Status {
	case StatusApplied:
		r.Applied++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}
