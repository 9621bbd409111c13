package tagging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ReportConfig captures the run configuration recorded at the top of a
// report file.
type ReportConfig struct {
	LibraryPath string `yaml:"librarypath"`
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	Limit       int    `yaml:"limit"`
	DryRun      bool   `yaml:"dryrun"`
	Overwrite   bool   `yaml:"overwrite"`
	Timestamp   string `yaml:"timestamp"`
}

// ReportResult is one book's outcome in a report file.
type ReportResult struct {
	ID       int64    `yaml:"id"`
	Title    string   `yaml:"title"`
	Status   string   `yaml:"status"`
	Tags     []string `yaml:"tags,omitempty"`
	Provider string   `yaml:"provider,omitempty"`
	Error    string   `yaml:"error,omitempty"`
}

// ReportSummary is the aggregate section of a report file.
type ReportSummary struct {
	Total   int `yaml:"total"`
	Applied int `yaml:"applied"`
	Skipped int `yaml:"skipped"`
	Failed  int `yaml:"failed"`
}

// Report is the complete YAML document written after a run.
type Report struct {
	Config  ReportConfig   `yaml:"config"`
	Summary ReportSummary  `yaml:"summary"`
	Results []ReportResult `yaml:"results"`
}

// SaveReport writes a timestamped YAML report of the run into dir and
// returns the path of the file written.
func SaveReport(dir string, cfg ReportConfig, summary *RunSummary) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02_15-04-05")
	cfg.Timestamp = timestamp

	report := Report{
		Config: cfg,
		Summary: ReportSummary{
			Total:   summary.Total,
			Applied: summary.Applied,
			Skipped: summary.Skipped,
			Failed:  summary.Failed,
		},
		Results: make([]ReportResult, 0, len(summary.Results)),
	}

	for _, r := range summary.Results {
		report.Results = append(report.Results, ReportResult{
			ID:       r.ID,
			Title:    r.Title,
			Status:   string(r.Status),
			Tags:     r.Tags,
			Provider: r.Provider,
			Error:    r.Error,
		})
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("tagging_%s.yaml", timestamp))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	return path, nil
}
