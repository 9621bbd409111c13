package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shelftagger",
		Short: "Auto-tag Calibre books with LLM-generated tags",
		Long: `Shelftagger enriches a Calibre library's metadata by asking an LLM
for descriptive tags based on each book's title and description, then
writing the tags back through the calibredb command-line tool.

It supports Gemini, OpenAI and local Ollama backends, dry-run previews,
and parquet snapshots of existing tags so a bad run can be reverted.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newTagCmd())
	cmd.AddCommand(newSnapshotCmd())

	return cmd
}
