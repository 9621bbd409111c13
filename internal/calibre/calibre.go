package calibre

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Book represents one catalog record as reported by calibredb.
// Comments holds the free-text description and may be empty.
type Book struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Comments string   `json:"comments"`
	Tags     []string `json:"tags"`
}

// Catalog is the two-operation boundary to the external metadata store.
// The store itself is owned and mutated entirely by calibredb; this
// interface exists so the tagging driver can run against a fake in tests.
type Catalog interface {
	ListBooks(ctx context.Context, limit int) ([]Book, error)
	SetTags(ctx context.Context, bookID int64, tags []string) error
}

// CLI is the calibredb-backed Catalog implementation.
type CLI struct {
	libraryPath string
	command     string
}

// NewCLI returns a Catalog that shells out to calibredb for the library
// at the given path.
func NewCLI(libraryPath string) *CLI {
	return &CLI{
		libraryPath: libraryPath,
		command:     "calibredb",
	}
}

// ListBooks fetches up to limit books (all books if limit <= 0) with their
// id, title, description and current tags.
func (c *CLI) ListBooks(ctx context.Context, limit int) ([]Book, error) {
	args := []string{
		"list",
		"--for-machine",
		"--fields", "id,title,comments,tags",
		"--with-library", c.libraryPath,
	}
	if limit > 0 {
		args = append(args, "--limit", strconv.Itoa(limit))
	}

	out, err := c.run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}

	return decodeBooks(out)
}

// SetTags replaces the tag list for a single book. One call is one atomic
// calibredb invocation; there is no partial write.
func (c *CLI) SetTags(ctx context.Context, bookID int64, tags []string) error {
	args := []string{
		"set_metadata",
		"--field", "tags:" + strings.Join(tags, ","),
		strconv.FormatInt(bookID, 10),
		"--with-library", c.libraryPath,
	}

	if _, err := c.run(ctx, args); err != nil {
		return fmt.Errorf("failed to set tags for book %d: %w", bookID, err)
	}
	return nil
}

// run executes calibredb and returns its stdout. Stderr is folded into the
// returned error so callers can log why the tool rejected a command.
func (c *CLI) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, c.command, args...)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("calibredb exited with %d: %s", exitErr.ExitCode(), strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("failed to invoke calibredb (is Calibre installed and on PATH?): %w", err)
	}
	return out, nil
}

// decodeBooks parses the JSON array emitted by calibredb list --for-machine.
func decodeBooks(out []byte) ([]Book, error) {
	var books []Book
	if err := json.Unmarshal(out, &books); err != nil {
		return nil, fmt.Errorf("failed to parse calibredb output: %w", err)
	}
	return books, nil
}
