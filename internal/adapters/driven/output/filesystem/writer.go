// Package filesystem writes compiled representation output under the
// site's output directory.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
)

// Ensure Writer implements the interface.
var _ driven.OutputWriter = (*Writer)(nil)

// Writer is a file-based implementation of driven.OutputWriter.
type Writer struct {
	root string
}

// NewWriter creates a writer rooted at the output directory.
func NewWriter(root string) *Writer {
	return &Writer{root: root}
}

// WriteOutput writes data to the site-relative file, creating parent
// directories as needed.
func (w *Writer) WriteOutput(_ context.Context, file string, data []byte) error {
	rel := strings.TrimPrefix(file, "/")
	target := filepath.Join(w.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", file, err)
	}
	return nil
}

// Root returns the output directory.
func (w *Writer) Root() string { return w.root }
