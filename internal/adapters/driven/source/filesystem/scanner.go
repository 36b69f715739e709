// Package filesystem scans a local content tree into source files and
// reads their raw content on demand.
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
	"github.com/sitesmith/sitesmith-cli/internal/filters"
)

// Ensure Scanner implements both source ports.
var (
	_ driven.SourceScanner = (*Scanner)(nil)
	_ driven.SourceReader  = (*Scanner)(nil)
)

// Scanner walks a source directory and yields one SourceFile per regular
// file, with front-matter attributes split out of the content.
type Scanner struct {
	root string
}

// NewScanner creates a scanner rooted at the source directory.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Scan walks the source tree. Hidden files and directories (dot-prefixed)
// are skipped. Results are ordered by path for reproducible builds.
func (s *Scanner) Scan(ctx context.Context) ([]driven.SourceFile, error) {
	var files []driven.SourceFile

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != s.root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		file, err := s.scanFile(path)
		if err != nil {
			return fmt.Errorf("scan %s: %w", path, err)
		}
		files = append(files, *file)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", s.root, err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RawPath < files[j].RawPath })
	return files, nil
}

// ReadSource reads the raw bytes of a scanned file.
func (s *Scanner) ReadSource(_ context.Context, location string) ([]byte, error) {
	return os.ReadFile(location)
}

// scanFile builds the SourceFile record for one path: front-matter
// attributes, raw site-relative path, and modification time.
func (s *Scanner) scanFile(path string) (*driven.SourceFile, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	attrs, err := parseFrontMatter(content)
	if err != nil {
		return nil, err
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		return nil, err
	}

	file := driven.SourceFile{
		RawPath:       rawPath(rel),
		RawAttributes: attrs,
		Location:      path,
	}
	if info, err := os.Stat(path); err == nil {
		mt := info.ModTime().UTC()
		file.ModTime = &mt
	}
	return &file, nil
}

// parseFrontMatter decodes a leading YAML front-matter block into raw
// attributes. Files without front matter get an empty mapping.
func parseFrontMatter(content []byte) (map[string]any, error) {
	_, fm := filters.SplitFrontMatter(content)
	if fm == nil {
		return map[string]any{}, nil
	}

	var attrs map[string]any
	if err := yaml.Unmarshal(fm, &attrs); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}
	if attrs == nil {
		attrs = map[string]any{}
	}
	return attrs, nil
}

// rawPath derives the site-relative output path from a file's relative
// location: the extension drops, and an "index" stem maps to its
// directory.
func rawPath(rel string) string {
	rel = filepath.ToSlash(rel)
	stem := strings.TrimSuffix(rel, filepath.Ext(rel))
	if stem == "index" || strings.HasSuffix(stem, "/index") {
		stem = strings.TrimSuffix(stem, "index")
	}
	stem = strings.Trim(stem, "/")
	if stem == "" {
		return "/"
	}
	return "/" + stem + "/"
}
