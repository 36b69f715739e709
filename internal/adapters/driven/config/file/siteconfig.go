// Package file provides the TOML-backed site configuration. The config
// carries the build directories and the site-wide default attributes,
// including the site's default representation declarations.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
)

// Ensure SiteConfig implements the site defaults contract.
var _ domain.SiteDefaults = (*SiteConfig)(nil)

// Default build settings.
const (
	DefaultSourceDir = "content"
	DefaultOutputDir = "public"
	DefaultWorkers   = 4
)

// SiteConfig is the decoded site.toml.
type SiteConfig struct {
	// SourceDir is the content tree to scan, relative to the site root.
	SourceDir string `toml:"source_dir"`

	// OutputDir is where compiled output is written.
	OutputDir string `toml:"output_dir"`

	// Workers bounds concurrent asset compilation.
	Workers int `toml:"workers"`

	// Attrs are the site-wide default attributes. The nested
	// [attributes.reps.<name>] tables declare the site's default
	// representation names.
	Attrs map[string]any `toml:"attributes"`
}

// Load reads and decodes a site configuration file. A missing file is
// not an error: the defaults apply and the attribute mapping is empty.
func Load(path string) (*SiteConfig, error) {
	cfg := &SiteConfig{
		SourceDir: DefaultSourceDir,
		OutputDir: DefaultOutputDir,
		Workers:   DefaultWorkers,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Attrs = map[string]any{}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.SourceDir == "" {
		cfg.SourceDir = DefaultSourceDir
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Attrs == nil {
		cfg.Attrs = map[string]any{}
	}
	return cfg, nil
}

// Attributes returns the site-wide default attributes.
func (c *SiteConfig) Attributes() map[string]any { return c.Attrs }
