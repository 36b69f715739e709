package driving

import (
	"context"
	"time"

	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
)

// BuildOptions controls one build pass.
type BuildOptions struct {
	// Force recompiles every asset regardless of staleness.
	Force bool

	// Workers bounds concurrent asset compilation. Zero means the
	// configured default.
	Workers int
}

// AssetResult is the outcome for one asset within a build pass.
type AssetResult struct {
	// Path is the asset's canonicalized output path.
	Path string

	// Reps is the number of representations in the asset's built set.
	Reps int

	// Compiled is true when the asset was recompiled this pass.
	Compiled bool

	// Err holds the compilation failure, if any.
	Err error
}

// BuildResult summarises a completed build pass.
type BuildResult struct {
	// Run is the recorded build run.
	Run driven.BuildRun

	// Results holds the per-asset outcomes, ordered by path.
	Results []AssetResult

	// Duration is the wall-clock time of the pass.
	Duration time.Duration
}

// BuildOrchestrator coordinates full build passes over the source tree.
type BuildOrchestrator interface {
	// Build runs one pass: scan, construct assets, build representation
	// sets, compile outdated assets.
	Build(ctx context.Context, opts BuildOptions) (*BuildResult, error)

	// Status returns the latest recorded build run.
	Status(ctx context.Context) (*driven.BuildRun, error)
}

// Watcher rebuilds the site when the source tree changes. Watch blocks
// until the context is cancelled.
type Watcher interface {
	Watch(ctx context.Context) error
}
