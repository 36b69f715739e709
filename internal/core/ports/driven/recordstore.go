package driven

import (
	"context"
	"time"
)

// CompileRecord is the persisted outcome of compiling one representation
// of one asset. Representations compare it against the current source to
// decide staleness.
type CompileRecord struct {
	// Path is the asset's canonicalized output path.
	Path string

	// Rep is the representation name.
	Rep string

	// OutputFile is the site-relative file the representation wrote.
	OutputFile string

	// CompiledAt is when the representation was last compiled.
	CompiledAt time.Time

	// SourceModTime is the source modification time observed at compile
	// time, or nil when it was unknown.
	SourceModTime *time.Time

	// FilterHash fingerprints the representation's resolved filter chain
	// and extension, so definition changes force recompilation.
	FilterHash string
}

// BuildRun summarises one build pass over the whole site.
type BuildRun struct {
	// ID is the unique identifier for the run.
	ID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// FinishedAt is when the run completed.
	FinishedAt time.Time

	// Assets is the number of assets considered.
	Assets int

	// Compiled is the number of assets that were recompiled.
	Compiled int

	// Skipped is the number of up-to-date assets left alone.
	Skipped int

	// Failed is the number of assets whose compilation failed.
	Failed int
}

// RecordStore persists compile records and build-run history.
type RecordStore interface {
	// GetRecord retrieves the record for one (path, rep) pair.
	// Returns domain.ErrNotFound when the pair was never compiled.
	GetRecord(ctx context.Context, path, rep string) (*CompileRecord, error)

	// SaveRecord stores or replaces a compile record.
	SaveRecord(ctx context.Context, rec CompileRecord) error

	// ListRecords returns all compile records.
	ListRecords(ctx context.Context) ([]CompileRecord, error)

	// SaveRun stores a completed build run.
	SaveRun(ctx context.Context, run BuildRun) error

	// LatestRun retrieves the most recent build run.
	// Returns domain.ErrNotFound when no run was recorded yet.
	LatestRun(ctx context.Context) (*BuildRun, error)
}
