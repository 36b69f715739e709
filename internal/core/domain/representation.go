package domain

import "context"

// Representation is one named output variant of an asset. Implementations
// own the filtering/compilation of the variant and its staleness check;
// the core only delegates.
type Representation interface {
	// Name returns the representation name, unique within one asset.
	Name() string

	// IsOutdated reports whether the compiled output may not reflect the
	// current source and must be recompiled.
	IsOutdated() bool

	// Compile produces the representation's output. Failures are domain
	// errors of the implementation and propagate to the caller unchanged.
	Compile(ctx context.Context) error
}

// RepresentationFactory constructs representations during rep-set
// building. The override mapping is the asset's own per-representation
// overrides, or an empty mapping when the asset declared none.
type RepresentationFactory interface {
	New(asset *Asset, override map[string]any, name string) Representation
}
