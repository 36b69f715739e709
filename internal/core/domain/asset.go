package domain

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// AttributeCleaner normalizes raw attributes once at asset construction.
// Implementations canonicalize keys and values; the contract belongs to
// the canonical package.
type AttributeCleaner func(raw map[string]any) Attributes

// PathCleaner canonicalizes a raw output path once at asset construction.
type PathCleaner func(raw string) string

// Asset is a single source content item tracked for incremental
// compilation. It owns attribute resolution and representation-set
// building, and delegates compilation and staleness to its
// representations.
//
// An Asset is created once per source item per build pass and discarded
// at the end of the pass. It is not internally synchronized: building the
// representation set and consuming it must not race, so one asset's full
// lifecycle is confined to a single logical task.
type Asset struct {
	source     any
	attributes Attributes
	path       string
	modTime    *time.Time
	site       SiteDefaults

	reps []Representation
	view *AssetView

	// Build-lifecycle flags. The core initializes them to false and never
	// touches them again; the surrounding pipeline owns their transitions.
	Modified bool
	Created  bool
	Filtered bool
	Written  bool
}

// NewAsset constructs an asset from a loaded source record. The raw
// attributes and path are normalized exactly once, here, before any other
// operation can touch them. The source handle is held by reference and
// never copied or mutated. A nil modTime means the modification time is
// unknown.
func NewAsset(source any, rawAttrs map[string]any, rawPath string, modTime *time.Time, site SiteDefaults, clean AttributeCleaner, cleanPath PathCleaner) *Asset {
	return &Asset{
		source:     source,
		attributes: clean(rawAttrs),
		path:       cleanPath(rawPath),
		modTime:    modTime,
		site:       site,
	}
}

// Source returns the opaque source handle, unchanged.
func (a *Asset) Source() any { return a.source }

// Attributes returns the asset's own normalized attributes.
func (a *Asset) Attributes() Attributes { return a.attributes }

// Path returns the canonicalized output path.
func (a *Asset) Path() string { return a.path }

// ModTime returns the source modification time, or nil when unknown.
func (a *Asset) ModTime() *time.Time { return a.modTime }

// Reps returns the built representation set, or nil before BuildReps.
func (a *Asset) Reps() []Representation { return a.reps }

// Attribute resolves a named attribute through the fallback chain: the
// asset's own attributes, then site defaults, then built-in defaults.
// ok is false when no tier defines the attribute.
func (a *Asset) Attribute(name string) (any, bool) {
	var site map[string]any
	if a.site != nil {
		site = a.site.Attributes()
	}
	return ResolveAttribute(name, a.attributes, site)
}

// BuildReps computes the definitive representation set for the asset and
// instantiates one representation per surviving name, replacing any prior
// set.
//
// The candidate name set is the union of the site's declared rep names,
// the asset's own rep names, and "default". Override values come only
// from the asset's own reps mapping; the site contributes names, never
// overrides. A name the asset maps to an absent value is suppressed and
// dropped, and because "default" joins the union before the suppression
// check, an asset can suppress it too. Names are instantiated in sorted
// order so builds are reproducible, but callers get set semantics.
func (a *Asset) BuildReps(factory RepresentationFactory) error {
	overrides, err := a.repOverrides()
	if err != nil {
		return err
	}

	candidates := map[string]struct{}{DefaultRepName: {}}
	for _, name := range siteRepNames(a.site) {
		candidates[name] = struct{}{}
	}
	for name := range overrides {
		candidates[name] = struct{}{}
	}

	names := make([]string, 0, len(candidates))
	for name := range candidates {
		names = append(names, name)
	}
	sort.Strings(names)

	reps := make([]Representation, 0, len(names))
	for _, name := range names {
		override := overrides[name]
		if override.Kind == Suppressed {
			continue
		}
		attrs := override.Attrs
		if attrs == nil {
			attrs = map[string]any{}
		}
		reps = append(reps, factory.New(a, attrs, name))
	}

	a.reps = reps
	return nil
}

// repOverrides validates and decodes the asset's own reps attribute into
// tagged overrides. A missing reps attribute yields an empty map.
func (a *Asset) repOverrides() (map[string]RepOverride, error) {
	raw, ok := a.attributes[RepsKey]
	if !ok || raw == nil {
		return map[string]RepOverride{}, nil
	}

	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: reps attribute is %T, want mapping", ErrInvalidRepSpec, raw)
	}

	overrides := make(map[string]RepOverride, len(mapping))
	for name, value := range mapping {
		switch v := value.(type) {
		case nil:
			overrides[name] = RepOverride{Kind: Suppressed}
		case map[string]any:
			overrides[name] = RepOverride{Kind: Overridden, Attrs: v}
		case Attributes:
			overrides[name] = RepOverride{Kind: Overridden, Attrs: v}
		default:
			return nil, fmt.Errorf("%w: rep %q is %T, want mapping or nil", ErrInvalidRepSpec, name, value)
		}
	}
	return overrides, nil
}

// IsOutdated reports whether any of the asset's output must be
// recompiled: true when the modification time is unknown, or when any
// representation reports itself outdated. It short-circuits on the first
// positive answer. Calling it before BuildReps is a usage error.
func (a *Asset) IsOutdated() (bool, error) {
	if a.reps == nil {
		return false, ErrRepsNotBuilt
	}
	if a.modTime == nil {
		return true, nil
	}
	for _, rep := range a.reps {
		if rep.IsOutdated() {
			return true, nil
		}
	}
	return false, nil
}

// Compile compiles every representation in order. The first failure halts
// compilation of the remaining representations and propagates unchanged.
// Calling it before BuildReps is a usage error.
func (a *Asset) Compile(ctx context.Context) error {
	if a.reps == nil {
		return ErrRepsNotBuilt
	}
	for _, rep := range a.reps {
		if err := rep.Compile(ctx); err != nil {
			return err
		}
	}
	return nil
}

// View returns the asset's read-through view for consuming code, created
// on first access and cached for the asset's lifetime. Every call returns
// the identical instance.
func (a *Asset) View() *AssetView {
	if a.view == nil {
		a.view = newAssetView(a)
	}
	return a.view
}

// siteRepNames extracts the representation names declared by the site
// defaults, if any. Only well-formed declarations contribute names.
func siteRepNames(site SiteDefaults) []string {
	if site == nil {
		return nil
	}
	raw, ok := site.Attributes()[RepsKey]
	if !ok {
		return nil
	}
	mapping, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(mapping))
	for name := range mapping {
		names = append(names, name)
	}
	return names
}
