package domain

// Attributes is a mapping from canonical attribute name to value.
// Keys are normalized once, at asset construction, by the cleaner
// collaborator passed to NewAsset.
type Attributes map[string]any

// RepsKey is the attribute under which an asset or site declares its
// representations.
const RepsKey = "reps"

// DefaultRepName is the representation every asset materializes unless
// the asset explicitly suppresses it.
const DefaultRepName = "default"

// builtinDefaults is the last tier of the attribute fallback chain.
var builtinDefaults = Attributes{
	"extension": "html",
	"binary":    false,
	"filters":   []string{},
}

// SiteDefaults exposes the site-wide default attribute mapping.
// It is consulted as the middle tier of the attribute fallback chain and
// for the default representation-name set. The mapping is read-only from
// the core's perspective.
type SiteDefaults interface {
	// Attributes returns the site-wide default attributes.
	Attributes() map[string]any
}

// ResolveAttribute returns the first defined value for name across the
// three attribute tiers: asset attributes, site default attributes, and
// the built-in defaults. Presence governs, not truthiness: an attribute
// explicitly set to an empty or false value still wins over lower tiers.
// The boolean reports whether any tier defined the attribute; absence is
// not an error.
func ResolveAttribute(name string, asset Attributes, site map[string]any) (any, bool) {
	if v, ok := asset[name]; ok {
		return v, true
	}
	if v, ok := site[name]; ok {
		return v, true
	}
	if v, ok := builtinDefaults[name]; ok {
		return v, true
	}
	return nil, false
}

// RepOverrideKind discriminates the three states an asset can declare for
// a named representation.
type RepOverrideKind int

const (
	// NotOverridden indicates the asset's reps mapping has no entry for
	// the name. The representation is kept with an empty override.
	NotOverridden RepOverrideKind = iota

	// Overridden indicates the asset supplies per-asset override
	// attributes for the name.
	Overridden

	// Suppressed indicates the name is present in the asset's reps
	// mapping with an absent value. The representation is dropped from
	// the build set entirely.
	Suppressed
)

// RepOverride is an asset's declaration for one representation name.
type RepOverride struct {
	// Kind is the declaration state.
	Kind RepOverrideKind

	// Attrs holds the override attributes when Kind is Overridden.
	Attrs map[string]any
}
