package domain

import "time"

// AssetView is the stable read-through view of an asset handed to
// consuming code (templates, status output). It exposes resolved
// attributes without letting consumers mutate the asset.
type AssetView struct {
	asset *Asset
}

func newAssetView(a *Asset) *AssetView {
	return &AssetView{asset: a}
}

// Path returns the asset's canonicalized output path.
func (v *AssetView) Path() string { return v.asset.Path() }

// ModTime returns the source modification time, or nil when unknown.
func (v *AssetView) ModTime() *time.Time { return v.asset.ModTime() }

// Attribute resolves an attribute through the asset's fallback chain.
func (v *AssetView) Attribute(name string) (any, bool) {
	return v.asset.Attribute(name)
}

// RepNames returns the names of the built representations, or nil before
// the set is built.
func (v *AssetView) RepNames() []string {
	reps := v.asset.Reps()
	if reps == nil {
		return nil
	}
	names := make([]string, 0, len(reps))
	for _, rep := range reps {
		names = append(names, rep.Name())
	}
	return names
}
