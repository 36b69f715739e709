// Package filters provides the named content-filter implementations that
// representations apply during compilation.
package filters

import (
	"fmt"
	"sort"

	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.FilterRegistry = (*Registry)(nil)

// Registry maps filter names to their implementations.
type Registry struct {
	filters map[string]driven.Filter
}

// NewRegistry creates an empty filter registry.
func NewRegistry() *Registry {
	return &Registry{
		filters: make(map[string]driven.Filter),
	}
}

// DefaultRegistry creates a registry with all built-in filters.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&CopyFilter{})
	r.Register(&FrontMatterFilter{})
	r.Register(&SmartQuotesFilter{})
	return r
}

// Register adds a filter under its own name, replacing any previous
// registration.
func (r *Registry) Register(f driven.Filter) {
	r.filters[f.Name()] = f
}

// Get returns the filter registered under name.
func (r *Registry) Get(name string) (driven.Filter, error) {
	f, ok := r.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownFilter, name)
	}
	return f, nil
}

// Names returns all registered filter names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.filters))
	for name := range r.filters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
