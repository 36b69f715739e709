package driven

import "context"

// Filter is a named content transformation applied by a representation
// during compilation.
type Filter interface {
	// Name returns the filter's registry name.
	Name() string

	// Apply transforms content, returning the filtered bytes.
	Apply(ctx context.Context, content []byte) ([]byte, error)
}

// FilterRegistry looks up filters by name.
type FilterRegistry interface {
	// Get returns the filter registered under name.
	// Returns domain.ErrUnknownFilter when no such filter exists.
	Get(name string) (Filter, error)

	// Names returns all registered filter names.
	Names() []string
}
