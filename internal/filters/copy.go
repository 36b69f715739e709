package filters

import "context"

// CopyFilter passes content through unchanged. It exists so an asset can
// declare an explicit no-op filter chain.
type CopyFilter struct{}

// Name returns the registry name.
func (f *CopyFilter) Name() string { return "copy" }

// Apply returns the content unchanged.
func (f *CopyFilter) Apply(_ context.Context, content []byte) ([]byte, error) {
	return content, nil
}
