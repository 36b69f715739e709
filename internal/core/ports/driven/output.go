package driven

import "context"

// OutputWriter persists compiled representation output.
type OutputWriter interface {
	// WriteOutput writes data to the output location identified by the
	// site-relative file path (e.g. "/blog/post/index.html").
	WriteOutput(ctx context.Context, file string, data []byte) error
}
