package driven

import (
	"context"
	"time"
)

// SourceFile is one scanned content file before asset construction.
// It becomes the asset's opaque source handle; the core passes it
// through unchanged and only the representation collaborator reads it.
type SourceFile struct {
	// RawPath is the site-relative output path before canonicalization
	// (derived from the file's location under the source dir).
	RawPath string

	// RawAttributes holds the file's front-matter attributes, uncleaned.
	RawAttributes map[string]any

	// ModTime is the file's modification time, or nil when it could not
	// be determined.
	ModTime *time.Time

	// Location is the adapter-specific address of the raw content,
	// resolvable through a SourceReader.
	Location string
}

// SourceScanner lists the source files of a content tree.
type SourceScanner interface {
	// Scan returns every source file, in a stable order.
	Scan(ctx context.Context) ([]SourceFile, error)
}

// SourceReader reads the raw, uncompiled content of a scanned file.
type SourceReader interface {
	ReadSource(ctx context.Context, location string) ([]byte, error)
}
