// Package reps provides the file-backed representation collaborator: it
// resolves each representation's output location, decides staleness from
// compile records, and runs the filter chain during compilation.
package reps

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
)

// Ensure the factory and rep implement the domain contracts.
var (
	_ domain.RepresentationFactory = (*Factory)(nil)
	_ domain.Representation        = (*FileRep)(nil)
)

// Factory builds FileRep instances wired to the pipeline's collaborators.
type Factory struct {
	registry driven.FilterRegistry
	reader   driven.SourceReader
	writer   driven.OutputWriter
	records  driven.RecordStore
}

// NewFactory creates a representation factory.
func NewFactory(registry driven.FilterRegistry, reader driven.SourceReader, writer driven.OutputWriter, records driven.RecordStore) *Factory {
	return &Factory{
		registry: registry,
		reader:   reader,
		writer:   writer,
		records:  records,
	}
}

// New constructs the representation for one (asset, name) pair.
func (f *Factory) New(asset *domain.Asset, override map[string]any, name string) domain.Representation {
	return &FileRep{
		asset:    asset,
		override: override,
		name:     name,
		factory:  f,
	}
}

// FileRep is one named output variant of an asset, compiled to a file
// under the output tree.
type FileRep struct {
	asset    *domain.Asset
	override map[string]any
	name     string
	factory  *Factory
}

// Name returns the representation name.
func (r *FileRep) Name() string { return r.name }

// attribute resolves an attribute with the representation's override
// mapping layered above the asset's own fallback chain.
func (r *FileRep) attribute(name string) (any, bool) {
	if v, ok := r.override[name]; ok {
		return v, true
	}
	return r.asset.Attribute(name)
}

// OutputFile returns the site-relative file this representation writes:
// "<path>index.<ext>" for the default representation, "<path><name>.<ext>"
// for named ones.
func (r *FileRep) OutputFile() string {
	ext := "html"
	if v, ok := r.attribute("extension"); ok {
		if s, ok := v.(string); ok && s != "" {
			ext = s
		}
	}
	stem := "index"
	if r.name != domain.DefaultRepName {
		stem = r.name
	}
	return r.asset.Path() + stem + "." + ext
}

// IsOutdated reports whether the representation must be recompiled: no
// compile record exists, the source changed since the recorded compile,
// or the filter chain definition changed.
func (r *FileRep) IsOutdated() bool {
	rec, err := r.factory.records.GetRecord(context.Background(), r.asset.Path(), r.name)
	if err != nil {
		// No record, or a store failure: recompile to be correct.
		return true
	}
	if rec.SourceModTime == nil {
		return true
	}
	if mt := r.asset.ModTime(); mt != nil && mt.After(*rec.SourceModTime) {
		return true
	}
	return rec.FilterHash != r.filterHash()
}

// Compile reads the source content, applies the filter chain and writes
// the output file, then records the compile for future staleness checks.
func (r *FileRep) Compile(ctx context.Context) error {
	source, ok := r.asset.Source().(*driven.SourceFile)
	if !ok {
		return fmt.Errorf("rep %s: source handle is %T, want *driven.SourceFile", r.name, r.asset.Source())
	}

	content, err := r.factory.reader.ReadSource(ctx, source.Location)
	if err != nil {
		return fmt.Errorf("rep %s: read source: %w", r.name, err)
	}

	if !r.binary() {
		for _, name := range r.filterNames() {
			filter, err := r.factory.registry.Get(name)
			if err != nil {
				return fmt.Errorf("rep %s: %w", r.name, err)
			}
			content, err = filter.Apply(ctx, content)
			if err != nil {
				return fmt.Errorf("rep %s: filter %s: %w", r.name, name, err)
			}
		}
	}

	outputFile := r.OutputFile()
	if err := r.factory.writer.WriteOutput(ctx, outputFile, content); err != nil {
		return fmt.Errorf("rep %s: write output: %w", r.name, err)
	}

	rec := driven.CompileRecord{
		Path:          r.asset.Path(),
		Rep:           r.name,
		OutputFile:    outputFile,
		CompiledAt:    time.Now().UTC(),
		SourceModTime: r.asset.ModTime(),
		FilterHash:    r.filterHash(),
	}
	if err := r.factory.records.SaveRecord(ctx, rec); err != nil {
		return fmt.Errorf("rep %s: save record: %w", r.name, err)
	}
	return nil
}

// binary reports whether filtering is skipped for this representation.
func (r *FileRep) binary() bool {
	v, ok := r.attribute("binary")
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// filterNames resolves the representation's filter chain. Both []string
// and []any-of-strings are accepted since attribute values arrive from
// YAML and TOML decoding.
func (r *FileRep) filterNames() []string {
	v, ok := r.attribute("filters")
	if !ok {
		return nil
	}
	switch names := v.(type) {
	case []string:
		return names
	case []any:
		out := make([]string, 0, len(names))
		for _, n := range names {
			if s, ok := n.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// filterHash fingerprints the resolved filter chain and extension.
func (r *FileRep) filterHash() string {
	recipe := strings.Join(r.filterNames(), "\n") + "\x00" + r.OutputFile()
	sum := sha256.Sum256([]byte(recipe))
	return hex.EncodeToString(sum[:])
}
