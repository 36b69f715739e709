package reps

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith-cli/internal/adapters/driven/storage/memory"
	"github.com/sitesmith/sitesmith-cli/internal/canonical"
	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
	"github.com/sitesmith/sitesmith-cli/internal/filters"
)

// --- Mock collaborators ---

// mockReader implements driven.SourceReader from a fixed byte map.
type mockReader struct {
	content map[string][]byte
	err     error
}

func (m *mockReader) ReadSource(_ context.Context, location string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	data, ok := m.content[location]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// mockWriter implements driven.OutputWriter and records writes.
type mockWriter struct {
	written map[string][]byte
	err     error
}

func newMockWriter() *mockWriter {
	return &mockWriter{written: make(map[string][]byte)}
}

func (m *mockWriter) WriteOutput(_ context.Context, file string, data []byte) error {
	if m.err != nil {
		return m.err
	}
	m.written[file] = data
	return nil
}

type fixture struct {
	factory *Factory
	reader  *mockReader
	writer  *mockWriter
	records *memory.RecordStore
}

func newFixture() *fixture {
	reader := &mockReader{content: map[string][]byte{
		"src/one.md": []byte("---\ntitle: One\n---\nit's \"done\"\n"),
	}}
	writer := newMockWriter()
	records := memory.NewRecordStore()
	return &fixture{
		factory: NewFactory(filters.DefaultRegistry(), reader, writer, records),
		reader:  reader,
		writer:  writer,
		records: records,
	}
}

func sourceAsset(attrs map[string]any, modTime *time.Time, site domain.SiteDefaults) *domain.Asset {
	source := &driven.SourceFile{
		RawPath:       "items/one",
		RawAttributes: attrs,
		ModTime:       modTime,
		Location:      "src/one.md",
	}
	return domain.NewAsset(source, attrs, source.RawPath, modTime, site, canonical.CleanAttributes, canonical.CleanPath)
}

func mtime(hour int) *time.Time {
	t := time.Date(2026, 5, 2, hour, 0, 0, 0, time.UTC)
	return &t
}

// TestFileRep_OutputFile covers the output layout for default and named
// representations.
func TestFileRep_OutputFile(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(map[string]any{
		"reps": map[string]any{
			"print": map[string]any{"extension": "pdf"},
		},
	}, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))

	reps := asset.Reps()
	require.Len(t, reps, 2)

	defaultRep := reps[0].(*FileRep)
	printRep := reps[1].(*FileRep)
	assert.Equal(t, "/items/one/index.html", defaultRep.OutputFile())
	assert.Equal(t, "/items/one/print.pdf", printRep.OutputFile())
}

// TestFileRep_OverrideShadowsAssetAttributes verifies the rep override
// layers above the asset's chain.
func TestFileRep_OverrideShadowsAssetAttributes(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(map[string]any{
		"extension": "txt",
		"reps": map[string]any{
			"alt": map[string]any{"extension": "xml"},
		},
	}, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))

	alt := asset.Reps()[0].(*FileRep)
	assert.Equal(t, "/items/one/alt.xml", alt.OutputFile())

	defaultRep := asset.Reps()[1].(*FileRep)
	assert.Equal(t, "/items/one/index.txt", defaultRep.OutputFile())
}

// TestFileRep_CompileAppliesFilters verifies the filter chain runs in
// order and output plus record are written.
func TestFileRep_CompileAppliesFilters(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(map[string]any{
		"filters": []string{"frontmatter", "smartquotes"},
	}, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))

	require.NoError(t, asset.Compile(context.Background()))

	out, ok := f.writer.written["/items/one/index.html"]
	require.True(t, ok)
	assert.Equal(t, "it’s “done”\n", string(out))

	rec, err := f.records.GetRecord(context.Background(), "/items/one/", "default")
	require.NoError(t, err)
	assert.Equal(t, "/items/one/index.html", rec.OutputFile)
	require.NotNil(t, rec.SourceModTime)
	assert.Equal(t, *mtime(9), *rec.SourceModTime)
}

// TestFileRep_CompileBinarySkipsFilters verifies binary assets bypass
// the filter chain.
func TestFileRep_CompileBinarySkipsFilters(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(map[string]any{
		"binary":  true,
		"filters": []string{"frontmatter"},
	}, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))

	require.NoError(t, asset.Compile(context.Background()))

	out := f.writer.written["/items/one/index.html"]
	assert.Equal(t, "---\ntitle: One\n---\nit's \"done\"\n", string(out))
}

// TestFileRep_CompileUnknownFilter verifies the error surfaces.
func TestFileRep_CompileUnknownFilter(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(map[string]any{
		"filters": []string{"minify"},
	}, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))

	err := asset.Compile(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownFilter)
	assert.Empty(t, f.writer.written)
}

// TestFileRep_CompileReadFailure verifies source errors propagate.
func TestFileRep_CompileReadFailure(t *testing.T) {
	f := newFixture()
	f.reader.err = errors.New("disk gone")
	asset := sourceAsset(nil, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))

	err := asset.Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

// TestFileRep_IsOutdated covers the staleness decision.
func TestFileRep_IsOutdated(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(nil, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))
	rep := asset.Reps()[0].(*FileRep)

	// Never compiled: outdated.
	assert.True(t, rep.IsOutdated())

	require.NoError(t, asset.Compile(context.Background()))

	// Freshly compiled: up to date.
	assert.False(t, rep.IsOutdated())

	// Newer source: outdated again.
	newer := sourceAsset(nil, mtime(11), nil)
	require.NoError(t, newer.BuildReps(f.factory))
	assert.True(t, newer.Reps()[0].IsOutdated())

	// Unchanged source: still fresh.
	same := sourceAsset(nil, mtime(9), nil)
	require.NoError(t, same.BuildReps(f.factory))
	assert.False(t, same.Reps()[0].IsOutdated())
}

// TestFileRep_IsOutdated_FilterChange verifies a definition change forces
// recompilation even with an unchanged source.
func TestFileRep_IsOutdated_FilterChange(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(nil, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))
	require.NoError(t, asset.Compile(context.Background()))

	changed := sourceAsset(map[string]any{
		"filters": []string{"smartquotes"},
	}, mtime(9), nil)
	require.NoError(t, changed.BuildReps(f.factory))
	assert.True(t, changed.Reps()[0].IsOutdated())
}

// TestFileRep_IsOutdated_RecordedUnknownModTime verifies a record with no
// source mtime always counts as stale.
func TestFileRep_IsOutdated_RecordedUnknownModTime(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(nil, nil, nil)
	require.NoError(t, asset.BuildReps(f.factory))
	require.NoError(t, asset.Compile(context.Background()))

	assert.True(t, asset.Reps()[0].IsOutdated())
}

// TestAsset_EndToEndStaleness ties the asset-level decision to the rep's.
func TestAsset_EndToEndStaleness(t *testing.T) {
	f := newFixture()
	asset := sourceAsset(nil, mtime(9), nil)
	require.NoError(t, asset.BuildReps(f.factory))

	outdated, err := asset.IsOutdated()
	require.NoError(t, err)
	assert.True(t, outdated)

	require.NoError(t, asset.Compile(context.Background()))

	rebuilt := sourceAsset(nil, mtime(9), nil)
	require.NoError(t, rebuilt.BuildReps(f.factory))
	outdated, err = rebuilt.IsOutdated()
	require.NoError(t, err)
	assert.False(t, outdated)
}
