package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
)

func testRecord(path, rep string) driven.CompileRecord {
	mt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	return driven.CompileRecord{
		Path:          path,
		Rep:           rep,
		OutputFile:    path + rep + ".html",
		CompiledAt:    time.Date(2026, 2, 1, 12, 5, 0, 0, time.UTC),
		SourceModTime: &mt,
		FilterHash:    "abc123",
	}
}

// TestRecordStore_SaveAndGet covers round-tripping a record.
func TestRecordStore_SaveAndGet(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	rec := testRecord("/blog/one/", "default")
	require.NoError(t, store.SaveRecord(ctx, rec))

	got, err := store.GetRecord(ctx, "/blog/one/", "default")
	require.NoError(t, err)
	assert.Equal(t, rec, *got)
}

// TestRecordStore_GetMissing verifies the not-found sentinel.
func TestRecordStore_GetMissing(t *testing.T) {
	store := NewRecordStore()

	_, err := store.GetRecord(context.Background(), "/blog/one/", "default")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRecordStore_SaveReplaces verifies upsert semantics.
func TestRecordStore_SaveReplaces(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	rec := testRecord("/blog/one/", "default")
	require.NoError(t, store.SaveRecord(ctx, rec))

	rec.FilterHash = "updated"
	require.NoError(t, store.SaveRecord(ctx, rec))

	got, err := store.GetRecord(ctx, "/blog/one/", "default")
	require.NoError(t, err)
	assert.Equal(t, "updated", got.FilterHash)

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// TestRecordStore_ListOrdered verifies deterministic listing.
func TestRecordStore_ListOrdered(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	require.NoError(t, store.SaveRecord(ctx, testRecord("/b/", "default")))
	require.NoError(t, store.SaveRecord(ctx, testRecord("/a/", "print")))
	require.NoError(t, store.SaveRecord(ctx, testRecord("/a/", "default")))

	records, err := store.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "/a/", records[0].Path)
	assert.Equal(t, "default", records[0].Rep)
	assert.Equal(t, "print", records[1].Rep)
	assert.Equal(t, "/b/", records[2].Path)
}

// TestRecordStore_Runs covers run history.
func TestRecordStore_Runs(t *testing.T) {
	store := NewRecordStore()
	ctx := context.Background()

	_, err := store.LatestRun(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first := driven.BuildRun{ID: "run-1", Assets: 3, Compiled: 3}
	second := driven.BuildRun{ID: "run-2", Assets: 3, Compiled: 1, Skipped: 2}
	require.NoError(t, store.SaveRun(ctx, first))
	require.NoError(t, store.SaveRun(ctx, second))

	latest, err := store.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "run-2", latest.ID)
}
