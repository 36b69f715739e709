// Package memory provides in-memory implementations of the storage
// ports, used by tests and by watch mode when persistence is not wanted.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[recordKey]driven.CompileRecord
	runs    []driven.BuildRun
}

type recordKey struct {
	path string
	rep  string
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[recordKey]driven.CompileRecord),
	}
}

// GetRecord retrieves the record for one (path, rep) pair.
func (s *RecordStore) GetRecord(_ context.Context, path, rep string) (*driven.CompileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[recordKey{path: path, rep: rep}]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

// SaveRecord stores or replaces a compile record.
func (s *RecordStore) SaveRecord(_ context.Context, rec driven.CompileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[recordKey{path: rec.Path, rep: rec.Rep}] = rec
	return nil
}

// ListRecords returns all compile records, ordered by (path, rep).
func (s *RecordStore) ListRecords(_ context.Context) ([]driven.CompileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]driven.CompileRecord, 0, len(s.records))
	for _, rec := range s.records {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Path != records[j].Path {
			return records[i].Path < records[j].Path
		}
		return records[i].Rep < records[j].Rep
	})
	return records, nil
}

// SaveRun stores a completed build run.
func (s *RecordStore) SaveRun(_ context.Context, run driven.BuildRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, run)
	return nil
}

// LatestRun retrieves the most recent build run.
func (s *RecordStore) LatestRun(_ context.Context) (*driven.BuildRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	run := s.runs[len(s.runs)-1]
	return &run, nil
}
