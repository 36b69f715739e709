package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/sitesmith/sitesmith-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.RecordStore = (*Store)(nil)

// Store is a SQLite-backed implementation of driven.RecordStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a record store at the specified data directory.
// If dataDir is empty, defaults to .sitesmith in the working directory.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = ".sitesmith"
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "records.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// GetRecord retrieves the record for one (path, rep) pair.
func (s *Store) GetRecord(ctx context.Context, path, rep string) (*driven.CompileRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT path, rep, output_file, compiled_at, source_mtime, filter_hash
		FROM compile_records WHERE path = ? AND rep = ?
	`, path, rep)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning compile record: %w", err)
	}
	return rec, nil
}

// SaveRecord stores or replaces a compile record.
func (s *Store) SaveRecord(ctx context.Context, rec driven.CompileRecord) error {
	var sourceMtime any
	if rec.SourceModTime != nil {
		sourceMtime = rec.SourceModTime.UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO compile_records (path, rep, output_file, compiled_at, source_mtime, filter_hash)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(path, rep) DO UPDATE SET
			output_file = excluded.output_file,
			compiled_at = excluded.compiled_at,
			source_mtime = excluded.source_mtime,
			filter_hash = excluded.filter_hash
	`, rec.Path, rec.Rep, rec.OutputFile, rec.CompiledAt.UTC(), sourceMtime, rec.FilterHash)

	if err != nil {
		return fmt.Errorf("saving compile record: %w", err)
	}
	return nil
}

// ListRecords returns all compile records ordered by (path, rep).
func (s *Store) ListRecords(ctx context.Context) ([]driven.CompileRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, rep, output_file, compiled_at, source_mtime, filter_hash
		FROM compile_records ORDER BY path, rep
	`)
	if err != nil {
		return nil, fmt.Errorf("listing compile records: %w", err)
	}
	defer rows.Close()

	var records []driven.CompileRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning compile record: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating compile records: %w", err)
	}
	return records, nil
}

// SaveRun stores a completed build run.
func (s *Store) SaveRun(ctx context.Context, run driven.BuildRun) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO build_runs (id, started_at, finished_at, assets, compiled, skipped, failed)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.FinishedAt.UTC(), run.Assets, run.Compiled, run.Skipped, run.Failed)

	if err != nil {
		return fmt.Errorf("saving build run: %w", err)
	}
	return nil
}

// LatestRun retrieves the most recent build run.
func (s *Store) LatestRun(ctx context.Context) (*driven.BuildRun, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, finished_at, assets, compiled, skipped, failed
		FROM build_runs ORDER BY started_at DESC LIMIT 1
	`)

	var run driven.BuildRun
	var started, finished sql.NullTime
	err := row.Scan(&run.ID, &started, &finished, &run.Assets, &run.Compiled, &run.Skipped, &run.Failed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning build run: %w", err)
	}
	if started.Valid {
		run.StartedAt = started.Time
	}
	if finished.Valid {
		run.FinishedAt = finished.Time
	}
	return &run, nil
}

// scanRecord decodes one compile_records row.
func scanRecord(scan func(dest ...any) error) (*driven.CompileRecord, error) {
	var rec driven.CompileRecord
	var compiledAt sql.NullTime
	var sourceMtime sql.NullTime

	if err := scan(&rec.Path, &rec.Rep, &rec.OutputFile, &compiledAt, &sourceMtime, &rec.FilterHash); err != nil {
		return nil, err
	}
	if compiledAt.Valid {
		rec.CompiledAt = compiledAt.Time
	}
	if sourceMtime.Valid {
		t := sourceMtime.Time
		rec.SourceModTime = &t
	}
	return &rec, nil
}
