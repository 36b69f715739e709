package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sitesmith/sitesmith-cli/internal/canonical"
	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driven"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driving"
	"github.com/sitesmith/sitesmith-cli/internal/logger"
)

// Ensure BuildService implements the interface.
var _ driving.BuildOrchestrator = (*BuildService)(nil)

// defaultWorkers bounds concurrent asset compilation when the caller
// does not specify a pool size.
const defaultWorkers = 4

// BuildService coordinates one build pass: scan the source tree,
// construct an asset per source file, build each asset's representation
// set, then compile the outdated assets on a bounded worker pool.
//
// Per the asset contract, one asset's full lifecycle stays on a single
// goroutine; the pool parallelises across assets only.
type BuildService struct {
	scanner driven.SourceScanner
	site    domain.SiteDefaults
	factory domain.RepresentationFactory
	records driven.RecordStore
	workers int
}

// NewBuildService creates a build orchestrator.
func NewBuildService(
	scanner driven.SourceScanner,
	site domain.SiteDefaults,
	factory domain.RepresentationFactory,
	records driven.RecordStore,
	workers int,
) *BuildService {
	if workers <= 0 {
		workers = defaultWorkers
	}
	return &BuildService{
		scanner: scanner,
		site:    site,
		factory: factory,
		records: records,
		workers: workers,
	}
}

// Build runs one pass over the source tree.
func (s *BuildService) Build(ctx context.Context, opts driving.BuildOptions) (*driving.BuildResult, error) {
	started := time.Now().UTC()

	files, err := s.scanner.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("scanning sources: %w", err)
	}
	logger.Info("Scanned %d source files", len(files))

	assets, results := s.buildAssets(files)
	compiled := s.compileConcurrently(ctx, assets, opts)
	results = append(results, compiled...)

	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })

	run := driven.BuildRun{
		ID:         uuid.NewString(),
		StartedAt:  started,
		FinishedAt: time.Now().UTC(),
		Assets:     len(files),
	}
	for _, r := range results {
		switch {
		case r.Err != nil:
			run.Failed++
		case r.Compiled:
			run.Compiled++
		default:
			run.Skipped++
		}
	}

	if err := s.records.SaveRun(ctx, run); err != nil {
		logger.Warn("Recording build run failed: %v", err)
	}
	logger.Info("Build %s: %d compiled, %d skipped, %d failed", run.ID, run.Compiled, run.Skipped, run.Failed)

	return &driving.BuildResult{
		Run:      run,
		Results:  results,
		Duration: run.FinishedAt.Sub(run.StartedAt),
	}, nil
}

// Status returns the latest recorded build run.
func (s *BuildService) Status(ctx context.Context) (*driven.BuildRun, error) {
	return s.records.LatestRun(ctx)
}

// buildAssets constructs assets and their representation sets. Files
// whose representation spec is malformed become failed results instead
// of aborting the pass.
func (s *BuildService) buildAssets(files []driven.SourceFile) ([]*domain.Asset, []driving.AssetResult) {
	assets := make([]*domain.Asset, 0, len(files))
	var failed []driving.AssetResult

	for i := range files {
		file := &files[i]
		asset := domain.NewAsset(file, file.RawAttributes, file.RawPath, file.ModTime, s.site, canonical.CleanAttributes, canonical.CleanPath)
		if err := asset.BuildReps(s.factory); err != nil {
			logger.Warn("Asset %s: %v", asset.Path(), err)
			failed = append(failed, driving.AssetResult{Path: asset.Path(), Err: err})
			continue
		}
		assets = append(assets, asset)
	}
	return assets, failed
}

// compileConcurrently fans assets out to a bounded worker pool and
// collects per-asset results.
func (s *BuildService) compileConcurrently(ctx context.Context, assets []*domain.Asset, opts driving.BuildOptions) []driving.AssetResult {
	workers := opts.Workers
	if workers <= 0 {
		workers = s.workers
	}

	jobs := make(chan *domain.Asset, len(assets))
	results := make(chan driving.AssetResult, len(assets))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.worker(ctx, jobs, results, opts.Force)
		}()
	}

	for _, asset := range assets {
		jobs <- asset
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]driving.AssetResult, 0, len(assets))
	for result := range results {
		collected = append(collected, result)
	}
	return collected
}

// worker processes one asset at a time: staleness check, then compile.
func (s *BuildService) worker(ctx context.Context, jobs <-chan *domain.Asset, results chan<- driving.AssetResult, force bool) {
	for asset := range jobs {
		select {
		case <-ctx.Done():
			results <- driving.AssetResult{Path: asset.Path(), Reps: len(asset.Reps()), Err: ctx.Err()}
			continue
		default:
		}

		result := driving.AssetResult{Path: asset.Path(), Reps: len(asset.Reps())}

		outdated, err := asset.IsOutdated()
		if err != nil {
			result.Err = err
			results <- result
			continue
		}
		if !outdated && !force {
			logger.Debug("Up to date: %s", asset.Path())
			results <- result
			continue
		}

		if err := asset.Compile(ctx); err != nil {
			logger.Warn("Compile %s: %v", asset.Path(), err)
			result.Err = err
		} else {
			result.Compiled = true
			logger.Debug("Compiled: %s", asset.Path())
		}
		results <- result
	}
}
