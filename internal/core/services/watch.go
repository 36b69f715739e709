package services

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driving"
	"github.com/sitesmith/sitesmith-cli/internal/logger"
)

// Ensure WatchService implements the interface.
var _ driving.Watcher = (*WatchService)(nil)

// rebuildRate throttles rebuilds so editor save bursts trigger one build
// instead of one per write event.
var rebuildRate = rate.Every(500 * time.Millisecond)

// WatchService rebuilds the site whenever the source tree changes.
type WatchService struct {
	sourceDir string
	builder   driving.BuildOrchestrator
	limiter   *rate.Limiter
}

// NewWatchService creates a watcher over the source directory.
func NewWatchService(sourceDir string, builder driving.BuildOrchestrator) *WatchService {
	return &WatchService{
		sourceDir: sourceDir,
		builder:   builder,
		limiter:   rate.NewLimiter(rebuildRate, 1),
	}
}

// Watch runs an initial build, then blocks rebuilding on changes until
// the context is cancelled.
func (s *WatchService) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := addRecursive(watcher, s.sourceDir); err != nil {
		return fmt.Errorf("watching %s: %w", s.sourceDir, err)
	}

	if _, err := s.builder.Build(ctx, driving.BuildOptions{}); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}
	logger.Info("Watching %s", s.sourceDir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isContentEvent(event) {
				continue
			}
			// New directories need watching too.
			if event.Op.Has(fsnotify.Create) {
				if err := addRecursive(watcher, event.Name); err != nil {
					logger.Debug("Watch %s: %v", event.Name, err)
				}
			}
			if !s.limiter.Allow() {
				logger.Debug("Rebuild throttled: %s", event.Name)
				continue
			}
			logger.Info("Change detected: %s", event.Name)
			if _, err := s.builder.Build(ctx, driving.BuildOptions{}); err != nil {
				logger.Error("Rebuild failed: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)
		}
	}
}

// isContentEvent filters out events that never need a rebuild.
func isContentEvent(event fsnotify.Event) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	return event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) ||
		event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}

// addRecursive watches a directory and all its visible subdirectories.
// Non-directory paths are ignored.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// The path may have vanished between event and walk.
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
