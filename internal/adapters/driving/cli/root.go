// Package cli provides the cobra command tree that drives the build
// pipeline.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith-cli/internal/adapters/driven/config/file"
	outputfs "github.com/sitesmith/sitesmith-cli/internal/adapters/driven/output/filesystem"
	sourcefs "github.com/sitesmith/sitesmith-cli/internal/adapters/driven/source/filesystem"
	"github.com/sitesmith/sitesmith-cli/internal/adapters/driven/storage/sqlite"
	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driving"
	"github.com/sitesmith/sitesmith-cli/internal/core/services"
	"github.com/sitesmith/sitesmith-cli/internal/filters"
	"github.com/sitesmith/sitesmith-cli/internal/logger"
	"github.com/sitesmith/sitesmith-cli/internal/reps"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

// buildOrchestrator drives build and status commands. It is wired
// lazily from the site configuration unless already set.
var buildOrchestrator driving.BuildOrchestrator

// siteWatcher drives the watch command.
var siteWatcher driving.Watcher

var rootCmd = &cobra.Command{
	Use:   "sitesmith",
	Short: "Incremental static site compiler",
	Long: `Sitesmith compiles a tree of content files into their output
representations, recompiling only the assets whose sources changed
since the last build.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "site.toml", "path to the site configuration file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ensureStack wires the pipeline from the site configuration. The
// returned cleanup closes the record store. When an orchestrator is
// already set (tests inject one), wiring is skipped.
func ensureStack() (func(), error) {
	if buildOrchestrator != nil {
		return func() {}, nil
	}

	cfg, err := file.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if buildSource != "" {
		cfg.SourceDir = buildSource
	}
	if buildOutput != "" {
		cfg.OutputDir = buildOutput
	}

	store, err := sqlite.NewStore("")
	if err != nil {
		return nil, fmt.Errorf("opening record store: %w", err)
	}

	scanner := sourcefs.NewScanner(cfg.SourceDir)
	writer := outputfs.NewWriter(cfg.OutputDir)
	factory := reps.NewFactory(filters.DefaultRegistry(), scanner, writer, store)

	buildOrchestrator = services.NewBuildService(scanner, cfg, factory, store, cfg.Workers)
	siteWatcher = services.NewWatchService(cfg.SourceDir, buildOrchestrator)

	return func() {
		if err := store.Close(); err != nil {
			logger.Warn("Closing record store: %v", err)
		}
		buildOrchestrator = nil
		siteWatcher = nil
	}, nil
}
