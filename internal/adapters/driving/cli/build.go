package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith-cli/internal/core/ports/driving"
	"github.com/sitesmith/sitesmith-cli/pkg/ui"
)

var (
	buildForce   bool
	buildWorkers int
	buildSource  string
	buildOutput  string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Compile changed assets",
	Long: `Scans the source tree and compiles every representation of every
asset that is out of date. Use --force to recompile everything.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "recompile assets even when up to date")
	buildCmd.Flags().IntVarP(&buildWorkers, "workers", "w", 0, "number of concurrent workers (0 uses the configured value)")
	buildCmd.Flags().StringVarP(&buildSource, "source", "s", "", "source directory (overrides the configured value)")
	buildCmd.Flags().StringVarP(&buildOutput, "output", "o", "", "output directory (overrides the configured value)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, _ []string) error {
	cleanup, err := ensureStack()
	if err != nil {
		return err
	}
	defer cleanup()

	result, err := buildOrchestrator.Build(cmd.Context(), driving.BuildOptions{
		Force:   buildForce,
		Workers: buildWorkers,
	})
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	cmd.Printf("%s\n", ui.FormatSuccess(fmt.Sprintf(
		"Built %d assets in %s: %d compiled, %d skipped, %d failed",
		result.Run.Assets, result.Duration.Round(time.Millisecond),
		result.Run.Compiled, result.Run.Skipped, result.Run.Failed)))

	for _, r := range result.Results {
		if r.Err != nil {
			cmd.Printf("%s\n", ui.FormatError(fmt.Sprintf("%s: %v", r.Path, r.Err)))
		}
	}

	if result.Run.Failed > 0 {
		return fmt.Errorf("%d assets failed to compile", result.Run.Failed)
	}
	return nil
}
