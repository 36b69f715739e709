package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith-cli/pkg/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild on source changes",
	Long: `Runs an initial build, then watches the source tree and rebuilds
whenever content changes. Stop with Ctrl-C.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cleanup, err := ensureStack()
	if err != nil {
		return err
	}
	defer cleanup()

	if siteWatcher == nil {
		return errors.New("watch service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Println(ui.FormatInfo("Watching for changes. Press Ctrl-C to stop."))

	if err := siteWatcher.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch failed: %w", err)
	}

	cmd.Println(ui.FormatMuted("Stopped."))
	return nil
}
