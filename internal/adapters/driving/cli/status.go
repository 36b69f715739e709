package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith-cli/internal/core/domain"
	"github.com/sitesmith/sitesmith-cli/pkg/ui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest build run",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	cleanup, err := ensureStack()
	if err != nil {
		return err
	}
	defer cleanup()

	run, err := buildOrchestrator.Status(cmd.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println(ui.FormatMuted("No builds recorded yet."))
			return nil
		}
		return fmt.Errorf("reading build status: %w", err)
	}

	cmd.Println(ui.FormatTitle("Latest build"))
	cmd.Println(ui.RenderKeyValue("Run", run.ID))
	cmd.Println(ui.RenderKeyValue("Finished", run.FinishedAt.Local().Format(time.RFC1123)))
	cmd.Println(ui.RenderKeyValue("Duration", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String()))

	table := ui.NewTable([]ui.TableColumn{
		{Header: "Assets", Align: "right"},
		{Header: "Compiled", Align: "right"},
		{Header: "Skipped", Align: "right"},
		{Header: "Failed", Align: "right"},
	})
	table.AddRow([]string{
		strconv.Itoa(run.Assets),
		strconv.Itoa(run.Compiled),
		strconv.Itoa(run.Skipped),
		strconv.Itoa(run.Failed),
	})
	cmd.Print(table.Render())

	return nil
}
