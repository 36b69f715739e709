package cli

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith-cli/internal/adapters/driven/config/file"
	"github.com/sitesmith/sitesmith-cli/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective site configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	cmd.Println(ui.FormatTitle("Site configuration"))
	cmd.Println(ui.RenderKeyValue("Config file", configPath))
	cmd.Println(ui.RenderKeyValue("Source dir", cfg.SourceDir))
	cmd.Println(ui.RenderKeyValue("Output dir", cfg.OutputDir))
	cmd.Println(ui.RenderKeyValue("Workers", strconv.Itoa(cfg.Workers)))

	attrs := cfg.Attributes()
	if len(attrs) == 0 {
		cmd.Println(ui.FormatMuted("No site-wide default attributes."))
		return nil
	}

	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Println(ui.FormatTitle("Default attributes"))
	for _, k := range keys {
		cmd.Println(ui.RenderKeyValue(k, fmt.Sprintf("%v", attrs[k])))
	}
	return nil
}
