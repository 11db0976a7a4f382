package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/beamline/tagstore/cmd/tagstore/commands"
	"github.com/beamline/tagstore/logger"
)

var rootCmd = &cobra.Command{
	Use:   "tagstore",
	Short: "Tagstore - Dataset tagging registry",
	Long: `Tagstore - Content-addressed dataset registry with provenance-tracked tags.

Datasets are registered under a content-hash identifier, tagged by
recorded tagging events, and queried by tag name and confidence range.

Available commands:
  source  - Manage tag sources (humans and models)
  event   - Manage tagging events
  dataset - Register datasets and append tags
  find    - Query datasets by tag name and confidence
  db      - Manage database operations
  conf    - Show configuration

Examples:
  tagstore source add --type model --name peak-finder-v2
  tagstore dataset add --file ./scan_07.tiff
  tagstore find --tag peaks --min 0.5
  tagstore db stats`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit structured JSON logs instead of console output")

	rootCmd.AddCommand(commands.SourceCmd)
	rootCmd.AddCommand(commands.EventCmd)
	rootCmd.AddCommand(commands.DatasetCmd)
	rootCmd.AddCommand(commands.FindCmd)
	rootCmd.AddCommand(commands.DbCmd)
	rootCmd.AddCommand(commands.ConfCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
