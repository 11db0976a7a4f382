package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/internal/util"
	"github.com/beamline/tagstore/tagging"
)

var (
	findTagsFlag   []string
	findMinFlag    float64
	findMaxFlag    float64
	findTypeFlag   string
	findLimitFlag  int
	findOffsetFlag int
	findFormatFlag string
)

// FindCmd represents the find command
var FindCmd = &cobra.Command{
	Use:   "find",
	Short: "Query datasets by tag name and confidence",
	Long: `find — Query datasets by tag name and confidence

Matches datasets having at least one tag that satisfies every given
condition: named tag within the confidence range. Bounds without tag
names match any tag in the range.

Examples:
  tagstore find --tag peaks                  # Datasets tagged 'peaks'
  tagstore find --tag peaks --min 0.5        # ... with confidence >= 0.5
  tagstore find --tag peaks --tag rings      # Tagged 'peaks' OR 'rings'
  tagstore find --min 0.9                    # Any tag with confidence >= 0.9
  tagstore find --type file --limit 20`,
	RunE: runFindCommand,
}

func init() {
	FindCmd.Flags().StringArrayVarP(&findTagsFlag, "tag", "t", nil, "Tag name to match (repeatable)")
	FindCmd.Flags().Float64Var(&findMinFlag, "min", 0, "Minimum confidence (inclusive)")
	FindCmd.Flags().Float64Var(&findMaxFlag, "max", 0, "Maximum confidence (inclusive)")
	FindCmd.Flags().StringVar(&findTypeFlag, "type", "", "Dataset type to filter by")
	FindCmd.Flags().IntVarP(&findLimitFlag, "limit", "l", 0, "Maximum number of results (0 uses the configured default)")
	FindCmd.Flags().IntVar(&findOffsetFlag, "offset", 0, "Number of results to skip")
	FindCmd.Flags().StringVarP(&findFormatFlag, "format", "f", "table", "Output format (table/json)")
}

func runFindCommand(cmd *cobra.Command, args []string) error {
	query := tagging.DatasetQuery{
		TagNames:    findTagsFlag,
		DatasetType: findTypeFlag,
		Limit:       findLimitFlag,
		Offset:      findOffsetFlag,
	}
	// Zero is a meaningful bound, so only set bounds the user passed
	if cmd.Flags().Changed("min") {
		query.ConfidenceMin = util.Ptr(findMinFlag)
	}
	if cmd.Flags().Changed("max") {
		query.ConfidenceMax = util.Ptr(findMaxFlag)
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	results, err := svc.FindDatasets(context.Background(), query)
	if err != nil {
		return errors.Wrap(err, "failed to execute query")
	}

	if findFormatFlag == "json" {
		out, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to format results")
		}
		fmt.Println(string(out))
		return nil
	}

	if len(results) == 0 {
		pterm.Info.Println("No matching datasets")
		return nil
	}

	rows := pterm.TableData{{"UID", "URI", "TYPE", "TAGS"}}
	for _, ds := range results {
		rows = append(rows, []string{
			shortUID(ds.UID),
			ds.URI,
			ds.DatasetType,
			strings.Join(ds.TagNames(), ", "),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}
	fmt.Printf("\n%d dataset(s)\n", len(results))
	return nil
}

// shortUID truncates content-hash identifiers for table display.
func shortUID(uid string) string {
	if len(uid) > 12 {
		return uid[:12]
	}
	return uid
}
