package commands

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/tagging"
)

// SourceCmd represents the source command
var SourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage tag sources",
	Long: `source — Manage tag sources

A tag source is a tagging authority: a human annotator or a model.
Every tagging event must name a registered source as its tagger.

Examples:
  tagstore source add --type human --name alice
  tagstore source add --type model --name peak-finder-v2
  tagstore source list`,
}

var sourceAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a tag source",
	RunE:  runSourceAdd,
}

var sourceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered tag sources",
	RunE:  runSourceList,
}

var (
	sourceTypeFlag   string
	sourceNameFlag   string
	sourceLimitFlag  int
	sourceOffsetFlag int
)

func init() {
	SourceCmd.AddCommand(sourceAddCmd)
	SourceCmd.AddCommand(sourceListCmd)

	sourceAddCmd.Flags().StringVar(&sourceTypeFlag, "type", "", "Source type (human or model)")
	sourceAddCmd.Flags().StringVar(&sourceNameFlag, "name", "", "Source name")
	sourceAddCmd.MarkFlagRequired("type")
	sourceAddCmd.MarkFlagRequired("name")

	sourceListCmd.Flags().IntVarP(&sourceLimitFlag, "limit", "l", 100, "Maximum number of results")
	sourceListCmd.Flags().IntVar(&sourceOffsetFlag, "offset", 0, "Number of results to skip")
}

func runSourceAdd(cmd *cobra.Command, args []string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	src, err := svc.CreateTagSource(context.Background(), &tagging.TagSource{
		Type: sourceTypeFlag,
		Name: sourceNameFlag,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create tag source")
	}

	fmt.Printf("Created tag source: %s\n", src.UID)
	fmt.Printf("  Type: %s\n", src.Type)
	fmt.Printf("  Name: %s\n", src.Name)
	return nil
}

func runSourceList(cmd *cobra.Command, args []string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	sources, err := svc.ListTagSources(context.Background(), sourceLimitFlag, sourceOffsetFlag)
	if err != nil {
		return errors.Wrap(err, "failed to list tag sources")
	}

	if len(sources) == 0 {
		pterm.Info.Println("No tag sources registered")
		return nil
	}

	rows := pterm.TableData{{"UID", "TYPE", "NAME", "CREATED"}}
	for _, s := range sources {
		rows = append(rows, []string{s.UID, s.Type, s.Name, s.CreatedAt.Format("2006-01-02 15:04:05")})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
