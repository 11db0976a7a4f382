package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/ingest"
	"github.com/beamline/tagstore/logger"
	"github.com/beamline/tagstore/tagging"
)

// DatasetCmd represents the dataset command
var DatasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Register datasets and append tags",
	Long: `dataset — Register datasets and append tags

A dataset is a content-addressed record for a file: its uid is the
sha256 of the file contents, so re-registering identical bytes is
rejected rather than duplicated. Tags live inside the dataset record
and each tag names the tagging event that produced it.

Examples:
  tagstore dataset add --file ./scan_07.tiff
  tagstore dataset add --uri s3://runs/scan_07.tiff --uid HASH
  tagstore dataset tag DATASET_UID --name peaks --confidence 0.8 --event EVENT_UID
  tagstore dataset show DATASET_UID`,
}

var datasetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Register a dataset",
	Long:  "Register a dataset from a local file (uid derived from content) or from an explicit URI and uid.",
	RunE:  runDatasetAdd,
}

var datasetTagCmd = &cobra.Command{
	Use:   "tag DATASET_UID",
	Short: "Append a tag to a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetTag,
}

var datasetShowCmd = &cobra.Command{
	Use:   "show DATASET_UID",
	Short: "Show a dataset and its tags",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetShow,
}

var (
	datasetFileFlag string
	datasetURIFlag  string
	datasetUIDFlag  string
	datasetTypeFlag string

	tagNameFlag       string
	tagConfidenceFlag float64
	tagValueFlag      string
	tagEventFlag      string

	datasetShowJSONFlag bool
)

func init() {
	DatasetCmd.AddCommand(datasetAddCmd)
	DatasetCmd.AddCommand(datasetTagCmd)
	DatasetCmd.AddCommand(datasetShowCmd)

	datasetAddCmd.Flags().StringVar(&datasetFileFlag, "file", "", "Local file to ingest (uid computed from content)")
	datasetAddCmd.Flags().StringVar(&datasetURIFlag, "uri", "", "Dataset URI (when not ingesting a local file)")
	datasetAddCmd.Flags().StringVar(&datasetUIDFlag, "uid", "", "Explicit uid (defaults to generated)")
	datasetAddCmd.Flags().StringVar(&datasetTypeFlag, "type", tagging.DatasetTypeFile, "Dataset type")

	datasetTagCmd.Flags().StringVar(&tagNameFlag, "name", "", "Tag name")
	datasetTagCmd.Flags().Float64Var(&tagConfidenceFlag, "confidence", 0, "Tag confidence")
	datasetTagCmd.Flags().StringVar(&tagValueFlag, "value", "", "Optional tag value")
	datasetTagCmd.Flags().StringVar(&tagEventFlag, "event", "", "UID of the tagging event that produced this tag")
	datasetTagCmd.MarkFlagRequired("name")
	datasetTagCmd.MarkFlagRequired("confidence")
	datasetTagCmd.MarkFlagRequired("event")

	datasetShowCmd.Flags().BoolVarP(&datasetShowJSONFlag, "json", "j", false, "Output dataset as JSON")
}

func runDatasetAdd(cmd *cobra.Command, args []string) error {
	if datasetFileFlag == "" && datasetURIFlag == "" {
		return fmt.Errorf("either --file or --uri is required")
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	var ds *tagging.Dataset
	if datasetFileFlag != "" {
		in := ingest.NewIngester(svc, logger.Logger)
		ds, err = in.IngestFile(context.Background(), datasetFileFlag, nil)
	} else {
		ds, err = svc.CreateDataset(context.Background(), &tagging.Dataset{
			UID:         datasetUIDFlag,
			URI:         datasetURIFlag,
			DatasetType: datasetTypeFlag,
		})
	}
	if err != nil {
		if errors.IsDuplicateKey(err) {
			return errors.Wrap(err, "dataset already registered")
		}
		return errors.Wrap(err, "failed to register dataset")
	}

	fmt.Printf("Registered dataset: %s\n", ds.UID)
	fmt.Printf("  URI:  %s\n", ds.URI)
	fmt.Printf("  Type: %s\n", ds.DatasetType)
	return nil
}

func runDatasetTag(cmd *cobra.Command, args []string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	ds, err := svc.AppendTags(context.Background(), args[0], []tagging.Tag{{
		Name:       tagNameFlag,
		Confidence: tagConfidenceFlag,
		Value:      tagValueFlag,
		EventID:    tagEventFlag,
	}})
	if err != nil {
		return errors.Wrap(err, "failed to append tag")
	}

	fmt.Printf("Tagged dataset %s (%d tags)\n", ds.UID, len(ds.Tags))
	return nil
}

func runDatasetShow(cmd *cobra.Command, args []string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	ds, err := svc.GetDataset(context.Background(), args[0])
	if err != nil {
		return err
	}

	if datasetShowJSONFlag {
		out, err := json.MarshalIndent(ds, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to format dataset")
		}
		fmt.Println(string(out))
		return nil
	}

	fmt.Printf("Dataset: %s\n", ds.UID)
	fmt.Printf("  URI:     %s\n", ds.URI)
	fmt.Printf("  Type:    %s\n", ds.DatasetType)
	fmt.Printf("  Created: %s\n", ds.CreatedAt.Format("2006-01-02 15:04:05"))

	if len(ds.Tags) == 0 {
		pterm.Info.Println("No tags")
		return nil
	}

	rows := pterm.TableData{{"NAME", "CONFIDENCE", "VALUE", "EVENT"}}
	for _, tag := range ds.Tags {
		rows = append(rows, []string{
			tag.Name,
			fmt.Sprintf("%.3f", tag.Confidence),
			tag.Value,
			tag.EventID,
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
