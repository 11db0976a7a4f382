package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/tagging"
)

// EventCmd represents the event command
var EventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage tagging events",
	Long: `event — Manage tagging events

A tagging event records one run of a tag source: who tagged and when.
Every tag embedded in a dataset points back to the event that produced
it, so tags stay traceable to their provenance.

Examples:
  tagstore event add --tagger SOURCE_UID
  tagstore event add --tagger SOURCE_UID --run-time 2026-02-10T09:30:00Z
  tagstore event list`,
}

var eventAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a tagging event",
	RunE:  runEventAdd,
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tagging events",
	RunE:  runEventList,
}

var (
	eventTaggerFlag  string
	eventRunTimeFlag string
	eventLimitFlag   int
	eventOffsetFlag  int
)

func init() {
	EventCmd.AddCommand(eventAddCmd)
	EventCmd.AddCommand(eventListCmd)

	eventAddCmd.Flags().StringVar(&eventTaggerFlag, "tagger", "", "UID of the tag source that ran")
	eventAddCmd.Flags().StringVar(&eventRunTimeFlag, "run-time", "", "Run timestamp in RFC 3339 (defaults to now)")
	eventAddCmd.MarkFlagRequired("tagger")

	eventListCmd.Flags().IntVarP(&eventLimitFlag, "limit", "l", 100, "Maximum number of results")
	eventListCmd.Flags().IntVar(&eventOffsetFlag, "offset", 0, "Number of results to skip")
}

func runEventAdd(cmd *cobra.Command, args []string) error {
	ev := &tagging.TaggingEvent{TaggerID: eventTaggerFlag}
	if eventRunTimeFlag != "" {
		runTime, err := time.Parse(time.RFC3339, eventRunTimeFlag)
		if err != nil {
			return errors.Wrapf(err, "invalid --run-time %q", eventRunTimeFlag)
		}
		ev.RunTime = runTime
	}

	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	stored, err := svc.CreateTaggingEvent(context.Background(), ev)
	if err != nil {
		return errors.Wrap(err, "failed to create tagging event")
	}

	fmt.Printf("Created tagging event: %s\n", stored.UID)
	fmt.Printf("  Tagger:   %s\n", stored.TaggerID)
	fmt.Printf("  Run time: %s\n", stored.RunTime.Format(time.RFC3339))
	return nil
}

func runEventList(cmd *cobra.Command, args []string) error {
	svc, database, err := openService()
	if err != nil {
		return err
	}
	defer database.Close()

	events, err := svc.ListTaggingEvents(context.Background(), eventLimitFlag, eventOffsetFlag)
	if err != nil {
		return errors.Wrap(err, "failed to list tagging events")
	}

	if len(events) == 0 {
		pterm.Info.Println("No tagging events recorded")
		return nil
	}

	rows := pterm.TableData{{"UID", "TAGGER", "RUN TIME"}}
	for _, ev := range events {
		rows = append(rows, []string{ev.UID, ev.TaggerID, ev.RunTime.Format("2006-01-02 15:04:05")})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
}
