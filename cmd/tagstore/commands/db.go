package commands

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/beamline/tagstore/conf"
	"github.com/beamline/tagstore/errors"
)

// DbCmd represents the db (database) command
var DbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage tagstore database",
	Long: `db — Manage tagstore database operations

Examples:
  tagstore db migrate             # Apply pending schema migrations
  tagstore db stats               # Show record counts`,
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE:  runDbMigrate,
}

var dbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE:  runDbStats,
}

func init() {
	DbCmd.AddCommand(dbMigrateCmd)
	DbCmd.AddCommand(dbStatsCmd)
}

func runDbMigrate(cmd *cobra.Command, args []string) error {
	database, err := openDatabase("")
	if err != nil {
		return err
	}
	defer database.Close()

	fmt.Println("Database schema is up to date")
	return nil
}

func runDbStats(cmd *cobra.Command, args []string) error {
	cfg, err := conf.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer database.Close()

	var sources, events, datasets, tags int
	err = database.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM tag_sources),
			(SELECT COUNT(*) FROM tagging_events),
			(SELECT COUNT(*) FROM datasets),
			(SELECT COALESCE(SUM(json_array_length(tags)), 0) FROM datasets)
	`).Scan(&sources, &events, &datasets, &tags)
	if err != nil && err != sql.ErrNoRows {
		return errors.Wrap(err, "failed to query database statistics")
	}

	fmt.Printf("Database Statistics\n")
	fmt.Printf("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")
	fmt.Printf("Database Path:   %s\n", cfg.Database.Path)
	fmt.Printf("Tag Sources:     %d\n", sources)
	fmt.Printf("Tagging Events:  %d\n", events)
	fmt.Printf("Datasets:        %d\n", datasets)
	fmt.Printf("Embedded Tags:   %d\n", tags)
	return nil
}
