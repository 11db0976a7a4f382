package commands

import (
	"database/sql"

	"github.com/beamline/tagstore/conf"
	"github.com/beamline/tagstore/db"
	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/logger"
	"github.com/beamline/tagstore/storage"
	"github.com/beamline/tagstore/tagging"
)

// openDatabase opens and migrates a database using the specified path.
// If dbPath is empty, it loads from configuration.
func openDatabase(dbPath string) (*sql.DB, error) {
	if dbPath == "" {
		cfg, err := conf.Load()
		if err != nil {
			return nil, errors.Wrap(err, "failed to load configuration")
		}
		dbPath = cfg.Database.Path
	}

	database, err := db.Open(dbPath, logger.Logger)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open database at %s", dbPath)
	}

	if err := db.Migrate(database, logger.Logger); err != nil {
		database.Close()
		return nil, errors.Wrapf(err, "failed to run migrations on %s", dbPath)
	}

	return database, nil
}

// openService wires the full stack for a command invocation: config,
// database, store, and service. The caller closes the returned database.
func openService() (*tagging.Service, *sql.DB, error) {
	cfg, err := conf.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load configuration")
	}

	database, err := openDatabase(cfg.Database.Path)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewSQLStore(database, logger.Logger)
	planner := tagging.NewPlanner(cfg.Query.DefaultLimit, cfg.Query.MaxLimit)
	return tagging.NewService(store, planner, logger.Logger), database, nil
}
