// Package storage provides the store implementations backing the
// tagging registry: a SQLite store for production and an in-memory
// store for tests. It handles JSON serialization of embedded tags and
// query construction; callers interact through the tagging.Store
// contract only.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/beamline/tagstore/db"
	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/tagging"
)

// Query constants
const (
	tagSourceInsertQuery = `
		INSERT INTO tag_sources (uid, type, name, created_at)
		VALUES (?, ?, ?, ?)`

	tagSourceSelectQuery = `
		SELECT uid, type, name, created_at FROM tag_sources`

	tagSourceExistsQuery = `
		SELECT EXISTS(SELECT 1 FROM tag_sources WHERE uid = ?)`

	taggingEventInsertQuery = `
		INSERT INTO tagging_events (uid, tagger_id, run_time, created_at)
		VALUES (?, ?, ?, ?)`

	taggingEventSelectQuery = `
		SELECT uid, tagger_id, run_time, created_at FROM tagging_events`

	taggingEventExistsQuery = `
		SELECT EXISTS(SELECT 1 FROM tagging_events WHERE uid = ?)`

	datasetInsertQuery = `
		INSERT INTO datasets (uid, uri, dataset_type, tags, created_at)
		VALUES (?, ?, ?, ?, ?)`

	datasetSelectQuery = `
		SELECT uid, uri, dataset_type, tags, created_at FROM datasets`

	datasetUpdateTagsQuery = `
		UPDATE datasets SET tags = ? WHERE uid = ?`

	datasetDeleteQuery = `
		DELETE FROM datasets WHERE uid = ?`
)

// SQLStore implements the tagging.Store interface with a SQLite backend.
// Embedded tags persist as a JSON array in the datasets.tags column;
// element matches compile to json_each subqueries.
type SQLStore struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewSQLStore creates a new SQL-backed registry store.
// A nil logger disables store-level logging.
func NewSQLStore(database *sql.DB, logger *zap.SugaredLogger) *SQLStore {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SQLStore{
		db:     database,
		logger: logger,
	}
}

func (s *SQLStore) InsertTagSource(ctx context.Context, src *tagging.TagSource) error {
	_, err := s.db.ExecContext(ctx, tagSourceInsertQuery,
		src.UID, src.Type, src.Name, src.CreatedAt)
	return db.MapError(err, "insert tag source", "tag_source", src.UID)
}

func (s *SQLStore) GetTagSource(ctx context.Context, uid string) (*tagging.TagSource, error) {
	var src tagging.TagSource
	err := s.db.QueryRowContext(ctx, tagSourceSelectQuery+" WHERE uid = ?", uid).
		Scan(&src.UID, &src.Type, &src.Name, &src.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("tag_source", uid)
	}
	if err != nil {
		return nil, db.MapError(err, "get tag source", "tag_source", uid)
	}
	return &src, nil
}

func (s *SQLStore) TagSourceExists(ctx context.Context, uid string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, tagSourceExistsQuery, uid).Scan(&exists)
	if err != nil {
		return false, db.MapError(err, "check tag source exists", "tag_source", uid)
	}
	return exists, nil
}

func (s *SQLStore) ListTagSources(ctx context.Context, page tagging.Page) ([]*tagging.TagSource, error) {
	rows, err := s.db.QueryContext(ctx,
		tagSourceSelectQuery+" ORDER BY created_at, uid LIMIT ? OFFSET ?",
		page.Limit, page.Offset)
	if err != nil {
		return nil, db.MapError(err, "list tag sources", "tag_source", "")
	}
	defer rows.Close()

	var sources []*tagging.TagSource
	for rows.Next() {
		var src tagging.TagSource
		if err := rows.Scan(&src.UID, &src.Type, &src.Name, &src.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan tag source")
		}
		sources = append(sources, &src)
	}
	return sources, rows.Err()
}

func (s *SQLStore) InsertTaggingEvent(ctx context.Context, ev *tagging.TaggingEvent) error {
	_, err := s.db.ExecContext(ctx, taggingEventInsertQuery,
		ev.UID, ev.TaggerID, ev.RunTime, ev.CreatedAt)
	return db.MapError(err, "insert tagging event", "tagging_event", ev.UID)
}

func (s *SQLStore) GetTaggingEvent(ctx context.Context, uid string) (*tagging.TaggingEvent, error) {
	var ev tagging.TaggingEvent
	err := s.db.QueryRowContext(ctx, taggingEventSelectQuery+" WHERE uid = ?", uid).
		Scan(&ev.UID, &ev.TaggerID, &ev.RunTime, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("tagging_event", uid)
	}
	if err != nil {
		return nil, db.MapError(err, "get tagging event", "tagging_event", uid)
	}
	return &ev, nil
}

func (s *SQLStore) TaggingEventExists(ctx context.Context, uid string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx, taggingEventExistsQuery, uid).Scan(&exists)
	if err != nil {
		return false, db.MapError(err, "check tagging event exists", "tagging_event", uid)
	}
	return exists, nil
}

func (s *SQLStore) ListTaggingEvents(ctx context.Context, page tagging.Page) ([]*tagging.TaggingEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		taggingEventSelectQuery+" ORDER BY created_at, uid LIMIT ? OFFSET ?",
		page.Limit, page.Offset)
	if err != nil {
		return nil, db.MapError(err, "list tagging events", "tagging_event", "")
	}
	defer rows.Close()

	var events []*tagging.TaggingEvent
	for rows.Next() {
		var ev tagging.TaggingEvent
		if err := rows.Scan(&ev.UID, &ev.TaggerID, &ev.RunTime, &ev.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan tagging event")
		}
		events = append(events, &ev)
	}
	return events, rows.Err()
}

func (s *SQLStore) InsertDataset(ctx context.Context, ds *tagging.Dataset) error {
	tagsJSON, err := marshalTags(ds.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, datasetInsertQuery,
		ds.UID, ds.URI, ds.DatasetType, tagsJSON, ds.CreatedAt)
	if err != nil {
		return db.MapError(err, "insert dataset", "dataset", ds.UID)
	}

	s.logger.Debugw("dataset inserted",
		"uid", ds.UID,
		"tags", len(ds.Tags),
	)
	return nil
}

func (s *SQLStore) GetDataset(ctx context.Context, uid string) (*tagging.Dataset, error) {
	row := s.db.QueryRowContext(ctx, datasetSelectQuery+" WHERE uid = ?", uid)
	ds, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError("dataset", uid)
	}
	if err != nil {
		return nil, db.MapError(err, "get dataset", "dataset", uid)
	}
	return ds, nil
}

func (s *SQLStore) UpdateDatasetTags(ctx context.Context, uid string, tags []tagging.Tag) error {
	tagsJSON, err := marshalTags(tags)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, datasetUpdateTagsQuery, tagsJSON, uid)
	if err != nil {
		return db.MapError(err, "update dataset tags", "dataset", uid)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "update dataset tags")
	}
	if affected == 0 {
		return errors.NewNotFoundError("dataset", uid)
	}
	return nil
}

func (s *SQLStore) DeleteDataset(ctx context.Context, uid string) error {
	result, err := s.db.ExecContext(ctx, datasetDeleteQuery, uid)
	if err != nil {
		return db.MapError(err, "delete dataset", "dataset", uid)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete dataset")
	}
	if affected == 0 {
		return errors.NewNotFoundError("dataset", uid)
	}
	return nil
}

func (s *SQLStore) FindDatasets(ctx context.Context, filter tagging.Filter, page tagging.Page) ([]*tagging.Dataset, error) {
	query, args := buildDatasetQuery(filter, page)

	s.logger.Debugw("executing dataset query",
		"query", query,
		"args", args,
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, db.MapError(err, "find datasets", "dataset", "")
	}
	defer rows.Close()

	var datasets []*tagging.Dataset
	for rows.Next() {
		ds, err := scanDataset(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan dataset")
		}
		datasets = append(datasets, ds)
	}
	return datasets, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDataset(row rowScanner) (*tagging.Dataset, error) {
	var ds tagging.Dataset
	var tagsJSON string
	if err := row.Scan(&ds.UID, &ds.URI, &ds.DatasetType, &tagsJSON, &ds.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &ds.Tags); err != nil {
		return nil, errors.Wrapf(err, "unmarshal tags for dataset %q", ds.UID)
	}
	return &ds, nil
}

func marshalTags(tags []tagging.Tag) (string, error) {
	if tags == nil {
		tags = []tagging.Tag{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "", errors.Wrap(err, "marshal tags")
	}
	return string(data), nil
}
