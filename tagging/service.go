package tagging

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/logger"
)

// Service orchestrates the tagging registry: it validates entities,
// fills in defaulted identifiers and timestamps, enforces cross-entity
// references, and delegates persistence to an injected Store.
//
// The service is stateless between calls; concurrency safety is
// delegated to the store's per-record atomicity. It performs no
// automatic retries: a store failure surfaces as ErrStoreUnavailable
// and retry policy belongs to the caller.
type Service struct {
	store   Store
	planner *Planner
	log     *zap.SugaredLogger

	// overridable for deterministic tests
	now    func() time.Time
	newUID func() string
}

// NewService creates a tagging service over the given store. A nil
// planner gets registry defaults; a nil logger logs nothing.
func NewService(store Store, planner *Planner, log *zap.SugaredLogger) *Service {
	if planner == nil {
		planner = NewPlanner(0, 0)
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Service{
		store:   store,
		planner: planner,
		log:     log,
		now:     time.Now,
		newUID:  NewUID,
	}
}

// CreateTagSource validates the source, assigns a uid if absent,
// persists it, and returns the stored record.
func (s *Service) CreateTagSource(ctx context.Context, src *TagSource) (*TagSource, error) {
	if err := ValidateTagSource(src); err != nil {
		return nil, err
	}

	stored := *src
	if stored.UID == "" {
		stored.UID = s.newUID()
	}
	stored.CreatedAt = s.now()

	if err := s.store.InsertTagSource(ctx, &stored); err != nil {
		return nil, err
	}

	s.log.Infow("tag source created",
		logger.FieldSourceID, stored.UID,
		"type", stored.Type,
		"name", stored.Name,
	)
	return &stored, nil
}

// GetTagSource retrieves a tag source by uid.
func (s *Service) GetTagSource(ctx context.Context, uid string) (*TagSource, error) {
	return s.store.GetTagSource(ctx, uid)
}

// ListTagSources returns tag sources in creation order.
func (s *Service) ListTagSources(ctx context.Context, limit, offset int) ([]*TagSource, error) {
	_, page := s.planner.Plan(DatasetQuery{Limit: limit, Offset: offset})
	return s.store.ListTagSources(ctx, page)
}

// CreateTaggingEvent validates the event, checks that its tagger
// resolves to an existing tag source, assigns uid and run_time
// defaults, and persists it. Fails with ErrReference when the tagger
// does not exist; nothing is persisted in that case.
func (s *Service) CreateTaggingEvent(ctx context.Context, ev *TaggingEvent) (*TaggingEvent, error) {
	stored := *ev
	if stored.RunTime.IsZero() {
		stored.RunTime = s.now()
	}
	if err := ValidateTaggingEvent(&stored); err != nil {
		return nil, err
	}

	exists, err := s.store.TagSourceExists(ctx, stored.TaggerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.NewReferenceError("tag_source", stored.TaggerID)
	}

	if stored.UID == "" {
		stored.UID = s.newUID()
	}
	stored.CreatedAt = s.now()

	if err := s.store.InsertTaggingEvent(ctx, &stored); err != nil {
		return nil, err
	}

	s.log.Infow("tagging event created",
		logger.FieldEventID, stored.UID,
		logger.FieldSourceID, stored.TaggerID,
	)
	return &stored, nil
}

// GetTaggingEvent retrieves a tagging event by uid.
func (s *Service) GetTaggingEvent(ctx context.Context, uid string) (*TaggingEvent, error) {
	return s.store.GetTaggingEvent(ctx, uid)
}

// ListTaggingEvents returns tagging events in creation order.
func (s *Service) ListTaggingEvents(ctx context.Context, limit, offset int) ([]*TaggingEvent, error) {
	_, page := s.planner.Plan(DatasetQuery{Limit: limit, Offset: offset})
	return s.store.ListTaggingEvents(ctx, page)
}

// CreateDataset validates the dataset and every embedded tag, checks
// that each tag's event resolves, assigns a uid if absent, and
// persists the full record as one document: either the dataset and all
// its initial tags are stored, or none are.
//
// Callers ingesting file content supply the content hash as the uid
// (see the ingest package); re-ingesting identical bytes then fails
// with ErrDuplicateKey rather than silently duplicating the record.
func (s *Service) CreateDataset(ctx context.Context, ds *Dataset) (*Dataset, error) {
	if err := ValidateDataset(ds); err != nil {
		return nil, err
	}

	if err := s.checkTagEvents(ctx, ds.Tags); err != nil {
		return nil, err
	}

	stored := *ds
	stored.Tags = append([]Tag(nil), ds.Tags...)
	if stored.UID == "" {
		stored.UID = s.newUID()
	}
	stored.CreatedAt = s.now()

	if err := s.store.InsertDataset(ctx, &stored); err != nil {
		return nil, err
	}

	s.log.Infow("dataset created",
		logger.FieldDatasetID, stored.UID,
		"dataset_type", stored.DatasetType,
		logger.FieldCount, len(stored.Tags),
	)
	return &stored, nil
}

// GetDataset retrieves a dataset by uid.
func (s *Service) GetDataset(ctx context.Context, uid string) (*Dataset, error) {
	return s.store.GetDataset(ctx, uid)
}

// AppendTags validates the new tags, checks their events resolve, and
// appends them to the dataset's tag list. Existing tags are never
// removed or reordered. Fails with ErrNotFound when the dataset does
// not exist and ErrReference when a tag's event is missing; in either
// case nothing is persisted.
func (s *Service) AppendTags(ctx context.Context, datasetUID string, tags []Tag) (*Dataset, error) {
	if len(tags) == 0 {
		return s.store.GetDataset(ctx, datasetUID)
	}

	for i := range tags {
		if err := ValidateTag(&tags[i]); err != nil {
			return nil, err
		}
	}

	ds, err := s.store.GetDataset(ctx, datasetUID)
	if err != nil {
		return nil, err
	}

	if err := s.checkTagEvents(ctx, tags); err != nil {
		return nil, err
	}

	updated := append(append([]Tag(nil), ds.Tags...), tags...)
	if err := s.store.UpdateDatasetTags(ctx, datasetUID, updated); err != nil {
		return nil, err
	}

	ds.Tags = updated
	s.log.Infow("tags appended",
		logger.FieldDatasetID, datasetUID,
		logger.FieldCount, len(tags),
	)
	return ds, nil
}

// FindDatasets resolves a tag query: plans it into the abstract filter
// shape and delegates to the store. Always returns a (possibly empty)
// slice; "no matches" is not an error.
func (s *Service) FindDatasets(ctx context.Context, q DatasetQuery) ([]*Dataset, error) {
	filter, page := s.planner.Plan(q)

	s.log.Debugw("finding datasets",
		logger.FieldTagNames, q.TagNames,
		"dataset_type", q.DatasetType,
		logger.FieldLimit, page.Limit,
		logger.FieldOffset, page.Offset,
	)

	results, err := s.store.FindDatasets(ctx, filter, page)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*Dataset{}
	}
	return results, nil
}

// checkTagEvents verifies every tag's event_id resolves, deduplicating
// lookups for tags sharing one event.
func (s *Service) checkTagEvents(ctx context.Context, tags []Tag) error {
	checked := make(map[string]bool)
	for i := range tags {
		eventID := tags[i].EventID
		if checked[eventID] {
			continue
		}
		exists, err := s.store.TaggingEventExists(ctx, eventID)
		if err != nil {
			return err
		}
		if !exists {
			return errors.NewReferenceError("tagging_event", eventID)
		}
		checked[eventID] = true
	}
	return nil
}
