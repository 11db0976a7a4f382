package storage

import (
	"context"
	"sync"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/tagging"
)

// MemStore is an in-memory implementation of tagging.Store for tests
// and ephemeral use. It preserves insertion order so pagination is
// deterministic, matching the SQLite store's (created_at, uid) order.
type MemStore struct {
	mu sync.RWMutex

	sources     map[string]*tagging.TagSource
	sourceOrder []string

	events     map[string]*tagging.TaggingEvent
	eventOrder []string

	datasets     map[string]*tagging.Dataset
	datasetOrder []string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		sources:  make(map[string]*tagging.TagSource),
		events:   make(map[string]*tagging.TaggingEvent),
		datasets: make(map[string]*tagging.Dataset),
	}
}

func (m *MemStore) InsertTagSource(_ context.Context, src *tagging.TagSource) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sources[src.UID]; ok {
		return errors.NewDuplicateKeyError("tag_source", src.UID)
	}
	copied := *src
	m.sources[src.UID] = &copied
	m.sourceOrder = append(m.sourceOrder, src.UID)
	return nil
}

func (m *MemStore) GetTagSource(_ context.Context, uid string) (*tagging.TagSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	src, ok := m.sources[uid]
	if !ok {
		return nil, errors.NewNotFoundError("tag_source", uid)
	}
	copied := *src
	return &copied, nil
}

func (m *MemStore) TagSourceExists(_ context.Context, uid string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sources[uid]
	return ok, nil
}

func (m *MemStore) ListTagSources(_ context.Context, page tagging.Page) ([]*tagging.TagSource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*tagging.TagSource
	for _, uid := range paginate(m.sourceOrder, page) {
		copied := *m.sources[uid]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemStore) InsertTaggingEvent(_ context.Context, ev *tagging.TaggingEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.events[ev.UID]; ok {
		return errors.NewDuplicateKeyError("tagging_event", ev.UID)
	}
	copied := *ev
	m.events[ev.UID] = &copied
	m.eventOrder = append(m.eventOrder, ev.UID)
	return nil
}

func (m *MemStore) GetTaggingEvent(_ context.Context, uid string) (*tagging.TaggingEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ev, ok := m.events[uid]
	if !ok {
		return nil, errors.NewNotFoundError("tagging_event", uid)
	}
	copied := *ev
	return &copied, nil
}

func (m *MemStore) TaggingEventExists(_ context.Context, uid string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.events[uid]
	return ok, nil
}

func (m *MemStore) ListTaggingEvents(_ context.Context, page tagging.Page) ([]*tagging.TaggingEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*tagging.TaggingEvent
	for _, uid := range paginate(m.eventOrder, page) {
		copied := *m.events[uid]
		out = append(out, &copied)
	}
	return out, nil
}

func (m *MemStore) InsertDataset(_ context.Context, ds *tagging.Dataset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.datasets[ds.UID]; ok {
		return errors.NewDuplicateKeyError("dataset", ds.UID)
	}
	copied := *ds
	copied.Tags = append([]tagging.Tag(nil), ds.Tags...)
	m.datasets[ds.UID] = &copied
	m.datasetOrder = append(m.datasetOrder, ds.UID)
	return nil
}

func (m *MemStore) GetDataset(_ context.Context, uid string) (*tagging.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ds, ok := m.datasets[uid]
	if !ok {
		return nil, errors.NewNotFoundError("dataset", uid)
	}
	return copyDataset(ds), nil
}

func (m *MemStore) UpdateDatasetTags(_ context.Context, uid string, tags []tagging.Tag) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ds, ok := m.datasets[uid]
	if !ok {
		return errors.NewNotFoundError("dataset", uid)
	}
	ds.Tags = append([]tagging.Tag(nil), tags...)
	return nil
}

func (m *MemStore) DeleteDataset(_ context.Context, uid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.datasets[uid]; !ok {
		return errors.NewNotFoundError("dataset", uid)
	}
	delete(m.datasets, uid)
	for i, id := range m.datasetOrder {
		if id == uid {
			m.datasetOrder = append(m.datasetOrder[:i], m.datasetOrder[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemStore) FindDatasets(_ context.Context, filter tagging.Filter, page tagging.Page) ([]*tagging.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matched []string
	for _, uid := range m.datasetOrder {
		if datasetMatches(m.datasets[uid], filter) {
			matched = append(matched, uid)
		}
	}

	var out []*tagging.Dataset
	for _, uid := range paginate(matched, page) {
		out = append(out, copyDataset(m.datasets[uid]))
	}
	return out, nil
}

// datasetMatches applies the abstract filter shape to one dataset.
// A dataset with zero tags never matches a TagMatch clause.
func datasetMatches(ds *tagging.Dataset, filter tagging.Filter) bool {
	if filter.DatasetType != "" && ds.DatasetType != filter.DatasetType {
		return false
	}
	if filter.TagMatch == nil {
		return true
	}
	for i := range ds.Tags {
		if filter.TagMatch.Matches(&ds.Tags[i]) {
			return true
		}
	}
	return false
}

func paginate(uids []string, page tagging.Page) []string {
	if page.Offset < 0 {
		page.Offset = 0
	}
	if page.Offset >= len(uids) {
		return nil
	}
	end := len(uids)
	if page.Limit > 0 && page.Offset+page.Limit < end {
		end = page.Offset + page.Limit
	}
	return uids[page.Offset:end]
}

func copyDataset(ds *tagging.Dataset) *tagging.Dataset {
	copied := *ds
	copied.Tags = append([]tagging.Tag(nil), ds.Tags...)
	return &copied
}
