package tagging

import (
	"context"
)

// Store defines persistence operations for the tagging registry.
// Implementations can use any backend (SQLite in production, in-memory
// for tests); the core never depends on store-specific query syntax
// beyond the Filter shape below.
//
// Error contract: inserts return errors.ErrDuplicateKey on uid
// collision; lookups and updates return errors.ErrNotFound for absent
// records; a backend that cannot serve the operation returns
// errors.ErrStoreUnavailable. All within the taxonomy of the errors
// package, matchable with errors.Is.
type Store interface {
	SourceStore
	EventStore
	DatasetStore
}

// SourceStore persists tag sources.
type SourceStore interface {
	// InsertTagSource inserts a new tag source
	InsertTagSource(ctx context.Context, src *TagSource) error

	// GetTagSource retrieves a tag source by uid
	GetTagSource(ctx context.Context, uid string) (*TagSource, error)

	// TagSourceExists checks if a tag source with the given uid exists
	TagSourceExists(ctx context.Context, uid string) (bool, error)

	// ListTagSources returns tag sources in creation order
	ListTagSources(ctx context.Context, page Page) ([]*TagSource, error)
}

// EventStore persists tagging events.
type EventStore interface {
	// InsertTaggingEvent inserts a new tagging event
	InsertTaggingEvent(ctx context.Context, ev *TaggingEvent) error

	// GetTaggingEvent retrieves a tagging event by uid
	GetTaggingEvent(ctx context.Context, uid string) (*TaggingEvent, error)

	// TaggingEventExists checks if a tagging event with the given uid exists
	TaggingEventExists(ctx context.Context, uid string) (bool, error)

	// ListTaggingEvents returns tagging events in creation order
	ListTaggingEvents(ctx context.Context, page Page) ([]*TaggingEvent, error)
}

// DatasetStore persists datasets with their embedded tags.
type DatasetStore interface {
	// InsertDataset inserts a dataset and all its embedded tags as one record
	InsertDataset(ctx context.Context, ds *Dataset) error

	// GetDataset retrieves a dataset by uid
	GetDataset(ctx context.Context, uid string) (*Dataset, error)

	// UpdateDatasetTags replaces the dataset's tag list. The service
	// only ever calls this with the existing tags plus appended ones.
	UpdateDatasetTags(ctx context.Context, uid string, tags []Tag) error

	// DeleteDataset removes a dataset. Administrative use only; the
	// service exposes no delete operation.
	DeleteDataset(ctx context.Context, uid string) error

	// FindDatasets returns datasets matching the filter, ordered by
	// (created_at, uid), paginated by page.
	FindDatasets(ctx context.Context, filter Filter, page Page) ([]*Dataset, error)
}

// Filter is the abstract query shape stores implement. Zero values
// mean "no constraint".
type Filter struct {
	// DatasetType, when non-empty, requires equality on dataset_type
	DatasetType string

	// TagMatch, when non-nil, requires at least one embedded tag
	// satisfying every set clause (an element match, not per-field)
	TagMatch *TagMatch
}

// TagMatch constrains a single embedded tag. A dataset matches when
// any one of its tags satisfies all clauses together.
type TagMatch struct {
	// Names restricts the tag name to this set; empty means any name
	Names []string

	// ConfidenceMin and ConfidenceMax bound the tag confidence
	// inclusively; nil means unbounded on that side. Min greater
	// than max matches nothing, which is a valid empty query.
	ConfidenceMin *float64
	ConfidenceMax *float64
}

// Matches reports whether a single tag satisfies the element match.
// Shared by store implementations so SQLite and in-memory backends
// agree on semantics.
func (m *TagMatch) Matches(tag *Tag) bool {
	if len(m.Names) > 0 {
		found := false
		for _, name := range m.Names {
			if tag.Name == name {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if m.ConfidenceMin != nil && tag.Confidence < *m.ConfidenceMin {
		return false
	}
	if m.ConfidenceMax != nil && tag.Confidence > *m.ConfidenceMax {
		return false
	}
	return true
}

// Page bounds a result set. Limit must be positive; the query planner
// never emits an unbounded page.
type Page struct {
	Limit  int
	Offset int
}
