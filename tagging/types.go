// Package tagging defines the tagging registry core: the entity model,
// the store contract, validation, and the dataset query planner.
//
// The registry records taggable assets (datasets), the tags attached to
// them, and the provenance of each tag: which tagging event produced it
// and which source ran that event. Tag sources and tagging events are
// top-level append-only records shared by reference; tags exist only
// embedded in their owning dataset.
package tagging

import (
	"time"
)

// Well-known tag source types. The field is extensible; these are the
// two the registry ships with.
const (
	SourceTypeHuman = "human"
	SourceTypeModel = "model"
)

// DatasetTypeFile identifies file-backed datasets. Other asset variants
// add their own type values behind the same record shape.
const DatasetTypeFile = "file"

// TagSource represents an agent capable of producing tags - a person,
// an ML model, or any future variant. Immutable once created.
type TagSource struct {
	UID       string    `db:"uid" json:"uid"`
	Type      string    `db:"type" json:"type"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TaggingEvent represents one tagging session or run, attributing a
// batch of tags to a source at a point in time. Immutable once created.
// TaggerID must resolve to an existing TagSource at creation time.
type TaggingEvent struct {
	UID       string    `db:"uid" json:"uid"`
	TaggerID  string    `db:"tagger_id" json:"tagger_id"`
	RunTime   time.Time `db:"run_time" json:"run_time"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Tag is a labeled annotation attached to a dataset. Tags are embedded
// in their owning dataset's tag list, never persisted standalone.
// Confidence is conventionally in [0,1] but the registry does not
// enforce the domain. Multiple tags with the same name may coexist on
// one dataset when produced by different events.
type Tag struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	Value      string  `json:"value,omitempty"`
	EventID    string  `json:"event_id"`
}

// Dataset is a taggable asset record. URI points at the underlying
// asset (file path, database locator). UID defaults to a generated
// identifier; callers ingesting files may supply a content hash so
// byte-identical re-ingestion collides instead of duplicating.
// Datasets mutate only by appending tags.
type Dataset struct {
	UID         string    `db:"uid" json:"uid"`
	URI         string    `db:"uri" json:"uri"`
	DatasetType string    `db:"dataset_type" json:"dataset_type"`
	Tags        []Tag     `db:"tags" json:"tags"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TagNames returns the distinct tag names present on the dataset,
// in first-appearance order.
func (d *Dataset) TagNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, tag := range d.Tags {
		if !seen[tag.Name] {
			names = append(names, tag.Name)
			seen[tag.Name] = true
		}
	}
	return names
}
