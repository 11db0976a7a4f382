package tagging

import (
	"math"

	"github.com/beamline/tagstore/errors"
)

// Structural validation for each entity type. Checks are synchronous
// and fail fast on the first violation; every failure is an
// errors.ErrValidation naming the entity and field. Reference
// existence (does this tagger_id resolve?) is the service's job,
// since it owns the store handle.

// ValidateTagSource requires a non-empty type and name.
func ValidateTagSource(src *TagSource) error {
	if src == nil {
		return errors.NewValidationError("tag_source", "", "is nil")
	}
	if src.Type == "" {
		return errors.NewValidationError("tag_source", "type", "must not be empty")
	}
	if src.Name == "" {
		return errors.NewValidationError("tag_source", "name", "must not be empty")
	}
	return nil
}

// ValidateTaggingEvent requires tagger_id set and run_time present.
func ValidateTaggingEvent(ev *TaggingEvent) error {
	if ev == nil {
		return errors.NewValidationError("tagging_event", "", "is nil")
	}
	if ev.TaggerID == "" {
		return errors.NewValidationError("tagging_event", "tagger_id", "must not be empty")
	}
	if ev.RunTime.IsZero() {
		return errors.NewValidationError("tagging_event", "run_time", "must be set")
	}
	return nil
}

// ValidateTag requires a non-empty name, a finite confidence, and an
// event_id. Confidence in [0,1] is recommended but not enforced.
func ValidateTag(tag *Tag) error {
	if tag.Name == "" {
		return errors.NewValidationError("tag", "name", "must not be empty")
	}
	if math.IsNaN(tag.Confidence) || math.IsInf(tag.Confidence, 0) {
		return errors.NewValidationError("tag", "confidence", "must be a finite number")
	}
	if tag.EventID == "" {
		return errors.NewValidationError("tag", "event_id", "must not be empty")
	}
	return nil
}

// ValidateDataset requires uri and dataset_type, and validates every
// embedded tag.
func ValidateDataset(ds *Dataset) error {
	if ds == nil {
		return errors.NewValidationError("dataset", "", "is nil")
	}
	if ds.URI == "" {
		return errors.NewValidationError("dataset", "uri", "must not be empty")
	}
	if ds.DatasetType == "" {
		return errors.NewValidationError("dataset", "dataset_type", "must not be empty")
	}
	for i := range ds.Tags {
		if err := ValidateTag(&ds.Tags[i]); err != nil {
			return err
		}
	}
	return nil
}
