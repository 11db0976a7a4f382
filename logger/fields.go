package logger

// Standard field names for consistent structured logging across tagstore.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Identity
	FieldUID       = "uid"
	FieldSourceID  = "source_id"
	FieldEventID   = "event_id"
	FieldDatasetID = "dataset_id"

	// Components
	FieldComponent = "component"
	FieldOperation = "operation"

	// Query
	FieldFilter   = "filter"
	FieldTagNames = "tag_names"
	FieldLimit    = "limit"
	FieldOffset   = "offset"

	// Timing and counts
	FieldDurationMS = "duration_ms"
	FieldCount      = "count"

	// Errors
	FieldError = "error"
)
