package tagging

// DatasetQuery is the tag-query request shape exposed at the service
// boundary. All fields are optional; zero values mean "no filter".
type DatasetQuery struct {
	// TagNames requires at least one embedded tag whose name is in
	// this set; empty means no name filter
	TagNames []string `json:"tag_names,omitempty"`

	// ConfidenceMin and ConfidenceMax bound, inclusively, the
	// confidence of a matching tag (not of every tag on the dataset)
	ConfidenceMin *float64 `json:"confidence_min,omitempty"`
	ConfidenceMax *float64 `json:"confidence_max,omitempty"`

	// DatasetType restricts results to one asset variant
	DatasetType string `json:"dataset_type,omitempty"`

	// Limit and Offset paginate; Limit <= 0 falls back to the
	// planner's default page size, never to "unbounded"
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Planner compiles DatasetQuery requests into the abstract Filter
// shape plus a bounded Page. Page sizes come from configuration.
type Planner struct {
	DefaultLimit int
	MaxLimit     int
}

// NewPlanner returns a planner with the given page size bounds.
// Non-positive values fall back to the registry defaults.
func NewPlanner(defaultLimit, maxLimit int) *Planner {
	if defaultLimit <= 0 {
		defaultLimit = 100
	}
	if maxLimit <= 0 {
		maxLimit = 1000
	}
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}
	return &Planner{DefaultLimit: defaultLimit, MaxLimit: maxLimit}
}

// Plan translates a query into (Filter, Page).
//
// A TagMatch clause is emitted when the query names tags or bounds
// confidence; bounds without names filter across all tags present, and
// a dataset with zero tags never matches such a filter. Inverted
// bounds (min > max) pass through unchanged and simply match nothing.
func (p *Planner) Plan(q DatasetQuery) (Filter, Page) {
	filter := Filter{DatasetType: q.DatasetType}

	if len(q.TagNames) > 0 || q.ConfidenceMin != nil || q.ConfidenceMax != nil {
		filter.TagMatch = &TagMatch{
			Names:         q.TagNames,
			ConfidenceMin: q.ConfidenceMin,
			ConfidenceMax: q.ConfidenceMax,
		}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = p.DefaultLimit
	}
	if limit > p.MaxLimit {
		limit = p.MaxLimit
	}

	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	return filter, Page{Limit: limit, Offset: offset}
}
