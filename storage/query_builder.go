package storage

import (
	"strings"

	"github.com/beamline/tagstore/tagging"
)

// queryBuilder accumulates SQL WHERE clauses and parameters for
// dataset queries against the JSON tags column.
type queryBuilder struct {
	whereClauses []string
	args         []interface{}
}

// addClause appends a WHERE clause with its arguments
func (qb *queryBuilder) addClause(clause string, args ...interface{}) {
	qb.whereClauses = append(qb.whereClauses, clause)
	qb.args = append(qb.args, args...)
}

// build returns the WHERE clauses joined with AND, or empty when
// the filter is unconstrained
func (qb *queryBuilder) build() string {
	if len(qb.whereClauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(qb.whereClauses, " AND ")
}

// buildDatasetTypeFilter adds an equality clause on dataset_type
func (qb *queryBuilder) buildDatasetTypeFilter(datasetType string) {
	if datasetType == "" {
		return
	}
	qb.addClause("dataset_type = ?", datasetType)
}

// buildTagMatchFilter compiles the element match into an EXISTS
// subquery over json_each(datasets.tags): one embedded tag must
// satisfy the name set and both confidence bounds together. A dataset
// with an empty tags array has no json_each rows and never matches.
func (qb *queryBuilder) buildTagMatchFilter(match *tagging.TagMatch) {
	if match == nil {
		return
	}

	var elemClauses []string

	if len(match.Names) > 0 {
		placeholders := make([]string, len(match.Names))
		for i, name := range match.Names {
			placeholders[i] = "?"
			qb.args = append(qb.args, name)
		}
		elemClauses = append(elemClauses,
			"json_extract(value, '$.name') IN ("+strings.Join(placeholders, ", ")+")")
	}

	if match.ConfidenceMin != nil {
		elemClauses = append(elemClauses,
			"CAST(json_extract(value, '$.confidence') AS REAL) >= ?")
		qb.args = append(qb.args, *match.ConfidenceMin)
	}

	if match.ConfidenceMax != nil {
		elemClauses = append(elemClauses,
			"CAST(json_extract(value, '$.confidence') AS REAL) <= ?")
		qb.args = append(qb.args, *match.ConfidenceMax)
	}

	if len(elemClauses) == 0 {
		// No name set and no bounds: require any tag at all
		elemClauses = append(elemClauses, "1")
	}

	qb.whereClauses = append(qb.whereClauses,
		"EXISTS (SELECT 1 FROM json_each(datasets.tags) WHERE "+
			strings.Join(elemClauses, " AND ")+")")
}

// buildDatasetQuery compiles the abstract filter and page into a full
// SELECT statement with deterministic (created_at, uid) ordering.
func buildDatasetQuery(filter tagging.Filter, page tagging.Page) (string, []interface{}) {
	qb := &queryBuilder{}
	qb.buildDatasetTypeFilter(filter.DatasetType)
	qb.buildTagMatchFilter(filter.TagMatch)

	query := datasetSelectQuery + qb.build() +
		" ORDER BY created_at, uid LIMIT ? OFFSET ?"
	args := append(qb.args, page.Limit, page.Offset)
	return query, args
}
