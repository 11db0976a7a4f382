package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beamline/tagstore/storage/testutil"
	"github.com/beamline/tagstore/tagging"
)

// Both store implementations must resolve the same filters to the same
// results; this suite runs the query semantics against each backend.

func eachStore(t *testing.T, run func(t *testing.T, store tagging.Store)) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		run(t, NewMemStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		run(t, NewSQLStore(testutil.SetupTestDB(t), nil))
	})
}

func ptr(f float64) *float64 { return &f }

// insertDataset is a fixture helper assigning increasing created_at
// values so (created_at, uid) ordering equals insertion order.
func insertDataset(t *testing.T, store tagging.Store, seq int, uid, datasetType string, tags []tagging.Tag) {
	t.Helper()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err := store.InsertDataset(context.Background(), &tagging.Dataset{
		UID:         uid,
		URI:         "file:///data/" + uid,
		DatasetType: datasetType,
		Tags:        tags,
		CreatedAt:   base.Add(time.Duration(seq) * time.Second),
	})
	require.NoError(t, err)
}

func TestFindDatasets_ConfidenceFloor(t *testing.T) {
	eachStore(t, func(t *testing.T, store tagging.Store) {
		ctx := context.Background()

		insertDataset(t, store, 0, "d1", tagging.DatasetTypeFile,
			[]tagging.Tag{{Name: "peaks", Confidence: 0.8, EventID: "ev-1"}})
		insertDataset(t, store, 1, "d2", tagging.DatasetTypeFile,
			[]tagging.Tag{{Name: "peaks", Confidence: 0.1, EventID: "ev-1"}})
		insertDataset(t, store, 2, "d3", tagging.DatasetTypeFile, nil)

		results, err := store.FindDatasets(ctx, tagging.Filter{
			TagMatch: &tagging.TagMatch{
				Names:         []string{"peaks"},
				ConfidenceMin: ptr(0.5),
			},
		}, tagging.Page{Limit: 100})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "d1", results[0].UID)
	})
}

func TestFindDatasets_InvertedRangeIsEmpty(t *testing.T) {
	eachStore(t, func(t *testing.T, store tagging.Store) {
		insertDataset(t, store, 0, "d1", tagging.DatasetTypeFile,
			[]tagging.Tag{{Name: "peaks", Confidence: 0.8, EventID: "ev-1"}})

		results, err := store.FindDatasets(context.Background(), tagging.Filter{
			TagMatch: &tagging.TagMatch{
				Names:         []string{"peaks"},
				ConfidenceMin: ptr(0.9),
				ConfidenceMax: ptr(0.1),
			},
		}, tagging.Page{Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestFindDatasets_BoundsWithoutNames(t *testing.T) {
	eachStore(t, func(t *testing.T, store tagging.Store) {
		insertDataset(t, store, 0, "d1", tagging.DatasetTypeFile,
			[]tagging.Tag{{Name: "peaks", Confidence: 0.95, EventID: "ev-1"}})
		insertDataset(t, store, 1, "d2", tagging.DatasetTypeFile,
			[]tagging.Tag{{Name: "rings", Confidence: 0.2, EventID: "ev-1"}})
		insertDataset(t, store, 2, "d3", tagging.DatasetTypeFile, nil)

		// Confidence floor across all tag names; the tagless dataset
		// can never match
		results, err := store.FindDatasets(context.Background(), tagging.Filter{
			TagMatch: &tagging.TagMatch{ConfidenceMin: ptr(0.5)},
		}, tagging.Page{Limit: 100})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "d1", results[0].UID)
	})
}

func TestFindDatasets_ElementMatchIsPerTag(t *testing.T) {
	eachStore(t, func(t *testing.T, store tagging.Store) {
		// The peaks tag is low-confidence and the high-confidence tag
		// has the wrong name: no single tag satisfies both clauses
		insertDataset(t, store, 0, "d1", tagging.DatasetTypeFile, []tagging.Tag{
			{Name: "peaks", Confidence: 0.2, EventID: "ev-1"},
			{Name: "rings", Confidence: 0.9, EventID: "ev-1"},
		})

		results, err := store.FindDatasets(context.Background(), tagging.Filter{
			TagMatch: &tagging.TagMatch{
				Names:         []string{"peaks"},
				ConfidenceMin: ptr(0.5),
			},
		}, tagging.Page{Limit: 100})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestFindDatasets_DatasetTypeFilter(t *testing.T) {
	eachStore(t, func(t *testing.T, store tagging.Store) {
		insertDataset(t, store, 0, "d1", tagging.DatasetTypeFile,
			[]tagging.Tag{{Name: "peaks", Confidence: 0.8, EventID: "ev-1"}})
		insertDataset(t, store, 1, "d2", "dbrecord",
			[]tagging.Tag{{Name: "peaks", Confidence: 0.8, EventID: "ev-1"}})

		results, err := store.FindDatasets(context.Background(), tagging.Filter{
			DatasetType: "dbrecord",
			TagMatch:    &tagging.TagMatch{Names: []string{"peaks"}},
		}, tagging.Page{Limit: 100})
		require.NoError(t, err)

		require.Len(t, results, 1)
		assert.Equal(t, "d2", results[0].UID)
	})
}

func TestFindDatasets_Pagination(t *testing.T) {
	eachStore(t, func(t *testing.T, store tagging.Store) {
		ctx := context.Background()

		for i := 0; i < 10; i++ {
			insertDataset(t, store, i, fmt.Sprintf("d%02d", i), tagging.DatasetTypeFile,
				[]tagging.Tag{{Name: "peaks", Confidence: 0.7, EventID: "ev-1"}})
		}
		filter := tagging.Filter{TagMatch: &tagging.TagMatch{Names: []string{"peaks"}}}

		// 4th through 6th matching records in creation order
		page, err := store.FindDatasets(ctx, filter, tagging.Page{Limit: 3, Offset: 3})
		require.NoError(t, err)
		require.Len(t, page, 3)
		assert.Equal(t, "d03", page[0].UID)
		assert.Equal(t, "d04", page[1].UID)
		assert.Equal(t, "d05", page[2].UID)

		// Offset near the end yields the single remaining record
		tail, err := store.FindDatasets(ctx, filter, tagging.Page{Limit: 3, Offset: 9})
		require.NoError(t, err)
		require.Len(t, tail, 1)
		assert.Equal(t, "d09", tail[0].UID)

		// Offset past the end yields nothing
		past, err := store.FindDatasets(ctx, filter, tagging.Page{Limit: 3, Offset: 50})
		require.NoError(t, err)
		assert.Empty(t, past)
	})
}

func TestFindDatasets_NoFilterReturnsAll(t *testing.T) {
	eachStore(t, func(t *testing.T, store tagging.Store) {
		insertDataset(t, store, 0, "d1", tagging.DatasetTypeFile, nil)
		insertDataset(t, store, 1, "d2", tagging.DatasetTypeFile,
			[]tagging.Tag{{Name: "peaks", Confidence: 0.8, EventID: "ev-1"}})

		results, err := store.FindDatasets(context.Background(), tagging.Filter{}, tagging.Page{Limit: 100})
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})
}
