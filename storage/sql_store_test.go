package storage

import (
	"context"
	"testing"
	"time"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/storage/testutil"
	"github.com/beamline/tagstore/tagging"
)

// TestTagSourceExists_True tests existence check for an existing source
func TestTagSourceExists_True(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)
	ctx := context.Background()

	src := &tagging.TagSource{
		UID:       "src-exists",
		Type:      tagging.SourceTypeModel,
		Name:      "peak-finder",
		CreatedAt: time.Now(),
	}
	if err := store.InsertTagSource(ctx, src); err != nil {
		t.Fatalf("InsertTagSource() error: %v", err)
	}

	exists, err := store.TagSourceExists(ctx, "src-exists")
	if err != nil {
		t.Fatalf("TagSourceExists() error: %v", err)
	}
	if !exists {
		t.Error("TagSourceExists() = false, want true for existing source")
	}
}

// TestTagSourceExists_False tests existence check for a missing source
func TestTagSourceExists_False(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)

	exists, err := store.TagSourceExists(context.Background(), "no-such-source")
	if err != nil {
		t.Fatalf("TagSourceExists() error: %v", err)
	}
	if exists {
		t.Error("TagSourceExists() = true, want false for missing source")
	}
}

// TestInsertTagSource_DuplicateUID verifies uid collisions surface as ErrDuplicateKey
func TestInsertTagSource_DuplicateUID(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)
	ctx := context.Background()

	src := &tagging.TagSource{
		UID:       "src-dup",
		Type:      tagging.SourceTypeHuman,
		Name:      "alice",
		CreatedAt: time.Now(),
	}
	if err := store.InsertTagSource(ctx, src); err != nil {
		t.Fatalf("first InsertTagSource() error: %v", err)
	}

	err := store.InsertTagSource(ctx, src)
	if err == nil {
		t.Fatal("second InsertTagSource() succeeded, want ErrDuplicateKey")
	}
	if !errors.IsDuplicateKey(err) {
		t.Errorf("second InsertTagSource() error = %v, want ErrDuplicateKey", err)
	}
}

// TestGetTagSource_RoundTrip verifies a created source reads back equal
func TestGetTagSource_RoundTrip(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)
	ctx := context.Background()

	src := &tagging.TagSource{
		UID:       "src-rt",
		Type:      tagging.SourceTypeModel,
		Name:      "ring-classifier",
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := store.InsertTagSource(ctx, src); err != nil {
		t.Fatalf("InsertTagSource() error: %v", err)
	}

	got, err := store.GetTagSource(ctx, "src-rt")
	if err != nil {
		t.Fatalf("GetTagSource() error: %v", err)
	}
	if got.UID != src.UID || got.Type != src.Type || got.Name != src.Name {
		t.Errorf("GetTagSource() = %+v, want %+v", got, src)
	}
}

// TestGetDataset_NotFound verifies missing datasets surface as ErrNotFound
func TestGetDataset_NotFound(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)

	_, err := store.GetDataset(context.Background(), "no-such-dataset")
	if err == nil {
		t.Fatal("GetDataset() succeeded, want ErrNotFound")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("GetDataset() error = %v, want ErrNotFound", err)
	}
}

// TestDatasetTags_RoundTrip verifies embedded tags survive the JSON column
func TestDatasetTags_RoundTrip(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)
	ctx := context.Background()

	ds := &tagging.Dataset{
		UID:         "ds-rt",
		URI:         "file:///data/scan_001.tiff",
		DatasetType: tagging.DatasetTypeFile,
		Tags: []tagging.Tag{
			{Name: "peaks", Confidence: 0.92, EventID: "ev-1"},
			{Name: "rings", Confidence: 0.41, Value: "diffuse", EventID: "ev-1"},
		},
		CreatedAt: time.Now(),
	}
	if err := store.InsertDataset(ctx, ds); err != nil {
		t.Fatalf("InsertDataset() error: %v", err)
	}

	got, err := store.GetDataset(ctx, "ds-rt")
	if err != nil {
		t.Fatalf("GetDataset() error: %v", err)
	}
	if len(got.Tags) != 2 {
		t.Fatalf("GetDataset() returned %d tags, want 2", len(got.Tags))
	}
	if got.Tags[0].Name != "peaks" || got.Tags[0].Confidence != 0.92 {
		t.Errorf("first tag = %+v, want peaks/0.92", got.Tags[0])
	}
	if got.Tags[1].Value != "diffuse" {
		t.Errorf("second tag value = %q, want %q", got.Tags[1].Value, "diffuse")
	}
}

// TestUpdateDatasetTags_MissingDataset verifies updates on absent records fail
func TestUpdateDatasetTags_MissingDataset(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)

	err := store.UpdateDatasetTags(context.Background(), "ghost", []tagging.Tag{
		{Name: "peaks", Confidence: 0.5, EventID: "ev-1"},
	})
	if err == nil {
		t.Fatal("UpdateDatasetTags() succeeded, want ErrNotFound")
	}
	if !errors.IsNotFound(err) {
		t.Errorf("UpdateDatasetTags() error = %v, want ErrNotFound", err)
	}
}

// TestFindDatasets_ClosedDB verifies availability failures are tagged retryable
func TestFindDatasets_ClosedDB(t *testing.T) {
	database := testutil.SetupTestDB(t)
	store := NewSQLStore(database, nil)
	database.Close()

	_, err := store.FindDatasets(context.Background(), tagging.Filter{}, tagging.Page{Limit: 10})
	if err == nil {
		t.Fatal("FindDatasets() on closed DB succeeded, want ErrStoreUnavailable")
	}
	if !errors.IsStoreUnavailable(err) {
		t.Errorf("FindDatasets() error = %v, want ErrStoreUnavailable", err)
	}
}
