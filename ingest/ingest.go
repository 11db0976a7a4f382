// Package ingest turns local files into dataset records: it derives
// the content-hash uid by streaming the file through sha256 and builds
// the file:// URI from the absolute path.
package ingest

import (
	"context"
	"net/url"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/beamline/tagstore/errors"
	"github.com/beamline/tagstore/logger"
	"github.com/beamline/tagstore/tagging"
)

// Ingester registers files as datasets through a tagging service.
type Ingester struct {
	svc *tagging.Service
	log *zap.SugaredLogger
}

// NewIngester creates a file ingester over the given service. A nil
// logger logs nothing.
func NewIngester(svc *tagging.Service, log *zap.SugaredLogger) *Ingester {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Ingester{svc: svc, log: log}
}

// DescribeFile inspects a file without persisting anything: it resolves
// the absolute path, streams the content hash, and returns the dataset
// record that IngestFile would store.
func DescribeFile(path string) (*tagging.Dataset, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", path)
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", abs)
	}
	defer f.Close()

	uid, err := tagging.ContentIDFromReader(f)
	if err != nil {
		return nil, errors.Wrapf(err, "hashing %s", abs)
	}

	return &tagging.Dataset{
		UID:         uid,
		URI:         FileURI(abs),
		DatasetType: tagging.DatasetTypeFile,
	}, nil
}

// IngestFile registers a file as a dataset, optionally with initial
// tags. The uid is the content hash, so ingesting a file whose bytes
// are already registered fails with ErrDuplicateKey.
func (in *Ingester) IngestFile(ctx context.Context, path string, tags []tagging.Tag) (*tagging.Dataset, error) {
	ds, err := DescribeFile(path)
	if err != nil {
		return nil, err
	}
	ds.Tags = tags

	stored, err := in.svc.CreateDataset(ctx, ds)
	if err != nil {
		return nil, err
	}

	in.log.Infow("file ingested",
		logger.FieldDatasetID, stored.UID,
		"uri", stored.URI,
		logger.FieldCount, len(stored.Tags),
	)
	return stored, nil
}

// FileURI renders an absolute path as a file:// URI.
func FileURI(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}
