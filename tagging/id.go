package tagging

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"github.com/google/uuid"

	"github.com/beamline/tagstore/errors"
)

// NewUID produces a random 128-bit identifier, unique across the
// lifetime of the deployment with overwhelming probability.
func NewUID() string {
	return uuid.NewString()
}

// ContentID produces a deterministic identifier from raw content:
// the hex sha256 of the bytes. Repeated ingestion of identical bytes
// yields the identical id, so using it as a dataset uid gives
// at-most-one-record-per-content semantics.
func ContentID(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ContentIDFromReader streams r through the content hash, for files
// too large to hold in memory.
func ContentIDFromReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", errors.Wrap(err, "hashing content")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
