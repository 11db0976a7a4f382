package db

import (
	"strings"

	"github.com/mattn/go-sqlite3"

	"github.com/beamline/tagstore/errors"
)

// IsDuplicateKey reports whether err is a SQLite primary key or unique
// constraint violation. The registry maps these to errors.ErrDuplicateKey
// so callers never see driver error types.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}

// IsUnavailable reports whether err indicates the database cannot serve
// the operation right now: closed handle, lock contention past the busy
// timeout, or a cancelled context.
//
// The string matching fallback is necessary because the underlying sql
// driver returns its own error types that we cannot wrap at the source.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "database is closed") ||
		strings.Contains(errMsg, "sql: database is closed") ||
		strings.Contains(errMsg, "context deadline exceeded") ||
		strings.Contains(errMsg, "context canceled")
}

// MapError converts a raw driver error into the registry taxonomy,
// tagging duplicate keys and availability failures; all other errors
// are wrapped with the operation name only.
func MapError(err error, operation, entity, uid string) error {
	switch {
	case err == nil:
		return nil
	case IsDuplicateKey(err):
		return errors.NewDuplicateKeyError(entity, uid)
	case IsUnavailable(err):
		return errors.WrapStoreUnavailable(err, operation)
	default:
		return errors.Wrap(err, operation)
	}
}
