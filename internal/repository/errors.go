package repository

import (
	appErrors "medlink-backend/pkg/errors"
)

// ErrNotFound is returned by lookups that match nothing. It is an AppError
// so handlers can map it to a 404 without importing this package's guts.
var ErrNotFound = appErrors.NewNotFound("record not found")

// NewFetchError wraps a data-store failure as an unavailable error. The
// trending and search services branch on this to apply their demo-data
// fallback policy.
func NewFetchError(operation string, err error) error {
	return appErrors.NewUnavailable("data store fetch failed: "+operation, err)
}
