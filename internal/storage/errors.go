package storage

import "errors"

// Sentinel errors returned by Store operations. Callers are expected to
// branch with errors.Is rather than matching message text.
var (
	// ErrNotFound is returned when no entry matches the given id.
	ErrNotFound = errors.New("entry not found")

	// ErrDuplicateID is returned when creating an entry whose id already
	// exists in the store.
	ErrDuplicateID = errors.New("entry id already exists")

	// ErrIncompatibleSnapshot is returned when an imported blob fails the
	// snapshot compatibility check.
	ErrIncompatibleSnapshot = errors.New("incompatible snapshot")
)
