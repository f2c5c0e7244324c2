package domain

import "errors"

// Storage-level sentinels. Repositories translate driver errors into these so
// services never match on MySQL error codes.
var (
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrNotFound       = errors.New("not found")
	ErrNoRowsAffected = errors.New("no rows affected")
)
