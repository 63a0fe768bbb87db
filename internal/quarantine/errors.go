package quarantine

import "errors"

var (
	// ErrNotFound indicates that the requested entry was not found.
	ErrNotFound = errors.New("quarantine entry not found")

	// ErrStoreClosed indicates that the store is closed.
	ErrStoreClosed = errors.New("quarantine store is closed")

	// ErrNilRecord indicates that Put was called without a record.
	ErrNilRecord = errors.New("record is nil")

	// ErrSerializationFailed indicates an entry could not be encoded or decoded.
	ErrSerializationFailed = errors.New("serialization failed")
)
