// Package quarantine is a dead-letter store for records that could not be
// extracted because their value was not a mapping.
//
// Entries live in BadgerDB under the "quarec:" prefix, keyed by a big-endian
// sequence number so iteration returns them in insertion order. Entry bodies
// are encoded with mus-go. The offending value is kept as JSON so it can be
// inspected or replayed.
package quarantine
