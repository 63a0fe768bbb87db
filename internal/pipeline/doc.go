// Package pipeline runs an extractor over a stream of records.
//
// Records are read from a Source in batches. Each batch is fanned out over an
// ants worker pool, and the extracted attribute maps are handed to a Sink in
// the same order the records were read.
//
// A record whose value is not a mapping, or an input line that cannot be
// decoded, is handled according to the pipeline's Policy:
//
//   - PolicySkip logs the record and moves on
//   - PolicyQuarantine stores the record in a dead-letter store
//   - PolicyFail stops the run and returns the error
//
// Undecodable lines carry no value, so under PolicyQuarantine they are
// skipped rather than stored.
package pipeline
