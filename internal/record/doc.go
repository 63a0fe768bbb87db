// Package record models the inbound messages fed to the extractor and decodes
// them from JSON lines.
//
// A Record carries transport metadata (topic, partition, offset, key,
// timestamp) next to its Value. Only the Value is read by extraction; the
// metadata travels with the record so rejected records can be traced back to
// their origin.
//
// Values are decoded with json.Number for numbers so extracted attributes keep
// the exact textual representation of the input.
package record
