// Package extract turns nested records into flat attribute maps.
//
// An Extractor is built once from a mapping definition and then applied to any
// number of records. For every attribute it follows the attribute's key path
// down through nested map[string]any values:
//
//	definition: {"logfile": ["log", "file", "path"]}
//	record:     {"log": {"file": {"path": "/var/log/app.log"}}}
//	output:     {"logfile": "/var/log/app.log"}
//
// A path that cannot be followed to its end is absent and the attribute is
// left out of the output. Absence is not an error. The only per-record error
// is a value that is not a map at the top level (*RecordShapeError).
//
// An Extractor is immutable and safe for concurrent use.
package extract
