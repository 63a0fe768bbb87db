// Package mapping provides the extraction mapping definition: the declarative
// association of output attribute names to key paths, its parsing, and its
// validation.
//
// A definition is a single mapping whose values are sequences of strings.
// Each sequence is a key path followed, one key per level, down into a
// nested record:
//
//	{"message": ["message"], "logfile": ["log", "file", "path"], "serverHost": ["host", "hostname"]}
//
// YAML is accepted as well, since it is a superset of JSON:
//
//	message: [message]
//	logfile: [log, file, path]
//	serverHost:
//	  - host
//	  - hostname
//
// # Parsing
//
// Parsing goes through the yaml.v3 node tree first and validates it in one
// pass afterwards. Every structural violation is recorded as a diagnostic
// and all of them are returned together as a single *DefinitionError:
//
//   - not_a_mapping: the document is not a mapping
//   - invalid_attribute: an attribute name is not a scalar
//   - empty_attribute: an attribute name is empty
//   - duplicate_attribute: an attribute name appears more than once
//   - not_a_sequence: a path value is not a sequence
//   - empty_path: a path sequence has no keys
//   - not_a_string: a path element is not a string
//
// A parsed Definition is immutable. Accessors hand out copies, so a
// Definition can be shared freely between goroutines.
package mapping
