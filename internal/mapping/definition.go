package mapping

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"attr-mapper/internal/diagnostic"
)

// Definition maps output attribute names to the key path each one is read from.
// The zero value is an empty definition. A Definition never changes after it
// is built.
type Definition struct {
	paths map[string]KeyPath
	names []string // sorted attribute names
}

// NewDefinition builds a Definition from already-decoded entries, applying the
// same rules as Parse. The input map is copied.
func NewDefinition(entries map[string]KeyPath) (Definition, error) {
	diags := &diagnostic.Diagnostics{}

	for _, name := range slices.Sorted(maps.Keys(entries)) {
		if name == "" {
			diags.AddError(codeEmptyAttribute, "attribute name must not be empty", name, 0)
			continue
		}

		if len(entries[name]) == 0 {
			diags.AddError(codeEmptyPath, "path must contain at least one key", name, 0)
		}
	}

	if diags.HasErrors() {
		return Definition{}, &DefinitionError{Diagnostics: diags}
	}

	paths := make(map[string]KeyPath, len(entries))
	for name, path := range entries {
		paths[name] = path.Clone()
	}

	return newDefinition(paths), nil
}

// newDefinition takes ownership of paths, which must already be validated.
func newDefinition(paths map[string]KeyPath) Definition {
	return Definition{
		paths: paths,
		names: slices.Sorted(maps.Keys(paths)),
	}
}

// Len returns the number of attributes in the definition.
func (d Definition) Len() int {
	return len(d.names)
}

// IsEmpty returns true if the definition has no attributes.
func (d Definition) IsEmpty() bool {
	return len(d.names) == 0
}

// Attributes returns the attribute names in sorted order.
func (d Definition) Attributes() []string {
	return slices.Clone(d.names)
}

// Path returns a copy of the key path for the named attribute.
func (d Definition) Path(attribute string) (KeyPath, bool) {
	p, ok := d.paths[attribute]
	if !ok {
		return nil, false
	}

	return p.Clone(), true
}

// All iterates over attributes in sorted order. The yielded paths are shared
// with the definition and must not be modified.
func (d Definition) All() iter.Seq2[string, KeyPath] {
	return func(yield func(string, KeyPath) bool) {
		for _, name := range d.names {
			if !yield(name, d.paths[name]) {
				return
			}
		}
	}
}

// MarshalJSON renders the definition in its canonical JSON form with sorted keys.
func (d Definition) MarshalJSON() ([]byte, error) {
	out := make(map[string][]string, len(d.paths))
	for name, path := range d.paths {
		out[name] = path
	}

	return json.Marshal(out)
}

// String renders the definition as comma-separated "name=dotted.path" pairs in
// attribute order.
func (d Definition) String() string {
	parts := make([]string, 0, len(d.names))
	for name, path := range d.All() {
		parts = append(parts, fmt.Sprintf("%s=%s", name, path))
	}

	return strings.Join(parts, ", ")
}
