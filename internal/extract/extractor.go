package extract

import (
	"attr-mapper/internal/mapping"
)

// Valuer is anything that carries a record payload.
type Valuer interface {
	RecordValue() any
}

// Extractor projects records onto the attributes of a mapping definition.
type Extractor struct {
	def   mapping.Definition
	rules []rule
}

type rule struct {
	attribute string
	path      mapping.KeyPath
}

// New parses definitionSource (JSON or YAML) and builds an Extractor.
// It fails with a *mapping.DefinitionError when the definition is malformed.
func New(definitionSource string) (*Extractor, error) {
	def, err := mapping.ParseString(definitionSource)
	if err != nil {
		return nil, err
	}

	return NewFromDefinition(def), nil
}

// NewFromDefinition builds an Extractor from a parsed definition.
func NewFromDefinition(def mapping.Definition) *Extractor {
	rules := make([]rule, 0, def.Len())
	for name, path := range def.All() {
		rules = append(rules, rule{attribute: name, path: path})
	}

	return &Extractor{def: def, rules: rules}
}

// Definition returns the definition the extractor was built from.
func (e *Extractor) Definition() mapping.Definition {
	return e.def
}

// Attributes returns the attribute names the extractor can produce, sorted.
func (e *Extractor) Attributes() []string {
	return e.def.Attributes()
}

// Extract builds the attribute map for rec's payload.
func (e *Extractor) Extract(rec Valuer) (map[string]any, error) {
	if rec == nil {
		return nil, newRecordShapeError(nil)
	}

	return e.ExtractValue(rec.RecordValue())
}

// ExtractValue builds the attribute map for a decoded record value.
// Attributes whose path is absent are omitted. The returned map is never nil
// on success and value is never modified.
func (e *Extractor) ExtractValue(value any) (map[string]any, error) {
	root, ok := value.(map[string]any)
	if !ok {
		return nil, newRecordShapeError(value)
	}

	out := make(map[string]any, len(e.rules))

	for _, r := range e.rules {
		if v, found := Resolve(root, r.path); found {
			out[r.attribute] = v
		}
	}

	return out, nil
}
