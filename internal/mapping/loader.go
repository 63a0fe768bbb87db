package mapping

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"attr-mapper/internal/diagnostic"
)

// LoadFile loads and parses a mapping definition from the given path.
func LoadFile(path string) (Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses a JSON or YAML mapping definition. Well-formed JSON is decoded
// as JSON; anything else is read as YAML.
// Any failure is returned as a *DefinitionError.
func Parse(data []byte) (Definition, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return Definition{}, &DefinitionError{Err: fmt.Errorf("failed to parse mapping definition: %w", err)}
	}

	diags := &diagnostic.Diagnostics{}

	paths := validateDocument(doc, diags)
	if diags.HasErrors() {
		return Definition{}, &DefinitionError{Diagnostics: diags}
	}

	return newDefinition(paths), nil
}

func parseDocument(data []byte) (*yaml.Node, error) {
	if json.Valid(data) {
		return jsonDocument(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// ParseString is Parse for definitions held in a string, such as a
// configuration property.
func ParseString(source string) (Definition, error) {
	return Parse([]byte(source))
}

// Marshal serializes a Definition to YAML, one attribute per line with
// flow-style paths, in sorted attribute order.
func Marshal(def Definition) ([]byte, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}

	for name, path := range def.All() {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, key := range path {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: key})
		}

		root.Content = append(root.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: name},
			seq,
		)
	}

	return yaml.Marshal(root)
}

// WriteFile writes a Definition to the given path as YAML.
func WriteFile(def Definition, path string) error {
	data, err := Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
