package mapping

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"attr-mapper/internal/diagnostic"
)

// Diagnostic codes reported while validating a definition.
const (
	codeNotAMapping        = "not_a_mapping"
	codeInvalidAttribute   = "invalid_attribute"
	codeEmptyAttribute     = "empty_attribute"
	codeDuplicateAttribute = "duplicate_attribute"
	codeNotASequence       = "not_a_sequence"
	codeEmptyPath          = "empty_path"
	codeNotAString         = "not_a_string"
)

const strTag = "!!str"

// validateDocument converts a parsed YAML document into attribute paths.
// Every violation is added to res; the returned map is only meaningful when
// res has no errors.
func validateDocument(doc *yaml.Node, res *diagnostic.Diagnostics) map[string]KeyPath {
	root := doc
	if root.Kind == 0 {
		res.AddError(codeNotAMapping, "definition is empty", "", 0)
		return nil
	}

	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			res.AddError(codeNotAMapping, "definition is empty", "", root.Line)
			return nil
		}

		root = root.Content[0]
	}

	root = deref(root)
	if root.Kind != yaml.MappingNode {
		res.AddError(codeNotAMapping, fmt.Sprintf("definition must be a mapping, got %s", kindName(root)), "", root.Line)
		return nil
	}

	paths := make(map[string]KeyPath, len(root.Content)/2)

	for i := 0; i+1 < len(root.Content); i += 2 {
		keyNode := deref(root.Content[i])
		valueNode := deref(root.Content[i+1])

		name, ok := validateAttribute(keyNode, res)
		if !ok {
			continue
		}

		if _, dup := paths[name]; dup {
			res.AddError(codeDuplicateAttribute, "attribute is defined more than once", name, keyNode.Line)
			continue
		}

		path, ok := validatePath(name, valueNode, res)
		if !ok {
			// Reserve the name so a later duplicate is still reported.
			paths[name] = nil
			continue
		}

		paths[name] = path
	}

	return paths
}

func validateAttribute(node *yaml.Node, res *diagnostic.Diagnostics) (string, bool) {
	if node.Kind != yaml.ScalarNode {
		res.AddError(codeInvalidAttribute, fmt.Sprintf("attribute name must be a scalar, got %s", kindName(node)), "", node.Line)
		return "", false
	}

	if node.Value == "" {
		res.AddError(codeEmptyAttribute, "attribute name must not be empty", "", node.Line)
		return "", false
	}

	return node.Value, true
}

func validatePath(name string, node *yaml.Node, res *diagnostic.Diagnostics) (KeyPath, bool) {
	if node.Kind != yaml.SequenceNode {
		res.AddError(codeNotASequence, fmt.Sprintf("path must be a sequence of strings, got %s", kindName(node)), name, node.Line)
		return nil, false
	}

	if len(node.Content) == 0 {
		res.AddError(codeEmptyPath, "path must contain at least one key", name, node.Line)
		return nil, false
	}

	path := make(KeyPath, 0, len(node.Content))
	valid := true

	for idx, item := range node.Content {
		item = deref(item)
		if item.Kind != yaml.ScalarNode || item.ShortTag() != strTag {
			res.AddError(codeNotAString, fmt.Sprintf("path element %d must be a string, got %s", idx, kindName(item)), name, item.Line)
			valid = false

			continue
		}

		path = append(path, item.Value)
	}

	return path, valid
}

// deref follows alias nodes to the node they point at.
func deref(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

// kindName describes a node for diagnostics, using the resolved tag for scalars.
func kindName(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case strTag:
			return "string"
		case "!!int", "!!float":
			return "number"
		case "!!bool":
			return "boolean"
		case "!!null":
			return "null"
		default:
			return "scalar " + node.ShortTag()
		}
	default:
		return "unknown node"
	}
}
