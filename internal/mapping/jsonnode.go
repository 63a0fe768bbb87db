package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// jsonDocument decodes a JSON definition into the same node tree yaml.v3
// produces, so validation does not depend on the input format. Strict JSON
// goes through here because YAML rejects some JSON string escapes such as \/.
func jsonDocument(data []byte) (*yaml.Node, error) {
	d := &jsonNodeDecoder{
		dec:   json.NewDecoder(bytes.NewReader(data)),
		data:  data,
		lines: lineStarts(data),
	}
	d.dec.UseNumber()

	root, err := d.value()
	if err != nil {
		return nil, err
	}

	if _, err := d.dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}

	return &yaml.Node{Kind: yaml.DocumentNode, Line: 1, Column: 1, Content: []*yaml.Node{root}}, nil
}

type jsonNodeDecoder struct {
	dec   *json.Decoder
	data  []byte
	lines []int
}

// value reads one complete JSON value.
func (d *jsonNodeDecoder) value() (*yaml.Node, error) {
	line := d.line()

	tok, err := d.dec.Token()
	if err != nil {
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return d.object(line)
		case '[':
			return d.array(line)
		default:
			return nil, fmt.Errorf("unexpected %q", rune(t))
		}
	case string:
		return scalarNode(strTag, t, line), nil
	case json.Number:
		if strings.ContainsAny(t.String(), ".eE") {
			return scalarNode("!!float", t.String(), line), nil
		}

		return scalarNode("!!int", t.String(), line), nil
	case bool:
		return scalarNode("!!bool", fmt.Sprint(t), line), nil
	case nil:
		return scalarNode("!!null", "null", line), nil
	default:
		return nil, fmt.Errorf("unexpected token %v", tok)
	}
}

func (d *jsonNodeDecoder) object(line int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Line: line}

	for d.dec.More() {
		keyLine := d.line()

		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("object key must be a string, got %v", tok)
		}

		value, err := d.value()
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content, scalarNode(strTag, key, keyLine), value)
	}

	// closing '}'
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}

	return node, nil
}

func (d *jsonNodeDecoder) array(line int) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Line: line}

	for d.dec.More() {
		item, err := d.value()
		if err != nil {
			return nil, err
		}

		node.Content = append(node.Content, item)
	}

	// closing ']'
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}

	return node, nil
}

// line returns the 1-based line of the next token. InputOffset points just past
// the previous token, so leading whitespace and separators are skipped first.
func (d *jsonNodeDecoder) line() int {
	offset := int(d.dec.InputOffset())
	rest := d.data[offset:]
	offset += len(rest) - len(bytes.TrimLeft(rest, " \t\r\n,:"))

	return sort.SearchInts(d.lines, offset+1)
}

func scalarNode(tag, value string, line int) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value, Line: line}
}

// lineStarts returns the byte offset at which each line begins.
func lineStarts(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}
