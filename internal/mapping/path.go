package mapping

import (
	"strconv"
	"strings"

	"attr-mapper/internal/common"
)

// KeyPath is an ordered sequence of keys describing a traversal route from a
// record's top level down to a single field. A valid KeyPath has at least one key.
type KeyPath []string

// Len returns the number of keys in the path.
func (p KeyPath) Len() int {
	return len(p)
}

// Leaf returns the final key of the path, or "" for an empty path.
func (p KeyPath) Leaf() string {
	if v, ok := common.Last(p); ok {
		return v
	}

	return ""
}

// Clone returns a copy of the path that does not share storage with p.
func (p KeyPath) Clone() KeyPath {
	return common.Clone(p)
}

// Equal reports whether both paths hold the same keys in the same order.
func (p KeyPath) Equal(other KeyPath) bool {
	if len(p) != len(other) {
		return false
	}

	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}

	return true
}

// String renders the path in dotted form, e.g. "log.file.path".
// Keys that are empty or contain a dot are quoted so the rendering stays unambiguous.
func (p KeyPath) String() string {
	parts := make([]string, len(p))

	for i, key := range p {
		if key == "" || strings.ContainsAny(key, `."`) {
			parts[i] = strconv.Quote(key)
		} else {
			parts[i] = key
		}
	}

	return strings.Join(parts, ".")
}
