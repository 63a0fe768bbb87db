package extract

import "attr-mapper/internal/mapping"

// Resolve follows path through root and returns the value at its last key.
//
// The result is absent (false) when a key is missing, when a key holds nil,
// or when a key holds a non-map value while more keys remain. Any non-nil
// value at the last key, map or scalar, is present. Resolve never modifies root.
func Resolve(root map[string]any, path mapping.KeyPath) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	current := root
	last := len(path) - 1

	for i, key := range path {
		value, ok := current[key]
		if !ok || value == nil {
			return nil, false
		}

		if i == last {
			return value, true
		}

		next, isMap := value.(map[string]any)
		if !isMap {
			return nil, false
		}

		current = next
	}

	return nil, false
}
