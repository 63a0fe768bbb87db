package extract

import (
	"maps"
	"slices"

	"attr-mapper/internal/common"
	"attr-mapper/internal/mapping"
)

// AbsenceReason says why a path did not resolve.
type AbsenceReason int

const (
	ReasonNone AbsenceReason = iota
	ReasonEmptyPath
	ReasonMissingKey
	ReasonNullValue
	ReasonNotMapping
)

func (r AbsenceReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonEmptyPath:
		return "empty path"
	case ReasonMissingKey:
		return "missing key"
	case ReasonNullValue:
		return "null value"
	case ReasonNotMapping:
		return "not a mapping"
	default:
		return common.UnknownStr
	}
}

// Outcome describes how far a path got through a record.
type Outcome struct {
	Value any
	Found bool
	// Depth is the index of the key where resolution stopped, or the last
	// index when Found.
	Depth  int
	Reason AbsenceReason
	// Keys lists, sorted, the keys of the mapping searched at Depth.
	Keys []string
}

// Explain resolves path like Resolve and also reports where and why an absent
// path stopped. Found and Value always agree with Resolve.
func Explain(root map[string]any, path mapping.KeyPath) Outcome {
	if len(path) == 0 {
		return Outcome{Reason: ReasonEmptyPath}
	}

	current := root

	for i, key := range path {
		value, ok := current[key]

		switch {
		case !ok:
			return Outcome{Depth: i, Reason: ReasonMissingKey, Keys: sortedKeys(current)}
		case value == nil:
			return Outcome{Depth: i, Reason: ReasonNullValue, Keys: sortedKeys(current)}
		case i == len(path)-1:
			return Outcome{Value: value, Found: true, Depth: i}
		}

		next, isMap := value.(map[string]any)
		if !isMap {
			// The scalar sits at key i; key i+1 has nothing to search.
			return Outcome{Depth: i + 1, Reason: ReasonNotMapping}
		}

		current = next
	}

	return Outcome{Reason: ReasonEmptyPath}
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}
