package coverage

import (
	"fmt"

	"attr-mapper/internal/diagnostic"
	"attr-mapper/internal/extract"
	"attr-mapper/internal/mapping"
	"attr-mapper/internal/match"
)

const maxSuggestions = 3

const (
	codeNeverPresent = "attribute_never_present"
	codeRecordShape  = "record_not_a_mapping"
)

// Attribute is the coverage of one attribute across the sample.
type Attribute struct {
	Name    string
	Path    mapping.KeyPath
	Present int
	Absent  int
	// FirstMiss is how the path failed on the first record where it was absent.
	FirstMiss *extract.Outcome
}

// Report is the result of Analyze.
type Report struct {
	Records     int // sample values examined
	Rejected    int // values that were not mappings
	Attributes  []Attribute
	Diagnostics diagnostic.Diagnostics
}

// Analyze resolves every attribute of def against each sample value.
func Analyze(def mapping.Definition, samples []any) *Report {
	report := &Report{Records: len(samples)}

	index := make(map[string]int, def.Len())
	for name, path := range def.All() {
		index[name] = len(report.Attributes)
		report.Attributes = append(report.Attributes, Attribute{Name: name, Path: path})
	}

	for i, sample := range samples {
		root, ok := sample.(map[string]any)
		if !ok {
			report.Rejected++
			report.Diagnostics.AddWarning(codeRecordShape,
				fmt.Sprintf("sample %d is not a mapping (%T)", i, sample), "", 0)

			continue
		}

		for name, path := range def.All() {
			attr := &report.Attributes[index[name]]

			out := extract.Explain(root, path)
			if out.Found {
				attr.Present++
				continue
			}

			attr.Absent++

			if attr.FirstMiss == nil {
				attr.FirstMiss = &out
			}
		}
	}

	for _, attr := range report.Attributes {
		if attr.Present > 0 || attr.FirstMiss == nil {
			continue
		}

		report.Diagnostics.Add(neverPresent(attr))
	}

	return report
}

func neverPresent(attr Attribute) diagnostic.Diagnostic {
	miss := attr.FirstMiss

	d := diagnostic.Diagnostic{
		Severity:  diagnostic.DiagnosticWarning,
		Code:      codeNeverPresent,
		Attribute: attr.Name,
	}

	key := ""
	if miss.Depth < len(attr.Path) {
		key = attr.Path[miss.Depth]
	}

	switch miss.Reason {
	case extract.ReasonMissingKey:
		d.Message = fmt.Sprintf("path %s never resolved: key %q missing at depth %d", attr.Path, key, miss.Depth)
		d.Suggestions = match.Keys(match.Suggest(key, miss.Keys, match.DefaultThreshold, maxSuggestions))
	case extract.ReasonNotMapping:
		d.Message = fmt.Sprintf("path %s never resolved: value before key %q is not a mapping", attr.Path, key)
	default:
		d.Message = fmt.Sprintf("path %s never resolved: %s at key %q", attr.Path, miss.Reason, key)
	}

	return d
}

// Coverage returns the fraction of mapping samples in which the attribute resolved.
func (a Attribute) Coverage() float64 {
	total := a.Present + a.Absent
	if total == 0 {
		return 0
	}

	return float64(a.Present) / float64(total)
}
