package pipeline

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Policy -linecomment -output=policy_string.go

// Policy decides what happens to a record that cannot be extracted.
type Policy int

const (
	PolicySkip       Policy = iota // skip
	PolicyQuarantine               // quarantine
	PolicyFail                     // fail
)

// ParsePolicy parses a policy name as printed by Policy.String.
func ParsePolicy(name string) (Policy, error) {
	for _, p := range []Policy{PolicySkip, PolicyQuarantine, PolicyFail} {
		if strings.EqualFold(name, p.String()) {
			return p, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}
