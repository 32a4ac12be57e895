// Package options checks mutually exclusive inputs shared by the CLI and the
// MCP tools.
package options

import (
	"fmt"
	"strings"
)

// Source is one named input and the value it was given.
type Source struct {
	Name  string
	Value string
}

// ExactlyOne returns the name of the single source with a non-empty value.
// It fails when none or more than one is set.
func ExactlyOne(sources ...Source) (string, error) {
	set := setNames(sources)
	if len(set) != 1 {
		return "", fmt.Errorf("exactly one of %s must be provided (got %d)", names(sources), len(set))
	}
	return set[0], nil
}

// AtMostOne returns the name of the source with a non-empty value, or "" when
// none is set. It fails when more than one is set.
func AtMostOne(sources ...Source) (string, error) {
	set := setNames(sources)
	switch len(set) {
	case 0:
		return "", nil
	case 1:
		return set[0], nil
	}
	return "", fmt.Errorf("only one of %s may be provided (got %s)", names(sources), strings.Join(set, ", "))
}

func setNames(sources []Source) []string {
	var set []string
	for _, s := range sources {
		if s.Value != "" {
			set = append(set, s.Name)
		}
	}
	return set
}

func names(sources []Source) string {
	n := make([]string, len(sources))
	for i, s := range sources {
		n[i] = s.Name
	}
	switch len(n) {
	case 0:
		return ""
	case 1:
		return n[0]
	}
	return strings.Join(n[:len(n)-1], ", ") + " or " + n[len(n)-1]
}
