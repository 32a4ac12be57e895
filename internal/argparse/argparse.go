// Package argparse parses the flat "--key value" argument lists shared by
// every specsync command.
//
// The grammar is deliberately loose so that CI workflow files stay readable:
//
//	--key value       key = "value"
//	--key=value       key = "value"
//	key value         key = "value" (leading dashes are optional)
//	--flag            flag = "true" when no value follows
//
// Parsing never fails. Commands validate what they need with [Args.Require].
package argparse

import (
	"slices"
	"strconv"
	"strings"

	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// FlagValue is the value recorded for a key that has no value.
const FlagValue = "true"

const prefix = "--"

// Args holds parsed arguments. The zero value is an empty set.
type Args struct {
	values map[string]string
	order  []string
}

// Parse turns tokens into Args. A later occurrence of a key overrides an
// earlier one.
func Parse(tokens []string) Args {
	var a Args
	for i := 0; i < len(tokens); i++ {
		key, value, inline := strings.Cut(strings.TrimPrefix(tokens[i], prefix), "=")
		if !inline {
			value = FlagValue
			if i+1 < len(tokens) && !strings.HasPrefix(tokens[i+1], prefix) {
				value = tokens[i+1]
				i++
			}
		}
		if key == "" {
			continue
		}
		a.set(key, value)
	}
	return a
}

func (a *Args) set(key, value string) {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, seen := a.values[key]; !seen {
		a.order = append(a.order, key)
	}
	a.values[key] = value
}

// Get returns the value for key, or "" when it is absent.
func (a Args) Get(key string) string {
	return a.values[key]
}

// GetOr returns the value for key, or fallback when it is absent or empty.
func (a Args) GetOr(key, fallback string) string {
	if v := a.values[key]; v != "" {
		return v
	}
	return fallback
}

// Lookup returns the value for key and whether it was present.
func (a Args) Lookup(key string) (string, bool) {
	v, ok := a.values[key]
	return v, ok
}

// Has reports whether key was given.
func (a Args) Has(key string) bool {
	_, ok := a.values[key]
	return ok
}

// Bool reports whether key was given with a true value.
// A bare flag counts as true; "false", "0" and other
// strconv.ParseBool false values do not.
func (a Args) Bool(key string) bool {
	v, ok := a.values[key]
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return true
	}
	return b
}

// Len returns the number of distinct keys.
func (a Args) Len() int {
	return len(a.values)
}

// Keys returns the keys in the order they were first seen.
func (a Args) Keys() []string {
	out := make([]string, len(a.order))
	copy(out, a.order)
	return out
}

// Require returns an *specerrors.ArgumentError for the first key that is
// missing or empty.
func (a Args) Require(keys ...string) error {
	for _, k := range keys {
		if a.values[k] == "" {
			return &specerrors.ArgumentError{Name: k}
		}
	}
	return nil
}

// Unknown returns the given keys that are not in allowed, in first-seen order.
func (a Args) Unknown(allowed ...string) []string {
	var out []string
	for _, k := range a.order {
		if !slices.Contains(allowed, k) {
			out = append(out, k)
		}
	}
	return out
}
