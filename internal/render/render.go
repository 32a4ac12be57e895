// Package render fills {{NAME}} placeholders in template files.
//
// Substitution is literal: there are no conditionals or loops, placeholders
// without a value are left in place, and substituted values are never
// expanded again.
package render

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"golang.org/x/tools/imports"

	"github.com/avalik-ee/riigikogu-openapi/internal/fileutil"
	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// DateLayout is the format of the DATE variable.
const DateLayout = "2006-01-02"

// Vars maps placeholder names to values.
type Vars map[string]string

// placeholder matches {{NAME}} with an identifier-like name.
var placeholder = regexp.MustCompile(`\{\{([A-Za-z_][A-Za-z0-9_]*)\}\}`)

// DateVars returns the built-in DATE variable for now, in UTC.
func DateVars(now time.Time) Vars {
	return Vars{"DATE": now.UTC().Format(DateLayout)}
}

// ParseVars parses a comma-separated list of NAME=VALUE pairs. Empty entries
// are skipped; a later duplicate wins.
func ParseVars(s string) (Vars, error) {
	vars := Vars{}
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, value, ok := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		if !ok || !placeholder.MatchString("{{"+name+"}}") {
			return nil, &specerrors.ArgumentError{Name: "vars", Value: entry, Message: "expected NAME=VALUE"}
		}
		vars[name] = value
	}
	return vars, nil
}

// Merge returns a new Vars with the entries of each set applied in order.
func Merge(sets ...Vars) Vars {
	out := Vars{}
	for _, s := range sets {
		maps.Copy(out, s)
	}
	return out
}

// Expand substitutes every {{NAME}} that has a value in vars.
func Expand(text string, vars Vars) string {
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, 2*len(vars))
	for _, name := range slices.Sorted(maps.Keys(vars)) {
		pairs = append(pairs, "{{"+name+"}}", vars[name])
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

// Unresolved returns the distinct placeholder names in text that have no
// value in vars, in order of first appearance.
func Unresolved(text string, vars Vars) []string {
	var names []string
	for _, m := range placeholder.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if _, ok := vars[name]; ok || slices.Contains(names, name) {
			continue
		}
		names = append(names, name)
	}
	return names
}

// Mapping pairs a template with the file rendered from it.
type Mapping struct {
	Template string
	Output   string
}

// Result describes one rendered file.
type Result struct {
	Mapping
	// Unresolved lists placeholders left in the output.
	Unresolved []string
	// Formatted is true when the output was run through goimports.
	Formatted bool
}

// File renders one mapping. Output directories are created as needed and
// .go outputs are formatted with goimports.
func File(m Mapping, vars Vars) (*Result, error) {
	src, err := os.ReadFile(m.Template) //nolint:gosec // template paths come from pipeline configuration
	if err != nil {
		return nil, fmt.Errorf("render: reading template %s: %w", m.Template, err)
	}

	text := string(src)
	res := &Result{Mapping: m, Unresolved: Unresolved(text, vars)}
	out := []byte(Expand(text, vars))

	if filepath.Ext(m.Output) == ".go" {
		formatted, err := imports.Process(m.Output, out, nil)
		if err != nil {
			return nil, fmt.Errorf("render: formatting %s: %w", m.Output, err)
		}
		out = formatted
		res.Formatted = true
	}

	if dir := filepath.Dir(m.Output); dir != "." {
		if err := os.MkdirAll(dir, fileutil.DirReadableByAll); err != nil {
			return nil, fmt.Errorf("render: creating %s: %w", dir, err)
		}
	}
	if err := fileutil.WriteFileAtomic(m.Output, out, fileutil.ReadableByAll); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return res, nil
}

// All renders every mapping, continuing past failures. The returned error
// joins every failure.
func All(mappings []Mapping, vars Vars) ([]*Result, error) {
	results := make([]*Result, 0, len(mappings))
	var errs []error
	for _, m := range mappings {
		res, err := File(m, vars)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results = append(results, res)
	}
	return results, errors.Join(errs...)
}
