// Package semver validates, compares and bumps semantic versions of the form
// MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD].
//
// Versions are written without a "v" prefix, as they appear in OpenAPI
// info.version fields and package manifests. Comparison follows SemVer 2.0.0
// precedence (build metadata is ignored).
package semver

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// Baseline is the version used when an existing version cannot be parsed.
const Baseline = "1.0.0"

// Level selects which component Bump increments.
type Level string

const (
	// LevelMajor increments MAJOR and resets MINOR and PATCH.
	LevelMajor Level = "major"
	// LevelMinor increments MINOR and resets PATCH.
	LevelMinor Level = "minor"
	// LevelPatch increments PATCH.
	LevelPatch Level = "patch"
)

// Version is a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
	Build      string
}

// Parse parses a strict semantic version.
func Parse(s string) (*Version, error) {
	rest := s
	var build, prerelease string
	if idx := strings.IndexByte(rest, '+'); idx >= 0 {
		build = rest[idx+1:]
		rest = rest[:idx]
		if !validIdentifiers(build, false) {
			return nil, &specerrors.VersionError{Version: s, Message: "invalid build metadata"}
		}
	}
	if idx := strings.IndexByte(rest, '-'); idx >= 0 {
		prerelease = rest[idx+1:]
		rest = rest[:idx]
		if !validIdentifiers(prerelease, true) {
			return nil, &specerrors.VersionError{Version: s, Message: "invalid prerelease"}
		}
	}

	parts := strings.Split(rest, ".")
	if len(parts) != 3 {
		return nil, &specerrors.VersionError{Version: s, Message: "want MAJOR.MINOR.PATCH"}
	}

	var nums [3]int
	for i, p := range parts {
		n, err := parseNumeric(p)
		if err != nil {
			return nil, &specerrors.VersionError{Version: s, Message: err.Error()}
		}
		nums[i] = n
	}

	return &Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: prerelease,
		Build:      build,
	}, nil
}

// Valid reports whether s is a strict semantic version.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// Compare returns -1, 0 or +1 as a is lower than, equal to or higher than b
// in semver precedence. Invalid versions sort before valid ones.
func Compare(a, b string) int {
	return semver.Compare(canonical(a), canonical(b))
}

// Equal reports whether a and b have equal precedence.
// "1.2.3+build.5" equals "1.2.3".
func Equal(a, b string) bool {
	return Valid(a) && Valid(b) && Compare(a, b) == 0
}

// Bump returns current incremented at level. An invalid current version is
// replaced by Baseline before incrementing, so a major bump yields 2.0.0.
func Bump(current string, level Level) (string, error) {
	v, err := Parse(current)
	if err != nil {
		v, _ = Parse(Baseline)
	}
	next, err := v.Inc(level)
	if err != nil {
		return "", err
	}
	return next.String(), nil
}

// Inc returns the version that follows v at level. A prerelease is released
// rather than incremented: 1.2.3-rc.1 patch-bumps to 1.2.3, and
// 2.0.0-rc.1 major-bumps to 2.0.0. Build metadata is dropped.
func (v *Version) Inc(level Level) (*Version, error) {
	next := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
	switch level {
	case LevelMajor:
		if v.Prerelease == "" || v.Minor != 0 || v.Patch != 0 {
			next.Major++
		}
		next.Minor, next.Patch = 0, 0
	case LevelMinor:
		if v.Prerelease == "" || v.Patch != 0 {
			next.Minor++
		}
		next.Patch = 0
	case LevelPatch:
		if v.Prerelease == "" {
			next.Patch++
		}
	default:
		return nil, fmt.Errorf("semver: unknown level %q", level)
	}
	if next.Major > math.MaxInt32 || next.Minor > math.MaxInt32 || next.Patch > math.MaxInt32 {
		return nil, &specerrors.VersionError{Version: v.String(), Message: "component overflow"}
	}
	return &next, nil
}

// String returns the version in MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD] form.
func (v *Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// ParseLevel parses a bump level name.
func ParseLevel(s string) (Level, error) {
	switch l := Level(strings.ToLower(s)); l {
	case LevelMajor, LevelMinor, LevelPatch:
		return l, nil
	}
	return "", fmt.Errorf("semver: unknown level %q: must be one of major, minor, patch", s)
}

// canonical maps a version to the "v"-prefixed form x/mod/semver expects.
// Invalid versions map to "", which x/mod/semver orders first.
func canonical(s string) string {
	if !Valid(s) {
		return ""
	}
	return "v" + s
}

func parseNumeric(p string) (int, error) {
	if p == "" {
		return 0, fmt.Errorf("empty version component")
	}
	if len(p) > 1 && p[0] == '0' {
		return 0, fmt.Errorf("leading zero in %q", p)
	}
	for i := 0; i < len(p); i++ {
		if p[i] < '0' || p[i] > '9' {
			return 0, fmt.Errorf("non-numeric component %q", p)
		}
	}
	n, err := strconv.Atoi(p)
	if err != nil || n > math.MaxInt32 {
		return 0, fmt.Errorf("component %q out of range", p)
	}
	return n, nil
}

// validIdentifiers checks dot-separated prerelease or build identifiers.
// Numeric prerelease identifiers must not have leading zeros.
func validIdentifiers(s string, prerelease bool) bool {
	if s == "" {
		return false
	}
	for _, id := range strings.Split(s, ".") {
		if id == "" {
			return false
		}
		numeric := true
		for i := 0; i < len(id); i++ {
			c := id[i]
			switch {
			case c >= '0' && c <= '9':
			case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '-':
				numeric = false
			default:
				return false
			}
		}
		if prerelease && numeric && len(id) > 1 && id[0] == '0' {
			return false
		}
	}
	return true
}
