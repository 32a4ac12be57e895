package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// jsonLocation records where the top-level version value sits in the source.
type jsonLocation struct {
	version string
	found   bool
	// start and end delimit the value token, end exclusive.
	start, end int64
	// open is the offset just past the top-level '{'.
	open int64
	// empty is true for an object without members.
	empty bool
}

// locateJSONVersion scans the top-level object for the version member.
// When the key repeats, the last occurrence wins, as in JSON.parse.
func locateJSONVersion(data []byte) (jsonLocation, error) {
	var loc jsonLocation

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return loc, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return loc, ErrNotObject
	}
	loc.open = dec.InputOffset()
	loc.empty = !dec.More()

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return loc, err
		}
		key, _ := keyTok.(string)
		afterKey := dec.InputOffset()

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return loc, err
		}
		if key != VersionKey {
			continue
		}

		start, err := valueStart(data, afterKey)
		if err != nil {
			return loc, err
		}
		loc.found = true
		loc.start = start
		loc.end = start + int64(len(raw))
		loc.version = ""
		var s string
		if json.Unmarshal(raw, &s) == nil {
			loc.version = s
		}
	}

	if _, err := dec.Token(); err != nil {
		return loc, err
	}
	return loc, nil
}

// valueStart skips the whitespace and colon that follow a key.
func valueStart(data []byte, off int64) (int64, error) {
	colon := false
	for i := off; i < int64(len(data)); i++ {
		switch c := data[i]; {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		case c == ':' && !colon:
			colon = true
		default:
			if !colon {
				return 0, fmt.Errorf("expected ':' at offset %d", i)
			}
			return i, nil
		}
	}
	return 0, fmt.Errorf("unexpected end of input")
}

// setJSONVersion splices version into data, leaving every other byte as is.
func setJSONVersion(data []byte, version string) ([]byte, error) {
	loc, err := locateJSONVersion(data)
	if err != nil {
		return nil, err
	}
	quoted, err := json.Marshal(version)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	switch {
	case loc.found:
		out.Write(data[:loc.start])
		out.Write(quoted)
		out.Write(data[loc.end:])
	case loc.empty:
		closeIdx := bytes.IndexByte(data[loc.open:], '}')
		out.Write(data[:loc.open])
		fmt.Fprintf(&out, "\n  %q: %s\n", VersionKey, quoted)
		out.Write(data[loc.open+int64(closeIdx):])
	default:
		out.Write(data[:loc.open])
		if ind, ok := memberIndent(data[loc.open:]); ok {
			fmt.Fprintf(&out, "\n%s%q: %s,", ind, VersionKey, quoted)
		} else {
			fmt.Fprintf(&out, "%q: %s, ", VersionKey, quoted)
		}
		out.Write(data[loc.open:])
	}
	return out.Bytes(), nil
}

// memberIndent returns the whitespace that precedes the first member when
// the object is laid out one member per line.
func memberIndent(rest []byte) (string, bool) {
	nl := -1
	for i, c := range rest {
		switch c {
		case '\n':
			nl = i
		case ' ', '\t', '\r':
		default:
			if nl < 0 {
				return "", false
			}
			return string(rest[nl+1 : i]), true
		}
	}
	return "", false
}
