package specjson

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// ErrNoVersion is returned by Version when info.version is absent, empty or
// not a string.
var ErrNoVersion = errors.New("specjson: version not found")

const indent = "  "

// Canonicalize returns the canonical text of any JSON value.
func Canonicalize(data []byte) ([]byte, error) {
	v, err := decode(data, "")
	if err != nil {
		return nil, err
	}
	return encode(v)
}

// CanonicalizeDocument returns the canonical text of a JSON document whose
// top-level value is an object. source names the input in errors.
func CanonicalizeDocument(data []byte, source string) ([]byte, error) {
	doc, err := decodeObject(data, source)
	if err != nil {
		return nil, err
	}
	return encode(doc)
}

// DecodeObject decodes a document whose top-level value is an object.
// Numbers are decoded as json.Number.
func DecodeObject(data []byte) (map[string]any, error) {
	return decodeObject(data, "")
}

// Equal reports whether a and b hold the same JSON value, ignoring object key
// order and formatting. Numbers compare by their float64 value, so 1, 1.0
// and 1e0 are equal.
func Equal(a, b []byte) (bool, error) {
	va, err := decode(a, "")
	if err != nil {
		return false, err
	}
	vb, err := decode(b, "")
	if err != nil {
		return false, err
	}
	return equalValues(va, vb), nil
}

func equalValues(a, b any) bool {
	switch a := a.(type) {
	case map[string]any:
		b, ok := b.(map[string]any)
		if !ok || len(a) != len(b) {
			return false
		}
		for k, av := range a {
			bv, ok := b[k]
			if !ok || !equalValues(av, bv) {
				return false
			}
		}
		return true
	case []any:
		b, ok := b.([]any)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !equalValues(a[i], b[i]) {
				return false
			}
		}
		return true
	case json.Number:
		b, ok := b.(json.Number)
		if !ok {
			return false
		}
		fa, errA := a.Float64()
		fb, errB := b.Float64()
		if errA != nil || errB != nil {
			return a == b
		}
		return fa == fb
	default:
		return a == b
	}
}

// IsCanonical reports whether data is already byte-for-byte in canonical form
// once CRLF line endings are normalized.
func IsCanonical(data []byte) bool {
	c, err := Canonicalize(data)
	if err != nil {
		return false
	}
	return bytes.Equal(NormalizeNewlines(data), c)
}

// NormalizeNewlines replaces CRLF line endings with LF.
// The input is returned unchanged when it contains no CR.
func NormalizeNewlines(b []byte) []byte {
	if bytes.IndexByte(b, '\r') < 0 {
		return b
	}
	return bytes.ReplaceAll(b, []byte("\r\n"), []byte("\n"))
}

// Hash returns the lowercase hex SHA-256 of b after newline normalization.
func Hash(b []byte) string {
	sum := sha256.Sum256(NormalizeNewlines(b))
	return hex.EncodeToString(sum[:])
}

// Version returns info.version of a document.
func Version(data []byte) (string, error) {
	doc, err := DecodeObject(data)
	if err != nil {
		return "", err
	}
	info, ok := doc["info"].(map[string]any)
	if !ok {
		return "", ErrNoVersion
	}
	v, ok := info["version"].(string)
	if !ok || v == "" {
		return "", ErrNoVersion
	}
	return v, nil
}

func decodeObject(data []byte, source string) (map[string]any, error) {
	v, err := decode(data, source)
	if err != nil {
		return nil, err
	}
	doc, ok := v.(map[string]any)
	if !ok {
		return nil, &specerrors.DecodeError{
			Source:  source,
			Message: fmt.Sprintf("top-level value is %s, want object", kind(v)),
		}
	}
	return doc, nil
}

// decode parses a single JSON value, rejecting trailing data.
func decode(data []byte, source string) (any, error) {
	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return nil, &specerrors.DecodeError{Source: source, Message: "invalid text encoding", Cause: err}
	}

	dec := json.NewDecoder(bytes.NewReader(text))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &specerrors.DecodeError{Source: source, Message: "empty document"}
		}
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &specerrors.DecodeError{Source: source, Offset: syntaxErr.Offset, Cause: err}
		}
		return nil, &specerrors.DecodeError{Source: source, Cause: err}
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &specerrors.DecodeError{
			Source:  source,
			Offset:  dec.InputOffset(),
			Message: "unexpected data after top-level value",
		}
	}
	return v, nil
}

// encode writes v in canonical form. encoding/json emits map keys in sorted
// order, which gives the recursive key ordering.
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("specjson: encoding: %w", err)
	}
	return unescapeSeparators(buf.Bytes()), nil
}

// unescapeSeparators turns the \u2028 and \u2029 escapes that encoding/json
// always emits back into raw characters. Other escapes are copied as is.
func unescapeSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if rest := b[i+1:]; bytes.HasPrefix(rest, []byte("u2028")) || bytes.HasPrefix(rest, []byte("u2029")) {
			out = utf8.AppendRune(out, 0x2020+rune(rest[4]-'0'))
			i += 5
			continue
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

func kind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}
