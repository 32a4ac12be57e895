// Package specjson canonicalizes JSON documents so that two copies of the
// same specification compare and hash identically regardless of key order,
// whitespace, line endings or byte order marks.
//
// # Canonical Form
//
// The canonical text of a document is:
//
//   - object keys sorted by byte order at every level
//   - two-space indentation, one member or element per line
//   - number literals exactly as they appeared in the input
//   - '<', '>' and '&' left unescaped
//   - a single trailing newline
//
// Input may be UTF-8 (with or without a byte order mark) or UTF-16 with a
// byte order mark. Invalid UTF-8 sequences are replaced with U+FFFD.
//
// # Usage
//
//	canonical, err := specjson.CanonicalizeDocument(body, url)
//	if err != nil {
//		return err
//	}
//	same, err := specjson.Equal(stored, canonical)
//	hash := specjson.Hash(canonical)
//
// The document content is never interpreted beyond [Version], which reads
// info.version.
package specjson
