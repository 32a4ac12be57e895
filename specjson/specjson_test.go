package specjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "sorts keys recursively",
			input: `{"b":1,"a":{"d":[{"z":true,"y":null}],"c":"x"}}`,
			want: `{
  "a": {
    "c": "x",
    "d": [
      {
        "y": null,
        "z": true
      }
    ]
  },
  "b": 1
}
`,
		},
		{
			name:  "keeps array order",
			input: `[3, 1, 2]`,
			want:  "[\n  3,\n  1,\n  2\n]\n",
		},
		{
			name:  "preserves number literals",
			input: `{"big": 12345678901234567890123, "exp": 1e3, "frac": 1.50}`,
			want:  "{\n  \"big\": 12345678901234567890123,\n  \"exp\": 1e3,\n  \"frac\": 1.50\n}\n",
		},
		{
			name:  "does not escape html characters",
			input: `{"description": "<b>a & b</b>"}`,
			want:  "{\n  \"description\": \"<b>a & b</b>\"\n}\n",
		},
		{
			name:  "keeps non-ascii text",
			input: `{"title": "Hääletused"}`,
			want:  "{\n  \"title\": \"Hääletused\"\n}\n",
		},
		{
			name:  "empty containers",
			input: `{"a": {}, "b": []}`,
			want:  "{\n  \"a\": {},\n  \"b\": []\n}\n",
		},
		{
			name:  "scalar",
			input: ` "text" `,
			want:  "\"text\"\n",
		},
		{
			name:  "utf-8 byte order mark",
			input: "\ufeff{\"a\": 1}",
			want:  "{\n  \"a\": 1\n}\n",
		},
		{
			name:  "crlf whitespace",
			input: "{\r\n  \"a\": 1\r\n}\r\n",
			want:  "{\n  \"a\": 1\n}\n",
		},
		{
			name:  "duplicate keys keep the last value",
			input: `{"a": 1, "a": 2}`,
			want:  "{\n  \"a\": 2\n}\n",
		},
		{
			name:  "line and paragraph separators stay raw",
			input: `{"a": "x\u2028y\u2029z"}`,
			want:  "{\n  \"a\": \"x\u2028y\u2029z\"\n}\n",
		},
		{
			name:  "escaped backslash before u2028 text",
			input: `{"a": "\\u2028"}`,
			want:  "{\n  \"a\": \"\\\\u2028\"\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Canonicalize([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestCanonicalize_UTF16(t *testing.T) {
	// {"a":1} as UTF-16LE with BOM
	input := []byte{0xFF, 0xFE, '{', 0, '"', 0, 'a', 0, '"', 0, ':', 0, '1', 0, '}', 0}
	got, err := Canonicalize(input)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}\n", string(got))
}

func TestCanonicalize_Idempotent(t *testing.T) {
	first, err := Canonicalize([]byte(`{"paths":{"/b":{},"/a":{"get":{"tags":["x","y"]}}},"openapi":"3.0.1"}`))
	require.NoError(t, err)
	second, err := Canonicalize(first)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
	assert.True(t, IsCanonical(first))
}

func TestCanonicalize_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "  \n"},
		{"syntax error", `{"a": }`},
		{"truncated", `{"a": [1, 2`},
		{"trailing value", `{"a": 1} {"b": 2}`},
		{"trailing garbage", `{"a": 1} x`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Canonicalize([]byte(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, specerrors.ErrDecode)
		})
	}
}

func TestCanonicalizeDocument(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		got, err := CanonicalizeDocument([]byte(`{"openapi":"3.0.1"}`), "spec.json")
		require.NoError(t, err)
		assert.Equal(t, "{\n  \"openapi\": \"3.0.1\"\n}\n", string(got))
	})

	t.Run("non-object top level", func(t *testing.T) {
		for input, kind := range map[string]string{`[]`: "array", `"x"`: "string", `null`: "null", `42`: "number", `true`: "boolean"} {
			_, err := CanonicalizeDocument([]byte(input), "https://example.com/api-docs")
			require.Error(t, err, input)
			assert.ErrorIs(t, err, specerrors.ErrDecode)
			assert.Contains(t, err.Error(), "https://example.com/api-docs")
			assert.Contains(t, err.Error(), "top-level value is "+kind)
		}
	})

	t.Run("syntax error carries source and offset", func(t *testing.T) {
		_, err := CanonicalizeDocument([]byte(`{"a" 1}`), "stored.json")
		var decErr *specerrors.DecodeError
		require.ErrorAs(t, err, &decErr)
		assert.Equal(t, "stored.json", decErr.Source)
		assert.Positive(t, decErr.Offset)
	})
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want bool
	}{
		{"identical", `{"a":1}`, `{"a":1}`, true},
		{"key order", `{"a":1,"b":{"c":2,"d":3}}`, `{"b":{"d":3,"c":2},"a":1}`, true},
		{"whitespace", `{"a":[1,2]}`, "{\n  \"a\": [ 1, 2 ]\n}\n", true},
		{"array order matters", `{"a":[1,2]}`, `{"a":[2,1]}`, false},
		{"value differs", `{"a":"x"}`, `{"a":"y"}`, false},
		{"extra key", `{"a":1}`, `{"a":1,"b":2}`, false},
		{"equal numbers written differently", `{"a":1,"b":[1000]}`, `{"a":1.0,"b":[1e3]}`, true},
		{"numbers differ", `{"a":1}`, `{"a":1.5}`, false},
		{"number and string", `{"a":1}`, `{"a":"1"}`, false},
		{"null and missing", `{"a":null}`, `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Equal([]byte(tt.a), []byte(tt.b))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Equal([]byte(`{`), []byte(`{}`))
	assert.ErrorIs(t, err, specerrors.ErrDecode)
	_, err = Equal([]byte(`{}`), []byte(`{`))
	assert.ErrorIs(t, err, specerrors.ErrDecode)
}

func TestIsCanonical(t *testing.T) {
	assert.True(t, IsCanonical([]byte("{\n  \"a\": 1\n}\n")))
	assert.True(t, IsCanonical([]byte("{\r\n  \"a\": 1\r\n}\r\n")))
	assert.False(t, IsCanonical([]byte(`{"a":1}`)))
	assert.False(t, IsCanonical([]byte("{\n  \"a\": 1\n}")))
	assert.False(t, IsCanonical([]byte("{\n  \"b\": 1,\n  \"a\": 2\n}\n")))
	assert.False(t, IsCanonical([]byte("not json")))
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, "a\nb\n", string(NormalizeNewlines([]byte("a\r\nb\r\n"))))
	assert.Equal(t, "a\nb", string(NormalizeNewlines([]byte("a\nb"))))
	assert.Equal(t, "a\rb", string(NormalizeNewlines([]byte("a\rb"))))
}

func TestHash(t *testing.T) {
	// sha256("{}\n")
	const want = "ca3d163bab055381827226140568f3bef7eaac187cebd76878e0b63e9e442356"
	assert.Equal(t, want, Hash([]byte("{}\n")))
	assert.Equal(t, want, Hash([]byte("{}\r\n")))
	assert.Len(t, Hash(nil), 64)
}

func TestVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"present", `{"info":{"version":"2.21.4"}}`, "2.21.4", nil},
		{"missing info", `{"openapi":"3.0.1"}`, "", ErrNoVersion},
		{"missing version", `{"info":{"title":"x"}}`, "", ErrNoVersion},
		{"empty version", `{"info":{"version":""}}`, "", ErrNoVersion},
		{"numeric version", `{"info":{"version":2}}`, "", ErrNoVersion},
		{"info not object", `{"info":"2.0.0"}`, "", ErrNoVersion},
		{"not json", `{`, "", specerrors.ErrDecode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Version([]byte(tt.input))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
