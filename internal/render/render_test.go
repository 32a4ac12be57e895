package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/avalik-ee/riigikogu-openapi/specerrors"
)

// TestFile_Fixtures renders each testdata archive. An archive holds a "vars"
// file, one *.tmpl template and the expected output under its output path.
func TestFile_Fixtures(t *testing.T) {
	archives, err := filepath.Glob(filepath.Join("testdata", "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, archives)

	for _, path := range archives {
		t.Run(strings.TrimSuffix(filepath.Base(path), ".txtar"), func(t *testing.T) {
			ar, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var varsText string
			var tmpl, want *txtar.File
			for i := range ar.Files {
				f := &ar.Files[i]
				switch {
				case f.Name == "vars":
					varsText = strings.TrimSpace(string(f.Data))
				case strings.HasSuffix(f.Name, ".tmpl"):
					tmpl = f
				default:
					want = f
				}
			}
			require.NotNil(t, tmpl, "archive has no template")
			require.NotNil(t, want, "archive has no expected output")

			vars, err := ParseVars(varsText)
			require.NoError(t, err)

			dir := t.TempDir()
			m := Mapping{
				Template: filepath.Join(dir, tmpl.Name),
				Output:   filepath.Join(dir, filepath.FromSlash(want.Name)),
			}
			require.NoError(t, os.WriteFile(m.Template, tmpl.Data, 0o644))

			res, err := File(m, vars)
			require.NoError(t, err)
			assert.Equal(t, filepath.Ext(want.Name) == ".go", res.Formatted)

			got, err := os.ReadFile(m.Output)
			require.NoError(t, err)
			assert.Equal(t, string(want.Data), string(got))
		})
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		name string
		text string
		vars Vars
		want string
	}{
		{"no vars", "{{DATE}}", nil, "{{DATE}}"},
		{"repeated", "{{A}}-{{A}}", Vars{"A": "x"}, "x-x"},
		{"adjacent", "{{A}}{{B}}", Vars{"A": "1", "B": "2"}, "12"},
		{"prefix names", "{{A}} {{AB}}", Vars{"A": "1", "AB": "2"}, "1 2"},
		{"no re-expansion", "{{A}}", Vars{"A": "{{B}}", "B": "no"}, "{{B}}"},
		{"spaces are not placeholders", "{{ A }}", Vars{"A": "x"}, "{{ A }}"},
		{"empty value", "[{{A}}]", Vars{"A": ""}, "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Expand(tt.text, tt.vars))
		})
	}
}

func TestUnresolved(t *testing.T) {
	got := Unresolved("{{A}} {{B}} {{C}} {{B}} {{ D }}", Vars{"A": "1"})
	assert.Equal(t, []string{"B", "C"}, got)
	assert.Empty(t, Unresolved("plain text", nil))
}

func TestParseVars(t *testing.T) {
	vars, err := ParseVars(" A=1, B = two ,,C=x=y,A=3")
	require.NoError(t, err)
	assert.Equal(t, Vars{"A": "3", "B": " two", "C": "x=y"}, vars)

	vars, err = ParseVars("")
	require.NoError(t, err)
	assert.Empty(t, vars)

	for _, bad := range []string{"A", "=1", "1A=x", "A B=c"} {
		_, err := ParseVars(bad)
		assert.ErrorIs(t, err, specerrors.ErrArgument, bad)
	}
}

func TestMerge(t *testing.T) {
	got := Merge(Vars{"A": "1", "B": "1"}, nil, Vars{"B": "2"})
	assert.Equal(t, Vars{"A": "1", "B": "2"}, got)
}

func TestDateVars(t *testing.T) {
	tallinn := time.FixedZone("EEST", 3*60*60)
	now := time.Date(2026, 10, 20, 1, 30, 0, 0, tallinn)
	assert.Equal(t, Vars{"DATE": "2026-10-19"}, DateVars(now))
}

func TestAll_CollectsErrors(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.tmpl")
	require.NoError(t, os.WriteFile(good, []byte("{{DATE}}\n"), 0o644))
	badGo := filepath.Join(dir, "bad.go.tmpl")
	require.NoError(t, os.WriteFile(badGo, []byte("package {{DATE}}\n"), 0o644))

	results, err := All([]Mapping{
		{Template: filepath.Join(dir, "missing.tmpl"), Output: filepath.Join(dir, "missing.txt")},
		{Template: good, Output: filepath.Join(dir, "good.txt")},
		{Template: badGo, Output: filepath.Join(dir, "bad.go")},
	}, Vars{"DATE": "2026-10-19"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.tmpl")
	assert.Contains(t, err.Error(), "formatting")
	require.Len(t, results, 1)
	assert.Equal(t, filepath.Join(dir, "good.txt"), results[0].Output)

	_, statErr := os.Stat(filepath.Join(dir, "bad.go"))
	assert.True(t, os.IsNotExist(statErr))
}
