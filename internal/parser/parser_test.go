package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codestream/internal/plan"
)

func TestParse_Basic(t *testing.T) {
	in := "proj/\n    lib/\n        x.py\n    README.md\n"

	p, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []plan.Entry{
		{Depth: 0, Raw: "proj/"},
		{Depth: 4, Raw: "    lib/"},
		{Depth: 8, Raw: "        x.py"},
		{Depth: 4, Raw: "    README.md"},
	}, p.Entries)
}

func TestParse_SkipsBlankAndTrailingWhitespace(t *testing.T) {
	in := "a/   \n\n   \t\n  b.txt\t \n"

	p, err := Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Len(t, p.Entries, 2)
	assert.Equal(t, plan.Entry{Depth: 0, Raw: "a/"}, p.Entries[0])
	assert.Equal(t, plan.Entry{Depth: 2, Raw: "  b.txt"}, p.Entries[1])
}

func TestParse_TabsCountAsOne(t *testing.T) {
	p, err := Parse(strings.NewReader("root/\n\tsub/\n\t\tfile.go\n"))
	require.NoError(t, err)

	require.Len(t, p.Entries, 3)
	assert.Equal(t, 1, p.Entries[1].Depth)
	assert.Equal(t, 2, p.Entries[2].Depth)
	assert.Equal(t, "\t\tfile.go", p.Entries[2].Raw)
}

func TestParse_LineEndings(t *testing.T) {
	lf := "a/\n  b.txt\n  c/\n"
	tests := []struct {
		name string
		in   string
	}{
		{"crlf", "a/\r\n  b.txt\r\n  c/\r\n"},
		{"cr", "a/\r  b.txt\r  c/\r"},
		{"mixed", "a/\r\n  b.txt\r  c/"},
	}

	want, err := Parse(strings.NewReader(lf))
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestParse_StripsBOM(t *testing.T) {
	p, err := Parse(strings.NewReader("\uFEFFroot/\n"))
	require.NoError(t, err)

	require.Len(t, p.Entries, 1)
	assert.Equal(t, plan.Entry{Depth: 0, Raw: "root/"}, p.Entries[0])
}

func TestParse_InvalidUTF8(t *testing.T) {
	_, err := Parse(strings.NewReader("ok/\n\xff\xfe\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "строка 2")
}

func TestParse_InconsistentDepthsTolerated(t *testing.T) {
	p, err := Parse(strings.NewReader("a/\n      b/\n c.py\n"))
	require.NoError(t, err)

	require.Len(t, p.Entries, 3)
	assert.Equal(t, []int{0, 6, 1}, []int{p.Entries[0].Depth, p.Entries[1].Depth, p.Entries[2].Depth})
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "struct.txt")
	require.NoError(t, os.WriteFile(path, []byte("x/\n  y.md\n"), 0o644))

	p, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, p.Entries, 2)

	_, err = ParseFile(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
