package safety

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"_My File!.txt", "My_File.txt"},
		{"  __init__.py  ", "__init__.py"},
		{"__init__.py", "__init__.py"},
		{"src/", "src"},
		{"    lib/", "lib"},
		{"notes.txt", "notes.txt"},
		{"__private.py", "private.py"},
		{"a-b_c.d", "a-b_c.d"},
		{"what?*<>|:\"", "what"},
		{"café menü.md", "café_menü.md"},
		{"!!!", ""},
		{"/", ""},
		{"..", ".."},
		{" _x", "x"},
		{"!_x", "x"},
		{"\tdocs\t/", "docs"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"", " ", "_", "__", "___init__.py", "__init__.py", " __init__.py ",
		"_My File!.txt", " _x", "!_x", "a  b", "_ _a", "-_-", "..", "src/",
		"日本 語.txt", "x y", "tab\tname", "__init__ .py",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		assert.Equal(t, once, Sanitize(once), "input %q", in)
	}
}

func TestSanitize_NoSeparators(t *testing.T) {
	for _, in := range []string{"a/b", `a\b`, "../../etc/passwd", "dir/"} {
		out := Sanitize(in)
		assert.NotContains(t, out, "/")
		assert.NotContains(t, out, `\`)
	}
}

func TestSafeJoin(t *testing.T) {
	root := t.TempDir()

	got, err := SafeJoin(root, "a", "b.txt")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a", "b.txt"), got)

	got, err = SafeJoin(root, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean(root), got)

	_, err = SafeJoin(root, "..")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsafePath)

	_, err = SafeJoin(root, "a", "..", "..", "x")
	assert.ErrorIs(t, err, ErrUnsafePath)
}
