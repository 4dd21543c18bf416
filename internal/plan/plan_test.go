package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntry_IsDir(t *testing.T) {
	assert.True(t, Entry{Raw: "src/"}.IsDir())
	assert.True(t, Entry{Depth: 4, Raw: "    lib/"}.IsDir())
	assert.False(t, Entry{Raw: "notes.txt"}.IsDir())
	assert.False(t, Entry{Raw: "/notes"}.IsDir())
}

func TestEntry_Name(t *testing.T) {
	assert.Equal(t, "main.go", Entry{Depth: 2, Raw: "\t\tmain.go"}.Name())
	assert.Equal(t, "a b/", Entry{Depth: 1, Raw: " a b/"}.Name())
}

func TestPlan_Counts(t *testing.T) {
	p := Plan{Entries: []Entry{
		{Depth: 0, Raw: "a/"},
		{Depth: 4, Raw: "    b/"},
		{Depth: 8, Raw: "        x.py"},
		{Depth: 4, Raw: "    y.py"},
	}}
	dirs, files := p.Counts()
	assert.Equal(t, 2, dirs)
	assert.Equal(t, 2, files)
}
