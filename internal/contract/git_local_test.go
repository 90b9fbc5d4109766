package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prgauge/prgauge/schema"
)

func TestParseNumstat(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		expected []schema.ChangedFile
	}{
		{
			name:     "empty output",
			out:      "",
			expected: []schema.ChangedFile{},
		},
		{
			name: "regular files",
			out:  "10\t2\tsrc/pipeline.ext\n0\t45\tdocs/guide.md\n",
			expected: []schema.ChangedFile{
				{Path: "src/pipeline.ext", Additions: 10, Deletions: 2},
				{Path: "docs/guide.md", Additions: 0, Deletions: 45},
			},
		},
		{
			name: "binary file counts coerced to zero",
			out:  "-\t-\tassets/logo.png\n",
			expected: []schema.ChangedFile{
				{Path: "assets/logo.png", Additions: 0, Deletions: 0},
			},
		},
		{
			name: "malformed lines are skipped",
			out:  "garbage\n5\t1\tsrc/a.ext\n12 7 no-tabs.ext\n",
			expected: []schema.ChangedFile{
				{Path: "src/a.ext", Additions: 5, Deletions: 1},
			},
		},
		{
			name: "path containing tabs survives",
			out:  "3\t1\tweird\tname.ext\n",
			expected: []schema.ChangedFile{
				{Path: "weird\tname.ext", Additions: 3, Deletions: 1},
			},
		},
		{
			name:     "blank lines ignored",
			out:      "\n\n   \n",
			expected: []schema.ChangedFile{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseNumstat(tt.out))
		})
	}
}

func TestParseNumstatCount(t *testing.T) {
	assert.Equal(t, 42, parseNumstatCount("42"))
	assert.Equal(t, 0, parseNumstatCount("-"))
	assert.Equal(t, 0, parseNumstatCount("-5"))
	assert.Equal(t, 0, parseNumstatCount("abc"))
}

func TestNewLocalGitClient(t *testing.T) {
	client := NewLocalGitClient("/tmp/repo")
	assert.Equal(t, "/tmp/repo", client.RepoPath)
}
