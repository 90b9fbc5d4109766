package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prgauge/prgauge/schema"
)

// TestClassifyEmpty verifies the zero-file fold.
func TestClassifyEmpty(t *testing.T) {
	counts := Classify(nil, nil)
	assert.Equal(t, 0, counts.Files)
	assert.Equal(t, 0, counts.Lines)
	assert.False(t, counts.DocsOnly)
	assert.InDelta(t, 0.0, counts.TestCoverage, 0.0001)
}

// TestClassifyMixedChange verifies category counting on a representative change.
func TestClassifyMixedChange(t *testing.T) {
	files := []schema.ChangedFile{
		{Path: "src/server.ext", Additions: 40, Deletions: 10},
		{Path: "tests/server.ext", Additions: 30, Deletions: 0},
		{Path: "package.json", Additions: 2, Deletions: 2},
		{Path: ".github/workflows/ci.yml", Additions: 5, Deletions: 1},
		{Path: "docs/guide.md", Additions: 8, Deletions: 0},
	}
	hotspots := map[string]struct{}{
		"src/server.ext": {},
		"lib/other.ext":  {},
	}

	counts := Classify(files, hotspots)

	assert.Equal(t, 5, counts.Files)
	assert.Equal(t, 98, counts.Lines)
	assert.Equal(t, 1, counts.Core)
	assert.Equal(t, 1, counts.Tests)
	assert.Equal(t, 1, counts.Manifests)
	assert.Equal(t, 1, counts.Infra)
	assert.Equal(t, 1, counts.Hotspots)
	assert.False(t, counts.DocsOnly)
	assert.InDelta(t, 1.0, counts.TestCoverage, 0.0001)
}

// TestClassifyDocsOnly covers the docsOnly flag in both directions.
func TestClassifyDocsOnly(t *testing.T) {
	t.Run("all docs", func(t *testing.T) {
		counts := Classify([]schema.ChangedFile{
			{Path: "docs/a.md", Additions: 1},
			{Path: "README.md", Additions: 2},
		}, nil)
		assert.True(t, counts.DocsOnly)
	})

	t.Run("one non-doc breaks it", func(t *testing.T) {
		counts := Classify([]schema.ChangedFile{
			{Path: "docs/a.md", Additions: 1},
			{Path: "src/a.ext", Additions: 1},
		}, nil)
		assert.False(t, counts.DocsOnly)
	})
}

// TestClassifyTestCoverage verifies the T / max(1, C) ratio.
func TestClassifyTestCoverage(t *testing.T) {
	t.Run("tests without core", func(t *testing.T) {
		counts := Classify([]schema.ChangedFile{
			{Path: "tests/a.ext", Additions: 1},
			{Path: "tests/b.ext", Additions: 1},
		}, nil)
		assert.InDelta(t, 2.0, counts.TestCoverage, 0.0001)
	})

	t.Run("partial coverage", func(t *testing.T) {
		counts := Classify([]schema.ChangedFile{
			{Path: "src/a.ext", Additions: 1},
			{Path: "src/b.ext", Additions: 1},
			{Path: "tests/a.ext", Additions: 1},
		}, nil)
		assert.InDelta(t, 0.5, counts.TestCoverage, 0.0001)
	})
}

// TestClassifyHotspotExactMatch ensures membership is not a prefix match.
func TestClassifyHotspotExactMatch(t *testing.T) {
	hotspots := map[string]struct{}{"src/server.ext": {}}
	counts := Classify([]schema.ChangedFile{
		{Path: "src/server.ext", Additions: 1},
		{Path: "src/server.ext.bak", Additions: 1},
		{Path: "src/Server.ext", Additions: 1},
	}, hotspots)
	assert.Equal(t, 1, counts.Hotspots)
}

// TestClassifyNegativeLineCounts checks malformed counts are coerced to zero.
func TestClassifyNegativeLineCounts(t *testing.T) {
	counts := Classify([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: -5, Deletions: 10},
	}, nil)
	assert.Equal(t, 10, counts.Lines)
}
