package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prgauge/prgauge/schema"
)

// TestAnalyzeUntestedCoreChange runs the pipeline end to end for a single
// untested core file.
func TestAnalyzeUntestedCoreChange(t *testing.T) {
	result := Analyze([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: 50, Deletions: 10},
	}, nil)

	assert.Equal(t, 26, result.Scores.Score)
	assert.Equal(t, schema.LowVerdict, result.Scores.Verdict)
	require.NotEmpty(t, result.Drivers)
	assert.Equal(t, schema.DriverUntestedCore, result.Drivers[0].Key)
	assert.Equal(t, []string{schema.ActionAddTests}, result.Actions)
}

// TestAnalyzeDocsOnlyChange runs the pipeline end to end for a small doc edit.
func TestAnalyzeDocsOnlyChange(t *testing.T) {
	result := Analyze([]schema.ChangedFile{
		{Path: "docs/readme.ext", Additions: 5, Deletions: 2},
	}, nil)

	assert.True(t, result.Counts.DocsOnly)
	assert.Equal(t, 19, result.Scores.Score)
	assert.Equal(t, []string{schema.ActionNone}, result.Actions)
}

// TestAnalyzeHotspotRaisesScore confirms the hotspot set feeds the score.
func TestAnalyzeHotspotRaisesScore(t *testing.T) {
	files := []schema.ChangedFile{
		{Path: "src/a.ext", Additions: 50, Deletions: 10},
	}

	plain := Analyze(files, nil)
	hot := Analyze(files, map[string]struct{}{"src/a.ext": {}})

	assert.Greater(t, hot.Scores.Score, plain.Scores.Score)
	assert.Equal(t, 1, hot.Counts.Hotspots)
}
