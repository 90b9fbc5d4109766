package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prgauge/prgauge/schema"
)

// TestComputeScoresSingleCoreFile pins down the full arithmetic for a
// 50-add/10-delete change to one untested core file.
func TestComputeScoresSingleCoreFile(t *testing.T) {
	counts := Classify([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: 50, Deletions: 10},
	}, nil)
	s := ComputeScores(counts)

	assert.InDelta(t, 29.42, s.Size, 0.01)
	assert.InDelta(t, 0.0, s.Deps, 0.0001)
	assert.InDelta(t, 0.0, s.Infra, 0.0001)
	assert.InDelta(t, 0.0, s.Hot, 0.0001)
	assert.InDelta(t, 60.0, s.Quality, 0.0001)
	assert.InDelta(t, 22.30, s.Base, 0.01)
	assert.InDelta(t, 1.15, s.Amp, 0.0001)
	assert.Equal(t, 26, s.Score)
	assert.Equal(t, schema.LowVerdict, s.Verdict)
	assert.Equal(t, 5, s.ReviewMinutes)
}

// TestComputeScoresDocsOnly verifies the documentation ceiling path.
func TestComputeScoresDocsOnly(t *testing.T) {
	t.Run("small doc change below ceiling", func(t *testing.T) {
		counts := Classify([]schema.ChangedFile{
			{Path: "docs/readme.ext", Additions: 5, Deletions: 2},
		}, nil)
		s := ComputeScores(counts)
		assert.InDelta(t, 1.0, s.Amp, 0.0001)
		assert.Equal(t, 19, s.Score)
		assert.Equal(t, schema.LowVerdict, s.Verdict)
	})

	t.Run("huge doc change hits ceiling", func(t *testing.T) {
		files := make([]schema.ChangedFile, 40)
		for i := range files {
			files[i] = schema.ChangedFile{Path: "docs/page.md", Additions: 500}
		}
		s := ComputeScores(Classify(files, nil))
		assert.Equal(t, 25, s.Score)
	})
}

// TestComputeScoresSubScoreClamps confirms sub-scores saturate at 100.
func TestComputeScoresSubScoreClamps(t *testing.T) {
	counts := schema.ClassifiedCounts{
		Files:     1000,
		Lines:     1000000,
		Manifests: 5,
		Infra:     10,
		Hotspots:  20,
	}
	s := ComputeScores(counts)
	assert.InDelta(t, 100.0, s.Size, 0.0001)
	assert.InDelta(t, 100.0, s.Deps, 0.0001)
	assert.InDelta(t, 100.0, s.Infra, 0.0001)
	assert.InDelta(t, 100.0, s.Hot, 0.0001)
	assert.LessOrEqual(t, s.Score, 100)
}

// TestComputeScoresAmplificationCap verifies all bonuses together stop at 1.4.
func TestComputeScoresAmplificationCap(t *testing.T) {
	counts := schema.ClassifiedCounts{
		Files:     10,
		Lines:     500,
		Core:      4,
		Tests:     0,
		Manifests: 2,
		Infra:     2,
		Hotspots:  3,
	}
	s := ComputeScores(counts)
	assert.InDelta(t, 1.40, s.Amp, 0.0001)
}

// TestComputeScoresFullCoverageQuality checks the quality term vanishes at
// coverage >= 1.
func TestComputeScoresFullCoverageQuality(t *testing.T) {
	counts := Classify([]schema.ChangedFile{
		{Path: "src/a.ext", Additions: 10},
		{Path: "tests/a.ext", Additions: 10},
		{Path: "tests/b.ext", Additions: 10},
	}, nil)
	s := ComputeScores(counts)
	assert.InDelta(t, 0.0, s.Quality, 0.0001)
	assert.InDelta(t, 1.0, s.Amp, 0.0001)
}

// TestEstimateReviewMinutesBounds checks the [5, 90] clamp on effort.
func TestEstimateReviewMinutesBounds(t *testing.T) {
	t.Run("tiny change floors at 5", func(t *testing.T) {
		m := estimateReviewMinutes(schema.ClassifiedCounts{Files: 1, Lines: 1})
		assert.Equal(t, 5, m)
	})

	t.Run("huge change caps at 90", func(t *testing.T) {
		m := estimateReviewMinutes(schema.ClassifiedCounts{
			Files: 200, Lines: 50000, Core: 50, Infra: 10, Manifests: 5, Hotspots: 10,
		})
		assert.Equal(t, 90, m)
	})

	t.Run("tests reduce the estimate", func(t *testing.T) {
		base := schema.ClassifiedCounts{Files: 30, Lines: 3000, Core: 10}
		withTests := base
		withTests.Tests = 3
		assert.Less(t, estimateReviewMinutes(withTests), estimateReviewMinutes(base))
	})
}

// TestVerdictBoundaries pins the 39/40 and 69/70 verdict transitions.
func TestVerdictBoundaries(t *testing.T) {
	assert.Equal(t, schema.LowVerdict, schema.VerdictForScore(39))
	assert.Equal(t, schema.MediumVerdict, schema.VerdictForScore(40))
	assert.Equal(t, schema.MediumVerdict, schema.VerdictForScore(69))
	assert.Equal(t, schema.HighVerdict, schema.VerdictForScore(70))
}
