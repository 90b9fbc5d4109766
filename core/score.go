package core

import (
	"math"

	"github.com/prgauge/prgauge/schema"
)

// Weights for the base score. They sum to 1.0: size dominates, quality and
// deps share the second tier, infra and hotspot are tie-breaking signals.
const (
	wSize    = 0.35
	wQuality = 0.20
	wDeps    = 0.20
	wInfra   = 0.15
	wHot     = 0.10
)

// Amplification bonuses for compounding risk combinations, capped at maxAmp.
const (
	bonusUntestedCore = 0.15 // core changed with zero test files
	bonusDepsInfra    = 0.10 // manifests and infra touched together
	bonusCoreDeps     = 0.10 // core and manifests touched together
	bonusMultiHotspot = 0.05 // two or more hotspot files touched
	maxAmp            = 1.40
)

// docsOnlyCeiling is the hard score limit for documentation-only changes.
const docsOnlyCeiling = 25

// Review-effort estimation bounds in minutes.
const (
	minReviewMinutes = 5
	maxReviewMinutes = 90
)

// ComputeScores computes the full Scores record from classified counts. It is
// a pure function of its input and never fails: every value is range-clamped.
func ComputeScores(c schema.ClassifiedCounts) schema.Scores {
	var s schema.Scores

	// Sub-scores, each clamped to [0,100]. The size term mixes a linear
	// per-file component with a logarithmic line component so that many small
	// files and a few huge ones both register without double-penalizing.
	s.Size = clamp100(8*float64(c.Files) + 12*math.Log10(1+float64(c.Lines)))
	s.Deps = clamp100(35 * float64(c.Manifests)) // saturates at 3 manifests
	s.Infra = clamp100(25 * float64(c.Infra))
	s.Hot = clamp100(20 * float64(c.Hotspots))
	s.Quality = clamp100(60 * (1 - math.Min(1, c.TestCoverage)))

	s.Base = wSize*s.Size + wQuality*s.Quality + wDeps*s.Deps + wInfra*s.Infra + wHot*s.Hot

	// Independent additive amplification bonuses, capped.
	amp := 1.0
	if c.Core > 0 && c.Tests == 0 {
		amp += bonusUntestedCore
	}
	if c.Manifests > 0 && c.Infra > 0 {
		amp += bonusDepsInfra
	}
	if c.Core > 0 && c.Manifests > 0 {
		amp += bonusCoreDeps
	}
	if c.Hotspots >= 2 {
		amp += bonusMultiHotspot
	}
	if amp > maxAmp {
		amp = maxAmp
	}
	s.Amp = amp

	score := int(math.Round(s.Base * amp))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	if c.DocsOnly && score > docsOnlyCeiling {
		score = docsOnlyCeiling
	}
	s.Score = score
	s.Verdict = schema.VerdictForScore(score)
	s.ReviewMinutes = estimateReviewMinutes(c)

	return s
}

// estimateReviewMinutes converts counts into an effort estimate. Tests reduce
// the estimate; all other categories raise it through saturating multipliers.
func estimateReviewMinutes(c schema.ClassifiedCounts) int {
	sizeUnits := math.Sqrt(math.Max(0, float64(c.Lines))) + 2*float64(c.Files)

	mCore := 1 + 0.15*math.Min(5, float64(c.Core))
	mInfra := 1 + 0.2*math.Min(3, float64(c.Infra))
	mDeps := 1 + 0.25*math.Min(2, float64(c.Manifests))
	mHot := 1 + 0.1*math.Min(5, float64(c.Hotspots))
	mTests := 1 - 0.1*math.Min(3, float64(c.Tests))

	raw := (sizeUnits / 12) * mCore * mInfra * mDeps * mHot * mTests

	minutes := int(math.Round(raw))
	if minutes < minReviewMinutes {
		minutes = minReviewMinutes
	}
	if minutes > maxReviewMinutes {
		minutes = maxReviewMinutes
	}
	return minutes
}

// clamp100 clamps a value to [0,100].
func clamp100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
