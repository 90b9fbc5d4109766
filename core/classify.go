package core

import (
	"math"

	"github.com/prgauge/prgauge/schema"
)

// Classify folds a change's file list and a hotspot set into the aggregate
// counters that drive scoring. Categories are independent tags: a YAML file
// under src/ counts as both core and infra. Hotspot membership is an exact
// path match against the supplied set, never a prefix match. The fold is
// commutative, so file order does not matter.
func Classify(files []schema.ChangedFile, hotspots map[string]struct{}) schema.ClassifiedCounts {
	var counts schema.ClassifiedCounts

	docs := 0
	for _, f := range files {
		counts.Files++
		counts.Lines += nonNegative(f.Additions) + nonNegative(f.Deletions)

		if IsDocsPath(f.Path) {
			docs++
		}
		if IsCorePath(f.Path) {
			counts.Core++
		}
		if IsTestPath(f.Path) {
			counts.Tests++
		}
		if IsManifestPath(f.Path) {
			counts.Manifests++
		}
		if IsInfraPath(f.Path) {
			counts.Infra++
		}
		if _, ok := hotspots[f.Path]; ok {
			counts.Hotspots++
		}
	}

	// docsOnly only makes sense after the full pass.
	counts.DocsOnly = counts.Files > 0 && docs == counts.Files
	counts.TestCoverage = float64(counts.Tests) / math.Max(1, float64(counts.Core))

	return counts
}

// nonNegative coerces malformed negative line counts to zero.
func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
