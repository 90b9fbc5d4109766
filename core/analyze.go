package core

import "github.com/prgauge/prgauge/schema"

// Analyze runs the full classification pipeline for one change: fold the
// file list into counts, derive scores, then explain the result with ranked
// drivers and recommended actions.
func Analyze(files []schema.ChangedFile, hotspots map[string]struct{}) schema.AnalyzeResult {
	counts := Classify(files, hotspots)
	scores := ComputeScores(counts)
	return schema.AnalyzeResult{
		Counts:  counts,
		Scores:  scores,
		Drivers: SelectDrivers(counts, scores),
		Actions: RecommendActions(counts, scores.Score),
	}
}
