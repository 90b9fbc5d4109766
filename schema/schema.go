// Package schema has configs, models and constants for all parts of prgauge.
package schema

import "time"

// ChangedFile represents the diff statistics for a single file in a change.
// Values come from the hosting platform or the local git client; negative or
// missing line counts are coerced to zero during classification.
type ChangedFile struct {
	Path      string `json:"path"`
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
}

// ClassifiedCounts aggregates a change's file list into the category counters
// that drive scoring. It is derived once per analysis and never mutated.
type ClassifiedCounts struct {
	Files     int `json:"files"`     // F: number of changed files
	Lines     int `json:"lines"`     // L: total added+deleted lines
	Core      int `json:"core"`      // C: core-path files
	Tests     int `json:"tests"`     // T: test-path files
	Manifests int `json:"manifests"` // D: dependency-manifest files
	Infra     int `json:"infra"`     // I: infra/config files
	Hotspots  int `json:"hotspots"`  // H: files in the hotspot set

	// DocsOnly is true iff the list is non-empty and every file is documentation.
	DocsOnly bool `json:"docs_only"`

	// TestCoverage is Tests / max(1, Core).
	TestCoverage float64 `json:"test_coverage"`
}

// Scores holds the five sub-scores plus the derived final values for a change.
// Sub-scores are clamped to [0,100]; the final score to [0,100] with a hard
// ceiling of 25 for documentation-only changes.
type Scores struct {
	Size    float64 `json:"size"`    // per-file plus log line-count term
	Deps    float64 `json:"deps"`    // dependency-manifest term
	Infra   float64 `json:"infra"`   // infra/config term
	Hot     float64 `json:"hot"`     // hotspot term
	Quality float64 `json:"quality"` // missing-test term

	Base float64 `json:"base"` // weighted sum of sub-scores
	Amp  float64 `json:"amp"`  // amplification factor in [1.0, 1.4]

	Score         int     `json:"score"`          // round(base*amp), clamped
	ReviewMinutes int     `json:"review_minutes"` // estimated effort, [5,90]
	Verdict       Verdict `json:"verdict"`
}

// Driver is a ranked, labeled explanation of how much a specific risk factor
// contributed to the final score. Recomputed per analysis; never persisted.
type Driver struct {
	Key          DriverKey `json:"key"`
	Label        string    `json:"label"`
	Contribution float64   `json:"contribution"`
}

// BaselineData is the historical reference point for a branch: the median
// score of recently merged changes plus the hotspot file set. One record per
// branch, fully replaced on each refresh. Serialized flat for persistence.
type BaselineData struct {
	ComputedAt          string   `json:"computed_at"` // RFC3339
	HistoryN            int      `json:"history_n"`   // requested window size
	BaselineMedianScore *float64 `json:"baseline_median_score"`
	HotspotFiles        []string `json:"hotspot_files"`
}

// HotspotSet returns the hotspot files as a set for exact-path membership tests.
func (b *BaselineData) HotspotSet() map[string]struct{} {
	set := make(map[string]struct{}, len(b.HotspotFiles))
	for _, p := range b.HotspotFiles {
		set[p] = struct{}{}
	}
	return set
}

// AnalyzeResult is the pure output of one analysis call.
type AnalyzeResult struct {
	Counts  ClassifiedCounts `json:"counts"`
	Scores  Scores           `json:"scores"`
	Drivers []Driver         `json:"drivers"` // top 3, contribution descending
	Actions []string         `json:"actions"` // at most 2
}

// ChangeReport bundles an analysis result with the baseline it was judged
// against, for rendering and comment publication.
type ChangeReport struct {
	ChangeID    string        `json:"change_id"`
	Branch      string        `json:"branch"`
	Result      AnalyzeResult `json:"result"`
	Baseline    BaselineData  `json:"baseline"`
	GeneratedAt time.Time     `json:"generated_at"`
}

// ChangeRun is one recorded analysis run in the history store.
type ChangeRun struct {
	RunID         int64     `json:"run_id"`
	AnalyzedAt    time.Time `json:"analyzed_at"`
	ChangeID      string    `json:"change_id"`
	Branch        string    `json:"branch"`
	Files         int       `json:"files"`
	Lines         int       `json:"lines"`
	Score         int       `json:"score"`
	Verdict       string    `json:"verdict"`
	ReviewMinutes int       `json:"review_minutes"`
}

// CacheStatus reports status information about the baseline cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// HistoryStatus reports status information about the history store.
type HistoryStatus struct {
	Backend     string    `json:"backend"`
	Connected   bool      `json:"connected"`
	TotalRuns   int       `json:"total_runs"`
	LastRunTime time.Time `json:"last_run_time"`
}
