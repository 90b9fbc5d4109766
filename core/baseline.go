package core

import (
	"sort"
	"time"

	"github.com/prgauge/prgauge/schema"
)

const (
	hotspotTopN       = 10
	hotspotMinTouches = 3
)

// ComputeBaseline condenses a window of historical changes into the trend
// context used when scoring new work: the repository's hotspot files and the
// median score of recent changes. Historical changes are scored with an empty
// hotspot set so the baseline is not biased by itself.
func ComputeBaseline(history [][]schema.ChangedFile) schema.BaselineData {
	freq := make(map[string]int)
	scores := make([]int, 0, len(history))
	empty := map[string]struct{}{}

	for _, files := range history {
		for _, f := range files {
			freq[f.Path]++
		}
		scores = append(scores, ComputeScores(Classify(files, empty)).Score)
	}

	data := schema.BaselineData{
		ComputedAt:   time.Now().UTC().Format(time.RFC3339),
		HistoryN:     len(history),
		HotspotFiles: selectHotspots(freq),
	}
	if median, ok := medianScore(scores); ok {
		data.BaselineMedianScore = &median
	}
	return data
}

// selectHotspots returns the union of the top-N most frequently touched paths
// and every path touched at least hotspotMinTouches times. The result is
// sorted ascending so serialized baselines are deterministic.
func selectHotspots(freq map[string]int) []string {
	paths := make([]string, 0, len(freq))
	for p := range freq {
		paths = append(paths, p)
	}
	sort.Slice(paths, func(i, j int) bool {
		if freq[paths[i]] != freq[paths[j]] {
			return freq[paths[i]] > freq[paths[j]]
		}
		return paths[i] < paths[j]
	})

	hotspots := make(map[string]struct{})
	for i, p := range paths {
		if i < hotspotTopN || freq[p] >= hotspotMinTouches {
			hotspots[p] = struct{}{}
		}
	}

	out := make([]string, 0, len(hotspots))
	for p := range hotspots {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// medianScore reports the median of the given scores, averaging the two
// middle values for even-sized input. The second return is false when the
// input is empty.
func medianScore(scores []int) (float64, bool) {
	if len(scores) == 0 {
		return 0, false
	}
	sorted := make([]int, len(scores))
	copy(sorted, scores)
	sort.Ints(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid]), true
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2, true
}
