package core

import (
	"sort"

	"github.com/prgauge/prgauge/schema"
)

// maxDrivers limits the breakdown shown to the reviewer.
const maxDrivers = 3

// Flat contributions used to surface amplification bonuses in the driver
// ranking alongside the weighted base terms.
const (
	untestedCoreWeight = 12.0 // base representation of the untested-core bonus
	untestedCoreFlat   = 15.0 // flat representation of the 0.15 amplification share
	depsComboWeight    = 6.0  // per compound-risk combination with manifests
	multiHotspotWeight = 3.0  // extra when two or more hotspot files are touched
)

// SelectDrivers recomputes the contribution of each possible cause from the
// same counts and scores, so the displayed top 3 are additive components of
// base and amp rather than independent heuristics. Candidates are
// deduplicated by key (keeping the higher contribution, first-seen order),
// stably sorted by contribution descending, and truncated to 3.
func SelectDrivers(c schema.ClassifiedCounts, s schema.Scores) []schema.Driver {
	var candidates []schema.Driver
	add := func(key schema.DriverKey, contribution float64) {
		candidates = append(candidates, schema.Driver{
			Key:          key,
			Label:        schema.DriverLabels[key],
			Contribution: contribution,
		})
	}

	untested := c.Core > 0 && c.Tests == 0
	if untested {
		add(schema.DriverUntestedCore, untestedCoreWeight+untestedCoreFlat)
	}

	add(schema.DriverChangeSize, wSize*s.Size)

	if c.TestCoverage < 1 {
		contribution := wQuality * s.Quality
		if untested {
			contribution += untestedCoreWeight
		}
		add(schema.DriverLowCoverage, contribution)
	}

	if c.Manifests > 0 {
		contribution := wDeps * s.Deps
		if c.Infra > 0 {
			contribution += depsComboWeight
		}
		if c.Core > 0 {
			contribution += depsComboWeight
		}
		add(schema.DriverDepChurn, contribution)
	}

	if c.Infra > 0 {
		add(schema.DriverInfraTouched, wInfra*s.Infra)
	}

	if c.Hotspots > 0 {
		contribution := wHot * s.Hot
		if c.Hotspots >= 2 {
			contribution += multiHotspotWeight
		}
		add(schema.DriverHotspot, contribution)
	}

	return rankDrivers(candidates)
}

// rankDrivers deduplicates candidates by key in first-seen order, keeping the
// higher contribution per key, then stably sorts by contribution descending so
// ties preserve generation order. Only the top maxDrivers survive.
func rankDrivers(candidates []schema.Driver) []schema.Driver {
	seen := make(map[schema.DriverKey]int, len(candidates))
	deduped := make([]schema.Driver, 0, len(candidates))
	for _, d := range candidates {
		if idx, ok := seen[d.Key]; ok {
			if d.Contribution > deduped[idx].Contribution {
				deduped[idx].Contribution = d.Contribution
			}
			continue
		}
		seen[d.Key] = len(deduped)
		deduped = append(deduped, d)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Contribution > deduped[j].Contribution
	})

	if len(deduped) > maxDrivers {
		deduped = deduped[:maxDrivers]
	}
	return deduped
}
