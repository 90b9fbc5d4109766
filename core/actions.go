package core

import "github.com/prgauge/prgauge/schema"

const maxActions = 2

// Verdict boundaries reused by the action decision table.
const (
	splitScoreFloor     = 70
	checklistScoreFloor = 40
)

// RecommendActions maps the classified counts and final score to at most two
// concrete next steps. Documentation-only changes short-circuit to a single
// no-op recommendation regardless of score.
func RecommendActions(c schema.ClassifiedCounts, score int) []string {
	if c.DocsOnly {
		return []string{schema.ActionNone}
	}

	var actions []string
	if c.Core > 0 && c.Tests == 0 {
		actions = append(actions, schema.ActionAddTests)
	}
	if score >= splitScoreFloor {
		actions = append(actions, schema.ActionSplitChange)
	} else if score >= checklistScoreFloor && (c.Manifests > 0 || c.Infra > 0) {
		actions = append(actions, schema.ActionChecklist)
	}
	if len(actions) == 0 {
		actions = append(actions, schema.ActionNormalReview)
	}

	if len(actions) > maxActions {
		actions = actions[:maxActions]
	}
	return actions
}
