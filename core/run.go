package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prgauge/prgauge/internal/contract"
	"github.com/prgauge/prgauge/schema"
)

// ExecuteChangeAnalysis is the top-level pipeline for one change: fetch its
// files, load or refresh the branch baseline, score the change against the
// baseline's hotspots, and record the run in history.
func ExecuteChangeAnalysis(ctx context.Context, cfg *contract.Config, client contract.ChangeClient, mgr contract.CacheManager) (*schema.ChangeReport, error) {
	if cfg.ChangeID == "" {
		return nil, errors.New("no change specified, pass --change with a ref range or pull request number")
	}

	files, err := client.ListChangedFiles(ctx, cfg.ChangeID)
	if err != nil {
		return nil, fmt.Errorf("could not list changed files for %q: %w", cfg.ChangeID, err)
	}

	baseline := LoadOrRefreshBaseline(ctx, cfg, client, mgr)
	result := Analyze(files, baseline.HotspotSet())

	report := &schema.ChangeReport{
		ChangeID:    cfg.ChangeID,
		Branch:      cfg.Branch,
		Result:      result,
		Baseline:    baseline,
		GeneratedAt: time.Now().UTC(),
	}

	recordRun(cfg, mgr, report)
	return report, nil
}

// RefreshBaseline recomputes the baseline from the most recent merged
// changes. Changes whose files cannot be fetched are skipped with a warning
// so one bad entry does not poison the whole window.
func RefreshBaseline(ctx context.Context, cfg *contract.Config, client contract.ChangeClient) (schema.BaselineData, error) {
	ids, err := client.ListRecentMergedChangeIDs(ctx, cfg.HistoryWindow)
	if err != nil {
		return schema.BaselineData{}, fmt.Errorf("could not list merged changes: %w", err)
	}

	history := make([][]schema.ChangedFile, 0, len(ids))
	for _, id := range ids {
		files, err := client.ListChangedFiles(ctx, id)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("skipping change %s in baseline", id), err)
			continue
		}
		history = append(history, files)
	}

	baseline := ComputeBaseline(history)
	// Report the requested window, not the subset that survived fetching.
	baseline.HistoryN = cfg.HistoryWindow
	return baseline, nil
}

// recordRun appends the analyzed change to the history store. History is
// best-effort: failures warn instead of aborting the analysis.
func recordRun(cfg *contract.Config, mgr contract.CacheManager, report *schema.ChangeReport) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}

	run := schema.ChangeRun{
		AnalyzedAt:    report.GeneratedAt,
		ChangeID:      report.ChangeID,
		Branch:        cfg.Branch,
		Files:         report.Result.Counts.Files,
		Lines:         report.Result.Counts.Lines,
		Score:         report.Result.Scores.Score,
		Verdict:       string(report.Result.Scores.Verdict),
		ReviewMinutes: report.Result.Scores.ReviewMinutes,
	}
	if err := store.RecordRun(run); err != nil {
		contract.LogWarn("could not record analysis run", err)
	}
}
