package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prgauge/prgauge/core"
	"github.com/prgauge/prgauge/internal/contract"
)

// baselineCmd recomputes and stores the branch baseline.
var baselineCmd = &cobra.Command{
	Use:   "baseline [repo-path]",
	Short: "Recompute the branch baseline from recently merged changes.",
	Long: `Rebuild the baseline that change scores are compared against.

The baseline holds the median risk score of recently merged changes plus the
set of hotspot files (paths touched repeatedly in the window). It refreshes
automatically when stale, but an explicit rebuild is useful:
- After history rewrites or large merges
- When switching the history window size
- To warm the cache before CI runs

Examples:
  # Rebuild the baseline for main from the last 30 merges
  prgauge baseline

  # Use a wider window on a release branch
  prgauge baseline --branch release-2.0 --history 100`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewChangeClient(cfg)
		baseline, err := core.RefreshBaseline(rootCtx, cfg, client)
		if err != nil {
			contract.LogFatal("Cannot refresh baseline", err)
		}
		core.SaveBaseline(cfg, cacheManager, baseline)

		fmt.Printf("Baseline refreshed for branch %q at %s\n", cfg.Branch, baseline.ComputedAt)
		fmt.Printf("  Window:        %d merged changes\n", baseline.HistoryN)
		if baseline.BaselineMedianScore != nil {
			fmt.Printf("  Median score:  %.*f\n", cfg.Precision, *baseline.BaselineMedianScore)
		} else {
			fmt.Println("  Median score:  n/a (no history)")
		}
		fmt.Printf("  Hotspot files: %d\n", len(baseline.HotspotFiles))
	},
}
