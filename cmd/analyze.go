package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prgauge/prgauge/core"
	"github.com/prgauge/prgauge/internal/contract"
	"github.com/prgauge/prgauge/internal/outwriter"
)

// analyzeCmd scores a single change against the branch baseline.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [repo-path]",
	Short: "Score the structural risk of a change and suggest review actions.",
	Long: `Analyze one change's diff shape and produce a risk report.

Computes a 0-100 risk score from the change's size, dependency churn,
infra surface, hotspot overlap, and missing tests, then:
- Names the top factors driving the score
- Estimates how long a careful review should take
- Compares the score to the branch baseline (median of recent merges)
- Suggests at most two concrete review actions

Examples:
  # Score the working branch against main
  prgauge analyze --change main...HEAD

  # Score a single commit
  prgauge analyze --change 3f2a91c

  # Score a pull request and publish the report as a comment
  prgauge analyze --provider github --github-repo acme/widgets --change 482 --comment

  # Export findings to JSON for tracking
  prgauge analyze --change main...HEAD --output json --output-file report.json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		client := contract.NewChangeClient(cfg)
		report, err := core.ExecuteChangeAnalysis(rootCtx, cfg, client, cacheManager)
		if err != nil {
			contract.LogFatal("Cannot run change analysis", err)
		}

		if err := outwriter.NewOutWriter().WriteReport(report, cfg); err != nil {
			contract.LogFatal("Cannot write report", err)
		}

		if cfg.Comment {
			publisher, ok := client.(contract.CommentPublisher)
			if !ok {
				contract.LogFatal("Cannot publish comment", fmt.Errorf("provider %s does not support comments", cfg.Provider))
			}
			body := outwriter.BuildCommentBody(report, cfg.Precision)
			// A failed publish should not discard the report already printed
			if err := publisher.PublishComment(rootCtx, cfg.ChangeID, body); err != nil {
				contract.LogWarn("Cannot publish comment", err)
			} else {
				fmt.Println("Published report comment.")
			}
		}
	},
}
