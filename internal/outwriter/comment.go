package outwriter

import (
	"fmt"
	"strings"

	"github.com/prgauge/prgauge/internal/contract"
	"github.com/prgauge/prgauge/schema"
)

// BuildCommentBody renders a change report as a Markdown comment body.
// The hidden marker lets a later run find and update the same comment
// instead of posting a new one.
func BuildCommentBody(report *schema.ChangeReport, precision int) string {
	fmtFloat, _ := createFormatters(precision)
	scores := report.Result.Scores
	counts := report.Result.Counts

	var sb strings.Builder
	sb.WriteString(contract.CommentMarker)
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "## %s Structural risk: %d/100 (%s)\n\n",
		schema.VerdictEmojis[scores.Verdict], scores.Score, contract.GetPlainLabel(scores.Verdict))
	fmt.Fprintf(&sb, "Estimated review time: **%d min**. %s.\n\n",
		scores.ReviewMinutes, baselineSummary(report, fmtFloat))

	if len(report.Result.Drivers) > 0 {
		sb.WriteString("| Driver | Contribution |\n")
		sb.WriteString("| --- | ---: |\n")
		for _, d := range report.Result.Drivers {
			fmt.Fprintf(&sb, "| %s | %s |\n", d.Label, fmtFloat(d.Contribution))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("**Suggested actions**\n\n")
	for _, action := range report.Result.Actions {
		fmt.Fprintf(&sb, "- %s\n", action)
	}
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "_%d files, %d lines changed. Generated at %s._\n",
		counts.Files, counts.Lines, report.GeneratedAt.Format(contract.DateTimeFormat))
	return sb.String()
}
