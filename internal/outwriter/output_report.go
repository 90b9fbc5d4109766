package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/prgauge/prgauge/internal/contract"
	"github.com/prgauge/prgauge/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteChangeReport outputs the analysis report, dispatching based on the output format configured.
func WriteChangeReport(report *schema.ChangeReport, cfg *contract.Config) error {
	// Create formatters using helper
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeReportJSONResults(report, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeReportCSVResults(report, cfg, fmtFloat, intFmt); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable text report
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeReportText(report, cfg, fmtFloat, w)
		}, "Wrote report")
	}
	return nil
}

// writeReportJSONResults handles opening the file and calling the JSON writer.
func writeReportJSONResults(report *schema.ChangeReport, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForReport(w, report)
	}, "Wrote JSON")
}

// writeReportCSVResults handles opening the file and calling the CSV writer.
func writeReportCSVResults(report *schema.ChangeReport, cfg *contract.Config, fmtFloat func(float64) string, intFmt string) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		csvWriter := csv.NewWriter(w)
		defer csvWriter.Flush()
		return writeCSVResultsForReport(csvWriter, report, fmtFloat, intFmt)
	}, "Wrote CSV")
}

// writeReportText generates and writes the human-readable report.
func writeReportText(report *schema.ChangeReport, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	scores := report.Result.Scores
	counts := report.Result.Counts

	label := contract.GetPlainLabel(scores.Verdict)
	if cfg.UseColors {
		label = contract.GetColorLabel(scores.Verdict)
	}
	headline := fmt.Sprintf("Change %s (branch %s): score %d/100 %s",
		report.ChangeID, report.Branch, scores.Score, label)
	if cfg.UseEmojis {
		headline = schema.VerdictEmojis[scores.Verdict] + " " + headline
	}
	if _, err := fmt.Fprintln(writer, headline); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Estimated review time: %d min\n", scores.ReviewMinutes); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer, baselineSummary(report, fmtFloat)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(writer); err != nil {
		return err
	}

	if len(report.Result.Drivers) > 0 {
		if err := writeDriverTable(report.Result.Drivers, cfg, fmtFloat, writer); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(writer, "Suggested actions:"); err != nil {
		return err
	}
	for _, action := range report.Result.Actions {
		if _, err := fmt.Fprintf(writer, "  - %s\n", action); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(writer, "Files: %d (core %d, tests %d, manifests %d, infra %d, hotspots %d), lines changed: %d\n",
		counts.Files, counts.Core, counts.Tests, counts.Manifests, counts.Infra, counts.Hotspots, counts.Lines)
	return err
}

// writeDriverTable renders the ranked risk drivers as a table.
func writeDriverTable(drivers []schema.Driver, cfg *contract.Config, fmtFloat func(float64) string, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	table.Header([]string{"Rank", "Driver", "Contribution"})

	// 2. Configure Separators/Borders to match a minimal look
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, d := range drivers {
		data = append(data, []string{
			strconv.Itoa(i + 1), // Rank
			contract.TruncatePath(d.Label, getMaxTablePathWidth(cfg)), // Driver
			fmtFloat(d.Contribution),                                  // Contribution
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// baselineSummary describes where the change sits relative to the repo baseline.
func baselineSummary(report *schema.ChangeReport, fmtFloat func(float64) string) string {
	baseline := report.Baseline
	if baseline.BaselineMedianScore == nil {
		return "Baseline trend unavailable"
	}
	median := *baseline.BaselineMedianScore
	delta := float64(report.Result.Scores.Score) - median
	return fmt.Sprintf("Baseline median: %s over last %d merged changes (delta %s)",
		fmtFloat(median), baseline.HistoryN, formatDelta(delta, fmtFloat))
}

// writeCSVResultsForReport writes the analysis report in CSV format.
func writeCSVResultsForReport(w *csv.Writer, report *schema.ChangeReport, fmtFloat func(float64) string, intFmt string) error {
	// CSV header
	header := []string{
		"change_id",
		"branch",
		"files",
		"lines",
		"score",
		"verdict",
		"review_minutes",
		"base",
		"amp",
		"baseline_median",
		"score_delta",
		"drivers",
		"actions",
		"generated_at",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	scores := report.Result.Scores
	counts := report.Result.Counts

	baselineMedian := ""
	scoreDelta := ""
	if report.Baseline.BaselineMedianScore != nil {
		median := *report.Baseline.BaselineMedianScore
		baselineMedian = fmtFloat(median)
		scoreDelta = fmtFloat(float64(scores.Score) - median)
	}

	driverKeys := make([]string, len(report.Result.Drivers))
	for i, d := range report.Result.Drivers {
		driverKeys[i] = string(d.Key)
	}

	rec := []string{
		report.ChangeID,                                    // Change ID
		report.Branch,                                      // Branch
		fmt.Sprintf(intFmt, counts.Files),                  // Files
		fmt.Sprintf(intFmt, counts.Lines),                  // Lines changed
		fmt.Sprintf(intFmt, scores.Score),                  // Final score
		contract.GetPlainLabel(scores.Verdict),             // Verdict
		fmt.Sprintf(intFmt, scores.ReviewMinutes),          // Review Minutes
		fmtFloat(scores.Base),                              // Base score
		fmtFloat(scores.Amp),                               // Amplifier
		baselineMedian,                                     // Baseline Median
		scoreDelta,                                         // Delta vs Baseline
		strings.Join(driverKeys, "|"),                      // Drivers
		strings.Join(report.Result.Actions, "|"),           // Actions
		report.GeneratedAt.Format(contract.DateTimeFormat), // Generated At
	}
	return w.Write(rec)
}

// writeJSONResultsForReport writes the analysis report in JSON format.
func writeJSONResultsForReport(w io.Writer, report *schema.ChangeReport) error {
	// 1. Prepare the data structure for JSON with the verdict label added
	type JSONChangeReport struct {
		Label string `json:"label"`
		schema.ChangeReport
	}

	output := JSONChangeReport{
		Label:        contract.GetPlainLabel(report.Result.Scores.Verdict),
		ChangeReport: *report,
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}
