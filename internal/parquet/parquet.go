// Package parquet provides data structures and functions for exporting
// analyzed-change history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/prgauge/prgauge/schema"
)

// ChangeRun represents a single analyzed change with its final scores.
// This struct maps to the prgauge_runs database table.
type ChangeRun struct {
	// RunID is the unique identifier for this analysis run
	RunID int64 `parquet:"run_id,snappy"`

	// AnalyzedAt is when the change was analyzed (stored as TIMESTAMP with nanosecond precision)
	AnalyzedAt time.Time `parquet:"analyzed_at,snappy"`

	// ChangeID identifies the analyzed change (ref range or pull request number)
	ChangeID string `parquet:"change_id,snappy"`

	// Branch is the baseline branch the change was judged against
	Branch string `parquet:"branch,snappy"`

	// Files is the number of changed files
	Files int32 `parquet:"files,snappy"`

	// Lines is the total number of added plus deleted lines
	Lines int32 `parquet:"line_count,snappy"`

	// Score is the final structural risk score in [0,100]
	Score int32 `parquet:"score,snappy"`

	// Verdict is the risk bucket derived from the score
	Verdict string `parquet:"verdict,snappy"`

	// ReviewMinutes is the estimated review effort in minutes
	ReviewMinutes int32 `parquet:"review_minutes,snappy"`
}

// WriteChangeRunsParquet writes a slice of ChangeRun structs to a Parquet file.
func WriteChangeRunsParquet(data []ChangeRun, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ChangeRun struct tags
	writer := parquet.NewGenericWriter[ChangeRun](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// MockFetchChangeRuns returns sample run data for demos and experiments.
func MockFetchChangeRuns() []ChangeRun {
	now := time.Now().UTC()

	return []ChangeRun{
		{
			RunID:         1,
			AnalyzedAt:    now.Add(-48 * time.Hour),
			ChangeID:      "main...feature/login-flow",
			Branch:        "main",
			Files:         3,
			Lines:         120,
			Score:         26,
			Verdict:       "low",
			ReviewMinutes: 5,
		},
		{
			RunID:         2,
			AnalyzedAt:    now.Add(-24 * time.Hour),
			ChangeID:      "482",
			Branch:        "main",
			Files:         9,
			Lines:         900,
			Score:         74,
			Verdict:       "high",
			ReviewMinutes: 61,
		},
		{
			RunID:         3,
			AnalyzedAt:    now.Add(-10 * time.Minute),
			ChangeID:      "main...docs/readme-refresh",
			Branch:        "main",
			Files:         2,
			Lines:         40,
			Score:         19,
			Verdict:       "low",
			ReviewMinutes: 5,
		},
	}
}

// ConvertChangeRuns converts schema.ChangeRun records to ChangeRun for Parquet export.
func ConvertChangeRuns(records []schema.ChangeRun) []ChangeRun {
	result := make([]ChangeRun, len(records))
	for i, record := range records {
		result[i] = ChangeRun{
			RunID:         record.RunID,
			AnalyzedAt:    record.AnalyzedAt,
			ChangeID:      record.ChangeID,
			Branch:        record.Branch,
			Files:         int32(record.Files),
			Lines:         int32(record.Lines),
			Score:         int32(record.Score),
			Verdict:       record.Verdict,
			ReviewMinutes: int32(record.ReviewMinutes),
		}
	}
	return result
}
