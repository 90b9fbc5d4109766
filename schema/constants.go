package schema

// Custom string types for type safety.
type (
	// DriverKey identifies a risk cause in the score breakdown.
	DriverKey string

	// Verdict represents the three-level risk verdict.
	Verdict string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// ChangeProvider identifies where changed-file data comes from.
	ChangeProvider string
)

// All change providers supported.
const (
	LocalProvider  ChangeProvider = "local" // default, uses the git CLI
	GitHubProvider ChangeProvider = "github"
)

// ValidChangeProviders lists all valid change providers.
var ValidChangeProviders = map[ChangeProvider]struct{}{
	LocalProvider:  {},
	GitHubProvider: {},
}

// Driver keys used in the scoring logic.
const (
	DriverUntestedCore DriverKey = "untested_core" // core files changed, zero test files
	DriverChangeSize   DriverKey = "change_size"   // raw size of the change
	DriverLowCoverage  DriverKey = "low_coverage"  // test files lag behind core files
	DriverDepChurn     DriverKey = "dep_churn"     // dependency manifests touched
	DriverInfraTouched DriverKey = "infra_touched" // infra/config files touched
	DriverHotspot      DriverKey = "hotspot"       // historically hot files re-touched
)

// DriverLabels maps each driver key to its human-readable explanation.
var DriverLabels = map[DriverKey]string{
	DriverUntestedCore: "Core changed without tests",
	DriverChangeSize:   "Large change size",
	DriverLowCoverage:  "Low test coverage",
	DriverDepChurn:     "Dependency churn",
	DriverInfraTouched: "Infra/config touched",
	DriverHotspot:      "Hotspot repeatedly modified",
}

// All verdicts supported.
const (
	LowVerdict    Verdict = "low"    // score <= 39
	MediumVerdict Verdict = "medium" // score 40-69
	HighVerdict   Verdict = "high"   // score >= 70
)

// VerdictEmojis maps each verdict to its report emoji.
var VerdictEmojis = map[Verdict]string{
	LowVerdict:    "🟢",
	MediumVerdict: "🟡",
	HighVerdict:   "🔴",
}

// Suggested action strings produced by the recommender.
const (
	ActionNone         = "no action needed"
	ActionAddTests     = "add targeted tests"
	ActionSplitChange  = "split this change"
	ActionChecklist    = "add a focused review checklist"
	ActionNormalReview = "proceed with normal review"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All cache backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidDatabaseBackends lists all valid cache backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// VerdictForScore maps a final score to its verdict bucket.
func VerdictForScore(score int) Verdict {
	switch {
	case score >= 70:
		return HighVerdict
	case score >= 40:
		return MediumVerdict
	default:
		return LowVerdict
	}
}
