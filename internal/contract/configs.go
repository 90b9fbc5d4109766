package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/prgauge/prgauge/schema"
)

// Default values for configuration.
const (
	DefaultHistoryWindow  = 30
	MaxHistoryWindow      = 500
	DefaultBaselineMaxAge = 24 * time.Hour
	DefaultPrecision      = 1
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the analysis.
// This struct remains the "final, validated" config.
type Config struct {
	RepoPath   string
	Branch     string
	ChangeID   string
	Provider   schema.ChangeProvider
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	HistoryWindow  int
	BaselineMaxAge time.Duration

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	Comment          bool
	GitHubToken      string // Please use env var as this is plaintext
	GitHubRepo       string // "owner/name"
	GitHubAPIBaseURL string

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a copy of the config. All fields are value types, so a
// shallow copy is a full copy.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Branch           string `mapstructure:"branch"`
	Change           string `mapstructure:"change"`
	Provider         string `mapstructure:"provider"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Width            int    `mapstructure:"width"`
	History          int    `mapstructure:"history"`
	BaselineMaxAge   string `mapstructure:"baseline-max-age"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`

	// --- Fields from analyzeCmd.Flags() ---
	Comment bool `mapstructure:"comment"`

	// --- GitHub settings from config file or env ---
	GitHubToken      string `mapstructure:"github-token"`
	GitHubRepo       string `mapstructure:"github-repo"`
	GitHubAPIBaseURL string `mapstructure:"github-api-url"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processProvider(cfg, input); err != nil {
		return err
	}
	if err := processBaselineWindow(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-provider fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.RepoPath = input.RepoPathStr
	if cfg.RepoPath == "" {
		cfg.RepoPath = "."
	}
	cfg.Branch = strings.TrimSpace(input.Branch)
	if cfg.Branch == "" {
		cfg.Branch = "main"
	}
	cfg.ChangeID = strings.TrimSpace(input.Change)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Comment = input.Comment

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	// --- Backend Validation ---
	return validateBackendConfigs(cfg, input)
}

// processProvider validates the change provider and its GitHub settings.
func processProvider(cfg *Config, input *ConfigRawInput) error {
	cfg.Provider = schema.ChangeProvider(strings.ToLower(input.Provider))
	if _, ok := schema.ValidChangeProviders[cfg.Provider]; !ok {
		return fmt.Errorf("invalid provider '%s'. must be local, github", input.Provider)
	}

	cfg.GitHubToken = input.GitHubToken
	cfg.GitHubRepo = strings.TrimSpace(input.GitHubRepo)
	cfg.GitHubAPIBaseURL = strings.TrimRight(input.GitHubAPIBaseURL, "/")
	if cfg.GitHubAPIBaseURL == "" {
		cfg.GitHubAPIBaseURL = "https://api.github.com"
	}

	if cfg.Provider == schema.GitHubProvider {
		if cfg.GitHubRepo == "" || !strings.Contains(cfg.GitHubRepo, "/") {
			return fmt.Errorf("github provider requires --github-repo in 'owner/name' form (received %q)", input.GitHubRepo)
		}
	}
	if cfg.Comment && cfg.Provider != schema.GitHubProvider {
		return fmt.Errorf("--comment requires the github provider")
	}
	return nil
}

// processBaselineWindow validates the history window and baseline staleness.
func processBaselineWindow(cfg *Config, input *ConfigRawInput) error {
	if input.History <= 0 || input.History > MaxHistoryWindow {
		return fmt.Errorf("history must be greater than 0 and cannot exceed %d (received %d)", MaxHistoryWindow, input.History)
	}
	cfg.HistoryWindow = input.History

	cfg.BaselineMaxAge = DefaultBaselineMaxAge
	if input.BaselineMaxAge != "" {
		maxAge, err := time.ParseDuration(input.BaselineMaxAge)
		if err != nil {
			return fmt.Errorf("invalid --baseline-max-age value '%s': %w", input.BaselineMaxAge, err)
		}
		if maxAge <= 0 {
			return fmt.Errorf("--baseline-max-age must be positive (received %s)", input.BaselineMaxAge)
		}
		cfg.BaselineMaxAge = maxAge
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return err
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend != "" {
		if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
			return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
		}
		cfg.HistoryDBConnect = input.HistoryDBConnect
		if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
			return err
		}

		// Validate that cache and history use different databases
		if cfg.CacheBackend == cfg.HistoryBackend && cfg.CacheBackend != schema.NoneBackend {
			// For SQLite, resolve to actual file paths to catch default path conflicts
			if cfg.CacheBackend == schema.SQLiteBackend {
				cacheDBPath := cfg.CacheDBConnect
				if cacheDBPath == "" {
					cacheDBPath = GetCacheDBFilePath()
				}
				historyDBPath := cfg.HistoryDBConnect
				if historyDBPath == "" {
					historyDBPath = GetHistoryDBFilePath()
				}
				if cacheDBPath == historyDBPath {
					return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
				}
			}
		}
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("cache-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
