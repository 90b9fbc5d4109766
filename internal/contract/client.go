package contract

import "github.com/prgauge/prgauge/schema"

// NewChangeClient builds the change client matching the configured provider.
func NewChangeClient(cfg *Config) ChangeClient {
	if cfg.Provider == schema.GitHubProvider {
		return NewGitHubClient(cfg.GitHubAPIBaseURL, cfg.GitHubRepo, cfg.GitHubToken)
	}
	return NewLocalGitClient(cfg.RepoPath)
}
