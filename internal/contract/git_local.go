package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/prgauge/prgauge/schema"
)

// LocalGitClient implements the ChangeClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct {
	RepoPath string
}

var _ ChangeClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient(repoPath string) *LocalGitClient {
	return &LocalGitClient{RepoPath: repoPath}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", c.RepoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", c.RepoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// ListChangedFiles implements the ChangeClient interface.
// A change ID containing "..." is treated as a base...target ref range and
// resolved with 'git diff'. Anything else is treated as a single commit and
// resolved with 'git show'.
func (c *LocalGitClient) ListChangedFiles(ctx context.Context, changeID string) ([]schema.ChangedFile, error) {
	var args []string
	if strings.Contains(changeID, "...") {
		args = []string{"diff", "--numstat", changeID}
	} else {
		args = []string{"show", "--numstat", "--format=", changeID}
	}
	out, err := c.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return ParseNumstat(string(out)), nil
}

// ListRecentMergedChangeIDs implements the ChangeClient interface.
// Merge commits on the first-parent chain stand in for merged changes.
func (c *LocalGitClient) ListRecentMergedChangeIDs(ctx context.Context, limit int) ([]string, error) {
	args := []string{
		"log",
		"--merges",
		"--first-parent",
		fmt.Sprintf("-n%d", limit),
		"--pretty=format:%H",
	}
	out, err := c.Run(ctx, args...)
	if err != nil {
		return nil, err
	}
	ids := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(ids) == 1 && ids[0] == "" {
		return []string{}, nil
	}
	return ids, nil
}

// ParseNumstat parses 'git --numstat' output into changed files. Binary files
// report "-" for additions and deletions; those counts are coerced to zero.
func ParseNumstat(out string) []schema.ChangedFile {
	files := []schema.ChangedFile{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 || parts[2] == "" {
			continue
		}
		files = append(files, schema.ChangedFile{
			Path:      parts[2],
			Additions: parseNumstatCount(parts[0]),
			Deletions: parseNumstatCount(parts[1]),
		})
	}
	return files
}

func parseNumstatCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
