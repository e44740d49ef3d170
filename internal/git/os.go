package git

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// OSGitClient implements GitClient using real git commands
type OSGitClient struct {
	ctx context.Context
}

// NewOSGitClient creates a new OSGitClient
func NewOSGitClient() *OSGitClient {
	return &OSGitClient{
		ctx: context.Background(),
	}
}

// WithContext returns a new client with the given context
func (g *OSGitClient) WithContext(ctx context.Context) GitClient {
	return &OSGitClient{
		ctx: ctx,
	}
}

// IsGitRepo checks whether the working directory is inside a git repository
func (g *OSGitClient) IsGitRepo() (bool, error) {
	cmd := exec.CommandContext(g.ctx, "git", "rev-parse", "--is-inside-work-tree")

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return false, nil
	}

	return strings.TrimSpace(out.String()) == "true", nil
}

// GetHeadSHA returns the full SHA of HEAD
func (g *OSGitClient) GetHeadSHA() (string, error) {
	cmd := exec.CommandContext(g.ctx, "git", "rev-parse", "HEAD")

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	return strings.TrimSpace(out.String()), nil
}

// GetChangedFiles lists files changed between base and HEAD using a
// three-dot diff, matching what a pull request shows
func (g *OSGitClient) GetChangedFiles(base string) ([]string, error) {
	cmd := exec.CommandContext(g.ctx, "git", "diff", "--name-only", base+"...HEAD")

	var out bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to diff against %s: %w: %s", base, err, stderr.String())
	}

	output := strings.TrimSpace(out.String())
	if output == "" {
		return nil, nil
	}

	var files []string
	for _, line := range strings.Split(output, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			files = append(files, trimmed)
		}
	}

	return files, nil
}
