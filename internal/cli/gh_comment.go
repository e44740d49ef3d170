package cli

import (
	"fmt"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/github"
	"github.com/spf13/cobra"
)

// GHCommentCommand handles the gh comment command
type GHCommentCommand struct {
	fs       filesystem.FileSystem
	ghClient github.GitHubClient
}

// NewGHCommentCommand creates a new gh comment command
func NewGHCommentCommand(fs filesystem.FileSystem, ghClient github.GitHubClient) *cobra.Command {
	cmd := &GHCommentCommand{
		fs:       fs,
		ghClient: ghClient,
	}

	cobraCmd := &cobra.Command{
		Use:   "comment",
		Short: "Post or update the coverage comment on a PR",
		Long: `Scans the tree and posts the coverage report as a PR comment.

The comment carries a hidden marker, so re-runs update the existing
comment instead of stacking new ones.`,
		Example: `  apexcov gh comment --owner myorg --repo myrepo --pr 42 --root force-app

  # Label the PR when classes are missing tests
  apexcov gh comment --owner myorg --repo myrepo --pr 42 --label needs-tests`,
		RunE: cmd.Run,
	}

	addScanFlags(cobraCmd)
	cobraCmd.Flags().Int("pr", 0, "Pull request number")
	cobraCmd.Flags().String("label", "", "Label to add when uncovered classes exist")

	return cobraCmd
}

// Run executes the gh comment command
func (c *GHCommentCommand) Run(cmd *cobra.Command, args []string) error {
	if c.ghClient == nil {
		return github.ErrGitHubTokenNotFound
	}

	owner, repo, err := requireRepoFlags(cmd)
	if err != nil {
		return err
	}

	prNumber, _ := cmd.Flags().GetInt("pr")
	label, _ := cmd.Flags().GetString("label")

	if prNumber <= 0 {
		return fmt.Errorf("--pr is required")
	}

	sc, err := resolveScan(c.fs, cmd)
	if err != nil {
		return err
	}

	body, err := github.RenderCoverageComment(sc.Report, sc.Threshold)
	if err != nil {
		return fmt.Errorf("failed to render comment: %w", err)
	}

	comments, err := c.ghClient.ListIssueComments(cmd.Context(), owner, repo, prNumber)
	if err != nil {
		return err
	}

	if existing := github.FindCoverageComment(comments); existing != nil {
		if _, err := c.ghClient.UpdateIssueComment(cmd.Context(), owner, repo, existing.ID, body); err != nil {
			return err
		}
		fmt.Printf("✓ Updated coverage comment on #%d\n", prNumber)
	} else {
		if _, err := c.ghClient.CreateIssueComment(cmd.Context(), owner, repo, prNumber, body); err != nil {
			return err
		}
		fmt.Printf("✓ Posted coverage comment on #%d\n", prNumber)
	}

	if label != "" && len(sc.Report.Uncovered) > 0 {
		if err := c.ghClient.AddLabels(cmd.Context(), owner, repo, prNumber, []string{label}); err != nil {
			return err
		}
		fmt.Printf("✓ Added label %q to #%d\n", label, prNumber)
	}

	return nil
}
