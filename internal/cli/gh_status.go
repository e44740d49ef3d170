package cli

import (
	"fmt"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/git"
	"github.com/jakoblorz/apexcov/internal/github"
	"github.com/spf13/cobra"
)

// GHStatusCommand handles the gh status command
type GHStatusCommand struct {
	fs       filesystem.FileSystem
	git      git.GitClient
	ghClient github.GitHubClient
}

// NewGHStatusCommand creates a new gh status command
func NewGHStatusCommand(fs filesystem.FileSystem, gitClient git.GitClient, ghClient github.GitHubClient) *cobra.Command {
	cmd := &GHStatusCommand{
		fs:       fs,
		git:      gitClient,
		ghClient: ghClient,
	}

	cobraCmd := &cobra.Command{
		Use:   "status",
		Short: "Set a commit status from a coverage scan",
		Long: `Scans the tree and sets a pass/fail commit status.

The status passes only when the coverage percentage meets the threshold
and no class is missing its test. A failed scan sets an error status that
names the failure instead of reporting a percentage.`,
		Example: `  # Status for HEAD
  apexcov gh status --owner myorg --repo myrepo --root force-app

  # Status for a pull request's head commit
  apexcov gh status --owner myorg --repo myrepo --pr 42

  # Status for an explicit commit
  apexcov gh status --owner myorg --repo myrepo --sha <sha>`,
		RunE: cmd.Run,
	}

	addScanFlags(cobraCmd)
	cobraCmd.Flags().String("sha", "", "Commit SHA (defaults to the PR head, then local HEAD)")
	cobraCmd.Flags().Int("pr", 0, "Pull request number to resolve the commit from")
	cobraCmd.Flags().String("context", "apexcov/coverage", "Status check context name")

	return cobraCmd
}

// Run executes the gh status command
func (c *GHStatusCommand) Run(cmd *cobra.Command, args []string) error {
	if c.ghClient == nil {
		return github.ErrGitHubTokenNotFound
	}

	owner, repo, err := requireRepoFlags(cmd)
	if err != nil {
		return err
	}

	sha, _ := cmd.Flags().GetString("sha")
	prNumber, _ := cmd.Flags().GetInt("pr")
	statusContext, _ := cmd.Flags().GetString("context")

	if sha == "" && prNumber > 0 {
		pr, err := c.ghClient.GetPullRequest(cmd.Context(), owner, repo, prNumber)
		if err != nil {
			return fmt.Errorf("failed to resolve pull request #%d: %w", prNumber, err)
		}
		sha = pr.HeadSHA
	}
	if sha == "" {
		sha, err = c.git.WithContext(cmd.Context()).GetHeadSHA()
		if err != nil {
			return fmt.Errorf("failed to resolve commit for status: %w", err)
		}
	}

	sc, scanErr := resolveScan(c.fs, cmd)
	if scanErr != nil {
		// A failed scan produces no report; the status says so instead of
		// carrying a percentage
		status := &github.CommitStatus{
			State:       github.StatusError,
			Context:     statusContext,
			Description: "scan failed, no coverage report produced",
		}
		if err := c.ghClient.CreateCommitStatus(cmd.Context(), owner, repo, sha, status); err != nil {
			return err
		}
		return scanErr
	}

	status := &github.CommitStatus{
		Context: statusContext,
	}
	switch {
	case !sc.Report.HasUnits():
		status.State = github.StatusSuccess
		status.Description = "no Apex classes found"
	case sc.Report.MeetsThreshold(sc.Threshold):
		status.State = github.StatusSuccess
		status.Description = fmt.Sprintf("%d of %d classes covered (%d%%)",
			sc.Report.Covered, sc.Report.Total, sc.Report.Percentage())
	default:
		status.State = github.StatusFailure
		status.Description = fmt.Sprintf("%d of %d classes covered (%d%%), threshold %d%%",
			sc.Report.Covered, sc.Report.Total, sc.Report.Percentage(), sc.Threshold)
	}

	if err := c.ghClient.CreateCommitStatus(cmd.Context(), owner, repo, sha, status); err != nil {
		return err
	}

	fmt.Printf("✓ Set %s status on %.7s: %s\n", status.State, sha, status.Description)
	return nil
}
