package cli

import (
	"fmt"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/git"
	"github.com/jakoblorz/apexcov/internal/github"
	"github.com/spf13/cobra"
)

// NewGHCommand creates the gh command group
func NewGHCommand(fs filesystem.FileSystem, gitClient git.GitClient, ghClient github.GitHubClient) *cobra.Command {
	ghCmd := &cobra.Command{
		Use:   "gh",
		Short: "Report coverage to GitHub",
		Long:  `Commands that report scan results back to a pull request.`,
	}

	ghCmd.PersistentFlags().StringP("owner", "o", "", "GitHub repository owner")
	ghCmd.PersistentFlags().StringP("repo", "r", "", "GitHub repository name")

	ghCmd.AddCommand(NewGHCommentCommand(fs, ghClient))
	ghCmd.AddCommand(NewGHStatusCommand(fs, gitClient, ghClient))

	return ghCmd
}

// requireRepoFlags extracts and validates the shared owner/repo flags
func requireRepoFlags(cmd *cobra.Command) (owner, repo string, err error) {
	owner, _ = cmd.Flags().GetString("owner")
	repo, _ = cmd.Flags().GetString("repo")

	if owner == "" {
		return "", "", fmt.Errorf("--owner is required")
	}
	if repo == "" {
		return "", "", fmt.Errorf("--repo is required")
	}
	return owner, repo, nil
}
