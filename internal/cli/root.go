package cli

import (
	"fmt"

	"github.com/jakoblorz/apexcov/internal/config"
	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/git"
	"github.com/jakoblorz/apexcov/internal/github"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, gitClient git.GitClient, ghClient github.GitHubClient) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "apexcov",
		Short: "AI-assisted test coverage for Salesforce Apex",
		Long: `A CLI for Apex test coverage in source-format Salesforce projects.

apexcov pairs each Apex class with its co-located test class by naming
convention, reports what is missing, generates missing test classes with an
AI completion service, and posts results back to a pull request.`,
		SilenceUsage: true,
	}

	// Add subcommands
	rootCmd.AddCommand(NewScanCommand(fs))
	rootCmd.AddCommand(NewGenerateCommand(fs, gitClient, nil))
	rootCmd.AddCommand(NewGHCommand(fs, gitClient, ghClient))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	gitClient := git.NewOSGitClient()

	// The token flows through the config layer (file, then
	// GH_TOKEN/GITHUB_TOKEN); gh subcommands surface the missing-token
	// error when no client could be built
	var ghClient github.GitHubClient
	if cfg, err := config.Load(""); err == nil && cfg.GitHub.Token != "" {
		ghClient = github.NewClient(cfg.GitHub.Token)
	}

	rootCmd := NewRootCommand(fs, gitClient, ghClient)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
