package git

import (
	"context"
)

// GitClient provides an abstraction over the git operations apexcov needs:
// scoping generation to a pull request's changed files and resolving the
// commit a status is reported against.
type GitClient interface {
	// Repository operations
	IsGitRepo() (bool, error)
	GetHeadSHA() (string, error)

	// GetChangedFiles lists files changed between base and HEAD
	// (three-dot diff, paths relative to the repository root)
	GetChangedFiles(base string) ([]string, error)

	// Context support
	WithContext(ctx context.Context) GitClient
}
