package github

import (
	"context"
)

// GitHubClient provides an abstraction over the GitHub API operations the
// reporting collaborator needs
type GitHubClient interface {
	// Pull request operations
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error)
	AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error

	// Issue comment operations (PR comments are issue comments)
	ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*IssueComment, error)
	CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*IssueComment, error)
	UpdateIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) (*IssueComment, error)

	// Commit status operations
	CreateCommitStatus(ctx context.Context, owner, repo, sha string, status *CommitStatus) error
}

// PullRequest represents a GitHub pull request
type PullRequest struct {
	Number  int
	Title   string
	HTMLURL string
	Author  string
	State   string
	Head    string
	HeadSHA string
	Base    string
	Labels  []string
}

// IssueComment represents a comment on a pull request
type IssueComment struct {
	ID      int64
	Body    string
	Author  string
	HTMLURL string
}

// CommitStatus represents a commit status to be created
type CommitStatus struct {
	// State is one of "success", "failure", "error", "pending"
	State string

	// Context names the status check (e.g., "apexcov/coverage")
	Context string

	// Description is the short human-readable summary
	Description string

	// TargetURL links the status to details, if any
	TargetURL string
}

// Commit status states
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
	StatusPending = "pending"
)
