package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// Client implements GitHubClient using the real GitHub API
type Client struct {
	client *github.Client
}

// NewClient creates a new GitHub API client
func NewClient(token string) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
	}
}

var (
	// ErrGitHubTokenNotFound is returned when no token is available through
	// the config layer (github.token, GH_TOKEN, or GITHUB_TOKEN)
	ErrGitHubTokenNotFound = fmt.Errorf("no GitHub token configured (set github.token, GH_TOKEN, or GITHUB_TOKEN)")
)

func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}
	return convertPullRequest(pr), nil
}

func (c *Client) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	_, _, err := c.client.Issues.AddLabelsToIssue(ctx, owner, repo, number, labels)
	if err != nil {
		return fmt.Errorf("failed to add labels to #%d: %w", number, err)
	}
	return nil
}

func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*IssueComment, error) {
	var result []*IssueComment

	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	for {
		comments, resp, err := c.client.Issues.ListComments(ctx, owner, repo, number, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list comments on #%d: %w", number, err)
		}
		for _, comment := range comments {
			result = append(result, convertIssueComment(comment))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return result, nil
}

func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*IssueComment, error) {
	comment, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, &github.IssueComment{
		Body: &body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment on #%d: %w", number, err)
	}
	return convertIssueComment(comment), nil
}

func (c *Client) UpdateIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) (*IssueComment, error) {
	comment, _, err := c.client.Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{
		Body: &body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}
	return convertIssueComment(comment), nil
}

func (c *Client) CreateCommitStatus(ctx context.Context, owner, repo, sha string, status *CommitStatus) error {
	repoStatus := &github.RepoStatus{
		State:       &status.State,
		Context:     &status.Context,
		Description: &status.Description,
	}
	if status.TargetURL != "" {
		repoStatus.TargetURL = &status.TargetURL
	}

	_, _, err := c.client.Repositories.CreateStatus(ctx, owner, repo, sha, repoStatus)
	if err != nil {
		return fmt.Errorf("failed to create commit status on %s: %w", sha, err)
	}
	return nil
}

func convertPullRequest(pr *github.PullRequest) *PullRequest {
	result := &PullRequest{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		HTMLURL: pr.GetHTMLURL(),
		State:   pr.GetState(),
		Head:    pr.GetHead().GetRef(),
		HeadSHA: pr.GetHead().GetSHA(),
		Base:    pr.GetBase().GetRef(),
		Labels:  extractLabels(pr.Labels),
	}

	if pr.GetUser() != nil {
		result.Author = pr.GetUser().GetLogin()
	}

	return result
}

func convertIssueComment(comment *github.IssueComment) *IssueComment {
	result := &IssueComment{
		ID:      comment.GetID(),
		Body:    comment.GetBody(),
		HTMLURL: comment.GetHTMLURL(),
	}
	if comment.GetUser() != nil {
		result.Author = comment.GetUser().GetLogin()
	}
	return result
}

func extractLabels(labels []*github.Label) []string {
	result := make([]string, 0, len(labels))
	for _, label := range labels {
		if label != nil {
			result = append(result, label.GetName())
		}
	}
	return result
}
