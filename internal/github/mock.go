package github

import (
	"context"
	"fmt"
	"sync"
)

// MockGitHubClient implements GitHubClient for testing
type MockGitHubClient struct {
	mu sync.Mutex

	// PullRequests maps "owner/repo#number" to pull requests
	PullRequests map[string]*PullRequest

	// Comments maps "owner/repo#number" to comment lists
	Comments map[string][]*IssueComment

	// Statuses maps "owner/repo@sha" to the statuses created, in order
	Statuses map[string][]*CommitStatus

	// Labels maps "owner/repo#number" to the labels added
	Labels map[string][]string

	// Err, when set, is returned by every operation
	Err error

	nextCommentID int64
}

// NewMockGitHubClient creates an empty MockGitHubClient
func NewMockGitHubClient() *MockGitHubClient {
	return &MockGitHubClient{
		PullRequests:  make(map[string]*PullRequest),
		Comments:      make(map[string][]*IssueComment),
		Statuses:      make(map[string][]*CommitStatus),
		Labels:        make(map[string][]string),
		nextCommentID: 1,
	}
}

func issueKey(owner, repo string, number int) string {
	return fmt.Sprintf("%s/%s#%d", owner, repo, number)
}

func shaKey(owner, repo, sha string) string {
	return fmt.Sprintf("%s/%s@%s", owner, repo, sha)
}

// AddPullRequest registers a pull request for lookup
func (m *MockGitHubClient) AddPullRequest(owner, repo string, pr *PullRequest) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PullRequests[issueKey(owner, repo, pr.Number)] = pr
}

func (m *MockGitHubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (*PullRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	pr, ok := m.PullRequests[issueKey(owner, repo, number)]
	if !ok {
		return nil, fmt.Errorf("pull request #%d not found", number)
	}
	return pr, nil
}

func (m *MockGitHubClient) AddLabels(ctx context.Context, owner, repo string, number int, labels []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	key := issueKey(owner, repo, number)
	m.Labels[key] = append(m.Labels[key], labels...)
	return nil
}

func (m *MockGitHubClient) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]*IssueComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]*IssueComment(nil), m.Comments[issueKey(owner, repo, number)]...), nil
}

func (m *MockGitHubClient) CreateIssueComment(ctx context.Context, owner, repo string, number int, body string) (*IssueComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	comment := &IssueComment{
		ID:     m.nextCommentID,
		Body:   body,
		Author: "apexcov[bot]",
	}
	m.nextCommentID++

	key := issueKey(owner, repo, number)
	m.Comments[key] = append(m.Comments[key], comment)
	return comment, nil
}

func (m *MockGitHubClient) UpdateIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) (*IssueComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	for _, comments := range m.Comments {
		for _, comment := range comments {
			if comment.ID == commentID {
				comment.Body = body
				return comment, nil
			}
		}
	}
	return nil, fmt.Errorf("comment %d not found", commentID)
}

func (m *MockGitHubClient) CreateCommitStatus(ctx context.Context, owner, repo, sha string, status *CommitStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	key := shaKey(owner, repo, sha)
	m.Statuses[key] = append(m.Statuses[key], status)
	return nil
}
