package git

import (
	"context"
)

// MockGitClient implements GitClient for testing
type MockGitClient struct {
	// Repo controls IsGitRepo
	Repo bool

	// HeadSHA is returned by GetHeadSHA
	HeadSHA string

	// ChangedFiles maps base refs to diff results
	ChangedFiles map[string][]string

	// Err, when set, is returned by every operation that can fail
	Err error
}

// NewMockGitClient creates a MockGitClient representing a repository on main
func NewMockGitClient() *MockGitClient {
	return &MockGitClient{
		Repo:         true,
		HeadSHA:      "0000000000000000000000000000000000000000",
		ChangedFiles: make(map[string][]string),
	}
}

func (g *MockGitClient) IsGitRepo() (bool, error) {
	if g.Err != nil {
		return false, g.Err
	}
	return g.Repo, nil
}

func (g *MockGitClient) GetHeadSHA() (string, error) {
	if g.Err != nil {
		return "", g.Err
	}
	return g.HeadSHA, nil
}

func (g *MockGitClient) GetChangedFiles(base string) ([]string, error) {
	if g.Err != nil {
		return nil, g.Err
	}
	return g.ChangedFiles[base], nil
}

func (g *MockGitClient) WithContext(ctx context.Context) GitClient {
	return g
}
