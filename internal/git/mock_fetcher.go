package git

import (
	"context"
	"sync"
)

// MockFetcher is a test double for LogFetcher.
// It serves predefined logs per repository path without running git.
type MockFetcher struct {
	Logs   map[string]string
	Errors map[string]error

	mu    sync.Mutex
	calls []string
}

// NewMockFetcher creates a new MockFetcher with the given logs.
func NewMockFetcher(logs map[string]string) *MockFetcher {
	return &MockFetcher{
		Logs:   logs,
		Errors: map[string]error{},
	}
}

// WithError makes Fetch fail for repoPath.
func (m *MockFetcher) WithError(repoPath string, err error) *MockFetcher {
	m.Errors[repoPath] = err
	return m
}

// Fetch returns the predefined log or error for repoPath. Unknown paths
// fail with a not-repository FetchError.
func (m *MockFetcher) Fetch(ctx context.Context, repoPath string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, repoPath)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", &FetchError{Repo: repoPath, Reason: FetchCommandFailed, Err: err}
	}
	if err, ok := m.Errors[repoPath]; ok {
		return "", err
	}
	log, ok := m.Logs[repoPath]
	if !ok {
		return "", &FetchError{Repo: repoPath, Reason: FetchNotRepository}
	}
	return log, nil
}

// Calls returns the repository paths fetched so far.
func (m *MockFetcher) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}
