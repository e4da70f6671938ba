package git

import "context"

// LogFetcher obtains the raw history log of a repository.
// The repository is always passed explicitly so implementations never rely
// on the process working directory and may be called concurrently.
type LogFetcher interface {
	// Fetch returns the full history of repoPath in the default git log format.
	Fetch(ctx context.Context, repoPath string) (string, error)
}

// Compile-time interface conformance checks.
var (
	_ LogFetcher = (*CLIFetcher)(nil)
	_ LogFetcher = (*GoGitFetcher)(nil)
	_ LogFetcher = (*MockFetcher)(nil)
)

// NewFetcher returns the LogFetcher for the given backend.
// Unknown backends fall back to the git CLI.
func NewFetcher(backend FetchBackend, opts FetchOptions) LogFetcher {
	switch backend {
	case BackendGoGit:
		return NewGoGitFetcher(opts)
	default:
		return NewCLIFetcher(opts)
	}
}
