package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/masmgr/commitline/internal/git"
	"github.com/masmgr/commitline/internal/timeline"
)

// Default values shared by config files, env tags and CLI flags.
const (
	DefaultWindowDays     = 7
	DefaultTimezone       = timeline.TimezoneUTC
	DefaultBackend        = string(git.BackendGitCLI)
	DefaultGitBinary      = "git"
	DefaultTimeoutSeconds = 30
	DefaultOnError        = string(git.PolicyAbort)
	DefaultConcurrency    = git.DefaultConcurrency
	DefaultLogLevel       = "INFO"
	DefaultLogFormat      = "pretty"
)

// Validation errors.
var (
	ErrInvalidWindow      = errors.New("timeline.windowDays must not be negative")
	ErrInvalidTimezone    = errors.New("timeline.timezone is not a known location")
	ErrInvalidBackend     = errors.New("fetch.backend must be gitcli or gogit")
	ErrInvalidPolicy      = errors.New("merge.onError must be abort, skip-repo or skip-commit")
	ErrInvalidConcurrency = errors.New("merge.concurrency must be positive")
	ErrInvalidTimeout     = errors.New("fetch.timeoutSeconds must be a non-negative whole number")
)

// Config is the root configuration structure.
type Config struct {
	Timeline TimelineConfig `json:"timeline" yaml:"timeline"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Merge    MergeConfig    `json:"merge" yaml:"merge"`
	Repos    ReposConfig    `json:"repos" yaml:"repos"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// TimelineConfig holds the recency window, display timezone and message
// filters.
type TimelineConfig struct {
	WindowDays int      `json:"windowDays" yaml:"windowDays"` // 0 keeps every commit
	Timezone   string   `json:"timezone" yaml:"timezone"`     // utc, local or an IANA name
	Grep       []string `json:"grep" yaml:"grep"`             // message patterns; empty keeps every commit
}

// FetchConfig holds log retrieval options.
type FetchConfig struct {
	Backend        string `json:"backend" yaml:"backend"`
	GitBinary      string `json:"gitBinary" yaml:"gitBinary"`
	TimeoutSeconds int    `json:"timeoutSeconds" yaml:"timeoutSeconds"`
	Branch         string `json:"branch" yaml:"branch"`
	MaxCount       int    `json:"maxCount" yaml:"maxCount"`
}

// MergeConfig holds multi-repository merge options.
type MergeConfig struct {
	OnError     string `json:"onError" yaml:"onError"`
	Concurrency int    `json:"concurrency" yaml:"concurrency"`
}

// ReposConfig lists repositories to read. Paths may be glob patterns.
type ReposConfig struct {
	Paths   []string `json:"paths" yaml:"paths"`
	Exclude []string `json:"exclude" yaml:"exclude"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Timeline: TimelineConfig{
			WindowDays: DefaultWindowDays,
			Timezone:   DefaultTimezone,
		},
		Fetch: FetchConfig{
			Backend:        DefaultBackend,
			GitBinary:      DefaultGitBinary,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Merge: MergeConfig{
			OnError:     DefaultOnError,
			Concurrency: DefaultConcurrency,
		},
		Repos: ReposConfig{
			Paths:   []string{},
			Exclude: []string{},
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

var searchNames = []string{".commitline.json", ".commitline.yaml", ".commitline.yml"}

// LoadConfig loads configuration from a file, merging with defaults.
// With an empty path the working directory and then $HOME are searched.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = findConfigFile()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

func findConfigFile() string {
	var dirs []string
	dirs = append(dirs, ".")
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, home)
	} else if envHome := os.Getenv("HOME"); envHome != "" {
		dirs = append(dirs, envHome)
	}

	for _, dir := range dirs {
		for _, name := range searchNames {
			p := filepath.Join(dir, name)
			if _, err := os.Stat(p); err == nil {
				return p
			}
		}
	}
	return ""
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// SaveConfig saves configuration to a file, as YAML for .yaml/.yml paths
// and JSON otherwise.
func SaveConfig(cfg *Config, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the configuration and returns the first problem found,
// wrapping one of the Err* sentinels.
func (c *Config) Validate() error {
	if c.Timeline.WindowDays < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, c.Timeline.WindowDays)
	}
	if _, err := timeline.ParseLocation(c.Timeline.Timezone); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.Timeline.Timezone)
	}
	switch git.FetchBackend(c.Fetch.Backend) {
	case "", git.BackendGitCLI, git.BackendGoGit:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Fetch.Backend)
	}
	if c.Fetch.TimeoutSeconds < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTimeout, c.Fetch.TimeoutSeconds)
	}
	if _, err := git.ParseMergePolicy(c.Merge.OnError); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, c.Merge.OnError)
	}
	if c.Merge.Concurrency <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Merge.Concurrency)
	}
	return nil
}

// Window returns the recency window as a duration.
func (c *Config) Window() time.Duration {
	return time.Duration(c.Timeline.WindowDays) * 24 * time.Hour
}

// Location resolves the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	return timeline.ParseLocation(c.Timeline.Timezone)
}

// FetchBackend returns the configured fetch backend.
func (c *Config) FetchBackend() git.FetchBackend {
	if c.Fetch.Backend == "" {
		return git.BackendGitCLI
	}
	return git.FetchBackend(c.Fetch.Backend)
}

// FetchOptions converts the fetch section into fetcher options.
func (c *Config) FetchOptions() git.FetchOptions {
	return git.FetchOptions{
		GitBinary: c.Fetch.GitBinary,
		Timeout:   time.Duration(c.Fetch.TimeoutSeconds) * time.Second,
		Revision:  c.Fetch.Branch,
		MaxCount:  c.Fetch.MaxCount,
	}
}

// MergePolicy returns the configured failure policy. Invalid values are
// rejected by Validate; here they fall back to abort.
func (c *Config) MergePolicy() git.MergePolicy {
	p, err := git.ParseMergePolicy(c.Merge.OnError)
	if err != nil {
		return git.PolicyAbort
	}
	return p
}
