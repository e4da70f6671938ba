package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "COMMITLINE"

// EnvConfig holds environment overrides. Unset variables leave the pointer
// nil so file values survive.
type EnvConfig struct {
	// Env: COMMITLINE_WINDOW_DAYS
	WindowDays *int `envconfig:"WINDOW_DAYS"`
	// Env: COMMITLINE_TIMEZONE
	Timezone *string `envconfig:"TIMEZONE"`

	// Env: COMMITLINE_BACKEND
	Backend *string `envconfig:"BACKEND"`
	// Env: COMMITLINE_GIT_BINARY
	GitBinary *string `envconfig:"GIT_BINARY"`
	// Env: COMMITLINE_TIMEOUT_SECONDS
	TimeoutSeconds *int `envconfig:"TIMEOUT_SECONDS"`
	// Env: COMMITLINE_BRANCH
	Branch *string `envconfig:"BRANCH"`
	// Env: COMMITLINE_MAX_COUNT
	MaxCount *int `envconfig:"MAX_COUNT"`

	// Env: COMMITLINE_ON_ERROR
	OnError *string `envconfig:"ON_ERROR"`
	// Env: COMMITLINE_CONCURRENCY
	Concurrency *int `envconfig:"CONCURRENCY"`

	// Repos is a comma-separated list of repository paths or globs.
	// Env: COMMITLINE_REPOS
	Repos []string `envconfig:"REPOS"`
	// Env: COMMITLINE_EXCLUDE
	Exclude []string `envconfig:"EXCLUDE"`

	// Grep is a comma-separated list of commit message patterns.
	// Env: COMMITLINE_GREP
	Grep []string `envconfig:"GREP"`

	// Env: COMMITLINE_LOG_LEVEL
	LogLevel *string `envconfig:"LOG_LEVEL"`
	// Env: COMMITLINE_LOG_FORMAT
	LogFormat *string `envconfig:"LOG_FORMAT"`
}

// DefaultEnvFile is loaded when no env file is named; it may be absent.
const DefaultEnvFile = ".env"

// LoadDotEnv loads variables from a .env file. An empty path means
// DefaultEnvFile, which is optional; a named file must exist. Variables
// already set are not replaced.
func LoadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); os.IsNotExist(err) {
			return nil
		}
		path = DefaultEnvFile
	}
	return godotenv.Load(path)
}

// LoadFromEnv reads COMMITLINE_* variables.
func LoadFromEnv() (EnvConfig, error) {
	var env EnvConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return EnvConfig{}, fmt.Errorf("read environment: %w", err)
	}
	return env, nil
}

// ApplyEnv loads envFile (optional) and overlays COMMITLINE_* variables on cfg.
func ApplyEnv(cfg *Config, envFile string) error {
	if err := LoadDotEnv(envFile); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	env, err := LoadFromEnv()
	if err != nil {
		return err
	}
	env.Apply(cfg)
	return nil
}

// Apply copies every set variable onto cfg.
func (e EnvConfig) Apply(cfg *Config) {
	setInt(&cfg.Timeline.WindowDays, e.WindowDays)
	setString(&cfg.Timeline.Timezone, e.Timezone)

	setString(&cfg.Fetch.Backend, e.Backend)
	setString(&cfg.Fetch.GitBinary, e.GitBinary)
	setInt(&cfg.Fetch.TimeoutSeconds, e.TimeoutSeconds)
	setString(&cfg.Fetch.Branch, e.Branch)
	setInt(&cfg.Fetch.MaxCount, e.MaxCount)

	setString(&cfg.Merge.OnError, e.OnError)
	setInt(&cfg.Merge.Concurrency, e.Concurrency)

	if len(e.Repos) > 0 {
		cfg.Repos.Paths = trimAll(e.Repos)
	}
	if len(e.Exclude) > 0 {
		cfg.Repos.Exclude = trimAll(e.Exclude)
	}

	if len(e.Grep) > 0 {
		cfg.Timeline.Grep = trimAll(e.Grep)
	}

	setString(&cfg.Log.Level, e.LogLevel)
	setString(&cfg.Log.Format, e.LogFormat)
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
