package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the remote endpoints and runtime knobs of the bootstrap.
// Every field is optional in the YAML file; zero values fall back to the
// compiled-in defaults during validation.
type Config struct {
	// ArtifactURL is where the program file is downloaded from.
	ArtifactURL string `yaml:"artifact_url"`
	// CommitsURL is the commit-metadata endpoint queried for the
	// version marker. Expected to answer with a JSON object whose
	// "sha" field names the latest commit.
	CommitsURL string `yaml:"commits_url"`
	// ProbeURL is the endpoint used by the pre-flight reachability check.
	ProbeURL string `yaml:"probe_url"`
	// Runner is the external command the generated wrapper delegates to.
	Runner string `yaml:"runner"`
	// Timeout bounds each individual network operation.
	Timeout time.Duration `yaml:"timeout"`
}

const (
	// DefaultConfigFilename is picked up from the working directory
	// when no explicit settings path is given.
	DefaultConfigFilename = "br-bootstrap-settings.yaml"

	// DefaultArtifactURL serves the program file from the project repository.
	DefaultArtifactURL = "https://raw.githubusercontent.com/SamukeloGift/Brewery/main/main.py"

	// DefaultCommitsURL is the commit-metadata endpoint of the project repository.
	DefaultCommitsURL = "https://api.github.com/repos/SamukeloGift/Brewery/commits/main"

	// DefaultProbeURL is the host contacted by the reachability check.
	DefaultProbeURL = "https://raw.githubusercontent.com"

	// DefaultRunner executes the downloaded program.
	DefaultRunner = "uv"

	// DefaultTimeout is the default bound for network operations.
	DefaultTimeout = 30 * time.Second
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
)

// Default returns a configuration populated with the compiled-in defaults.
func Default() *Config {
	return &Config{
		ArtifactURL: DefaultArtifactURL,
		CommitsURL:  DefaultCommitsURL,
		ProbeURL:    DefaultProbeURL,
		Runner:      DefaultRunner,
		Timeout:     DefaultTimeout,
	}
}

// Load reads configuration from the provided path and validates it.
// An empty path falls back to DefaultConfigFilename when that file exists
// and to the compiled-in defaults otherwise; settings are never required.
func Load(path string) (*Config, error) {
	if path == "" {
		if _, err := os.Stat(DefaultConfigFilename); err != nil {
			return Default(), nil
		}

		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate fills missing fields with defaults and checks URL formatting.
func Validate(settings *Config) error {
	if settings == nil {
		return errConfigIsNotSet
	}

	if settings.ArtifactURL == "" {
		settings.ArtifactURL = DefaultArtifactURL
	}

	if settings.CommitsURL == "" {
		settings.CommitsURL = DefaultCommitsURL
	}

	if settings.ProbeURL == "" {
		settings.ProbeURL = DefaultProbeURL
	}

	if settings.Runner == "" {
		settings.Runner = DefaultRunner
	}

	if settings.Timeout <= 0 {
		settings.Timeout = DefaultTimeout
	}

	for name, value := range map[string]string{
		"artifact URL": settings.ArtifactURL,
		"commits URL":  settings.CommitsURL,
		"probe URL":    settings.ProbeURL,
	} {
		if _, err := url.ParseRequestURI(value); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}
