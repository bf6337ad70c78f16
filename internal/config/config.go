// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for sirseer-roster with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file (YAML or TOML)
//  4. Built-in defaults
//
// Endpoints, refs and field paths are never hard-coded: every source the
// collector reads is described by a SourceConfig.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
	"github.com/sirseerhq/sirseer-roster/internal/names"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .sirseer-roster.yaml (current directory)
//   - .sirseer-roster.yml (current directory)
//   - .sirseer-roster.toml (current directory)
//   - ~/.sirseer/roster.yaml
//   - ~/.sirseer/roster.toml
//
// Environment variables are applied after loading the config file. Output
// paths have ~ and environment variables expanded.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		for _, path := range DefaultPaths() {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	applyEnvOverrides(cfg)

	cfg.Output = expandPath(cfg.Output)
	cfg.Metadata = expandPath(cfg.Metadata)

	return cfg, nil
}

// DefaultPaths returns the locations searched when no config file is given.
func DefaultPaths() []string {
	home := homeDir()
	return []string{
		".sirseer-roster.yaml",
		".sirseer-roster.yml",
		".sirseer-roster.toml",
		filepath.Join(home, ".sirseer", "roster.yaml"),
		filepath.Join(home, ".sirseer", "roster.toml"),
	}
}

// loadConfigFile reads a config file, choosing the decoder by extension.
// Unknown keys are rejected so that typos do not silently fall back to defaults.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w: %w", path, rostererrors.ErrInvalidConfig, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w: %w", path, rostererrors.ErrInvalidConfig, err)
		}
		return nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config file %s: %w: %w", path, rostererrors.ErrInvalidConfig, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if endpoint := os.Getenv("GITHUB_API_ENDPOINT"); endpoint != "" {
		cfg.GitHub.APIEndpoint = endpoint
	}
	if endpoint := os.Getenv("GITHUB_GRAPHQL_ENDPOINT"); endpoint != "" {
		cfg.GitHub.GraphQLEndpoint = endpoint
	}

	if mode := os.Getenv("ROSTER_NORMALIZE"); mode != "" {
		cfg.Normalize = mode
	}
	if level := os.Getenv("ROSTER_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}
	if timeout := os.Getenv("ROSTER_TIMEOUT"); timeout != "" {
		cfg.Timeout = timeout
	}
	if out := os.Getenv("ROSTER_OUTPUT"); out != "" {
		cfg.Output = out
	}
	if perPage := os.Getenv("ROSTER_PER_PAGE"); perPage != "" {
		n, err := parsePositiveInt(perPage)
		if err != nil {
			cfg.envErr = fmt.Errorf("invalid ROSTER_PER_PAGE: %w", err)
		} else {
			cfg.PerPage = n
		}
	}
}

func homeDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home = os.Getenv("USERPROFILE") // Windows
	}
	return home
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir(), path[2:])
	}
	return os.ExpandEnv(path)
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// ParseRepository parses an owner/repo string into owner and repo components
func ParseRepository(repoArg string) (owner, repo string, err error) {
	parts := strings.Split(repoArg, "/")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	owner = strings.TrimSpace(parts[0])
	repo = strings.TrimSpace(parts[1])

	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository format. Expected: <owner>/<repo>, got: %s", repoArg)
	}

	return owner, repo, nil
}

// ApplyDefaults fills in the per-source fields that have an obvious default:
// kind rest, list contributors, the usual username path for each list, the
// global page size and a name derived from the source.
func (c *Config) ApplyDefaults() {
	for i := range c.Sources {
		s := &c.Sources[i]
		s.Kind = strings.ToLower(strings.TrimSpace(s.Kind))
		if s.Kind == "" {
			s.Kind = KindREST
		}
		if s.Kind == KindGitHub && s.List == "" {
			s.List = ListContributors
		}
		if s.FieldPath == "" {
			s.FieldPath = defaultFieldPath(s)
		}
		if s.PerPage <= 0 {
			s.PerPage = c.PerPage
		}
		if s.Name == "" {
			s.Name = defaultSourceName(s, i)
		}
	}
}

func defaultFieldPath(s *SourceConfig) string {
	switch {
	case s.Kind == KindGraphQL:
		return "author.login"
	case s.Kind == KindGitHub && s.List == ListCommits:
		return "author.login"
	default:
		return "login"
	}
}

func defaultSourceName(s *SourceConfig, index int) string {
	switch s.Kind {
	case KindREST:
		if s.Endpoint != "" {
			return s.Endpoint
		}
	case KindGitHub:
		if s.Repository != "" {
			return s.Repository + "/" + s.List
		}
	case KindGraphQL:
		if s.Repository != "" {
			return s.Repository + "@" + s.Ref
		}
	}
	return fmt.Sprintf("source-%d", index+1)
}

// TimeoutDuration parses Timeout.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got: %s", c.Timeout)
	}
	return d, nil
}

// Validate checks if the configuration contains valid values. It should be
// called after ApplyDefaults and after flags have been applied. Every error
// wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return fmt.Errorf("%w: %w", rostererrors.ErrInvalidConfig, err)
	}
	return nil
}

func (c *Config) validate() error {
	if c.envErr != nil {
		return c.envErr
	}
	if _, err := names.ParseMode(c.Normalize); err != nil {
		return err
	}
	if _, err := names.NewFilter(c.Exclude); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", c.LogFormat)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	if c.PerPage <= 0 {
		return fmt.Errorf("per_page must be positive, got: %d", c.PerPage)
	}
	if c.PerPage > 100 {
		return fmt.Errorf("per_page %d exceeds GitHub API limit of 100", c.PerPage)
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("no sources configured. Add a sources list to the config file or use --source-url")
	}

	seen := make(map[string]bool, len(c.Sources))
	for i := range c.Sources {
		s := &c.Sources[i]
		if err := c.validateSource(s); err != nil {
			return fmt.Errorf("source %d (%s): %w", i+1, s.Name, err)
		}
		if seen[s.Name] {
			return fmt.Errorf("source %d: duplicate source name %q", i+1, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

func (c *Config) validateSource(s *SourceConfig) error {
	if s.FieldPath == "" {
		return fmt.Errorf("field_path cannot be empty")
	}
	for _, segment := range strings.Split(s.FieldPath, ".") {
		if segment == "" {
			return fmt.Errorf("invalid field_path %q", s.FieldPath)
		}
	}

	switch s.Kind {
	case KindREST:
		if s.Endpoint == "" {
			return fmt.Errorf("rest sources need an endpoint")
		}
		if !strings.HasPrefix(s.Endpoint, "http://") && !strings.HasPrefix(s.Endpoint, "https://") {
			return fmt.Errorf("endpoint %q must be an http or https URL", s.Endpoint)
		}
	case KindGitHub:
		if _, _, err := ParseRepository(s.Repository); err != nil {
			return err
		}
		if s.List != ListContributors && s.List != ListCommits {
			return fmt.Errorf("unknown list %q (want %s or %s)", s.List, ListContributors, ListCommits)
		}
		if s.List == ListContributors && s.Ref != "" {
			return fmt.Errorf("ref only applies to the %s list", ListCommits)
		}
		if c.GitHub.APIEndpoint == "" {
			return fmt.Errorf("GitHub API endpoint cannot be empty")
		}
	case KindGraphQL:
		if _, _, err := ParseRepository(s.Repository); err != nil {
			return err
		}
		if s.Ref == "" {
			return fmt.Errorf("graphql sources need a ref")
		}
		if c.GitHub.GraphQLEndpoint == "" {
			return fmt.Errorf("GitHub GraphQL endpoint cannot be empty")
		}
	default:
		return fmt.Errorf("unknown kind %q (want %s, %s or %s)", s.Kind, KindREST, KindGitHub, KindGraphQL)
	}

	if s.PerPage > 100 {
		return fmt.Errorf("per_page %d exceeds GitHub API limit of 100", s.PerPage)
	}
	return nil
}
