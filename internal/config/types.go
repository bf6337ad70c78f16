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

// Package config types define the configuration structures used throughout
// sirseer-roster. These types represent settings that can be loaded from
// YAML or TOML configuration files, environment variables, or command-line flags.
package config

// Source kinds recognized in SourceConfig.Kind.
const (
	// KindREST pages any endpoint returning a JSON array with ?page=N.
	KindREST = "rest"

	// KindGitHub lists contributors or commits through the typed GitHub client.
	KindGitHub = "github"

	// KindGraphQL walks the commit history of a ref through the GraphQL API.
	KindGraphQL = "graphql"
)

// Lists recognized in SourceConfig.List for the github kind.
const (
	ListContributors = "contributors"
	ListCommits      = "commits"
)

// Config represents the complete configuration for sirseer-roster.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub    GitHubConfig   `yaml:"github" toml:"github"`
	Sources   []SourceConfig `yaml:"sources" toml:"sources"`
	Normalize string         `yaml:"normalize" toml:"normalize"`
	Exclude   []string       `yaml:"exclude" toml:"exclude"`
	PerPage   int            `yaml:"per_page" toml:"per_page"`
	Output    string         `yaml:"output" toml:"output"`
	Metadata  string         `yaml:"metadata" toml:"metadata"`
	LogLevel  string         `yaml:"log_level" toml:"log_level"`
	LogFormat string         `yaml:"log_format" toml:"log_format"`
	Timeout   string         `yaml:"timeout" toml:"timeout"`

	// envErr holds an environment override that could not be parsed. It is
	// reported by Validate.
	envErr error
}

// GitHubConfig contains the API roots used by the github and graphql source
// kinds. Pointing them elsewhere allows GitHub Enterprise deployments or
// mirrors.
type GitHubConfig struct {
	APIEndpoint     string `yaml:"api_endpoint" toml:"api_endpoint"`
	GraphQLEndpoint string `yaml:"graphql_endpoint" toml:"graphql_endpoint"`
}

// SourceConfig describes one list to collect usernames from.
//
// For kind rest, Endpoint is the list URL and Ref, if set, is sent as the
// sha parameter. For kinds github and graphql, Repository is "owner/repo"
// and Ref selects the branch.
type SourceConfig struct {
	Name       string `yaml:"name" toml:"name"`
	Kind       string `yaml:"kind" toml:"kind"`
	Endpoint   string `yaml:"endpoint" toml:"endpoint"`
	Repository string `yaml:"repository" toml:"repository"`
	List       string `yaml:"list" toml:"list"`
	Ref        string `yaml:"ref" toml:"ref"`
	FieldPath  string `yaml:"field_path" toml:"field_path"`
	PerPage    int    `yaml:"per_page" toml:"per_page"`
}

// DefaultConfig returns a Config with defaults suitable for public
// GitHub.com. It has no sources; those always come from a config file or
// the command line.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIEndpoint:     "https://api.github.com/",
			GraphQLEndpoint: "https://api.github.com/graphql",
		},
		Normalize: "first",
		PerPage:   100,
		LogLevel:  "info",
		LogFormat: "text",
		Timeout:   "5m",
	}
}
