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

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sirseerhq/sirseer-roster/internal/collector"
	"github.com/sirseerhq/sirseer-roster/internal/config"
	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
	"github.com/sirseerhq/sirseer-roster/internal/github"
	"github.com/sirseerhq/sirseer-roster/internal/metadata"
	"github.com/sirseerhq/sirseer-roster/internal/names"
	"github.com/sirseerhq/sirseer-roster/internal/output"
	"github.com/sirseerhq/sirseer-roster/pkg/version"
)

// collectOptions holds the raw flag values of the collect command.
type collectOptions struct {
	configPath string
	sourceURL  string
	fieldPath  string
	ref        string
	normalize  string
	exclude    []string
	output     string
	metadata   string
	logLevel   string
	timeout    time.Duration
}

func newCollectCommand() *cobra.Command {
	opts := &collectOptions{}

	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Collect contributor names from the configured sources",
		Long: `Collect contributor names from every configured source and print them
sorted, one per line.

Sources come from the config file (see --config) or from --source-url, which
replaces them with a single REST endpoint. Each source is paged with
?page=1, ?page=2, ... until an empty page is returned.

Any network, parse or missing-field error aborts the run before anything
is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolveConfig(cmd.Flags())
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			timeout, err := cfg.TimeoutDuration()
			if err != nil {
				return fmt.Errorf("%w: %w", rostererrors.ErrInvalidConfig, err)
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			return runCollect(ctx, cfg, nil, cmd.OutOrStdout(), logger)
		},
	}

	bindCollectFlags(cmd.Flags(), opts)
	return cmd
}

// bindCollectFlags defines the collect flags on fs.
func bindCollectFlags(fs *pflag.FlagSet, opts *collectOptions) {
	fs.StringVar(&opts.configPath, "config", "", "Config file path (default: search standard locations)")
	fs.StringVar(&opts.sourceURL, "source-url", "", "Collect from this REST endpoint instead of the configured sources")
	fs.StringVar(&opts.fieldPath, "field-path", "login", "Dotted path of the username in --source-url records")
	fs.StringVar(&opts.ref, "ref", "", "Branch or commit sent as the sha parameter of --source-url")
	fs.StringVar(&opts.normalize, "normalize", "", "Normalization mode: first or capitalize")
	fs.StringArrayVar(&opts.exclude, "exclude", nil, "Glob pattern of logins to drop (repeatable)")
	fs.StringVar(&opts.output, "output", "", "Output file path (default: stdout)")
	fs.StringVar(&opts.metadata, "metadata", "", "Write a JSON run summary to this path")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	fs.DurationVar(&opts.timeout, "timeout", 0, "Overall run timeout (default 5m)")
}

// resolveConfig loads the config file and environment, then applies the
// flags that were set explicitly. The result has defaults applied and has
// been validated.
func (o *collectOptions) resolveConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}

	if o.sourceURL != "" {
		cfg.Sources = []config.SourceConfig{{
			Name:      o.sourceURL,
			Kind:      config.KindREST,
			Endpoint:  o.sourceURL,
			Ref:       o.ref,
			FieldPath: o.fieldPath,
		}}
	} else if fs.Changed("field-path") || fs.Changed("ref") {
		return nil, fmt.Errorf("%w: --field-path and --ref only apply to --source-url", rostererrors.ErrInvalidConfig)
	}

	if fs.Changed("normalize") {
		cfg.Normalize = o.normalize
	}
	if fs.Changed("exclude") {
		cfg.Exclude = o.exclude
	}
	if fs.Changed("output") {
		cfg.Output = o.output
	}
	if fs.Changed("metadata") {
		cfg.Metadata = o.metadata
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if fs.Changed("timeout") {
		cfg.Timeout = o.timeout.String()
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger creates the run logger. Logs always go to w (stderr) so that
// stdout carries names only.
func newLogger(cfg *config.Config, w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rostererrors.ErrInvalidConfig, err)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger, nil
}

// buildSources turns the validated source configs into pagers. A nil client
// selects github.NewHTTPClient().
func buildSources(cfg *config.Config, client *http.Client) ([]collector.Source, error) {
	if client == nil {
		client = github.NewHTTPClient()
	}

	sources := make([]collector.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		var pager github.Pager

		switch sc.Kind {
		case config.KindREST:
			pager = github.NewRESTPager(client, sc.Endpoint, sc.Ref)

		case config.KindGitHub:
			owner, repo, err := config.ParseRepository(sc.Repository)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", rostererrors.ErrInvalidConfig, err)
			}
			apiPager, err := github.NewAPIPager(client, github.APIOptions{
				BaseURL: cfg.GitHub.APIEndpoint,
				Owner:   owner,
				Repo:    repo,
				List:    github.List(sc.List),
				Ref:     sc.Ref,
				PerPage: sc.PerPage,
			})
			if err != nil {
				return nil, fmt.Errorf("%w: source %q: %w", rostererrors.ErrInvalidConfig, sc.Name, err)
			}
			pager = apiPager

		case config.KindGraphQL:
			owner, repo, err := config.ParseRepository(sc.Repository)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", rostererrors.ErrInvalidConfig, err)
			}
			pager = github.NewGraphQLPager(client, github.GraphQLOptions{
				Endpoint: cfg.GitHub.GraphQLEndpoint,
				Owner:    owner,
				Repo:     repo,
				Ref:      sc.Ref,
				PerPage:  sc.PerPage,
			})

		default:
			return nil, fmt.Errorf("%w: unknown kind %q", rostererrors.ErrInvalidConfig, sc.Kind)
		}

		sources = append(sources, collector.Source{
			Name:      sc.Name,
			Pager:     pager,
			FieldPath: sc.FieldPath,
		})
	}
	return sources, nil
}

// runCollect collects every source and, only once collection has fully
// succeeded, writes the roster to cfg.Output or stdout.
func runCollect(ctx context.Context, cfg *config.Config, client *http.Client, stdout io.Writer, logger *logrus.Logger) error {
	mode, err := names.ParseMode(cfg.Normalize)
	if err != nil {
		return fmt.Errorf("%w: %w", rostererrors.ErrInvalidConfig, err)
	}
	filter, err := names.NewFilter(cfg.Exclude)
	if err != nil {
		return fmt.Errorf("%w: %w", rostererrors.ErrInvalidConfig, err)
	}
	sources, err := buildSources(cfg, client)
	if err != nil {
		return err
	}

	tracker := metadata.New()
	log := logger.WithField("run_id", tracker.RunID())

	c := collector.New(
		collector.WithMode(mode),
		collector.WithFilter(filter),
		collector.WithTracker(tracker),
		collector.WithLogger(log),
	)

	roster, err := c.Collect(ctx, sources)
	if err != nil {
		return err
	}

	if err := writeRoster(roster, cfg.Output, stdout); err != nil {
		return err
	}

	md := tracker.GenerateMetadata(version.Version, metadata.RunParams{
		Normalize: string(mode),
		Exclude:   cfg.Exclude,
	}, len(roster))

	if cfg.Metadata != "" {
		if err := metadata.SaveMetadata(md, cfg.Metadata); err != nil {
			return fmt.Errorf("failed to save metadata: %w", err)
		}
		log.WithField("path", cfg.Metadata).Debug("Saved run metadata")
	}

	log.WithFields(logrus.Fields{
		"sources":   len(sources),
		"names":     len(roster),
		"api_calls": md.Results.APICallCount,
		"duration":  md.Results.Duration,
	}).Info("Roster complete")
	return nil
}

// writeRoster writes names to path, or to stdout when path is empty. Every
// name is checked before the destination is opened so that a bad name never
// leaves a partial roster behind.
func writeRoster(roster []string, path string, stdout io.Writer) error {
	for _, name := range roster {
		if err := output.ValidateName(name); err != nil {
			return fmt.Errorf("%w: %w", rostererrors.ErrParse, err)
		}
	}

	var writer output.OutputWriter
	if path == "" {
		writer = output.NewWriter(stdout)
	} else {
		fileWriter, err := output.NewFileWriter(path)
		if err != nil {
			return err
		}
		writer = fileWriter
	}

	for _, name := range roster {
		if err := writer.Write(name); err != nil {
			_ = writer.Close()
			return fmt.Errorf("failed to write roster: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}
	return nil
}
