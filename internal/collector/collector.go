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

// Package collector implements the contributor roster pipeline: it pages
// through every configured source, extracts a username from each record,
// normalizes and filters it, and returns the deduplicated names in sorted
// order.
//
// Collection is all-or-nothing. Any failure aborts the run and no names are
// returned, so callers never print a partial roster.
package collector

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
	"github.com/sirseerhq/sirseer-roster/internal/github"
	"github.com/sirseerhq/sirseer-roster/internal/metadata"
	"github.com/sirseerhq/sirseer-roster/internal/names"
)

// Source is one list endpoint plus the path of the username in its records.
type Source struct {
	// Name identifies the source in logs, errors and run metadata.
	Name string

	// Pager fetches the source page by page.
	Pager github.Pager

	// FieldPath is the dotted path of the username, e.g. "login" or "author.login".
	FieldPath string
}

// PageObserver is called after each page is fetched, including the final
// empty page.
type PageObserver func(page, records int)

// FetchAllPages requests pages 1, 2, 3, ... from pager until one comes back
// empty and returns the records of all pages in fetch order. The empty page
// is the last request made.
func FetchAllPages(ctx context.Context, pager github.Pager, observers ...PageObserver) ([]github.Record, error) {
	var records []github.Record
	for n := 1; ; n++ {
		page, err := pager.FetchPage(ctx, n)
		if err != nil {
			return nil, err
		}
		for _, observe := range observers {
			observe(n, len(page))
		}
		if len(page) == 0 {
			return records, nil
		}
		records = append(records, page...)
	}
}

// ExtractName returns the string found at the dotted path in record. Every
// intermediate segment must be an object and the leaf must be a non-empty
// string; anything else is reported as ErrMissingField. A name containing a
// line break cannot be printed as one roster line and is reported as ErrParse.
func ExtractName(record github.Record, path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: empty field path", rostererrors.ErrMissingField)
	}

	var current any = map[string]any(record)
	segments := strings.Split(path, ".")
	for i, segment := range segments {
		object, ok := current.(map[string]any)
		if !ok {
			return "", fmt.Errorf("%w: %q is not an object at %q",
				rostererrors.ErrMissingField, strings.Join(segments[:i], "."), path)
		}
		value, ok := object[segment]
		if !ok || value == nil {
			return "", fmt.Errorf("%w: no value at %q", rostererrors.ErrMissingField, strings.Join(segments[:i+1], "."))
		}
		current = value
	}

	name, ok := current.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q is %T, not a string", rostererrors.ErrMissingField, path, current)
	}
	if name == "" {
		return "", fmt.Errorf("%w: %q is empty", rostererrors.ErrMissingField, path)
	}
	if strings.ContainsAny(name, "\r\n") {
		return "", fmt.Errorf("%w: %q holds %q, which contains a line break", rostererrors.ErrParse, path, name)
	}
	return name, nil
}

// Collector turns sources into a sorted roster of display names.
type Collector struct {
	mode    names.Mode
	filter  *names.Filter
	tracker *metadata.Tracker
	log     *logrus.Entry
}

// Option configures a Collector.
type Option func(*Collector)

// WithMode selects the normalization mode. The default is names.ModeFirst.
func WithMode(mode names.Mode) Option {
	return func(c *Collector) {
		c.mode = mode
	}
}

// WithFilter drops logins matched by filter before normalization.
func WithFilter(filter *names.Filter) Option {
	return func(c *Collector) {
		c.filter = filter
	}
}

// WithTracker records page and name counts into tracker.
func WithTracker(tracker *metadata.Tracker) Option {
	return func(c *Collector) {
		c.tracker = tracker
	}
}

// WithLogger sets the logger used for progress messages.
func WithLogger(log *logrus.Entry) Option {
	return func(c *Collector) {
		c.log = log
	}
}

// New creates a Collector.
func New(opts ...Option) *Collector {
	c := &Collector{
		mode: names.ModeFirst,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tracker == nil {
		c.tracker = metadata.New()
	}
	if c.log == nil {
		c.log = logrus.NewEntry(logrus.StandardLogger())
	}
	return c
}

// Tracker returns the tracker the collector records into.
func (c *Collector) Tracker() *metadata.Tracker {
	return c.tracker
}

// Collect runs every source in order and returns the union of their names,
// normalized, deduplicated and sorted ascending. On error nothing is
// returned.
func (c *Collector) Collect(ctx context.Context, sources []Source) ([]string, error) {
	set := names.NewNameSet()

	for _, src := range sources {
		if err := c.collectSource(ctx, src, set); err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name, err)
		}
	}

	return set.Sorted(), nil
}

func (c *Collector) collectSource(ctx context.Context, src Source, set *names.NameSet) error {
	log := c.log.WithFields(logrus.Fields{
		"source": src.Name,
		"pager":  src.Pager.String(),
	})
	c.tracker.StartSource(src.Name, src.Pager.String())
	log.Debug("Collecting source")

	records, err := FetchAllPages(ctx, src.Pager, func(page, count int) {
		c.tracker.RecordPage(src.Name, count)
		log.WithFields(logrus.Fields{"page": page, "records": count}).Debug("Fetched page")
	})
	if err != nil {
		return err
	}

	for i, record := range records {
		login, err := ExtractName(record, src.FieldPath)
		if err != nil {
			return fmt.Errorf("record %d: %w", i+1, err)
		}
		if c.filter.Excluded(login) {
			c.tracker.RecordExcluded(src.Name)
			log.WithField("login", login).Debug("Excluded login")
			continue
		}
		if set.Add(names.Normalize(login, c.mode)) {
			c.tracker.RecordNewName(src.Name)
		}
	}

	stats := c.tracker.Source(src.Name)
	log.WithFields(logrus.Fields{
		"pages":     stats.Pages,
		"records":   stats.Records,
		"excluded":  stats.Excluded,
		"new_names": stats.NewNames,
	}).Info("Collected source")
	return nil
}
