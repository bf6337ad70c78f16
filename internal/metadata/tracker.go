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

// Package metadata tracks statistics about a collection run: pages fetched,
// records seen, logins excluded and names contributed by each source. The
// resulting report can be logged or written to a JSON file for auditing.
package metadata

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Tracker collects statistics during a collection run. Create a new tracker
// at the start of each run and call its methods as pages are processed.
type Tracker struct {
	runID        string
	startTime    time.Time
	apiCallCount int
	sources      []*SourceStats
	byName       map[string]*SourceStats
}

// New creates a tracker with a fresh run ID, started now.
func New() *Tracker {
	return &Tracker{
		runID:     uuid.NewString(),
		startTime: time.Now(),
		byName:    make(map[string]*SourceStats),
	}
}

// RunID returns the unique identifier of this run.
func (t *Tracker) RunID() string {
	return t.runID
}

// StartSource registers a source. Calling it again for the same name is a no-op.
func (t *Tracker) StartSource(name, pager string) {
	t.source(name).Pager = pager
}

// RecordPage records one successful page request carrying records entries.
func (t *Tracker) RecordPage(name string, records int) {
	t.apiCallCount++
	s := t.source(name)
	s.Pages++
	s.Records += records
}

// RecordExcluded records a login dropped by the exclude filter.
func (t *Tracker) RecordExcluded(name string) {
	t.source(name).Excluded++
}

// RecordNewName records a name that was not yet in the set.
func (t *Tracker) RecordNewName(name string) {
	t.source(name).NewNames++
}

// Source returns a copy of the counters for a source.
func (t *Tracker) Source(name string) SourceStats {
	if s, ok := t.byName[name]; ok {
		return *s
	}
	return SourceStats{Name: name}
}

// APICallCount returns the number of page requests made so far.
func (t *Tracker) APICallCount() int {
	return t.apiCallCount
}

func (t *Tracker) source(name string) *SourceStats {
	if s, ok := t.byName[name]; ok {
		return s
	}
	s := &SourceStats{Name: name}
	t.byName[name] = s
	t.sources = append(t.sources, s)
	return s
}

// GenerateMetadata creates a RunMetadata capturing the run so far. Call it
// once collection has finished.
func (t *Tracker) GenerateMetadata(rosterVersion string, params RunParams, uniqueNames int) *RunMetadata {
	completedAt := time.Now()

	sources := make([]SourceStats, 0, len(t.sources))
	for _, s := range t.sources {
		sources = append(sources, *s)
	}

	return &RunMetadata{
		RosterVersion: rosterVersion,
		RunID:         t.runID,
		Parameters:    params,
		Results: RunResults{
			Sources:      sources,
			UniqueNames:  uniqueNames,
			APICallCount: t.apiCallCount,
			Duration:     completedAt.Sub(t.startTime).String(),
			StartedAt:    t.startTime,
			CompletedAt:  completedAt,
		},
	}
}

// SaveMetadata writes metadata as indented JSON to path. The file is written
// to a temporary file first and renamed into place, so readers never see a
// partial report.
func SaveMetadata(metadata *RunMetadata, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metadata directory: %w", err)
		}
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create metadata file: %w", err)
	}

	if err := WriteMetadataToWriter(metadata, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write metadata: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close metadata file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save metadata file: %w", err)
	}

	return nil
}

// WriteMetadataToWriter serializes metadata to indented JSON on w.
func WriteMetadataToWriter(metadata *RunMetadata, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(metadata)
}
