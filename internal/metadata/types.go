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

// Package metadata types define the structures used for reporting on a
// collection run. They capture what was collected, from where, and how much
// work it took.
package metadata

import (
	"time"
)

// RunMetadata represents the complete report for a single collection run.
type RunMetadata struct {
	RosterVersion string     `json:"roster_version"`
	RunID         string     `json:"run_id"`
	Parameters    RunParams  `json:"parameters"`
	Results       RunResults `json:"results"`
}

// RunParams captures the settings a run was started with.
type RunParams struct {
	Normalize string   `json:"normalize"`
	Exclude   []string `json:"exclude,omitempty"`
}

// RunResults contains the statistics gathered while the run progressed.
type RunResults struct {
	Sources      []SourceStats `json:"sources"`
	UniqueNames  int           `json:"unique_names"`
	APICallCount int           `json:"api_calls_made"`
	Duration     string        `json:"duration"`
	StartedAt    time.Time     `json:"started_at"`
	CompletedAt  time.Time     `json:"completed_at"`
}

// SourceStats holds the counters for one source.
type SourceStats struct {
	Name     string `json:"name"`
	Pager    string `json:"pager"`
	Pages    int    `json:"pages"`
	Records  int    `json:"records"`
	Excluded int    `json:"excluded"`
	NewNames int    `json:"new_names"`
}
