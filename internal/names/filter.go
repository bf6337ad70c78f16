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

package names

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter drops logins that match any of its glob patterns, for example
// "dependabot*" or "*-bot". Matching is done on the raw login, before
// normalization.
type Filter struct {
	patterns []string
}

// NewFilter validates patterns and returns a Filter. A nil or empty list
// excludes nothing.
func NewFilter(patterns []string) (*Filter, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}
	return &Filter{patterns: patterns}, nil
}

// Excluded reports whether login matches one of the patterns.
func (f *Filter) Excluded(login string) bool {
	if f == nil {
		return false
	}
	for _, p := range f.patterns {
		// Patterns were validated in NewFilter, so the error is always nil.
		if ok, _ := doublestar.Match(p, login); ok {
			return true
		}
	}
	return false
}
