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

package github

import (
	"context"
	"fmt"
)

// Pager retrieves one page of contributor records from a source.
// Implementations are used sequentially: page 1, 2, 3, ... until an empty
// page is returned. This interface allows for easy mocking in tests.
type Pager interface {
	// FetchPage retrieves page n (1-based). It returns an empty Page once
	// the source is exhausted.
	FetchPage(ctx context.Context, n int) (Page, error)

	// String identifies the source in logs and error messages.
	String() string
}

// pageError annotates an error with the pager and page it came from.
func pageError(p Pager, n int, err error) error {
	return fmt.Errorf("%s page %d: %w", p, n, err)
}
