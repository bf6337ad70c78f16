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

	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
)

// MockPager is a mock implementation of the Pager interface for testing.
// Pages past the end of Pages are empty.
type MockPager struct {
	// Name returned by String
	Name string

	// Pages to return, in order
	Pages []Page

	// Error to return
	Error error

	// FailOnPage makes FetchPage fail with Error (or a network error) for that page only
	FailOnPage int

	// Track calls for verification
	CallCount int
	Requested []int
}

// NewMockPager creates a mock pager that serves pages followed by an empty page.
func NewMockPager(name string, pages ...Page) *MockPager {
	return &MockPager{Name: name, Pages: pages}
}

// String implements the Pager interface
func (m *MockPager) String() string {
	return m.Name
}

// FetchPage implements the Pager interface
func (m *MockPager) FetchPage(ctx context.Context, n int) (Page, error) {
	m.CallCount++
	m.Requested = append(m.Requested, n)

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.FailOnPage == n {
		if m.Error != nil {
			return nil, m.Error
		}
		return nil, pageError(m, n, fmt.Errorf("connection reset: %w", rostererrors.ErrNetworkFailure))
	}
	if m.FailOnPage == 0 && m.Error != nil {
		return nil, m.Error
	}

	if n < 1 || n > len(m.Pages) {
		return Page{}, nil
	}
	return m.Pages[n-1], nil
}

// LoginPage builds a page of {"login": ...} records.
func LoginPage(logins ...string) Page {
	page := make(Page, 0, len(logins))
	for _, login := range logins {
		page = append(page, Record{"login": login})
	}
	return page
}

// CommitPage builds a page of commit records whose author and committer
// are the given login. An empty login produces a null author, as the API
// does for commits that are not linked to an account.
func CommitPage(logins ...string) Page {
	page := make(Page, 0, len(logins))
	for _, login := range logins {
		page = append(page, Record{
			"author":    userRecord(login),
			"committer": userRecord(login),
		})
	}
	return page
}
