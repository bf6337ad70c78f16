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

// Package testutil provides common test helpers for sirseer-roster
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
)

// MockServer is a paged list API backed by httptest. It records the page
// number of every request it serves.
type MockServer struct {
	*httptest.Server

	mu        sync.Mutex
	requested []int
	queries   []string
}

func newMockServer(t *testing.T, serve func(w http.ResponseWriter, r *http.Request, page int)) *MockServer {
	t.Helper()
	s := &MockServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page := 1
		if p := r.URL.Query().Get("page"); p != "" {
			n, err := strconv.Atoi(p)
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			page = n
		}

		s.mu.Lock()
		s.requested = append(s.requested, page)
		s.queries = append(s.queries, r.URL.RawQuery)
		s.mu.Unlock()

		serve(w, r, page)
	}))
	t.Cleanup(s.Close)
	return s
}

// NewPagedServer serves pages[n-1] as a JSON array for ?page=n and an
// empty array for every page past the end.
func NewPagedServer(t *testing.T, pages ...[]interface{}) *MockServer {
	t.Helper()
	return newMockServer(t, func(w http.ResponseWriter, r *http.Request, page int) {
		body := []interface{}{}
		if page >= 1 && page <= len(pages) {
			body = pages[page-1]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
}

// NewErrorServer creates a mock server that always returns the specified error
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return newMockServer(t, func(w http.ResponseWriter, r *http.Request, page int) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	})
}

// NewFailingPageServer serves pages like NewPagedServer but answers
// failPage with statusCode.
func NewFailingPageServer(t *testing.T, failPage, statusCode int, pages ...[]interface{}) *MockServer {
	t.Helper()
	return newMockServer(t, func(w http.ResponseWriter, r *http.Request, page int) {
		if page == failPage {
			w.WriteHeader(statusCode)
			_, _ = w.Write([]byte(http.StatusText(statusCode)))
			return
		}
		body := []interface{}{}
		if page >= 1 && page <= len(pages) {
			body = pages[page-1]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
}

// NewRawServer answers every request with body and status 200.
func NewRawServer(t *testing.T, body string) *MockServer {
	t.Helper()
	return newMockServer(t, func(w http.ResponseWriter, r *http.Request, page int) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

// RequestedPages returns the page numbers requested so far, in order.
func (s *MockServer) RequestedPages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.requested...)
}

// RequestCount returns the number of requests served.
func (s *MockServer) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requested)
}

// Queries returns the raw query string of each request.
func (s *MockServer) Queries() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.queries...)
}

// LoginRecords builds contributor records: [{"login": ...}, ...].
func LoginRecords(logins ...string) []interface{} {
	records := make([]interface{}, 0, len(logins))
	for _, login := range logins {
		records = append(records, map[string]interface{}{
			"login":         login,
			"contributions": len(login),
		})
	}
	return records
}

// CommitRecords builds commit records whose author and committer are the
// given login: [{"sha": ..., "author": {"login": ...}, ...}].
func CommitRecords(logins ...string) []interface{} {
	records := make([]interface{}, 0, len(logins))
	for i, login := range logins {
		user := map[string]interface{}{"login": login}
		records = append(records, map[string]interface{}{
			"sha":       fmt.Sprintf("%040d", i+1),
			"author":    user,
			"committer": user,
		})
	}
	return records
}
