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

package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// HistoryServer is a GraphQL endpoint serving a commit history in pages.
// Cursors are "cursor<N>" where N is the page the cursor starts.
type HistoryServer struct {
	*httptest.Server

	mu    sync.Mutex
	pages []int
}

// NewHistoryServer serves pages[i] as the authors of page i+1 of
// repository.ref.target.history. An empty login produces a commit whose
// author is not linked to a user.
func NewHistoryServer(t *testing.T, pages ...[]string) *HistoryServer {
	t.Helper()
	s := &HistoryServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables map[string]interface{} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		page := 1
		if after, ok := req.Variables["after"].(string); ok {
			n, err := strconv.Atoi(strings.TrimPrefix(after, "cursor"))
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			page = n
		}

		s.mu.Lock()
		s.pages = append(s.pages, page)
		s.mu.Unlock()

		var logins []string
		if page >= 1 && page <= len(pages) {
			logins = pages[page-1]
		}
		hasNext := page < len(pages)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(HistoryResponse(hasNext, "cursor"+strconv.Itoa(page+1), logins...))
	}))
	t.Cleanup(s.Close)
	return s
}

// RequestedPages returns the history pages requested so far, in order.
func (s *HistoryServer) RequestedPages() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.pages...)
}

// HistoryResponse builds a GraphQL commit history response.
func HistoryResponse(hasNext bool, cursor string, logins ...string) map[string]interface{} {
	nodes := make([]interface{}, 0, len(logins))
	for _, login := range logins {
		var user interface{}
		if login != "" {
			user = map[string]interface{}{"login": login}
		}
		nodes = append(nodes, map[string]interface{}{
			"author":    map[string]interface{}{"user": user},
			"committer": map[string]interface{}{"user": user},
		})
	}
	return map[string]interface{}{
		"data": map[string]interface{}{
			"repository": map[string]interface{}{
				"ref": map[string]interface{}{
					"target": map[string]interface{}{
						"__typename": "Commit",
						"history": map[string]interface{}{
							"pageInfo": map[string]interface{}{
								"hasNextPage": hasNext,
								"endCursor":   cursor,
							},
							"nodes": nodes,
						},
					},
				},
			},
		},
	}
}
