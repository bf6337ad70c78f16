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
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	rostererrors "github.com/sirseerhq/sirseer-roster/internal/errors"
)

// pagedHandler serves bodies[page-1] for ?page=N and [] past the end.
func pagedHandler(t *testing.T, bodies ...string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		var n int
		if _, err := fmt.Sscanf(r.URL.Query().Get("page"), "%d", &n); err != nil {
			t.Errorf("missing page parameter in %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		if n < 1 || n > len(bodies) {
			_, _ = w.Write([]byte("[]"))
			return
		}
		_, _ = w.Write([]byte(bodies[n-1]))
	}
}

func TestRESTPager_FetchPage(t *testing.T) {
	server := httptest.NewServer(pagedHandler(t,
		`[{"login":"alice"},{"login":"bob"}]`,
		`[{"login":"carol"}]`,
	))
	defer server.Close()

	pager := NewRESTPager(server.Client(), server.URL+"/repos/o/r/contributors", "")
	ctx := context.Background()

	tests := []struct {
		page      int
		wantLogin []string
	}{
		{1, []string{"alice", "bob"}},
		{2, []string{"carol"}},
		{3, nil},
	}

	for _, tt := range tests {
		page, err := pager.FetchPage(ctx, tt.page)
		if err != nil {
			t.Fatalf("FetchPage(%d) error = %v", tt.page, err)
		}
		if len(page) != len(tt.wantLogin) {
			t.Fatalf("FetchPage(%d) returned %d records, want %d", tt.page, len(page), len(tt.wantLogin))
		}
		for i, record := range page {
			if record["login"] != tt.wantLogin[i] {
				t.Errorf("FetchPage(%d)[%d] login = %v, want %s", tt.page, i, record["login"], tt.wantLogin[i])
			}
		}
	}
}

func TestRESTPager_SendsRefAndUserAgent(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	pager := NewRESTPager(NewHTTPClient(), server.URL+"/repos/o/r/commits", "develop")
	if _, err := pager.FetchPage(context.Background(), 4); err != nil {
		t.Fatalf("FetchPage error = %v", err)
	}

	if gotQuery != "sha=develop&page=4" {
		t.Errorf("query = %q, want sha=develop&page=4", gotQuery)
	}
	if !strings.HasPrefix(gotAgent, "sirseer-roster/") {
		t.Errorf("User-Agent = %q, want sirseer-roster/ prefix", gotAgent)
	}
}

func TestRESTPager_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{
			name:    "server error",
			status:  http.StatusInternalServerError,
			body:    `{"message":"boom"}`,
			wantErr: rostererrors.ErrNetworkFailure,
		},
		{
			name:    "not found",
			status:  http.StatusNotFound,
			body:    `{"message":"Not Found"}`,
			wantErr: rostererrors.ErrNetworkFailure,
		},
		{
			name:    "invalid json",
			status:  http.StatusOK,
			body:    `<html>oops</html>`,
			wantErr: rostererrors.ErrParse,
		},
		{
			name:    "object instead of array",
			status:  http.StatusOK,
			body:    `{"message":"API rate limit exceeded"}`,
			wantErr: rostererrors.ErrParse,
		},
		{
			name:    "null body",
			status:  http.StatusOK,
			body:    `null`,
			wantErr: rostererrors.ErrParse,
		},
		{
			name:    "truncated json",
			status:  http.StatusOK,
			body:    `[{"login":"a"`,
			wantErr: rostererrors.ErrParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			pager := NewRESTPager(server.Client(), server.URL, "")
			_, err := pager.FetchPage(context.Background(), 1)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("FetchPage() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRESTPager_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	pager := NewRESTPager(nil, url, "")
	_, err := pager.FetchPage(context.Background(), 1)
	if !errors.Is(err, rostererrors.ErrNetworkFailure) {
		t.Errorf("FetchPage() error = %v, want ErrNetworkFailure", err)
	}
	if !strings.Contains(err.Error(), "page 1") {
		t.Errorf("error %q should name the page", err)
	}
}

func TestRESTPager_String(t *testing.T) {
	pager := NewRESTPager(nil, "https://api.github.com/repos/o/r/commits", "main")
	if got := pager.String(); got != "https://api.github.com/repos/o/r/commits?sha=main" {
		t.Errorf("String() = %q", got)
	}
}
