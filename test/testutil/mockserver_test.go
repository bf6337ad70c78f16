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
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"reflect"
	"strings"
	"testing"
)

func getJSON(t *testing.T, url string) (int, []interface{}) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	var body []interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return resp.StatusCode, body
}

func TestNewPagedServer(t *testing.T) {
	server := NewPagedServer(t, LoginRecords("a", "b"), LoginRecords("c"))

	tests := []struct {
		query     string
		wantCount int
	}{
		{"", 2},
		{"?page=1", 2},
		{"?page=2", 1},
		{"?page=3", 0},
		{"?page=99", 0},
	}

	for _, tt := range tests {
		status, body := getJSON(t, server.URL+"/contributors"+tt.query)
		if status != http.StatusOK {
			t.Errorf("GET %q status = %d, want 200", tt.query, status)
		}
		if len(body) != tt.wantCount {
			t.Errorf("GET %q returned %d records, want %d", tt.query, len(body), tt.wantCount)
		}
	}

	if want := []int{1, 1, 2, 3, 99}; !reflect.DeepEqual(server.RequestedPages(), want) {
		t.Errorf("RequestedPages() = %v, want %v", server.RequestedPages(), want)
	}
	if server.RequestCount() != 5 {
		t.Errorf("RequestCount() = %d, want 5", server.RequestCount())
	}
}

func TestNewFailingPageServer(t *testing.T) {
	server := NewFailingPageServer(t, 2, http.StatusBadGateway, LoginRecords("a"), LoginRecords("b"))

	if status, _ := getJSON(t, server.URL+"?page=1"); status != http.StatusOK {
		t.Errorf("page 1 status = %d, want 200", status)
	}
	if status, _ := getJSON(t, server.URL+"?page=2"); status != http.StatusBadGateway {
		t.Errorf("page 2 status = %d, want 502", status)
	}
}

func TestNewErrorServer(t *testing.T) {
	server := NewErrorServer(t, http.StatusNotFound)
	if status, _ := getJSON(t, server.URL+"?page=1"); status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", status)
	}
}

func TestNewRawServer(t *testing.T) {
	server := NewRawServer(t, `{"not": "a list"}`)
	resp, err := http.Get(server.URL)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "not") {
		t.Errorf("body = %s", data)
	}
}

func TestRecordBuilders(t *testing.T) {
	logins := LoginRecords("alice")
	if got := logins[0].(map[string]interface{})["login"]; got != "alice" {
		t.Errorf("LoginRecords login = %v, want alice", got)
	}

	commits := CommitRecords("bob")
	author := commits[0].(map[string]interface{})["author"].(map[string]interface{})
	if author["login"] != "bob" {
		t.Errorf("CommitRecords author.login = %v, want bob", author["login"])
	}
}

func TestHistoryServer(t *testing.T) {
	server := NewHistoryServer(t, []string{"alice", ""}, []string{"bob"})

	post := func(body string) map[string]interface{} {
		resp, err := http.Post(server.URL, "application/json", bytes.NewBufferString(body))
		if err != nil {
			t.Fatal(err)
		}
		defer resp.Body.Close()
		var out map[string]interface{}
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			t.Fatal(err)
		}
		return out
	}

	history := func(resp map[string]interface{}) map[string]interface{} {
		return resp["data"].(map[string]interface{})["repository"].(map[string]interface{})["ref"].(map[string]interface{})["target"].(map[string]interface{})["history"].(map[string]interface{})
	}

	first := history(post(`{"query":"q","variables":{"after":null}}`))
	pageInfo := first["pageInfo"].(map[string]interface{})
	if pageInfo["hasNextPage"] != true || pageInfo["endCursor"] != "cursor2" {
		t.Errorf("page 1 pageInfo = %v", pageInfo)
	}
	if nodes := first["nodes"].([]interface{}); len(nodes) != 2 {
		t.Errorf("page 1 nodes = %d, want 2", len(nodes))
	}

	second := history(post(`{"query":"q","variables":{"after":"cursor2"}}`))
	if second["pageInfo"].(map[string]interface{})["hasNextPage"] != false {
		t.Errorf("page 2 should be the last page")
	}

	if want := []int{1, 2}; !reflect.DeepEqual(server.RequestedPages(), want) {
		t.Errorf("RequestedPages() = %v, want %v", server.RequestedPages(), want)
	}
}
