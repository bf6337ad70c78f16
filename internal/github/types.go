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

// Package github provides types and interfaces for reading paginated
// contributor lists from a repository-hosting API.
package github

import (
	"net/url"
	"strconv"
	"strings"
)

// Record is a single raw entry from a list endpoint, decoded from JSON.
// Typed pagers build Records with the same shape the REST API returns so
// that username extraction does not depend on the source kind.
type Record map[string]any

// Page is one page of records. An empty Page marks the end of pagination.
type Page []Record

// Default values for list operations
const (
	// defaultPerPage is used by typed pagers when no page size is configured.
	defaultPerPage = 100

	// maxPerPage is the largest page size GitHub accepts.
	maxPerPage = 100
)

// PageURL returns the URL of page n of endpoint. The page parameter is
// joined with '&' when endpoint already has a query string and with '?'
// otherwise.
func PageURL(endpoint string, page int) string {
	return appendQuery(endpoint, "page", strconv.Itoa(page))
}

// WithRef returns endpoint with a sha parameter selecting the branch or
// commit ref. An empty ref leaves endpoint unchanged.
func WithRef(endpoint, ref string) string {
	if ref == "" {
		return endpoint
	}
	return appendQuery(endpoint, "sha", ref)
}

func appendQuery(endpoint, key, value string) string {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}
	return endpoint + sep + key + "=" + url.QueryEscape(value)
}

// clampPerPage keeps a configured page size within GitHub's limits.
func clampPerPage(n int) int {
	if n <= 0 {
		return defaultPerPage
	}
	if n > maxPerPage {
		return maxPerPage
	}
	return n
}

// userRecord renders a login the way the REST API nests users in commit
// payloads. An empty login yields nil, matching the null the API returns
// for commits whose author is not linked to an account.
func userRecord(login string) any {
	if login == "" {
		return nil
	}
	return map[string]any{"login": login}
}
