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

// Package github provides pagers for reading contributor lists from
// GitHub-style repository-hosting APIs. Every pager returns pages of raw
// records; an empty page ends the listing.
//
// The package includes:
//   - A Pager interface for fetching one page at a time
//   - RESTPager for any endpoint returning a JSON array, paged with ?page=N
//   - APIPager for contributors and commits through google/go-github
//   - GraphQLPager for commit history through shurcooL/graphql
//   - MockPager for testing
//
// Basic usage:
//
//	pager := github.NewRESTPager(nil, "https://api.github.com/repos/golang/go/contributors", "")
//	for n := 1; ; n++ {
//	    page, err := pager.FetchPage(ctx, n)
//	    if err != nil {
//	        // Handle error
//	    }
//	    if len(page) == 0 {
//	        break
//	    }
//	    for _, record := range page {
//	        // Process record
//	    }
//	}
package github
