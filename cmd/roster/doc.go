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

// Package main implements the sirseer-roster command-line interface.
// This tool collects contributor usernames from paginated repository APIs
// and prints a sorted, deduplicated roster of display names.
//
// The CLI supports:
//   - Any number of sources from a YAML or TOML config file
//   - An ad-hoc REST source via --source-url
//   - Two normalization modes: first (default) and capitalize
//   - Glob exclusion of bot accounts
//   - An optional JSON run summary via --metadata
//
// Usage:
//
//	sirseer-roster collect [flags]
//
// Example:
//
//	sirseer-roster collect \
//	  --source-url https://api.github.com/repos/golang/go/contributors \
//	  --exclude 'dependabot*'
//
// Names go to stdout; logs go to stderr. Nothing is printed to stdout
// unless every page of every source was collected successfully.
//
// Exit codes:
//   - 0: Success
//   - 1: General error
//   - 2: Invalid configuration
//   - 3: Network error
//   - 4: Response could not be parsed
//   - 5: Username field missing from a record
package main
