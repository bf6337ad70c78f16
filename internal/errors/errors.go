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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrInvalidConfig indicates the configuration could not be loaded or failed validation.
	// Maps to exit code 2.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrNetworkFailure indicates a connection problem or a non-success HTTP status.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network request failed")

	// ErrParse indicates a response body was not the expected JSON document.
	// Maps to exit code 4.
	ErrParse = errors.New("invalid response body")

	// ErrMissingField indicates a record did not contain the configured username path.
	// Maps to exit code 5.
	ErrMissingField = errors.New("missing username field")
)
