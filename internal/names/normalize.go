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

// Package names turns raw usernames into display names: it normalizes
// capitalization, filters out unwanted logins and deduplicates the result.
package names

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode selects how Normalize changes the case of a name.
type Mode string

const (
	// ModeFirst upper-cases the first character and leaves the rest untouched.
	ModeFirst Mode = "first"

	// ModeCapitalize upper-cases the first character and lower-cases the rest.
	ModeCapitalize Mode = "capitalize"
)

// Modes lists every recognized normalization mode.
var Modes = []Mode{ModeFirst, ModeCapitalize}

// ParseMode maps a configuration value to a Mode. An empty value selects ModeFirst.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeFirst:
		return ModeFirst, nil
	case ModeCapitalize:
		return ModeCapitalize, nil
	default:
		return "", fmt.Errorf("unknown normalize mode %q (want %s or %s)", s, ModeFirst, ModeCapitalize)
	}
}

// Normalize applies mode to name. ModeFirst gives "mcDonald" -> "McDonald";
// ModeCapitalize gives "mcDonald" -> "Mcdonald".
func Normalize(name string, mode Mode) string {
	if name == "" {
		return name
	}
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError && size <= 1 {
		// Invalid leading byte: leave it as is.
		return name
	}
	rest := name[size:]
	if mode == ModeCapitalize {
		rest = strings.ToLower(rest)
	}
	return string(unicode.ToUpper(r)) + rest
}
