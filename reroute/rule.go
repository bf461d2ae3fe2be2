// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package reroute

import (
	"sort"
	"strings"
)

// Redirect sends a request matching Source to Destination. Sources carry
// their locale prefix, so the host framework must not add one (Locale is
// always false).
type Redirect struct {
	Source      string `json:"source" yaml:"source" toml:"source"`
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
	Permanent   bool   `json:"permanent" yaml:"permanent" toml:"permanent"`
	Locale      bool   `json:"locale" yaml:"locale" toml:"locale"`
}

// Rewrite serves a request matching Source with the page at Destination
// without changing the visible address.
type Rewrite struct {
	Source      string `json:"source" yaml:"source" toml:"source"`
	Destination string `json:"destination" yaml:"destination" toml:"destination"`
}

// ReRoutes holds the synthesized rules, each list sorted by descending
// specificity.
type ReRoutes struct {
	Redirects []Redirect `json:"redirects" yaml:"redirects" toml:"redirects"`
	Rewrites  []Rewrite  `json:"rewrites" yaml:"rewrites" toml:"rewrites"`
}

// SortRedirects sorts redirects by descending specificity. See
// sortBySpecificity.
func SortRedirects(redirects []Redirect) {
	sortBySpecificity(redirects, func(r Redirect) string { return r.Source })
}

// SortRewrites sorts rewrites by descending specificity.
func SortRewrites(rewrites []Rewrite) {
	sortBySpecificity(rewrites, func(r Rewrite) string { return r.Source })
}

// sortBySpecificity puts rules without placeholder in their source first,
// then orders by descending number of path segments. Equal rules keep
// their relative order.
func sortBySpecificity[R any](rules []R, source func(R) string) {
	sort.SliceStable(rules, func(i, j int) bool {
		a, b := source(rules[i]), source(rules[j])
		aDynamic, bDynamic := strings.Contains(a, ":"), strings.Contains(b, ":")
		if aDynamic != bDynamic {
			return !aDynamic
		}
		return segmentCount(a) > segmentCount(b)
	})
}

func segmentCount(source string) int {
	return strings.Count(source, "/") + 1
}
