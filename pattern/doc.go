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

// Package pattern parses path patterns in the path-to-regexp syntax used by
// translated route segments and by generated redirect and rewrite rules.
//
// A pattern converts in both directions:
//
//	p := pattern.MustParse("/communaute/:id-:slug/statistiques")
//
//	path, err := p.Compile(url.Values{"id": {"300"}, "slug": {"three-hundred"}})
//	// path == "/communaute/300-three-hundred/statistiques"
//
//	params, ok := p.Match("/communaute/300-three-hundred/statistiques")
//	// params.Get("id") == "300"
//
// Matching is case-insensitive and accepts one trailing delimiter, like the
// rules a host framework evaluates. Custom key patterns are RE2 regular
// expressions; capturing groups inside them are rejected.
package pattern
