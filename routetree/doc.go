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

// Package routetree holds the route tree data model shared by the
// translator and the redirect/rewrite synthesizer.
//
// A tree mirrors a page-based web framework's page hierarchy: one [Branch]
// per path segment, each carrying the file-derived segment name and its
// per-locale translated values. Segment names use the file-route syntax:
//
//	about            static segment
//	[slug]           single dynamic segment
//	[...parts]       catch-all segment
//	[[...parts]]     optional catch-all segment
//	index            index page of the enclosing folder
//
// Translated values use the path-to-regexp syntax understood by the
// pattern package (":slug", ":parts+", ":a-:b"). The special value "."
// marks a segment as ignored in a locale: it occupies a tree level but
// produces no visible path text. It may carry a regex suffix, ".(\d+)",
// that is appended to the segment's capture in generated redirects.
//
// Trees are built once (see the pages package or [ReadSnapshot]) and are
// treated as immutable afterwards.
//
// Basic usage:
//
//	root := routetree.NewBranch("", routetree.Paths{"default": ""},
//	    routetree.NewLeaf("index", routetree.Paths{"default": "index"}),
//	    routetree.NewBranch("about", routetree.Paths{"default": "about", "fr": "a-propos"},
//	        routetree.NewLeaf("index", routetree.Paths{"default": "index"}),
//	    ),
//	)
//	i18n := routetree.I18n{Locales: []string{"en", "fr"}, DefaultLocale: "en"}
//	value := i18n.Resolve(root.Children[1].Paths, "fr") // "a-propos"
package routetree
