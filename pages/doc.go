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

// Package pages builds a route tree from a pages directory.
//
// Every directory becomes a folder and every file with a page extension a
// page. Translations come from a routes data file (_routes.json or
// _routes.yaml, routes.json and routes.yaml are also accepted) placed in
// the directory they describe:
//
//	{
//	  "/": { "fr": "communaute" },
//	  "statistics": { "fr": "statistiques", "es": "estadisticas" },
//	  "about": "a-propos"
//	}
//
// The "/" key describes the directory itself. A string value replaces the
// default path of the segment; an object sets per-locale values, with an
// optional "default". A segment without data keeps the path derived from
// its file name.
//
// Parse works on any fs.FS:
//
//	root, err := pages.Parse(os.DirFS("src/pages"), pages.WithLogger(logger))
package pages
