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

// Package reroute synthesizes the redirect and rewrite rules a host
// framework needs to serve a translated route tree.
//
// Rewrites map every localized path onto the file route serving it, so
// "/communaute/:communityId-:communitySlug" is served by
// "/community/:communityId/:communitySlug". Redirects send every alias of
// a page in a locale (another locale's path, or the untranslated file
// route) to the page's path in that locale.
//
// Rules of the same page whose sources only differ by static segments are
// merged into one rule with an alternation group:
//
//	/fr/(acerca|about) -> /fr/a-propos
//
// A redirect merge whose source would match its own destination is
// rejected and reported as a diagnostic.
//
// Basic usage:
//
//	rules, err := reroute.Build(root, i18n, reroute.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	for _, r := range rules.Redirects {
//	    fmt.Println(r.Source, "->", r.Destination)
//	}
//
// Build is deterministic: the same tree always yields the same rules in
// the same order.
package reroute
