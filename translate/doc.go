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

// Package translate converts addresses between their canonical file-route
// form and their localized public form.
//
// A canonical address names the page file that serves it, with dynamic
// values either written in the path or carried in the query:
//
//	/community/[communityId]/[communitySlug]/statistics?communityId=300&communitySlug=three-hundred
//	/community/300/three-hundred/statistics
//
// Its localized form is what visitors see:
//
//	/fr/communaute/300-three-hundred/statistiques
//
// Basic usage:
//
//	tr, err := translate.New(root, i18n, translate.WithLogger(logger))
//	if err != nil {
//	    return err
//	}
//	localized, err := tr.ToLocalizedString("/community/300/three-hundred/statistics", "fr")
//	canonical, err := tr.ToCanonicalString(localized, "")
//
// Href is the lenient variant used for links: any address it cannot
// translate is returned unchanged and reported through the diagnostics
// handler.
//
// A Translator is immutable once built and safe for concurrent use.
package translate
