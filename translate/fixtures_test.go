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

package translate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/routetree"
)

type P = routetree.Paths

func communityTree() *routetree.Branch {
	return routetree.NewBranch("", nil,
		routetree.NewLeaf("index", nil),
		routetree.NewBranch("community", P{"fr": "communaute"},
			routetree.NewLeaf("index", nil),
			routetree.NewBranch("[communityId]", P{"fr": "."},
				routetree.NewBranch("[communitySlug]", P{"fr": ":communityId-:communitySlug"},
					routetree.NewLeaf("index", nil),
					routetree.NewLeaf("statistics", P{"fr": "statistiques"}),
				),
			),
		),
		routetree.NewBranch("news", P{"fr": "actualites"},
			routetree.NewLeaf("[...newsPathPart]", nil),
		),
		routetree.NewBranch("communities", P{"fr": "communautes"},
			routetree.NewLeaf("[[...tagSlug]]", nil),
		),
		routetree.NewLeaf("about", P{"fr": "a-propos", "es": "acerca"}),
	)
}

func testI18n() routetree.I18n {
	return routetree.I18n{
		Locales:       []string{"en", "fr", "fr-BE", "es"},
		DefaultLocale: "en",
		Fallback:      map[string][]string{"fr-BE": {"fr"}},
	}
}

type eventRecorder struct {
	events []diag.Event
}

func (r *eventRecorder) OnDiagnostic(e diag.Event) {
	r.events = append(r.events, e)
}

func (r *eventRecorder) kinds() []diag.Kind {
	out := make([]diag.Kind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestTranslator(t *testing.T, root *routetree.Branch, i18n routetree.I18n, opts ...Option) *Translator {
	t.Helper()
	tr, err := New(root, i18n, opts...)
	require.NoError(t, err)
	return tr
}
