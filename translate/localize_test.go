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
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/pattern"
	"rivaas.dev/i18nroutes/routetree"
)

func TestToLocalizedString(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, communityTree(), testI18n())

	tests := []struct {
		name   string
		input  string
		locale string
		want   string
	}{
		{
			name:   "merged dynamic segments",
			input:  "/community/300/three-hundred/statistics?baz=3",
			locale: "fr",
			want:   "/fr/communaute/300-three-hundred/statistiques?baz=3",
		},
		{
			name:   "file route with parameters in the query",
			input:  "/community/[communityId]/[communitySlug]/statistics?communityId=300&communitySlug=three-hundred",
			locale: "fr",
			want:   "/fr/communaute/300-three-hundred/statistiques",
		},
		{
			name:   "default locale keeps default values",
			input:  "/community/300/three-hundred/statistics",
			locale: "en",
			want:   "/community/300/three-hundred/statistics",
		},
		{
			name:   "catch-all",
			input:  "/news/a/b",
			locale: "fr",
			want:   "/fr/actualites/a/b",
		},
		{
			name:   "catch-all file route",
			input:  "/news/[...newsPathPart]?newsPathPart=a&newsPathPart=b",
			locale: "fr",
			want:   "/fr/actualites/a/b",
		},
		{
			name:   "optional catch-all without values",
			input:  "/communities",
			locale: "fr",
			want:   "/fr/communautes",
		},
		{
			name:   "optional catch-all with values",
			input:  "/communities/[[...tagSlug]]?tagSlug=a&tagSlug=b",
			locale: "fr",
			want:   "/fr/communautes/a/b",
		},
		{
			name:   "folder index",
			input:  "/community",
			locale: "fr",
			want:   "/fr/communaute",
		},
		{
			name:   "root in default locale",
			input:  "/",
			locale: "en",
			want:   "/",
		},
		{
			name:   "root in another locale",
			input:  "/",
			locale: "fr",
			want:   "/fr",
		},
		{
			name:   "fallback locale",
			input:  "/about",
			locale: "fr-BE",
			want:   "/fr-BE/a-propos",
		},
		{
			name:   "explicit locale value",
			input:  "/about",
			locale: "es",
			want:   "/es/acerca",
		},
		{
			name:   "hash is kept",
			input:  "/about#team",
			locale: "fr",
			want:   "/fr/a-propos#team",
		},
		{
			name:   "empty locale uses the default locale",
			input:  "/about",
			locale: "",
			want:   "/about",
		},
		{
			name:   "external address",
			input:  "https://other.example/about",
			locale: "fr",
			want:   "https://other.example/about",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tr.ToLocalizedString(tt.input, tt.locale)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToLocalized_DefaultLocaleExamples(t *testing.T) {
	t.Parallel()

	i18n := routetree.I18n{Locales: []string{"fr", "en"}, DefaultLocale: "fr"}
	tr := newTestTranslator(t, communityTree(), i18n)

	got, err := tr.ToLocalized(&Address{
		Pathname: "/community/300/three-hundred/statistics",
		Query:    url.Values{"baz": {"3"}},
	}, "fr")
	require.NoError(t, err)
	assert.Equal(t, "/communaute/300-three-hundred/statistiques?baz=3", got.String())

	got, err = tr.ToLocalized(&Address{Pathname: "/news/a/b"}, "fr")
	require.NoError(t, err)
	assert.Equal(t, "/actualites/a/b", got.String())

	got, err = tr.ToLocalized(&Address{
		Pathname: "/communities",
		Query:    url.Values{"tagSlug": {}},
	}, "fr")
	require.NoError(t, err)
	assert.Equal(t, "/communautes", got.String())
	assert.Empty(t, got.Query)
}

func TestToLocalized_WithoutLocalePrefix(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, communityTree(), testI18n())
	got, err := tr.ToLocalizedString("/about", "fr", WithoutLocalePrefix())
	require.NoError(t, err)
	assert.Equal(t, "/a-propos", got)
}

func TestToLocalized_RootValue(t *testing.T) {
	t.Parallel()

	root := routetree.NewBranch("", P{"en": "root"},
		routetree.NewLeaf("index", nil),
		routetree.NewLeaf("about", P{"fr": "a-propos"}),
	)
	tr := newTestTranslator(t, root, routetree.I18n{Locales: []string{"en", "fr"}, DefaultLocale: "en"})

	got, err := tr.ToLocalizedString("/about", "en")
	require.NoError(t, err)
	assert.Equal(t, "/root/about", got)

	got, err = tr.ToLocalizedString("/", "en")
	require.NoError(t, err)
	assert.Equal(t, "/root", got)

	got, err = tr.ToLocalizedString("/about", "fr")
	require.NoError(t, err)
	assert.Equal(t, "/fr/a-propos", got)
}

func TestToLocalized_Origin(t *testing.T) {
	t.Parallel()

	rec := &eventRecorder{}
	tr := newTestTranslator(t, communityTree(), testI18n(),
		WithOrigin("https://example.com"),
		WithDiagnostics(rec),
	)

	got, err := tr.ToLocalizedString("https://example.com/about?x=1", "fr")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/fr/a-propos?x=1", got)

	got, err = tr.ToLocalizedString("https://other.example/about", "fr")
	require.NoError(t, err)
	assert.Equal(t, "https://other.example/about", got)
	assert.Equal(t, []diag.Kind{diag.KindExternalAddress}, rec.kinds())
}

func TestToLocalized_Errors(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, communityTree(), testI18n())

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "unknown page", input: "/unknown", wantErr: routetree.ErrNoPageFound},
		{name: "too deep", input: "/about/more", wantErr: routetree.ErrNoPageFound},
		{name: "folder without index", input: "/news", wantErr: routetree.ErrNoIndex},
		{name: "missing parameter", input: "/community/[communityId]/[communitySlug]", wantErr: pattern.ErrMissingParam},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := tr.ToLocalizedString(tt.input, "fr")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := tr.ToLocalizedString("/news", "fr")
	assert.ErrorIs(t, err, routetree.ErrMalformedInput)
}

func TestHref(t *testing.T) {
	t.Parallel()

	rec := &eventRecorder{}
	tr := newTestTranslator(t, communityTree(), testI18n(), WithDiagnostics(rec))

	assert.Equal(t, "/fr/a-propos", tr.Href("/about", "fr"))
	assert.Equal(t, "/unknown?x=1", tr.Href("/unknown?x=1", "fr"))
	assert.Equal(t, []diag.Kind{diag.KindNoPageFound, diag.KindPassThrough}, rec.kinds())
}

func TestToLocalized_Concurrent(t *testing.T) {
	t.Parallel()

	tr := newTestTranslator(t, communityTree(), testI18n())

	var wg sync.WaitGroup
	results := make([]string, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = tr.ToLocalizedString("/community/1/one/statistics", "fr")
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, "/fr/communaute/1-one/statistiques", got)
	}
}
