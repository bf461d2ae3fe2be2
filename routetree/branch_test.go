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

package routetree

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() *Branch {
	return NewBranch("", Paths{"default": "", "en": "root"},
		NewLeaf("index", nil),
		NewBranch("community", Paths{"fr": "communaute"},
			NewLeaf("index", nil),
			NewLeaf("[slug]", nil),
		),
		NewBranch("news", Paths{"fr": "actualites"},
			NewLeaf("[...parts]", nil),
		),
		NewLeaf("about", Paths{"fr": "a-propos"}),
	)
}

func TestBranch_Validate(t *testing.T) {
	t.Parallel()

	t.Run("valid tree", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, sampleTree().Validate())
	})

	t.Run("two catch-all children", func(t *testing.T) {
		t.Parallel()
		root := NewBranch("", nil,
			NewLeaf("[...a]", nil),
			NewLeaf("[[...b]]", nil),
		)
		err := root.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedInput)
		assert.ErrorIs(t, err, ErrMultipleCatchAll)
	})

	t.Run("missing default value", func(t *testing.T) {
		t.Parallel()
		leaf := &Branch{Segment: Segment{Name: "about", Paths: Paths{"fr": "a-propos"}}}
		root := NewBranch("", nil, leaf)
		err := root.Validate()
		assert.ErrorIs(t, err, ErrMissingDefaultPath)

		var rtErr *Error
		require.True(t, errors.As(err, &rtErr))
		assert.Equal(t, "/about", rtErr.Path)
	})
}

func TestBranch_TerminalChild(t *testing.T) {
	t.Parallel()

	root := sampleTree()
	community, ok := root.Child("community")
	require.True(t, ok)
	idx, ok := community.TerminalChild()
	require.True(t, ok)
	assert.Equal(t, "index", idx.Name)

	news, ok := root.Child("news")
	require.True(t, ok)
	_, ok = news.TerminalChild()
	assert.False(t, ok)

	optional := NewBranch("tags", nil, NewLeaf("[[...tag]]", nil))
	child, ok := optional.TerminalChild()
	require.True(t, ok)
	assert.Equal(t, KindOptionalCatchAll, child.Kind)
}

func TestBranch_Pages(t *testing.T) {
	t.Parallel()

	pages := sampleTree().Pages()
	routes := make([]string, 0, len(pages))
	for _, p := range pages {
		routes = append(routes, p.FileRoute())
	}

	assert.Equal(t, []string{
		"/",
		"/community",
		"/community/[slug]",
		"/news/[...parts]",
		"/about",
	}, routes)

	// The root segment starts every chain.
	for _, p := range pages {
		assert.Empty(t, p.Segments[0].Name)
	}
}

func TestBranch_String(t *testing.T) {
	t.Parallel()

	out := sampleTree().String()
	assert.True(t, strings.HasPrefix(out, "/ {default: en:root}\n"))
	assert.Contains(t, out, "  community {default:community fr:communaute}\n")
}

func TestSnapshot_RoundTrip(t *testing.T) {
	t.Parallel()

	i18n := I18n{
		Locales:       []string{"en", "fr", "fr-BE"},
		DefaultLocale: "en",
		Fallback:      map[string][]string{"fr-BE": {"fr"}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSnapshot(&buf, sampleTree(), i18n))

	snap, err := ReadSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, i18n, snap.I18n)
	assert.Equal(t, sampleTree().String(), snap.Tree.String())

	news, ok := snap.Tree.Child("news")
	require.True(t, ok)
	assert.Equal(t, KindCatchAll, news.Children[0].Kind)
	assert.Equal(t, "parts", news.Children[0].Param)
}

func TestReadSnapshot_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "{"},
		{name: "missing tree", input: `{"i18n":{"locales":["en"],"defaultLocale":"en"}}`},
		{name: "missing default path", input: `{"i18n":{"locales":["en"],"defaultLocale":"en"},"tree":{"name":"","paths":{"en":""}}}`},
		{name: "non-string path", input: `{"i18n":{"locales":["en"],"defaultLocale":"en"},"tree":{"name":"","paths":{"default":1}}}`},
		{name: "unknown default locale", input: `{"i18n":{"locales":["en"],"defaultLocale":"fr"},"tree":{"name":"","paths":{"default":""}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadSnapshot(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedInput)
		})
	}
}
