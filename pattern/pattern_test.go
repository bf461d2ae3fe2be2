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

package pattern

import (
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Keys(t *testing.T) {
	t.Parallel()

	p, err := Parse("/:id-:slug")
	require.NoError(t, err)

	keys := p.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, Key{Name: "id", Prefix: "/", Pattern: DefaultKeyPattern}, *keys[0])
	assert.Equal(t, Key{Name: "slug", Pattern: DefaultKeyPattern}, *keys[1])
	assert.Equal(t, []string{"id", "slug"}, p.KeyNames())
	assert.True(t, p.HasNamedParam())
	assert.False(t, p.HasRepeat())
	assert.Equal(t, "/:id-:slug", p.String())
}

func TestParse_Kinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		wantStatic bool
		wantNamed  bool
		wantRepeat bool
	}{
		{name: "static", src: "about", wantStatic: true},
		{name: "static with dash", src: "a-propos", wantStatic: true},
		{name: "escaped colon", src: `a\:b`, wantStatic: true},
		{name: "named", src: ":slug", wantNamed: true},
		{name: "catch-all", src: ":parts+", wantNamed: true, wantRepeat: true},
		{name: "optional catch-all", src: ":parts*", wantNamed: true, wantRepeat: true},
		{name: "unnamed alternation", src: "(a|b)"},
		{name: "custom pattern", src: `:id(\d+)`, wantNamed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := Parse(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatic, p.IsStatic())
			assert.Equal(t, tt.wantNamed, p.HasNamedParam())
			assert.Equal(t, tt.wantRepeat, p.HasRepeat())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "missing name", src: "/:"},
		{name: "unbalanced group", src: "/(abc"},
		{name: "empty group", src: "/()"},
		{name: "group starting with ?", src: "/(?:a)"},
		{name: "capturing group inside pattern", src: "/(a(b))"},
		{name: "unclosed brace", src: "/{:id"},
		{name: "dangling modifier", src: "/a*"},
		{name: "trailing escape", src: `/a\`},
		{name: "invalid regex", src: `/:id([)`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestPattern_Compile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		src    string
		params url.Values
		want   string
	}{
		{
			name:   "merged parameters",
			src:    "/communaute/:communityId-:communitySlug/statistiques",
			params: url.Values{"communityId": {"300"}, "communitySlug": {"three-hundred"}, "baz": {"3"}},
			want:   "/communaute/300-three-hundred/statistiques",
		},
		{
			name:   "catch-all",
			src:    "/actualites/:parts+",
			params: url.Values{"parts": {"a", "b"}},
			want:   "/actualites/a/b",
		},
		{
			name:   "empty optional catch-all",
			src:    "/communautes/:tagSlug*",
			params: url.Values{"tagSlug": {}},
			want:   "/communautes",
		},
		{
			name:   "absent optional catch-all",
			src:    "/communautes/:tagSlug*",
			params: url.Values{},
			want:   "/communautes",
		},
		{
			name:   "optional parameter",
			src:    "/post/:slug?",
			params: nil,
			want:   "/post",
		},
		{
			name:   "group with suffix",
			src:    "/post{-:slug}?",
			params: url.Values{"slug": {"hello"}},
			want:   "/post-hello",
		},
		{
			name:   "escaped character",
			src:    `/a\:b/:c`,
			params: url.Values{"c": {"d"}},
			want:   "/a:b/d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := MustParse(tt.src).Compile(tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPattern_CompileErrors(t *testing.T) {
	t.Parallel()

	_, err := MustParse("/:id").Compile(url.Values{})
	require.ErrorIs(t, err, ErrMissingParam)

	_, err = MustParse("/:parts+").Compile(url.Values{"parts": {}})
	require.ErrorIs(t, err, ErrMissingParam)

	_, err = MustParse("/:id").Compile(url.Values{"id": {"1", "2"}})
	require.ErrorIs(t, err, ErrParamRepeat)

	_, err = MustParse(`/:id(\d+)`).Compile(url.Values{"id": {"abc"}}, WithValidation())
	require.ErrorIs(t, err, ErrInvalidParam)

	got, err := MustParse(`/:id(\d+)`).Compile(url.Values{"id": {"abc"}})
	require.NoError(t, err)
	assert.Equal(t, "/abc", got)
}

func TestPattern_CompileEncoder(t *testing.T) {
	t.Parallel()

	got, err := MustParse("/search/:q").Compile(url.Values{"q": {"a b"}}, WithEncoder(url.PathEscape))
	require.NoError(t, err)
	assert.Equal(t, "/search/a%20b", got)
}

func TestPattern_Match(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		src       string
		candidate string
		want      url.Values
		wantOK    bool
	}{
		{
			name:      "merged parameters",
			src:       ":communityId-:communitySlug",
			candidate: "300-three-hundred",
			want:      url.Values{"communityId": {"300"}, "communitySlug": {"three-hundred"}},
			wantOK:    true,
		},
		{
			name:      "catch-all",
			src:       "/:parts+",
			candidate: "/a/b/c",
			want:      url.Values{"parts": {"a", "b", "c"}},
			wantOK:    true,
		},
		{
			name:      "optional catch-all binds empty list",
			src:       "/communautes/:tagSlug*",
			candidate: "/communautes",
			want:      url.Values{"tagSlug": {}},
			wantOK:    true,
		},
		{
			name:      "case insensitive",
			src:       "/fr/(communaute|community)",
			candidate: "/FR/Community",
			want:      url.Values{"0": {"Community"}},
			wantOK:    true,
		},
		{
			name:      "trailing slash",
			src:       "/about",
			candidate: "/about/",
			want:      url.Values{},
			wantOK:    true,
		},
		{
			name:      "custom pattern rejects",
			src:       `/:id(\d+)`,
			candidate: "/abc",
			wantOK:    false,
		},
		{
			name:      "default pattern stops at slash",
			src:       "/:slug",
			candidate: "/a/b",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := MustParse(tt.src).Match(tt.candidate)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestPattern_RoundTrip(t *testing.T) {
	t.Parallel()

	p := MustParse("/communaute/:id-:slug/statistiques/:rest*")
	params := url.Values{"id": {"42"}, "slug": {"answer"}, "rest": {"x", "y"}}

	path, err := p.Compile(params)
	require.NoError(t, err)
	got, ok := p.Match(path)
	require.True(t, ok)
	assert.Equal(t, params, got)
}

func TestStripCaptureSyntax(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/fr/:communityId/:slug", StripCaptureSyntax(`/fr/:communityId(\d+)/{:slug}`))
	assert.Equal(t, "/about", StripCaptureSyntax("/about"))
	assert.Equal(t, "/(a|b)", StripCaptureSyntax("/(a|b)"))
}

func TestCache(t *testing.T) {
	t.Parallel()

	c := NewCache()
	first, err := c.Get("/:id")
	require.NoError(t, err)
	second, err := c.Get("/:id")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = c.Get("/:")
	require.ErrorIs(t, err, ErrSyntax)
	assert.Equal(t, 2, c.Len())

	var nilCache *Cache
	p, err := nilCache.Get("/:id")
	require.NoError(t, err)
	assert.Equal(t, "/:id", p.String())
}

func TestCache_Concurrent(t *testing.T) {
	t.Parallel()

	c := NewCache()
	var wg sync.WaitGroup
	results := make([]*Pattern, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = c.Get("/:slug")
		}(i)
	}
	wg.Wait()

	for _, p := range results {
		assert.Same(t, results[0], p)
	}
}
