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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestI18n_Resolve(t *testing.T) {
	t.Parallel()

	i18n := I18n{
		Locales:       []string{"en", "fr", "fr-FR", "pt", "es"},
		DefaultLocale: "en",
		Fallback: map[string][]string{
			"fr-FR": {"fr"},
			"pt":    {"es", "fr"},
		},
	}

	tests := []struct {
		name   string
		paths  Paths
		locale string
		want   string
	}{
		{name: "explicit value", paths: Paths{"default": "here", "fr": "ici"}, locale: "fr", want: "ici"},
		{name: "fallback chain", paths: Paths{"default": "here", "fr": "ici"}, locale: "fr-FR", want: "ici"},
		{name: "fallback chain order", paths: Paths{"default": "here", "fr": "ici", "es": "aqui"}, locale: "pt", want: "aqui"},
		{name: "fallback to default", paths: Paths{"default": "here"}, locale: "fr-FR", want: "here"},
		{name: "no fallback entry", paths: Paths{"default": "here", "fr": "ici"}, locale: "es", want: "here"},
		{name: "default pseudo-locale", paths: Paths{"default": "here", "fr": "ici"}, locale: "default", want: "here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, i18n.Resolve(tt.paths, tt.locale))
		})
	}
}

func TestI18n_FallbackForAllLocales(t *testing.T) {
	t.Parallel()

	i18n := I18n{
		Locales:       []string{"en", "fr", "es"},
		DefaultLocale: "en",
		Fallback:      map[string][]string{"default": {"fr"}},
	}
	assert.Equal(t, "ici", i18n.Resolve(Paths{"default": "here", "fr": "ici"}, "es"))
}

func TestI18n_IsDefault(t *testing.T) {
	t.Parallel()

	i18n := I18n{
		Locales:       []string{"en", "fr", "nl"},
		DefaultLocale: "en",
		Domains:       []Domain{{Domain: "example.nl", DefaultLocale: "nl"}},
	}
	assert.True(t, i18n.IsDefault("en"))
	assert.True(t, i18n.IsDefault("nl"))
	assert.False(t, i18n.IsDefault("fr"))
	assert.Empty(t, i18n.LocalePrefix("en"))
	assert.Equal(t, "/fr", i18n.LocalePrefix("fr"))
}

func TestI18n_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, I18n{Locales: []string{"en", "fr-BE"}, DefaultLocale: "en"}.Validate())

	err := I18n{}.Validate()
	assert.ErrorIs(t, err, ErrMalformedInput)

	err = I18n{Locales: []string{"en"}, DefaultLocale: "fr"}.Validate()
	assert.ErrorIs(t, err, ErrMalformedInput)

	err = I18n{Locales: []string{"en", "not a locale!"}, DefaultLocale: "en"}.Validate()
	assert.ErrorIs(t, err, ErrMalformedInput)
}
