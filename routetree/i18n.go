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
	"errors"
	"fmt"
	"slices"

	"golang.org/x/text/language"
)

// Domain binds a host to its default locale.
type Domain struct {
	Domain        string   `json:"domain"`
	DefaultLocale string   `json:"defaultLocale"`
	Locales       []string `json:"locales,omitempty"`
}

// I18n is the locale configuration the tree is translated with.
//
// Fallback maps a locale to the ordered locales consulted when a segment has
// no value for it. The DefaultKey entry, when present, applies to every
// locale without an entry of its own.
type I18n struct {
	Locales       []string            `json:"locales"`
	DefaultLocale string              `json:"defaultLocale"`
	Fallback      map[string][]string `json:"fallbackLng,omitempty"`
	Domains       []Domain            `json:"domains,omitempty"`
}

// Resolve returns the value of paths in locale: the locale's own value, else
// the first value found along the locale's fallback chain, else the default
// value. Empty values count as missing.
func (c I18n) Resolve(paths Paths, locale string) string {
	if v := paths[locale]; v != "" {
		return v
	}
	for _, fb := range c.FallbackChain(locale) {
		if v := paths[fb]; v != "" {
			return v
		}
	}
	return paths[DefaultKey]
}

// FallbackChain returns the locales consulted after locale itself.
func (c I18n) FallbackChain(locale string) []string {
	if c.Fallback == nil {
		return nil
	}
	if chain, ok := c.Fallback[locale]; ok {
		return chain
	}
	return c.Fallback[DefaultKey]
}

// IsDefault reports whether locale is served without a locale prefix: the
// default locale or the default locale of one of the domains.
func (c I18n) IsDefault(locale string) bool {
	if locale == c.DefaultLocale {
		return true
	}
	for _, d := range c.Domains {
		if d.DefaultLocale == locale {
			return true
		}
	}
	return false
}

// HasLocale reports whether locale is one of the configured locales.
func (c I18n) HasLocale(locale string) bool {
	return slices.Contains(c.Locales, locale)
}

// LocalePrefix returns "/locale" for non-default locales and "" otherwise.
func (c I18n) LocalePrefix(locale string) string {
	if c.IsDefault(locale) {
		return ""
	}
	return "/" + locale
}

// Validate checks that the configuration is usable: at least one locale,
// every locale a well-formed BCP 47 tag, and the default locale among them.
func (c I18n) Validate() error {
	if len(c.Locales) == 0 {
		return Malformed("i18n", "locales", errors.New("no locale configured"))
	}
	for _, l := range c.Locales {
		if _, err := language.Parse(l); err != nil {
			return Malformed("i18n", l, fmt.Errorf("invalid locale: %w", err))
		}
	}
	if !c.HasLocale(c.DefaultLocale) {
		return Malformed("i18n", c.DefaultLocale, errors.New("default locale is not among the locales"))
	}
	for _, d := range c.Domains {
		if !c.HasLocale(d.DefaultLocale) {
			return Malformed("i18n", d.Domain, fmt.Errorf("domain default locale %q is not among the locales", d.DefaultLocale))
		}
	}
	return nil
}
