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
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/pattern"
	"rivaas.dev/i18nroutes/routetree"
)

// noopLogger is a singleton no-op logger used when no logger is provided.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Translator converts addresses between their canonical file-route form and
// their localized public form. It is immutable after New and safe for
// concurrent use.
type Translator struct {
	root        *routetree.Branch
	i18n        routetree.I18n
	logger      *slog.Logger
	diagnostics diag.Handler
	originHost  string
	patterns    *pattern.Cache
}

// Option configures a Translator.
type Option func(*Translator)

// WithLogger sets the logger. Translations are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithDiagnostics sets the handler receiving diagnostic events.
func WithDiagnostics(h diag.Handler) Option {
	return func(t *Translator) {
		t.diagnostics = h
	}
}

// WithOrigin sets the site origin ("https://example.com" or
// "example.com"). Addresses with another host are external and pass
// through unchanged. Without an origin every address with a host is
// external.
func WithOrigin(origin string) Option {
	return func(t *Translator) {
		t.originHost = originHost(origin)
	}
}

// WithPatternCache shares a pattern cache, for instance with the
// synthesizer.
func WithPatternCache(c *pattern.Cache) Option {
	return func(t *Translator) {
		if c != nil {
			t.patterns = c
		}
	}
}

func originHost(origin string) string {
	if strings.Contains(origin, "://") {
		if u, err := url.Parse(origin); err == nil {
			return u.Host
		}
	}
	return strings.TrimSuffix(origin, "/")
}

// New creates a Translator for the tree rooted at root.
//
// Errors:
//   - ErrMalformedInput if root is nil, the tree violates its invariants or
//     the locale configuration is invalid
func New(root *routetree.Branch, i18n routetree.I18n, opts ...Option) (*Translator, error) {
	if root == nil {
		return nil, routetree.Malformed("new translator", "", errors.New("nil route tree"))
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	if err := i18n.Validate(); err != nil {
		return nil, err
	}

	t := &Translator{
		root:     root,
		i18n:     i18n,
		logger:   noopLogger,
		patterns: pattern.NewCache(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// MustNew is like New but panics on error.
func MustNew(root *routetree.Branch, i18n routetree.I18n, opts ...Option) *Translator {
	t, err := New(root, i18n, opts...)
	if err != nil {
		panic(err)
	}
	return t
}

// I18n returns the locale configuration.
func (t *Translator) I18n() routetree.I18n {
	return t.i18n
}

// Root returns the route tree.
func (t *Translator) Root() *routetree.Branch {
	return t.root
}

func (t *Translator) isExternal(a *Address) bool {
	return a.Host != "" && !strings.EqualFold(a.Host, t.originHost)
}

// localeValue resolves a segment value, "" when it is ignored in locale.
func (t *Translator) localeValue(paths routetree.Paths, locale string) string {
	v := t.i18n.Resolve(paths, locale)
	if routetree.IsIgnored(v) {
		return ""
	}
	return v
}

func (t *Translator) emit(kind diag.Kind, msg string, fields map[string]any) {
	diag.Emit(t.diagnostics, kind, msg, fields)
}

// RemoveLocalePrefix splits pathname into parts without the locale prefix
// and without the root value of the locale. It returns the remaining parts
// and the locale they are written in: locale when given, else the prefix
// locale, else the default locale.
func (t *Translator) RemoveLocalePrefix(pathname, locale string) ([]string, string) {
	parts := routetree.SplitPath(pathname)

	resolved := locale
	if len(parts) > 0 && ((locale != "" && parts[0] == locale) || (locale == "" && t.i18n.HasLocale(parts[0]))) {
		resolved = parts[0]
		parts = parts[1:]
	} else if resolved == "" {
		resolved = t.i18n.DefaultLocale
	}

	if rootValue := t.localeValue(t.root.Paths, resolved); rootValue != "" {
		rootParts := routetree.SplitPath(rootValue)
		if hasPrefix(parts, rootParts) {
			parts = parts[len(rootParts):]
		}
	}
	return parts, resolved
}

func hasPrefix(parts, prefix []string) bool {
	if len(prefix) == 0 || len(parts) < len(prefix) {
		return false
	}
	for i := range prefix {
		if parts[i] != prefix[i] {
			return false
		}
	}
	return true
}
