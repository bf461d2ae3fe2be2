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

package reroute

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/pattern"
	"rivaas.dev/i18nroutes/routetree"
)

// noopLogger is a singleton no-op logger used when no logger is provided.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option configures Build.
type Option func(*builder)

// WithLogger sets the logger. The sorted rules are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithDiagnostics sets the handler receiving synthesis decisions such as
// rejected merges and dropped rules.
func WithDiagnostics(h diag.Handler) Option {
	return func(b *builder) {
		b.diagnostics = h
	}
}

// WithPatternCache shares a pattern cache with a translator.
func WithPatternCache(c *pattern.Cache) Option {
	return func(b *builder) {
		if c != nil {
			b.patterns = c
		}
	}
}

type builder struct {
	i18n        routetree.I18n
	logger      *slog.Logger
	diagnostics diag.Handler
	patterns    *pattern.Cache
}

// sourceGroup is a localized path shared by one or more locales.
type sourceGroup struct {
	path    string
	locales []string
}

// Build synthesizes the redirects and rewrites of every page of the tree
// rooted at root.
//
// Errors:
//   - ErrMalformedInput if root is nil, the tree violates its invariants,
//     the locale configuration is invalid or a path value is not a valid
//     pattern
func Build(root *routetree.Branch, i18n routetree.I18n, opts ...Option) (*ReRoutes, error) {
	if root == nil {
		return nil, routetree.Malformed("build reroutes", "", errors.New("nil route tree"))
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	if err := i18n.Validate(); err != nil {
		return nil, err
	}

	b := &builder{
		i18n:     i18n,
		logger:   noopLogger,
		patterns: pattern.NewCache(),
	}
	for _, opt := range opts {
		opt(b)
	}

	out := &ReRoutes{Redirects: []Redirect{}, Rewrites: []Rewrite{}}
	for _, page := range root.Pages() {
		redirects, rewrites, err := b.page(page)
		if err != nil {
			return nil, err
		}
		out.Redirects = append(out.Redirects, redirects...)
		out.Rewrites = append(out.Rewrites, rewrites...)
	}

	SortRedirects(out.Redirects)
	SortRewrites(out.Rewrites)

	for _, r := range out.Redirects {
		b.logger.Debug("redirect", "source", r.Source, "destination", r.Destination)
	}
	for _, r := range out.Rewrites {
		b.logger.Debug("rewrite", "source", r.Source, "destination", r.Destination)
	}
	b.logger.Debug("reroutes built", "redirects", len(out.Redirects), "rewrites", len(out.Rewrites))
	return out, nil
}

func (b *builder) emit(kind diag.Kind, msg string, fields map[string]any) {
	diag.Emit(b.diagnostics, kind, msg, fields)
}

func (b *builder) page(p routetree.Page) ([]Redirect, []Rewrite, error) {
	route := p.FileRoute()
	if !slices.ContainsFunc(p.Segments, func(s routetree.Segment) bool { return s.Paths.HasOverrides() }) {
		b.emit(diag.KindPageSkipped, "page has no translation", map[string]any{"page": route})
		return nil, nil, nil
	}

	basePath := b.basePath(p)
	paths := make(map[string]string, len(b.i18n.Locales))
	for _, locale := range b.i18n.Locales {
		paths[locale] = b.localePath(p, locale)
	}
	if _, err := b.patterns.Get(basePath); err != nil {
		return nil, nil, routetree.Malformed("build reroutes", route, err)
	}
	for _, locale := range b.i18n.Locales {
		if _, err := b.patterns.Get(paths[locale]); err != nil {
			return nil, nil, routetree.Malformed("build reroutes", paths[locale], err)
		}
	}

	groups := b.sourceList(paths, basePath)
	return b.redirects(route, paths, basePath, groups), b.rewrites(route, basePath, groups), nil
}

// localePath is the path of p in locale, ignored and empty values left
// out.
func (b *builder) localePath(p routetree.Page, locale string) string {
	parts := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		v := b.i18n.Resolve(s.Paths, locale)
		if v == "" || routetree.IsIgnored(v) {
			continue
		}
		parts = append(parts, v)
	}
	return "/" + strings.Join(parts, "/")
}

// basePath is the file route of p in pattern syntax. The regex attached to
// a default ignore token constrains the parameter it follows.
func (b *builder) basePath(p routetree.Page) string {
	parts := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		v := routetree.FileNameToPath(s.Name) + routetree.IgnorePattern(s.Paths.Default())
		if v != "" {
			parts = append(parts, v)
		}
	}
	return "/" + strings.Join(parts, "/")
}

// sourceList groups the locales by localized path, leaving out the
// locales whose path is the base path. A group moves to the end each time
// a locale joins it.
func (b *builder) sourceList(paths map[string]string, basePath string) []sourceGroup {
	var groups []sourceGroup
	for _, locale := range b.i18n.Locales {
		path := paths[locale]
		if path == basePath {
			continue
		}
		g := sourceGroup{path: path}
		if i := slices.IndexFunc(groups, func(g sourceGroup) bool { return g.path == path }); i >= 0 {
			g = groups[i]
			groups = slices.Delete(groups, i, i+1)
		}
		g.locales = append(slices.Clone(g.locales), locale)
		groups = append(groups, g)
	}
	return groups
}

// destination is the address a redirect to path in locale lands on.
func (b *builder) destination(locale, path string) string {
	prefix := b.i18n.LocalePrefix(locale)
	stripped := pattern.StripCaptureSyntax(path)
	if prefix != "" && stripped == "/" {
		return prefix
	}
	return prefix + stripped
}

func localeSource(locale, path string) string {
	if path == "/" {
		return "/" + locale
	}
	return "/" + locale + path
}

func (b *builder) redirects(route string, paths map[string]string, basePath string, groups []sourceGroup) []Redirect {
	var out []Redirect
	for _, locale := range b.i18n.Locales {
		localePath := paths[locale]
		destination := b.destination(locale, localePath)

		var candidates []string
		for _, g := range groups {
			if !slices.Contains(g.locales, locale) {
				candidates = append(candidates, g.path)
			}
		}
		if localePath != basePath {
			candidates = append(candidates, basePath)
		}

		var rules []rule
		for _, raw := range candidates {
			src := parseSource(localeSource(locale, raw))
			if i := similarIndex(src, rules); i >= 0 {
				merged := rules[i].source.merge(src)
				if !b.matches(merged.String(), destination) {
					rules[i].source = merged
					continue
				}
				b.emit(diag.KindRedirectLoopRejected, "merge would redirect to itself", map[string]any{
					"page":        route,
					"source":      merged.String(),
					"destination": destination,
				})
			}
			rules = append(rules, rule{source: src, destination: destination})
		}

		for _, r := range rules {
			source := r.source.String()
			if pattern.StripCaptureSyntax(source) == r.destination {
				b.emit(diag.KindRuleDropped, "redirect to itself dropped", map[string]any{
					"page":   route,
					"source": source,
				})
				continue
			}
			if b.matches(source, r.destination) {
				b.emit(diag.KindRedirectLoopRejected, "redirect would match its destination", map[string]any{
					"page":        route,
					"source":      source,
					"destination": r.destination,
				})
				continue
			}
			out = append(out, Redirect{Source: source, Destination: r.destination})
		}
	}
	return out
}

// matches reports whether the rule source matches address. An invalid
// source counts as a match so that the merge producing it is rejected.
func (b *builder) matches(source, address string) bool {
	p, err := b.patterns.Get(source)
	if err != nil {
		return true
	}
	return p.MatchString(address)
}

func (b *builder) rewrites(route, basePath string, groups []sourceGroup) []Rewrite {
	destination := pattern.StripCaptureSyntax(basePath)

	var rules []rule
	for _, g := range groups {
		if pattern.StripCaptureSyntax(g.path) == destination {
			b.emit(diag.KindRuleDropped, "rewrite to itself dropped", map[string]any{
				"page":   route,
				"source": g.path,
			})
			continue
		}
		src := parseSource(g.path)
		if i := similarIndex(src, rules); i >= 0 {
			rules[i].source = rules[i].source.merge(src)
			continue
		}
		rules = append(rules, rule{source: src, destination: destination})
	}

	out := make([]Rewrite, 0, len(rules))
	for _, r := range rules {
		out = append(out, Rewrite{Source: r.source.String(), Destination: r.destination})
	}
	return out
}
