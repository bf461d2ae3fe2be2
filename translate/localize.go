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
	"net/url"
	"strings"

	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/pattern"
	"rivaas.dev/i18nroutes/routetree"
)

// TranslateOption configures a single forward translation.
type TranslateOption func(*translateConfig)

type translateConfig struct {
	withoutLocalePrefix bool
}

// WithoutLocalePrefix omits the "/locale" prefix of non-default locales.
func WithoutLocalePrefix() TranslateOption {
	return func(c *translateConfig) {
		c.withoutLocalePrefix = true
	}
}

// ToLocalized translates a canonical address into its public form in
// locale. The address is either a file route whose parameters are in the
// query ("/news/[...parts]?parts=a&parts=b") or a concrete canonical path
// ("/news/a/b"). Parameters consumed by the localized path are removed from
// the query. External addresses are returned unchanged.
//
// Errors:
//   - ErrNoPageFound if no page matches the path
//   - ErrMalformedInput if a folder addressed exactly has no index page or
//     a required parameter is missing
func (t *Translator) ToLocalized(addr *Address, locale string, opts ...TranslateOption) (*Address, error) {
	cfg := translateConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if t.isExternal(addr) {
		t.emit(diag.KindExternalAddress, "external address left untranslated", map[string]any{"host": addr.Host})
		return addr.Clone(), nil
	}
	if locale == "" {
		locale = t.i18n.DefaultLocale
	}

	src, values, err := t.localizedPattern(t.root, addr.PathParts(), locale)
	if err != nil {
		if errors.Is(err, routetree.ErrNoPageFound) {
			t.emit(diag.KindNoPageFound, "no page found", map[string]any{"path": addr.Pathname, "locale": locale})
		}
		return nil, err
	}

	p, err := t.patterns.Get(src)
	if err != nil {
		return nil, routetree.Malformed("localize", src, err)
	}

	query := cloneValues(addr.Query)
	for k, v := range values {
		query[k] = v
	}
	path, err := p.Compile(query, pattern.WithEncoder(url.PathEscape))
	if err != nil {
		return nil, routetree.Malformed("localize", addr.Pathname, err)
	}
	for _, name := range p.KeyNames() {
		delete(query, name)
	}

	path = strings.TrimSuffix(path, "/")
	if !cfg.withoutLocalePrefix {
		path = t.i18n.LocalePrefix(locale) + path
	}
	if path == "" {
		path = "/"
	}

	t.logger.Debug("localized address", "from", addr.Pathname, "to", path, "locale", locale)

	return &Address{
		Scheme:   addr.Scheme,
		Host:     addr.Host,
		Pathname: path,
		Query:    query,
		Hash:     addr.Hash,
	}, nil
}

// ToLocalizedString is ToLocalized for formatted addresses.
func (t *Translator) ToLocalizedString(raw, locale string, opts ...TranslateOption) (string, error) {
	addr, err := ParseAddress(raw)
	if err != nil {
		return "", err
	}
	if t.isExternal(addr) {
		t.emit(diag.KindExternalAddress, "external address left untranslated", map[string]any{"host": addr.Host})
		return raw, nil
	}
	out, err := t.ToLocalized(addr, locale, opts...)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// Href translates a link target for navigation components. Targets that do
// not resolve to a page are returned unchanged.
func (t *Translator) Href(raw, locale string, opts ...TranslateOption) string {
	out, err := t.ToLocalizedString(raw, locale, opts...)
	if err != nil {
		t.emit(diag.KindPassThrough, "link target left untranslated", map[string]any{"href": raw, "error": err.Error()})
		return raw
	}
	return out
}

// forwardCandidate is a child able to consume the next path part.
type forwardCandidate struct {
	branch  *routetree.Branch
	rest    []string // parts left for the child
	capture []string // values captured by a dynamic child, nil for exact matches
}

// forwardCandidates lists the children of b able to consume next, by
// priority: exact name, single dynamic capture, then catch-all. A part
// written in file-route syntax only matches by name.
func forwardCandidates(b *routetree.Branch, next string, rest []string) []forwardCandidate {
	// A leaf only fits when nothing is left, except a catch-all which
	// consumes every remaining part.
	fits := func(c *routetree.Branch) bool {
		return len(rest) == 0 || !c.IsLeaf()
	}

	var exact, dynamic, spread []forwardCandidate
	fileSyntax := routetree.IsFileRouteSegment(next)
	for _, c := range b.Children {
		switch {
		case c.Name == next:
			if fits(c) {
				exact = append(exact, forwardCandidate{branch: c, rest: rest})
			}
		case fileSyntax:
			// matched by name only
		case c.Kind == routetree.KindDynamic:
			if fits(c) {
				dynamic = append(dynamic, forwardCandidate{branch: c, rest: rest, capture: []string{next}})
			}
		case c.Kind.Spread():
			all := make([]string, 0, len(rest)+1)
			all = append(all, next)
			all = append(all, rest...)
			spread = append(spread, forwardCandidate{branch: c, capture: all})
		}
	}

	out := make([]forwardCandidate, 0, len(exact)+len(dynamic)+len(spread))
	out = append(out, exact...)
	out = append(out, dynamic...)
	return append(out, spread...)
}

// localizedPattern builds the localized pattern of the path parts below b
// and collects the values captured along the way. Candidates are tried in
// priority order; the first one leading to a page wins.
func (t *Translator) localizedPattern(b *routetree.Branch, parts []string, locale string) (string, url.Values, error) {
	last := len(parts) == 0
	current, err := t.patternPart(b, locale, last)
	if err != nil {
		return "", nil, err
	}
	if last {
		return current, url.Values{}, nil
	}

	var firstErr error
	for _, c := range forwardCandidates(b, parts[0], parts[1:]) {
		next, values, err := t.localizedPattern(c.branch, c.rest, locale)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if c.capture != nil {
			if _, ok := values[c.branch.Param]; !ok {
				values[c.branch.Param] = c.capture
			}
		}
		return current + next, values, nil
	}
	if firstErr != nil {
		return "", nil, firstErr
	}
	return "", nil, routetree.NotFound("localize", routetree.JoinPath(parts...))
}

// patternPart returns the localized pattern contributed by b. When b is the
// last addressed segment of a folder, the folder's index or optional
// catch-all page contributes its own value too.
func (t *Translator) patternPart(b *routetree.Branch, locale string, last bool) (string, error) {
	value := t.localeValue(b.Paths, locale)
	if last {
		if !b.IsLeaf() {
			child, ok := b.TerminalChild()
			if !ok {
				return "", routetree.Malformed("localize", displayName(b), routetree.ErrNoIndex)
			}
			if cv := t.localeValue(child.Paths, locale); cv != "" && cv != routetree.IndexName {
				value += withSlash(cv)
			}
		} else if value == routetree.IndexName && b.IsIndex() {
			value = ""
		}
	}
	return withSlash(value), nil
}

func withSlash(s string) string {
	if s == "" || strings.HasPrefix(s, "/") {
		return s
	}
	return "/" + s
}

func displayName(b *routetree.Branch) string {
	if b.Name == "" {
		return "/"
	}
	return b.Name
}
