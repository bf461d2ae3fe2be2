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
	"strings"

	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/routetree"
)

// matchKind is the kind of the first match of a parsed path.
type matchKind uint8

const (
	matchStatic matchKind = iota
	matchDynamic
	matchAll
	matchKinds
)

type canonicalMatch struct {
	names  []string
	params url.Values
	first  matchKind
}

func (m *canonicalMatch) under(name string) *canonicalMatch {
	names := make([]string, 0, len(m.names)+1)
	names = append(names, name)
	m.names = append(names, m.names...)
	return m
}

// ToCanonical translates a localized address written in locale back into
// its canonical file route. Recovered parameters are merged into the
// query. When locale is empty it is taken from the locale prefix, else the
// default locale is assumed. Addresses already written as file routes and
// external addresses are returned unchanged.
//
// Errors:
//   - ErrNoPageFound if the path does not resolve to a page
func (t *Translator) ToCanonical(addr *Address, locale string) (*Address, error) {
	if t.isExternal(addr) {
		t.emit(diag.KindExternalAddress, "external address left untranslated", map[string]any{"host": addr.Host})
		return addr.Clone(), nil
	}
	if routetree.HasFileRouteSyntax(addr.Pathname) {
		return addr.Clone(), nil
	}

	rawParts, resolved := t.RemoveLocalePrefix(addr.Pathname, locale)
	m, ok := t.parseParts(t.root, unescapeParts(rawParts), resolved)
	if !ok {
		t.emit(diag.KindNoPageFound, "no page found", map[string]any{"path": addr.Pathname, "locale": resolved})
		return nil, routetree.NotFound("canonicalize", addr.Pathname)
	}

	query := cloneValues(addr.Query)
	for k, v := range m.params {
		query[k] = v
	}
	out := &Address{
		Scheme:   addr.Scheme,
		Host:     addr.Host,
		Pathname: routetree.JoinPath(m.names...),
		Query:    query,
		Hash:     addr.Hash,
	}
	t.logger.Debug("canonical address", "from", addr.Pathname, "to", out.Pathname, "locale", resolved)
	return out, nil
}

// ToCanonicalString is ToCanonical for formatted addresses.
func (t *Translator) ToCanonicalString(raw, locale string) (string, error) {
	addr, err := ParseAddress(raw)
	if err != nil {
		return "", err
	}
	out, err := t.ToCanonical(addr, locale)
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// parseParts resolves localized path parts below b. At each level the
// children are tried in this order:
//
//  1. static value equal to the part
//  2. static match among the descendants of an ignored child
//  3. single dynamic value matching the part
//  4. dynamic match among the descendants of an ignored child
//  5. catch-all value consuming every remaining part
//  6. catch-all match among the descendants of an ignored child
func (t *Translator) parseParts(b *routetree.Branch, parts []string, locale string) (*canonicalMatch, bool) {
	if len(parts) == 0 {
		if b.IsLeaf() {
			return &canonicalMatch{params: url.Values{}, first: matchStatic}, true
		}
		return t.endParts(b, locale)
	}

	part, rest := parts[0], parts[1:]
	if part == "" {
		return t.parseParts(b, rest, locale)
	}
	if b.IsLeaf() {
		return nil, false
	}

	var (
		ignored  []*routetree.Branch
		dynamic  []*routetree.Branch
		catchAll *routetree.Branch
	)
	for _, c := range b.Children {
		value := t.i18n.Resolve(c.Paths, locale)
		if value == part {
			if m, ok := t.parseParts(c, rest, locale); ok {
				m.first = matchStatic
				return m.under(c.Name), true
			}
		}
		if routetree.IsIgnored(value) {
			ignored = append(ignored, c)
			continue
		}
		p, err := t.patterns.Get(value)
		if err != nil || !p.HasNamedParam() {
			continue
		}
		if p.HasRepeat() {
			catchAll = c
		} else {
			dynamic = append(dynamic, c)
		}
	}

	var viaIgnored [matchKinds]*canonicalMatch
	for _, c := range ignored {
		m, ok := t.parseParts(c, parts, locale)
		if !ok {
			continue
		}
		m.under(c.Name)
		if m.first == matchStatic {
			return m, true
		}
		if viaIgnored[m.first] == nil {
			viaIgnored[m.first] = m
		}
	}

	for _, c := range dynamic {
		p, _ := t.patterns.Get(t.i18n.Resolve(c.Paths, locale))
		params, ok := p.Match(part)
		if !ok {
			continue
		}
		m, ok := t.parseParts(c, rest, locale)
		if !ok {
			continue
		}
		for k, v := range params {
			m.params[k] = v
		}
		m.first = matchDynamic
		return m.under(c.Name), true
	}

	if m := viaIgnored[matchDynamic]; m != nil {
		return m, true
	}

	if catchAll != nil {
		p, err := t.patterns.Get(withSlash(t.i18n.Resolve(catchAll.Paths, locale)))
		if err == nil {
			if params, ok := p.Match("/" + strings.Join(parts, "/")); ok {
				return &canonicalMatch{names: []string{catchAll.Name}, params: params, first: matchAll}, true
			}
		}
	}

	if m := viaIgnored[matchAll]; m != nil {
		return m, true
	}
	return nil, false
}

// endParts resolves a folder addressed exactly: its index page, a page
// reached through an ignored child, or its optional catch-all page bound to
// an empty list.
func (t *Translator) endParts(b *routetree.Branch, locale string) (*canonicalMatch, bool) {
	for _, c := range b.Children {
		value := t.i18n.Resolve(c.Paths, locale)
		if value == routetree.IndexName {
			return &canonicalMatch{params: url.Values{}, first: matchStatic}, true
		}
		if routetree.IsIgnored(value) && !c.IsLeaf() {
			if m, ok := t.endParts(c, locale); ok {
				return m.under(c.Name), true
			}
		}
		p, err := t.patterns.Get(value)
		if err != nil {
			continue
		}
		if k, ok := p.OptionalRepeat(); ok {
			return &canonicalMatch{
				names:  []string{c.Name},
				params: url.Values{k.Name: {}},
				first:  matchAll,
			}, true
		}
	}
	return nil, false
}
