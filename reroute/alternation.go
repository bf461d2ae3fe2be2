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
	"regexp"
	"slices"
	"strings"
)

var (
	// staticRe matches a bare word or an alternation of bare words.
	staticRe = regexp.MustCompile(`^[\w-]+$|^\([\w|-]+\)$`)
	groupRe  = regexp.MustCompile(`^\(([\w|-]+)\)$`)
)

// alternation is one segment of a rule source. A plain segment has a
// single alternative; merged static segments become a group, written
// "(a|b|c)".
type alternation struct {
	alts  []string
	group bool
}

func parseAlternation(raw string) alternation {
	if m := groupRe.FindStringSubmatch(raw); m != nil {
		return alternation{alts: strings.Split(m[1], "|"), group: true}
	}
	return alternation{alts: []string{raw}}
}

func (a alternation) String() string {
	if !a.group {
		return a.alts[0]
	}
	return "(" + strings.Join(a.alts, "|") + ")"
}

func (a alternation) static() bool {
	return staticRe.MatchString(a.String())
}

// union returns a group holding the alternatives of a followed by the new
// ones of b. Neither a nor b is modified.
func (a alternation) union(b alternation) alternation {
	alts := slices.Clone(a.alts)
	for _, alt := range b.alts {
		if !slices.Contains(alts, alt) {
			alts = append(alts, alt)
		}
	}
	return alternation{alts: alts, group: true}
}

// source is a rule source split on "/". The leading empty segment is kept
// so that formatting restores the leading slash.
type source []alternation

func parseSource(raw string) source {
	parts := strings.Split(raw, "/")
	out := make(source, len(parts))
	for i, p := range parts {
		out[i] = parseAlternation(p)
	}
	return out
}

func (s source) String() string {
	parts := make([]string, len(s))
	for i, a := range s {
		parts[i] = a.String()
	}
	return strings.Join(parts, "/")
}

// similar reports whether s and other can be merged: same number of
// segments, each pair either equal or both static.
func (s source) similar(other source) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		a, b := s[i].String(), other[i].String()
		if a != b && (!s[i].static() || !other[i].static()) {
			return false
		}
	}
	return true
}

// merge returns s with every segment differing from other extended with
// the alternatives of other.
func (s source) merge(other source) source {
	out := make(source, len(s))
	for i := range s {
		if s[i].String() == other[i].String() {
			out[i] = s[i]
			continue
		}
		out[i] = s[i].union(other[i])
	}
	return out
}

type rule struct {
	source      source
	destination string
}

func similarIndex(src source, rules []rule) int {
	return slices.IndexFunc(rules, func(r rule) bool {
		return src.similar(r.source)
	})
}
