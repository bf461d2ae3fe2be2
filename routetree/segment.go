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
	"regexp"
	"strings"
)

// DefaultKey is the pseudo-locale key holding the value shared by all locales.
const DefaultKey = "default"

// IndexName is the segment name of a folder's index page.
const IndexName = "index"

// Kind classifies a segment name.
type Kind uint8

const (
	// KindStatic is a plain segment name such as "about".
	KindStatic Kind = iota
	// KindDynamic is a single capture, "[slug]".
	KindDynamic
	// KindCatchAll captures one or more path parts, "[...parts]".
	KindCatchAll
	// KindOptionalCatchAll captures zero or more path parts, "[[...parts]]".
	KindOptionalCatchAll
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	case KindCatchAll:
		return "catch-all"
	case KindOptionalCatchAll:
		return "optional-catch-all"
	default:
		return "unknown"
	}
}

// Spread reports whether the kind captures a list of path parts.
func (k Kind) Spread() bool {
	return k == KindCatchAll || k == KindOptionalCatchAll
}

var (
	dynamicNameRe     = regexp.MustCompile(`^\[([^/\[\]?#.][^/\[\]?#]*)\]$`)
	catchAllNameRe    = regexp.MustCompile(`^\[\.{3}([^/\[\]?#]+)\]$`)
	optCatchAllNameRe = regexp.MustCompile(`^\[\[\.{3}([^/\[\]?#]+)\]\]$`)

	// fileRouteSyntaxRe finds any file-route capture inside a path.
	fileRouteSyntaxRe = regexp.MustCompile(`\[\[?(?:\.{3})?[^/\[\]?#]+\]?\]`)

	ignoreRe = regexp.MustCompile(`^\.(\(.+\))?$`)
)

// ParseName classifies a file-derived segment name and returns its kind
// and, for captures, the parameter name.
func ParseName(name string) (Kind, string) {
	if m := optCatchAllNameRe.FindStringSubmatch(name); m != nil {
		return KindOptionalCatchAll, m[1]
	}
	if m := catchAllNameRe.FindStringSubmatch(name); m != nil {
		return KindCatchAll, m[1]
	}
	if m := dynamicNameRe.FindStringSubmatch(name); m != nil {
		return KindDynamic, m[1]
	}
	return KindStatic, ""
}

// IsFileRouteSegment reports whether part uses the file-route capture syntax.
func IsFileRouteSegment(part string) bool {
	kind, _ := ParseName(part)
	return kind != KindStatic
}

// HasFileRouteSyntax reports whether any part of path uses the file-route
// capture syntax.
func HasFileRouteSyntax(path string) bool {
	return fileRouteSyntaxRe.MatchString(path)
}

// FileNameToPath converts a segment name into its default path value:
//
//	[[...x]] -> :x*
//	[...x]   -> :x+
//	[x]      -> :x
//	name     -> name
func FileNameToPath(name string) string {
	kind, param := ParseName(name)
	switch kind {
	case KindOptionalCatchAll:
		return ":" + param + "*"
	case KindCatchAll:
		return ":" + param + "+"
	case KindDynamic:
		return ":" + param
	default:
		return name
	}
}

// IsIgnored reports whether a path value is the ignore token, "." with an
// optional parenthesised regex.
func IsIgnored(value string) bool {
	return ignoreRe.MatchString(value)
}

// IgnorePattern returns the parenthesised regex attached to an ignore token,
// "(\d+)" for ".(\d+)", or "" when there is none.
func IgnorePattern(value string) string {
	m := ignoreRe.FindStringSubmatch(value)
	if m == nil {
		return ""
	}
	return m[1]
}

// Paths maps locales to translated segment values. The DefaultKey entry is
// always present in a valid tree.
type Paths map[string]string

// Default returns the shared value.
func (p Paths) Default() string {
	return p[DefaultKey]
}

// HasOverrides reports whether at least one locale overrides the default.
func (p Paths) HasOverrides() bool {
	for key := range p {
		if key != DefaultKey {
			return true
		}
	}
	return false
}

// Clone returns a copy of p.
func (p Paths) Clone() Paths {
	out := make(Paths, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Segment is one path component: the file-derived name, its kind and its
// translated values.
type Segment struct {
	Name  string
	Kind  Kind
	Param string // capture name, empty for static segments
	Paths Paths
}

// NewSegment builds a Segment, classifying its name once. A missing default
// value is filled with FileNameToPath(name).
func NewSegment(name string, paths Paths) Segment {
	kind, param := ParseName(name)
	if paths == nil {
		paths = Paths{}
	} else {
		paths = paths.Clone()
	}
	if _, ok := paths[DefaultKey]; !ok {
		paths[DefaultKey] = FileNameToPath(name)
	}
	return Segment{Name: name, Kind: kind, Param: param, Paths: paths}
}

// IsIndex reports whether the segment is a folder's index page.
func (s Segment) IsIndex() bool {
	return s.Name == IndexName
}

// joinPath joins non-empty parts with "/" behind a leading slash.
func joinPath(parts []string) string {
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(p)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}

// JoinPath joins path parts into an absolute path, skipping empty parts.
// An empty list yields "/".
func JoinPath(parts ...string) string {
	return joinPath(parts)
}

// SplitPath splits an absolute or relative path into its non-empty parts.
func SplitPath(path string) []string {
	raw := strings.Split(path, "/")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
