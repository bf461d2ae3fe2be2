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

	"rivaas.dev/i18nroutes/routetree"
)

// Address is the working representation of an address during translation.
// Pathname keeps its escaped form; Hash has no leading '#'.
type Address struct {
	Scheme   string
	Host     string
	Pathname string
	Query    url.Values
	Hash     string
}

// ParseAddress parses an absolute or relative address. An empty path
// becomes "/".
func ParseAddress(raw string) (*Address, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, routetree.Malformed("parse", raw, err)
	}
	a := &Address{
		Scheme:   u.Scheme,
		Host:     u.Host,
		Pathname: u.EscapedPath(),
		Query:    u.Query(),
		Hash:     u.EscapedFragment(),
	}
	if a.Pathname == "" {
		a.Pathname = "/"
	}
	return a, nil
}

// String formats the address. Query keys are sorted.
func (a *Address) String() string {
	var b strings.Builder
	if a.Host != "" {
		if a.Scheme != "" {
			b.WriteString(a.Scheme)
			b.WriteByte(':')
		}
		b.WriteString("//")
		b.WriteString(a.Host)
	}
	b.WriteString(a.Pathname)
	if q := a.Query.Encode(); q != "" {
		b.WriteByte('?')
		b.WriteString(q)
	}
	if a.Hash != "" {
		b.WriteByte('#')
		b.WriteString(a.Hash)
	}
	return b.String()
}

// PathParts returns the unescaped, non-empty path parts.
func (a *Address) PathParts() []string {
	return unescapeParts(routetree.SplitPath(a.Pathname))
}

// Clone returns a deep copy of a.
func (a *Address) Clone() *Address {
	c := *a
	c.Query = cloneValues(a.Query)
	return &c
}

func unescapeParts(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		if v, err := url.PathUnescape(p); err == nil {
			out[i] = v
		} else {
			out[i] = p
		}
	}
	return out
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
