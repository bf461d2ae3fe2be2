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
	"regexp"
	"sync"
)

// Cache memoizes parsed patterns by source. The number of distinct sources
// is bounded by the route tree, so entries are never evicted.
// A nil *Cache parses on every call.
type Cache struct {
	entries sync.Map // source -> *cacheEntry
}

type cacheEntry struct {
	pattern *Pattern
	err     error
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// Get returns the parsed pattern for src, parsing it on first use. Parse
// errors are cached too.
func (c *Cache) Get(src string) (*Pattern, error) {
	if c == nil {
		return Parse(src)
	}
	if v, ok := c.entries.Load(src); ok {
		e := v.(*cacheEntry)
		return e.pattern, e.err
	}
	p, err := Parse(src)
	v, _ := c.entries.LoadOrStore(src, &cacheEntry{pattern: p, err: err})
	e := v.(*cacheEntry)
	return e.pattern, e.err
}

// Len returns the number of cached sources.
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

var captureSyntaxRe = regexp.MustCompile(`[{}]|(:\w+)\([^)]+\)`)

// StripCaptureSyntax turns a rule source into its destination form: group
// braces are dropped and custom regexes following a named parameter are
// removed, so "/{:id(\d+)}-:slug" becomes "/:id-:slug".
func StripCaptureSyntax(src string) string {
	return captureSyntaxRe.ReplaceAllString(src, "$1")
}
