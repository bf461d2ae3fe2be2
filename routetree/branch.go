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
	"fmt"
	"slices"
	"strings"
)

// Branch is a Segment with its ordered children. A Branch without children
// is a page.
type Branch struct {
	Segment
	Children []*Branch
}

// NewBranch creates a folder branch. Children keep the given order.
func NewBranch(name string, paths Paths, children ...*Branch) *Branch {
	b := &Branch{Segment: NewSegment(name, paths)}
	if len(children) > 0 {
		b.Children = children
	}
	return b
}

// NewLeaf creates a page branch.
func NewLeaf(name string, paths Paths) *Branch {
	return &Branch{Segment: NewSegment(name, paths)}
}

// IsLeaf reports whether b is a page.
func (b *Branch) IsLeaf() bool {
	return len(b.Children) == 0
}

// Child returns the child named name.
func (b *Branch) Child(name string) (*Branch, bool) {
	for _, c := range b.Children {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// TerminalChild returns the page served when b is addressed exactly: an
// index leaf or an optional catch-all leaf.
func (b *Branch) TerminalChild() (*Branch, bool) {
	for _, c := range b.Children {
		if c.IsLeaf() && (c.IsIndex() || c.Kind == KindOptionalCatchAll) {
			return c, true
		}
	}
	return nil, false
}

// Validate checks the structural invariants of the tree rooted at b: every
// segment has a default value and no branch has more than one catch-all or
// optional catch-all child.
func (b *Branch) Validate() error {
	return b.validate("")
}

func (b *Branch) validate(parent string) error {
	path := parent
	if b.Name != "" {
		path = parent + "/" + b.Name
	}
	if _, ok := b.Paths[DefaultKey]; !ok {
		return Malformed("validate", displayPath(path), ErrMissingDefaultPath)
	}
	spread := 0
	for _, c := range b.Children {
		if c == nil {
			return Malformed("validate", displayPath(path), fmt.Errorf("nil child"))
		}
		if c.Kind.Spread() {
			spread++
		}
	}
	if spread > 1 {
		return Malformed("validate", displayPath(path), ErrMultipleCatchAll)
	}
	for _, c := range b.Children {
		if err := c.validate(path); err != nil {
			return err
		}
	}
	return nil
}

// Page is a full chain of segments from the root to a page.
type Page struct {
	Segments []Segment
}

// FileRoute returns the canonical file route of the page, "/" for the root
// index.
func (p Page) FileRoute() string {
	names := make([]string, 0, len(p.Segments))
	for _, s := range p.Segments {
		names = append(names, s.Name)
	}
	return joinPath(names)
}

// Pages walks the tree and returns every page in depth-first order. A
// folder's index child stands for the folder itself, so its page is the
// folder's segment chain. The root segment is part of every chain.
func (b *Branch) Pages() []Page {
	var pages []Page
	b.collectPages(nil, &pages)
	return pages
}

func (b *Branch) collectPages(prev []Segment, pages *[]Page) {
	segments := make([]Segment, len(prev), len(prev)+1)
	copy(segments, prev)
	segments = append(segments, b.Segment)

	if b.IsLeaf() {
		*pages = append(*pages, Page{Segments: segments})
		return
	}
	for _, c := range b.Children {
		if c.IsIndex() {
			*pages = append(*pages, Page{Segments: segments})
			continue
		}
		c.collectPages(segments, pages)
	}
}

// String renders the tree, one branch per line, for debugging.
func (b *Branch) String() string {
	var sb strings.Builder
	b.write(&sb, 0)
	return sb.String()
}

func (b *Branch) write(sb *strings.Builder, depth int) {
	name := b.Name
	if name == "" && depth == 0 {
		name = "/"
	}
	fmt.Fprintf(sb, "%s%s %v\n", strings.Repeat("  ", depth), name, sortedPaths(b.Paths))
	for _, c := range b.Children {
		c.write(sb, depth+1)
	}
}

func sortedPaths(p Paths) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		if k != DefaultKey {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	var sb strings.Builder
	sb.WriteString("{default:" + p.Default())
	for _, k := range keys {
		sb.WriteString(" " + k + ":" + p[k])
	}
	sb.WriteString("}")
	return sb.String()
}

func displayPath(path string) string {
	if path == "" {
		return "/"
	}
	return path
}
