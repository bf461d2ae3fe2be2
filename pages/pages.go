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

package pages

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path"
	"slices"
	"strings"

	"rivaas.dev/i18nroutes/diag"
	"rivaas.dev/i18nroutes/routetree"
)

// ErrNoPagesDir is returned by FindDir when no candidate directory exists.
var ErrNoPagesDir = errors.New("no pages directory found")

// DefaultPageExtensions are the extensions of page files.
var DefaultPageExtensions = []string{"js", "jsx", "ts", "tsx"}

// DefaultDirs are the pages directories FindDir looks for.
var DefaultDirs = []string{"pages", "src/pages", "app/pages", "integrations/pages"}

// reservedPages are the root-level files that are not routable pages.
var reservedPages = []string{"_app", "_document", "_error", "404", "500"}

// apiDir is the root-level entry holding API routes.
const apiDir = "api"

// noopLogger is a singleton no-op logger used when no logger is provided.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Option configures Parse.
type Option func(*parser)

// WithPageExtensions sets the extensions of page files, without the dot.
func WithPageExtensions(exts ...string) Option {
	return func(p *parser) {
		if len(exts) > 0 {
			p.extensions = exts
		}
	}
}

// WithRoutesDataFileName sets the base name of routes data files,
// replacing the default names.
func WithRoutesDataFileName(name string) Option {
	return func(p *parser) {
		p.routesDataFileName = name
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithDiagnostics sets the handler receiving tree building events.
func WithDiagnostics(h diag.Handler) Option {
	return func(p *parser) {
		p.diagnostics = h
	}
}

type parser struct {
	extensions         []string
	routesDataFileName string
	logger             *slog.Logger
	diagnostics        diag.Handler
}

// FindDir returns the first of the custom directory and DefaultDirs
// existing in fsys.
func FindDir(fsys fs.FS, custom string) (string, error) {
	candidates := DefaultDirs
	if custom != "" {
		candidates = append([]string{strings.Trim(path.Clean(custom), "/")}, DefaultDirs...)
	}
	for _, dir := range candidates {
		if info, err := fs.Stat(fsys, dir); err == nil && info.IsDir() {
			return dir, nil
		}
	}
	return "", ErrNoPagesDir
}

// Parse builds the route tree of the pages directory at the root of fsys.
// Use fs.Sub to parse a subdirectory.
//
// Errors:
//   - ErrMalformedInput if a routes data file cannot be decoded or the
//     resulting tree violates its invariants
func Parse(fsys fs.FS, opts ...Option) (*routetree.Branch, error) {
	p := &parser{
		extensions: DefaultPageExtensions,
		logger:     noopLogger,
	}
	for _, opt := range opts {
		opt(p)
	}

	root, err := p.parseDir(fsys, ".", "")
	if err != nil {
		return nil, err
	}
	if err := root.Validate(); err != nil {
		return nil, err
	}
	p.logger.Debug("route tree parsed", "pages", len(root.Pages()))
	return root, nil
}

// parseDir builds the branch of dir, named name. The directory's own
// paths come from the DirectoryKey entry of its routes data.
func (p *parser) parseDir(fsys fs.FS, dir, name string) (*routetree.Branch, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, routetree.NewError("read pages", dir, err)
	}
	data, err := p.readRoutesData(fsys, dir, entries)
	if err != nil {
		return nil, err
	}
	isRoot := dir == "."

	var children []*routetree.Branch
	for _, e := range entries {
		if isRoot && e.Name() == apiDir {
			continue
		}
		if e.IsDir() {
			child, err := p.parseDir(fsys, path.Join(dir, e.Name()), e.Name())
			if err != nil {
				return nil, err
			}
			if child.IsLeaf() {
				p.logger.Debug("empty pages directory skipped", "dir", path.Join(dir, e.Name()))
				continue
			}
			children = append(children, child)
			continue
		}

		page, ok := p.pageName(e.Name())
		if !ok || (isRoot && slices.Contains(reservedPages, page)) {
			continue
		}
		children = append(children, routetree.NewLeaf(page, data[page]))
	}

	slices.SortStableFunc(children, func(a, b *routetree.Branch) int {
		return orderWeight(a) - orderWeight(b)
	})
	return routetree.NewBranch(name, data[DirectoryKey], children...), nil
}

// pageName returns the page name of a file with a page extension.
func (p *parser) pageName(fileName string) (string, bool) {
	for _, ext := range p.extensions {
		if name, ok := strings.CutSuffix(fileName, "."+ext); ok && name != "" {
			return name, true
		}
	}
	return "", false
}

// orderWeight sorts catch-all, then dynamic, then folders after static
// pages, so that more specific children are tried first.
func orderWeight(b *routetree.Branch) int {
	w := 0
	if b.Kind.Spread() {
		w++
	}
	if b.Kind != routetree.KindStatic {
		w++
	}
	if !b.IsLeaf() {
		w++
	}
	return w
}

func (p *parser) ignoreRoutesFile(file, kept string) {
	p.logger.Warn("routes data file ignored", "file", file, "kept", kept)
	diag.Emit(p.diagnostics, diag.KindRoutesFileIgnored, "routes data file ignored", map[string]any{
		"file": file,
		"kept": kept,
	})
}
