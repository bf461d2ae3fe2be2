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
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/cast"

	"rivaas.dev/i18nroutes/config/codec"
	"rivaas.dev/i18nroutes/routetree"
)

// DirectoryKey is the routes data key describing the directory itself.
const DirectoryKey = "/"

// DefaultRoutesDataFileNames are the base names accepted for routes data
// files when no custom name is configured, by priority.
var DefaultRoutesDataFileNames = []string{"_routes", "routes"}

// routesData maps a child name, or DirectoryKey, to its path values.
type routesData map[string]routetree.Paths

// isRoutesFileName reports whether fileName is a routes data file. An
// empty custom name accepts the default names.
func isRoutesFileName(fileName, custom string) bool {
	ext := path.Ext(fileName)
	if ext != ".json" && ext != ".yaml" {
		return false
	}
	base := strings.TrimSuffix(fileName, ext)
	if base == "" {
		return false
	}
	if custom != "" {
		return base == custom
	}
	for _, name := range DefaultRoutesDataFileNames {
		if base == name {
			return true
		}
	}
	return false
}

// decodeRoutesData decodes a routes data file with the codec matching its
// extension.
func decodeRoutesData(name string, content []byte) (routesData, error) {
	typ, err := codec.TypeOf(name)
	if err != nil {
		return nil, routetree.Malformed("parse routes data", name, err)
	}
	decoder, err := codec.GetDecoder(typ)
	if err != nil {
		return nil, routetree.Malformed("parse routes data", name, err)
	}
	raw := map[string]any{}
	if err := decoder.Decode(content, &raw); err != nil {
		return nil, routetree.Malformed("parse routes data", name, err)
	}

	data := make(routesData, len(raw))
	for key, value := range raw {
		paths, err := toPaths(value)
		if err != nil {
			return nil, routetree.Malformed("parse routes data", name, fmt.Errorf("key %q: %w", key, err))
		}
		if paths != nil {
			data[key] = paths
		}
	}
	return data, nil
}

var errPathValue = errors.New("path value must be a string or an object of strings")

// toPaths converts a routes data value: a string sets the default path, an
// object sets per-locale values.
func toPaths(value any) (routetree.Paths, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return routetree.Paths{routetree.DefaultKey: v}, nil
	case map[string]any, map[any]any:
		m, err := cast.ToStringMapStringE(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", errPathValue, err)
		}
		return routetree.Paths(m), nil
	default:
		return nil, fmt.Errorf("%w: got %T", errPathValue, value)
	}
}

// readRoutesData finds and decodes the routes data file of dir. Extra data
// files are reported and ignored.
func (p *parser) readRoutesData(fsys fs.FS, dir string, entries []fs.DirEntry) (routesData, error) {
	var found string
	for _, e := range entries {
		if e.IsDir() || !isRoutesFileName(e.Name(), p.routesDataFileName) {
			continue
		}
		if found == "" || p.preferred(e.Name(), found) {
			if found != "" {
				p.ignoreRoutesFile(path.Join(dir, found), e.Name())
			}
			found = e.Name()
			continue
		}
		p.ignoreRoutesFile(path.Join(dir, e.Name()), found)
	}
	if found == "" {
		return routesData{}, nil
	}

	file := path.Join(dir, found)
	content, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, routetree.NewError("read routes data", file, err)
	}
	p.logger.Debug("routes data file found", "file", file)
	return decodeRoutesData(file, content)
}

// preferred reports whether candidate takes priority over current: earlier
// default names first, then JSON before YAML.
func (p *parser) preferred(candidate, current string) bool {
	rank := func(name string) int {
		base := strings.TrimSuffix(name, path.Ext(name))
		r := 0
		for i, n := range DefaultRoutesDataFileNames {
			if n == base {
				r = i * 2
			}
		}
		if path.Ext(name) == ".yaml" {
			r++
		}
		return r
	}
	return rank(candidate) < rank(current)
}
