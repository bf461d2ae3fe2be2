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

// Package source loads raw configuration maps from files, in-memory
// content and environment variables.
//
//	dec, _ := codec.GetDecoder(codec.TypeYAML)
//	values, err := source.NewFile("i18nroutes.yaml", dec).Load(ctx)
package source

import (
	"context"
	"fmt"
	"os"
	"strings"

	"rivaas.dev/i18nroutes/config/codec"
)

// File loads configuration from a file or from in-memory content.
type File struct {
	path    string
	data    []byte
	decoder codec.Decoder
}

// NewFile creates a source reading path on every Load.
func NewFile(path string, decoder codec.Decoder) *File {
	return &File{path: path, decoder: decoder}
}

// NewContent creates a source decoding data.
func NewContent(data []byte, decoder codec.Decoder) *File {
	return &File{data: data, decoder: decoder}
}

// Load reads and decodes the file.
//
// Errors:
//   - the file cannot be read
//   - the content cannot be decoded
func (f *File) Load(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data := f.data
	if f.path != "" {
		var err error
		if data, err = os.ReadFile(f.path); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.path, err)
		}
	}

	var values map[string]any
	if err := f.decoder.Decode(data, &values); err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.describe(), err)
	}
	return values, nil
}

func (f *File) describe() string {
	if f.path != "" {
		return f.path
	}
	return "content"
}

// OSEnvVar loads the environment variables starting with a prefix. The
// prefix is stripped and the rest decoded with codec.EnvVarCodec, so with
// prefix "I18NROUTES_", I18NROUTES_LOG_LEVEL=debug sets log.level.
type OSEnvVar struct {
	prefix  string
	environ func() []string
}

// NewOSEnvVar creates an environment source for prefix.
func NewOSEnvVar(prefix string) *OSEnvVar {
	return &OSEnvVar{prefix: prefix, environ: os.Environ}
}

// Load decodes the matching variables.
func (e *OSEnvVar) Load(context.Context) (map[string]any, error) {
	var lines []string
	for _, kv := range e.environ() {
		if rest, ok := strings.CutPrefix(kv, e.prefix); ok {
			lines = append(lines, rest)
		}
	}

	var values map[string]any
	if err := (codec.EnvVarCodec{}).Decode([]byte(strings.Join(lines, "\n")), &values); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return values, nil
}
