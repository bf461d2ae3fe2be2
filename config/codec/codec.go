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

// Package codec encodes and decodes configuration and rule documents.
//
// Codecs are looked up by [Type] in a registry shared by the config loader
// and the command line tool:
//
//	enc, err := codec.GetEncoder(codec.TypeYAML)
//	data, err := enc.Encode(rules)
//
// JSON, YAML, TOML and the environment variable format are built in.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// Type identifies a codec.
type Type string

// Encoder converts a Go value into its encoded form.
// Implementations must be safe for concurrent use.
type Encoder interface {
	Encode(v any) ([]byte, error)
}

// Decoder converts encoded data into the value pointed to by v.
// Implementations must be safe for concurrent use.
type Decoder interface {
	Decode(data []byte, v any) error
}

var registry = struct {
	sync.RWMutex
	encoders map[Type]Encoder
	decoders map[Type]Decoder
}{
	encoders: make(map[Type]Encoder),
	decoders: make(map[Type]Decoder),
}

// RegisterEncoder registers the encoder used for name.
func RegisterEncoder(name Type, encoder Encoder) {
	registry.Lock()
	defer registry.Unlock()
	registry.encoders[name] = encoder
}

// RegisterDecoder registers the decoder used for name.
func RegisterDecoder(name Type, decoder Decoder) {
	registry.Lock()
	defer registry.Unlock()
	registry.decoders[name] = decoder
}

// GetEncoder returns the encoder registered for name.
func GetEncoder(name Type) (Encoder, error) {
	registry.RLock()
	defer registry.RUnlock()
	encoder, ok := registry.encoders[name]
	if !ok {
		return nil, fmt.Errorf("no encoder registered for %q", name)
	}
	return encoder, nil
}

// GetDecoder returns the decoder registered for name.
func GetDecoder(name Type) (Decoder, error) {
	registry.RLock()
	defer registry.RUnlock()
	decoder, ok := registry.decoders[name]
	if !ok {
		return nil, fmt.Errorf("no decoder registered for %q", name)
	}
	return decoder, nil
}

var extensions = map[string]Type{
	".yaml": TypeYAML,
	".yml":  TypeYAML,
	".json": TypeJSON,
	".toml": TypeTOML,
}

// TypeOf detects the codec of a file from its extension.
func TypeOf(path string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if t, ok := extensions[ext]; ok {
		return t, nil
	}
	return "", fmt.Errorf("cannot detect format from extension %q", ext)
}
