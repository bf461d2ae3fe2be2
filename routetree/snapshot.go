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
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed snapshot.schema.json
var snapshotSchemaJSON []byte

const snapshotSchemaURL = "snapshot.schema.json"

var (
	snapshotSchemaOnce sync.Once
	snapshotSchema     *jsonschema.Schema
	snapshotSchemaErr  error
)

func compiledSnapshotSchema() (*jsonschema.Schema, error) {
	snapshotSchemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(snapshotSchemaJSON))
		if err != nil {
			snapshotSchemaErr = err
			return
		}
		compiler := jsonschema.NewCompiler()
		if err = compiler.AddResource(snapshotSchemaURL, doc); err != nil {
			snapshotSchemaErr = err
			return
		}
		snapshotSchema, snapshotSchemaErr = compiler.Compile(snapshotSchemaURL)
	})
	return snapshotSchema, snapshotSchemaErr
}

// Snapshot is the serialized form of a route tree and its locale
// configuration, handed to a runtime at process start.
type Snapshot struct {
	I18n I18n    `json:"i18n"`
	Tree *Branch `json:"tree"`
}

type branchJSON struct {
	Name     string        `json:"name"`
	Paths    Paths         `json:"paths"`
	Children []*branchJSON `json:"children,omitempty"`
}

func toJSON(b *Branch) *branchJSON {
	out := &branchJSON{Name: b.Name, Paths: b.Paths}
	for _, c := range b.Children {
		out.Children = append(out.Children, toJSON(c))
	}
	return out
}

func fromJSON(j *branchJSON) *Branch {
	b := NewLeaf(j.Name, j.Paths)
	for _, c := range j.Children {
		b.Children = append(b.Children, fromJSON(c))
	}
	return b
}

// MarshalJSON encodes the branch as {"name", "paths", "children"}.
func (b *Branch) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSON(b))
}

// UnmarshalJSON decodes a branch and classifies every segment name.
func (b *Branch) UnmarshalJSON(data []byte) error {
	var j branchJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*b = *fromJSON(&j)
	return nil
}

// ReadSnapshot decodes a snapshot, validates it against the snapshot JSON
// schema and then against the tree invariants.
func ReadSnapshot(r io.Reader) (*Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, NewError("read snapshot", "", err)
	}

	schema, err := compiledSnapshotSchema()
	if err != nil {
		return nil, NewError("read snapshot", snapshotSchemaURL, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, Malformed("read snapshot", "", err)
	}
	if err = schema.Validate(doc); err != nil {
		return nil, Malformed("read snapshot", "", fmt.Errorf("schema validation: %w", err))
	}

	var snap Snapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return nil, Malformed("read snapshot", "", err)
	}
	if err = snap.I18n.Validate(); err != nil {
		return nil, err
	}
	if err = snap.Tree.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}

// WriteSnapshot encodes the tree and its configuration as indented JSON.
func WriteSnapshot(w io.Writer, root *Branch, i18n I18n) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Snapshot{I18n: i18n, Tree: root}); err != nil {
		return NewError("write snapshot", "", err)
	}
	return nil
}
