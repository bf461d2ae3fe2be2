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

package codec

import "encoding/json"

// TypeJSON identifies the JSON codec.
const TypeJSON Type = "json"

func init() {
	RegisterEncoder(TypeJSON, JSONCodec{Indent: "  "})
	RegisterDecoder(TypeJSON, JSONCodec{})
}

// JSONCodec encodes and decodes JSON. A non-empty Indent produces
// indented output.
type JSONCodec struct {
	Indent string
}

// Encode marshals v.
func (c JSONCodec) Encode(v any) ([]byte, error) {
	if c.Indent == "" {
		return json.Marshal(v)
	}
	data, err := json.MarshalIndent(v, "", c.Indent)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Decode unmarshals data into v.
func (JSONCodec) Decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
