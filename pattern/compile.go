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
	"fmt"
	"net/url"
	"strings"
)

// CompileOption configures Compile.
type CompileOption func(*compileConfig)

type compileConfig struct {
	validate bool
	encode   func(string) string
}

// WithValidation makes Compile check every value against its key pattern.
func WithValidation() CompileOption {
	return func(c *compileConfig) {
		c.validate = true
	}
}

// WithEncoder sets the function applied to every value before it is
// written. Values are written as is by default.
func WithEncoder(fn func(string) string) CompileOption {
	return func(c *compileConfig) {
		c.encode = fn
	}
}

// Compile builds a concrete path from params.
//
// A key with several values must repeat ("*" or "+"), each value is then
// written with the key's prefix and suffix. Optional keys without a value
// are omitted together with their prefix and suffix. A required key without
// a value yields ErrMissingParam.
//
// Example:
//
//	p := pattern.MustParse("/news/:parts+")
//	path, _ := p.Compile(url.Values{"parts": {"a", "b"}}) // "/news/a/b"
func (p *Pattern) Compile(params url.Values, opts ...CompileOption) (string, error) {
	cfg := compileConfig{encode: func(s string) string { return s }}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	for i, tok := range p.tokens {
		if tok.Key == nil {
			b.WriteString(tok.Literal)
			continue
		}
		k := tok.Key
		if k.Pattern == "" {
			if !k.Optional() {
				b.WriteString(k.Prefix + k.Suffix)
			}
			continue
		}

		values, present := params[k.Name]
		switch {
		case len(values) > 1 && !k.Repeat():
			return "", fmt.Errorf("%w: %q got %d values", ErrParamRepeat, k.Name, len(values))
		case len(values) == 0:
			if k.Optional() {
				continue
			}
			if present && k.Repeat() {
				return "", fmt.Errorf("%w: %q must not be empty", ErrMissingParam, k.Name)
			}
			return "", fmt.Errorf("%w: %q", ErrMissingParam, k.Name)
		}

		for _, v := range values {
			seg := cfg.encode(v)
			if cfg.validate && !p.matchers[i].MatchString(seg) {
				return "", fmt.Errorf("%w: %q does not match %q for %q", ErrInvalidParam, seg, k.Pattern, k.Name)
			}
			b.WriteString(k.Prefix + seg + k.Suffix)
		}
	}
	return b.String(), nil
}

// Match parses candidate against the pattern and returns the captured
// parameters. Repeating keys bind to the list of captured parts. An absent
// optional repeating key binds to an empty list.
//
// Example:
//
//	p := pattern.MustParse("/:id-:slug")
//	params, ok := p.Match("/300-three-hundred")
//	// params: id=300, slug=three-hundred
func (p *Pattern) Match(candidate string) (url.Values, bool) {
	idx := p.re.FindStringSubmatchIndex(candidate)
	if idx == nil {
		return nil, false
	}

	params := url.Values{}
	for i, k := range p.keys {
		start, end := idx[2*(i+1)], idx[2*(i+1)+1]
		if start < 0 {
			if k.Modifier == "*" {
				params[k.Name] = []string{}
			}
			continue
		}
		value := candidate[start:end]
		if k.Repeat() {
			sep := k.Prefix + k.Suffix
			if sep == "" {
				params[k.Name] = []string{value}
			} else {
				params[k.Name] = strings.Split(value, sep)
			}
			continue
		}
		params.Set(k.Name, value)
	}
	return params, true
}
