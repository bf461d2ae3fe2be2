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
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrSyntax indicates that a pattern source cannot be parsed.
	ErrSyntax = errors.New("pattern syntax error")

	// ErrMissingParam indicates that a required parameter has no value.
	ErrMissingParam = errors.New("missing required parameter")

	// ErrParamRepeat indicates that a list value was given to a key that
	// does not repeat.
	ErrParamRepeat = errors.New("parameter does not repeat")

	// ErrInvalidParam indicates that a value does not match its key pattern.
	ErrInvalidParam = errors.New("invalid parameter value")
)

// Key is a named or numbered capture in a pattern.
type Key struct {
	Name     string // parameter name, or its index for unnamed groups
	Prefix   string
	Suffix   string
	Pattern  string // regex the value matches
	Modifier string // "", "?", "*" or "+"
}

// Optional reports whether the key may be absent.
func (k *Key) Optional() bool {
	return k.Modifier == "?" || k.Modifier == "*"
}

// Repeat reports whether the key captures a list.
func (k *Key) Repeat() bool {
	return k.Modifier == "*" || k.Modifier == "+"
}

// Named reports whether the key has a parameter name rather than an index.
func (k *Key) Named() bool {
	return k.Name != "" && !isDigits(k.Name)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return s != ""
}

// Token is either a literal string or a Key.
type Token struct {
	Literal string
	Key     *Key
}

// Pattern is a parsed path pattern. It is immutable and safe for
// concurrent use.
type Pattern struct {
	source string
	tokens []Token
	keys   []*Key

	re       *regexp.Regexp
	matchers []*regexp.Regexp // per token, nil for literals
}

// Parse parses src. Matching is case-insensitive.
//
// Supported syntax:
//
//	:name          named parameter
//	:name(\d+)     named parameter with a custom pattern
//	(a|b)          unnamed parameter, keyed by its index
//	{-:name}       group with an explicit prefix and suffix
//	?  *  +        optional, zero or more, one or more
//	\:             escaped character
func Parse(src string) (*Pattern, error) {
	tokens, err := parse(src)
	if err != nil {
		return nil, err
	}

	p := &Pattern{source: src, tokens: tokens, matchers: make([]*regexp.Regexp, len(tokens))}
	for i, tok := range tokens {
		if tok.Key == nil || tok.Key.Pattern == "" {
			continue
		}
		p.keys = append(p.keys, tok.Key)
		m, err := regexp.Compile(`(?i)^(?:` + tok.Key.Pattern + `)$`)
		if err != nil {
			return nil, syntaxError(src, 0, err.Error())
		}
		p.matchers[i] = m
	}

	re, err := regexp.Compile(buildRegexp(tokens))
	if err != nil {
		return nil, syntaxError(src, 0, err.Error())
	}
	p.re = re
	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Pattern {
	p, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the source the pattern was parsed from.
func (p *Pattern) String() string {
	return p.source
}

// Tokens returns the parsed tokens.
func (p *Pattern) Tokens() []Token {
	return p.tokens
}

// Keys returns the captures in order of appearance.
func (p *Pattern) Keys() []*Key {
	return p.keys
}

// KeyNames returns the names of all captures.
func (p *Pattern) KeyNames() []string {
	names := make([]string, 0, len(p.keys))
	for _, k := range p.keys {
		names = append(names, k.Name)
	}
	return names
}

// IsStatic reports whether the pattern has no capture at all.
func (p *Pattern) IsStatic() bool {
	return len(p.keys) == 0
}

// HasNamedParam reports whether the pattern has at least one named capture.
func (p *Pattern) HasNamedParam() bool {
	for _, k := range p.keys {
		if k.Named() {
			return true
		}
	}
	return false
}

// HasRepeat reports whether a capture repeats ("*" or "+").
func (p *Pattern) HasRepeat() bool {
	for _, k := range p.keys {
		if k.Repeat() {
			return true
		}
	}
	return false
}

// OptionalRepeat returns the first capture with the "*" modifier.
func (p *Pattern) OptionalRepeat() (*Key, bool) {
	for _, k := range p.keys {
		if k.Modifier == "*" {
			return k, true
		}
	}
	return nil, false
}

// Regexp returns the compiled regular expression. It matches whole
// candidates and tolerates one trailing delimiter.
func (p *Pattern) Regexp() *regexp.Regexp {
	return p.re
}

// MatchString reports whether candidate matches the pattern.
func (p *Pattern) MatchString(candidate string) bool {
	return p.re.MatchString(candidate)
}

const delimiterClass = `[\/#\?]`

func buildRegexp(tokens []Token) string {
	var b strings.Builder
	b.WriteString("(?i)^")
	for _, tok := range tokens {
		if tok.Key == nil {
			b.WriteString(regexp.QuoteMeta(tok.Literal))
			continue
		}
		k := tok.Key
		prefix := regexp.QuoteMeta(k.Prefix)
		suffix := regexp.QuoteMeta(k.Suffix)

		switch {
		case k.Pattern == "":
			b.WriteString("(?:" + prefix + suffix + ")" + k.Modifier)
		case prefix != "" || suffix != "":
			if k.Repeat() {
				mod := ""
				if k.Modifier == "*" {
					mod = "?"
				}
				b.WriteString("(?:" + prefix + "((?:" + k.Pattern + ")(?:" + suffix + prefix + "(?:" + k.Pattern + "))*)" + suffix + ")" + mod)
			} else {
				b.WriteString("(?:" + prefix + "(" + k.Pattern + ")" + suffix + ")" + k.Modifier)
			}
		default:
			if k.Repeat() {
				b.WriteString("((?:" + k.Pattern + ")" + k.Modifier + ")")
			} else {
				b.WriteString("(" + k.Pattern + ")" + k.Modifier)
			}
		}
	}
	b.WriteString(delimiterClass + "?$")
	return b.String()
}
