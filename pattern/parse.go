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
	"strconv"
	"strings"
)

// DefaultKeyPattern is the regex a key matches when it declares none.
const DefaultKeyPattern = `[^\/#\?]+?`

// prefixes are the characters that become a key's prefix when they
// directly precede it.
const prefixes = "./"

type lexKind uint8

const (
	lexChar lexKind = iota
	lexEscaped
	lexName
	lexPattern
	lexModifier
	lexOpen
	lexClose
	lexEnd
)

func (k lexKind) String() string {
	switch k {
	case lexChar:
		return "CHAR"
	case lexEscaped:
		return "ESCAPED_CHAR"
	case lexName:
		return "NAME"
	case lexPattern:
		return "PATTERN"
	case lexModifier:
		return "MODIFIER"
	case lexOpen:
		return "OPEN"
	case lexClose:
		return "CLOSE"
	default:
		return "END"
	}
}

type lexToken struct {
	kind  lexKind
	index int
	value string
}

func isNameByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func lex(src string) ([]lexToken, error) {
	var tokens []lexToken
	i := 0
	for i < len(src) {
		c := src[i]
		switch c {
		case '*', '+', '?':
			tokens = append(tokens, lexToken{lexModifier, i, string(c)})
			i++
		case '\\':
			if i+1 >= len(src) {
				return nil, syntaxError(src, i, "trailing escape character")
			}
			tokens = append(tokens, lexToken{lexEscaped, i, src[i+1 : i+2]})
			i += 2
		case '{':
			tokens = append(tokens, lexToken{lexOpen, i, "{"})
			i++
		case '}':
			tokens = append(tokens, lexToken{lexClose, i, "}"})
			i++
		case ':':
			j := i + 1
			for j < len(src) && isNameByte(src[j]) {
				j++
			}
			if j == i+1 {
				return nil, syntaxError(src, i, "missing parameter name")
			}
			tokens = append(tokens, lexToken{lexName, i, src[i+1 : j]})
			i = j
		case '(':
			pat, next, err := lexGroup(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, lexToken{lexPattern, i, pat})
			i = next
		default:
			tokens = append(tokens, lexToken{lexChar, i, string(c)})
			i++
		}
	}
	tokens = append(tokens, lexToken{lexEnd, i, ""})
	return tokens, nil
}

// lexGroup reads a parenthesised regex starting at src[start] == '(' and
// returns its body and the index following the closing parenthesis.
// Nested groups must be non-capturing.
func lexGroup(src string, start int) (string, int, error) {
	depth := 1
	var b strings.Builder
	j := start + 1
	if j < len(src) && src[j] == '?' {
		return "", 0, syntaxError(src, j, `pattern cannot start with "?"`)
	}
	for j < len(src) {
		c := src[j]
		if c == '\\' {
			if j+1 >= len(src) {
				break
			}
			b.WriteString(src[j : j+2])
			j += 2
			continue
		}
		if c == ')' {
			depth--
			if depth == 0 {
				j++
				break
			}
		} else if c == '(' {
			depth++
			if j+1 >= len(src) || src[j+1] != '?' {
				return "", 0, syntaxError(src, j, "capturing groups are not allowed")
			}
		}
		b.WriteByte(c)
		j++
	}
	if depth != 0 {
		return "", 0, syntaxError(src, start, "unbalanced pattern")
	}
	if b.Len() == 0 {
		return "", 0, syntaxError(src, start, "missing pattern")
	}
	return b.String(), j, nil
}

func syntaxError(src string, index int, msg string) error {
	return fmt.Errorf("%w: %s at %d in %q", ErrSyntax, msg, index, src)
}

type parser struct {
	src    string
	tokens []lexToken
	pos    int
}

func (p *parser) try(kind lexKind) (string, bool) {
	if p.pos < len(p.tokens) && p.tokens[p.pos].kind == kind {
		v := p.tokens[p.pos].value
		p.pos++
		return v, true
	}
	return "", false
}

func (p *parser) must(kind lexKind) error {
	if _, ok := p.try(kind); ok {
		return nil
	}
	next := p.tokens[p.pos]
	return syntaxError(p.src, next.index, fmt.Sprintf("unexpected %s, expected %s", next.kind, kind))
}

func (p *parser) text() string {
	var b strings.Builder
	for {
		if v, ok := p.try(lexChar); ok {
			b.WriteString(v)
			continue
		}
		if v, ok := p.try(lexEscaped); ok {
			b.WriteString(v)
			continue
		}
		return b.String()
	}
}

// parse turns src into a token list of literal strings and keys.
func parse(src string) ([]Token, error) {
	lexed, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, tokens: lexed}

	var (
		tokens []Token
		path   strings.Builder
		key    int
	)
	flush := func() {
		if path.Len() > 0 {
			tokens = append(tokens, Token{Literal: path.String()})
			path.Reset()
		}
	}

	for p.pos < len(p.tokens) {
		char, hasChar := p.try(lexChar)
		name, hasName := p.try(lexName)
		pat, hasPat := p.try(lexPattern)

		if hasName || hasPat {
			prefix := char
			if !strings.Contains(prefixes, prefix) {
				path.WriteString(prefix)
				prefix = ""
			}
			flush()
			if !hasName {
				name = strconv.Itoa(key)
				key++
			}
			if !hasPat {
				pat = DefaultKeyPattern
			}
			mod, _ := p.try(lexModifier)
			tokens = append(tokens, Token{Key: &Key{
				Name:     name,
				Prefix:   prefix,
				Pattern:  pat,
				Modifier: mod,
			}})
			continue
		}

		if hasChar {
			path.WriteString(char)
			continue
		}
		if v, ok := p.try(lexEscaped); ok {
			path.WriteString(v)
			continue
		}
		flush()

		if _, ok := p.try(lexOpen); ok {
			prefix := p.text()
			name, hasName := p.try(lexName)
			pat, hasPat := p.try(lexPattern)
			suffix := p.text()
			if err := p.must(lexClose); err != nil {
				return nil, err
			}
			switch {
			case !hasName && hasPat:
				name = strconv.Itoa(key)
				key++
			case hasName && !hasPat:
				pat = DefaultKeyPattern
			}
			mod, _ := p.try(lexModifier)
			tokens = append(tokens, Token{Key: &Key{
				Name:     name,
				Prefix:   prefix,
				Suffix:   suffix,
				Pattern:  pat,
				Modifier: mod,
			}})
			continue
		}

		if err := p.must(lexEnd); err != nil {
			return nil, err
		}
	}
	return tokens, nil
}
