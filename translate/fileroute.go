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

package translate

import (
	"net/url"

	"rivaas.dev/i18nroutes/routetree"
)

// ResolveFileRoute maps a concrete canonical address to the file route
// serving it, moving dynamic values into the query:
//
//	/community/300/slug/statistics -> /community/[communityId]/[communitySlug]/statistics
//	                                  ?communityId=300&communitySlug=slug
//
// Errors:
//   - ErrNoPageFound if no page matches the path
func (t *Translator) ResolveFileRoute(addr *Address) (*Address, error) {
	names, values, err := t.fileRoute(t.root, addr.PathParts())
	if err != nil {
		return nil, err
	}

	query := cloneValues(addr.Query)
	for k, v := range values {
		query[k] = v
	}
	return &Address{
		Scheme:   addr.Scheme,
		Host:     addr.Host,
		Pathname: routetree.JoinPath(names...),
		Query:    query,
		Hash:     addr.Hash,
	}, nil
}

func (t *Translator) fileRoute(b *routetree.Branch, parts []string) ([]string, url.Values, error) {
	if len(parts) == 0 {
		if c, ok := b.TerminalChild(); ok && c.Kind == routetree.KindOptionalCatchAll {
			return []string{c.Name}, url.Values{}, nil
		}
		return nil, url.Values{}, nil
	}

	var firstErr error
	for _, c := range forwardCandidates(b, parts[0], parts[1:]) {
		names, values, err := t.fileRoute(c.branch, c.rest)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if c.capture != nil {
			if _, ok := values[c.branch.Param]; !ok {
				values[c.branch.Param] = c.capture
			}
		}
		return append([]string{c.branch.Name}, names...), values, nil
	}
	if firstErr != nil {
		return nil, nil, firstErr
	}
	return nil, nil, routetree.NotFound("resolve file route", routetree.JoinPath(parts...))
}
