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
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput indicates that the route tree or a path argument
	// violates the data model invariants. It is a fatal input defect.
	ErrMalformedInput = errors.New("malformed input")

	// ErrNoPageFound indicates that a path does not match any page of the tree.
	ErrNoPageFound = errors.New("no page found")

	// ErrMissingDefaultPath indicates that a segment has no "default" path value.
	ErrMissingDefaultPath = errors.New("missing default path")

	// ErrMultipleCatchAll indicates that a branch has more than one catch-all child.
	ErrMultipleCatchAll = errors.New("more than one catch-all child")

	// ErrNoIndex indicates that a folder addressed exactly has neither an
	// index page nor an optional catch-all page.
	ErrNoIndex = errors.New("no index file found")
)

// Error describes a route tree failure with the operation and the path it
// occurred on. It wraps one of the package sentinels, so callers classify
// failures with errors.Is(err, ErrNoPageFound) or errors.Is(err, ErrMalformedInput).
type Error struct {
	Op   string // Operation being performed (e.g. "localize", "canonicalize", "validate")
	Path string // Path or segment the error relates to
	Err  error  // Underlying error
}

// Error returns a formatted error message.
func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("routetree: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("routetree: %s %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewError creates an *Error for the operation and path.
func NewError(op, path string, err error) *Error {
	return &Error{Op: op, Path: path, Err: err}
}

// Malformed wraps cause as an ErrMalformedInput failure.
func Malformed(op, path string, cause error) *Error {
	if cause == nil {
		return NewError(op, path, ErrMalformedInput)
	}
	return NewError(op, path, fmt.Errorf("%w: %w", ErrMalformedInput, cause))
}

// NotFound creates an ErrNoPageFound failure for path.
func NotFound(op, path string) *Error {
	return NewError(op, path, ErrNoPageFound)
}
