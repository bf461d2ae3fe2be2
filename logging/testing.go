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

package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// LogEntry is a decoded JSON log entry.
type LogEntry struct {
	Time    time.Time
	Level   string
	Message string
	Attrs   map[string]any
}

// NewTestLogger creates a debug [Logger] writing JSON into the returned
// buffer, for use with [ParseJSONLogEntries].
func NewTestLogger() (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := MustNew(
		WithJSONHandler(),
		WithOutput(buf),
		WithLevel(LevelDebug),
	)
	return logger, buf
}

// ParseJSONLogEntries decodes the JSON entries in buf without consuming it.
func ParseJSONLogEntries(buf *bytes.Buffer) ([]LogEntry, error) {
	var entries []LogEntry
	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var raw map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			return nil, err
		}

		entry := LogEntry{Attrs: make(map[string]any)}
		for k, v := range raw {
			switch k {
			case slogTimeKey:
				if s, ok := v.(string); ok {
					entry.Time, _ = time.Parse(time.RFC3339Nano, s)
				}
			case slogLevelKey:
				entry.Level = fmt.Sprint(v)
			case slogMessageKey:
				entry.Message = fmt.Sprint(v)
			default:
				entry.Attrs[k] = v
			}
		}
		entries = append(entries, entry)
	}
	return entries, scanner.Err()
}

const (
	slogTimeKey    = "time"
	slogLevelKey   = "level"
	slogMessageKey = "msg"
)

// TestHelper bundles a test logger with its output.
type TestHelper struct {
	Logger *Logger
	Buffer *bytes.Buffer
}

// NewTestHelper creates a [TestHelper] logging JSON at debug level.
// Additional options are applied after the defaults.
func NewTestHelper(t *testing.T, opts ...Option) *TestHelper {
	t.Helper()

	buf := &bytes.Buffer{}
	all := append([]Option{WithJSONHandler(), WithOutput(buf), WithLevel(LevelDebug)}, opts...)
	logger, err := New(all...)
	require.NoError(t, err)
	return &TestHelper{Logger: logger, Buffer: buf}
}

// Logs returns all parsed log entries.
func (th *TestHelper) Logs() ([]LogEntry, error) {
	return ParseJSONLogEntries(th.Buffer)
}

// ContainsLog reports whether an entry has the message msg.
func (th *TestHelper) ContainsLog(msg string) bool {
	entries, err := th.Logs()
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Message == msg {
			return true
		}
	}
	return false
}

// CountLevel returns the number of entries at level ("DEBUG", "INFO", ...).
func (th *TestHelper) CountLevel(level string) int {
	entries, err := th.Logs()
	if err != nil {
		return 0
	}
	n := 0
	for _, e := range entries {
		if e.Level == level {
			n++
		}
	}
	return n
}

// AssertLog fails t unless an entry has the level, message and attributes
// given. Attribute values are compared by their formatted form, so 3 and
// the decoded 3.0 are equal.
func (th *TestHelper) AssertLog(t *testing.T, level, msg string, attrs map[string]any) {
	t.Helper()

	entries, err := th.Logs()
	require.NoError(t, err, "failed to parse logs")

	for _, e := range entries {
		if e.Level != level || e.Message != msg {
			continue
		}
		match := true
		for k, want := range attrs {
			got, ok := e.Attrs[k]
			if !ok || fmt.Sprint(got) != fmt.Sprint(want) {
				match = false
				break
			}
		}
		if match {
			return
		}
	}
	require.Fail(t, "log entry not found", "level=%s msg=%s attrs=%v", level, msg, attrs)
}
