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

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/i18nroutes/reroute"
	"rivaas.dev/i18nroutes/routetree"
)

const testConfig = `
locales: [en, fr]
defaultLocale: en
log:
  level: warn
`

// project writes a project with a pages directory and a configuration
// file, returning its directory.
func project(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"i18nroutes.yaml":                  testConfig,
		"src/pages/index.tsx":              "",
		"src/pages/about.tsx":              "",
		"src/pages/_routes.json":           `{"about": {"fr": "a-propos"}}`,
		"src/pages/community/index.tsx":    "",
		"src/pages/community/[id].tsx":     "",
		"src/pages/community/_routes.yaml": "\"/\":\n  fr: communaute\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
	return dir
}

func run(t *testing.T, dir string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--dir", dir, "--config", filepath.Join(dir, "i18nroutes.yaml")}, args...)
	err := execute(context.Background(), &stdout, &stderr, args)
	return stdout.String(), stderr.String(), err
}

func TestReroutes_JSON(t *testing.T) {
	t.Parallel()

	out, _, err := run(t, project(t), "reroutes")
	require.NoError(t, err)

	var rules reroute.ReRoutes
	require.NoError(t, json.Unmarshal([]byte(out), &rules))

	assert.Contains(t, rules.Redirects, reroute.Redirect{Source: "/fr/about", Destination: "/fr/a-propos"})
	assert.Contains(t, rules.Redirects, reroute.Redirect{Source: "/en/a-propos", Destination: "/about"})
	assert.Contains(t, rules.Rewrites, reroute.Rewrite{Source: "/a-propos", Destination: "/about"})
	assert.Contains(t, rules.Rewrites, reroute.Rewrite{Source: "/communaute/:id", Destination: "/community/:id"})
}

func TestReroutes_Formats(t *testing.T) {
	t.Parallel()

	dir := project(t)

	out, _, err := run(t, dir, "reroutes", "--format", "yaml")
	require.NoError(t, err)
	var rules reroute.ReRoutes
	require.NoError(t, yaml.Unmarshal([]byte(out), &rules))
	assert.Contains(t, rules.Rewrites, reroute.Rewrite{Source: "/a-propos", Destination: "/about"})

	out, _, err = run(t, dir, "reroutes", "-f", "toml")
	require.NoError(t, err)
	assert.Contains(t, out, "[[rewrites]]")
	assert.Contains(t, out, `source = "/a-propos"`)

	_, _, err = run(t, dir, "reroutes", "--format", "xml")
	assert.ErrorContains(t, err, "unsupported format")
}

func TestLocalize(t *testing.T) {
	t.Parallel()

	dir := project(t)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "default locale", args: []string{"localize", "/about"}, want: "/about"},
		{name: "fr", args: []string{"localize", "/about", "--locale", "fr"}, want: "/fr/a-propos"},
		{name: "dynamic", args: []string{"localize", "/community/42?x=1", "-l", "fr"}, want: "/fr/communaute/42?x=1"},
		{name: "no prefix", args: []string{"localize", "/community", "-l", "fr", "--no-prefix"}, want: "/communaute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, _, err := run(t, dir, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}

	_, _, err := run(t, dir, "localize", "/about", "--locale", "de")
	assert.ErrorContains(t, err, "unknown locale")

	_, _, err = run(t, dir, "localize", "/missing", "--locale", "fr")
	assert.ErrorIs(t, err, routetree.ErrNoPageFound)

	_, _, err = run(t, dir, "localize")
	assert.Error(t, err)
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	dir := project(t)

	out, _, err := run(t, dir, "canonical", "/fr/a-propos")
	require.NoError(t, err)
	assert.Equal(t, "/about", strings.TrimSpace(out))

	out, _, err = run(t, dir, "canonical", "/communaute/42", "--locale", "fr")
	require.NoError(t, err)
	assert.Equal(t, "/community/[id]?id=42", strings.TrimSpace(out))

	_, _, err = run(t, dir, "canonical", "/fr/nope")
	assert.ErrorIs(t, err, routetree.ErrNoPageFound)
}

func TestTree_Snapshot(t *testing.T) {
	t.Parallel()

	dir := project(t)
	out, _, err := run(t, dir, "tree")
	require.NoError(t, err)

	snap, err := routetree.ReadSnapshot(strings.NewReader(out))
	require.NoError(t, err)
	about, ok := snap.Tree.Child("about")
	require.True(t, ok)
	assert.Equal(t, "a-propos", about.Paths["fr"])

	// The snapshot replaces the pages directory.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tree.json"), []byte(out), 0o600))
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "src")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "i18nroutes.yaml"), []byte(testConfig+"routesTree: tree.json\n"), 0o600))

	got, _, err := run(t, dir, "localize", "/about", "-l", "fr")
	require.NoError(t, err)
	assert.Equal(t, "/fr/a-propos", strings.TrimSpace(got))
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	dir := project(t)

	_, stderr, err := run(t, dir, "--log-format", "json", "--log-level", "debug", "--metrics", "reroutes")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"rules built"`)
	assert.Contains(t, stderr, `"msg":"configuration loaded"`)
	assert.Contains(t, stderr, "i18nroutes_builds_total")
	assert.Contains(t, stderr, "i18nroutes_rules")

	_, _, err = run(t, dir, "--log-level", "trace", "tree")
	assert.Error(t, err)

	_, _, err = run(t, t.TempDir(), "tree")
	assert.Error(t, err, "missing configuration file")
}

func TestMetrics_FailedCommand(t *testing.T) {
	t.Parallel()

	_, stderr, err := run(t, project(t), "--metrics", "localize", "/unknown", "-l", "fr")
	require.ErrorIs(t, err, routetree.ErrNoPageFound)
	assert.Contains(t, stderr, "i18nroutes_translations_total")
	assert.Contains(t, stderr, `outcome="error"`)
}

func TestMissingPagesDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "i18nroutes.yaml"), []byte(testConfig), 0o600))

	_, _, err := run(t, dir, "tree")
	assert.ErrorContains(t, err, "no pages directory found")
}
