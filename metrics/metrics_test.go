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

package metrics

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/i18nroutes/diag"
)

func newTestRecorder(t *testing.T, opts ...Option) *Recorder {
	t.Helper()
	r, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Shutdown(context.Background()) })
	return r
}

func text(t *testing.T, r *Recorder) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	return buf.String()
}

func TestRecorder_Diagnostics(t *testing.T) {
	t.Parallel()

	r := newTestRecorder(t, WithServiceName("routes-test"))
	h := diag.Multi(nil, r)
	diag.Emit(h, diag.KindRuleDropped, "dropped", nil)
	diag.Emit(h, diag.KindRuleDropped, "dropped", nil)
	diag.Emit(h, diag.KindRedirectLoopRejected, "rejected", nil)

	out := text(t, r)
	assert.Contains(t, out, "i18nroutes_diagnostics_total")
	assert.Contains(t, out, `kind="rule_dropped"`)
	assert.Contains(t, out, `kind="redirect_loop_rejected"`)
	assert.Contains(t, out, `service_name="routes-test"`)
}

func TestRecorder_RecordBuild(t *testing.T) {
	t.Parallel()

	r := newTestRecorder(t, WithDurationBuckets(0.01, 0.1))
	ctx := context.Background()
	r.RecordBuild(ctx, 12, 4, 3*time.Millisecond, nil)
	r.RecordBuild(ctx, 0, 0, time.Millisecond, errors.New("malformed"))

	out := text(t, r)
	assert.Contains(t, out, "i18nroutes_builds_total")
	assert.Contains(t, out, `outcome="error"`)
	assert.Contains(t, out, `outcome="success"`)
	assert.Contains(t, out, "i18nroutes_build_duration_seconds_bucket")
	assert.Contains(t, out, `le="0.01"`)
	assert.Contains(t, out, `type="redirect"`)
	assert.Contains(t, out, `type="rewrite"`)
}

func TestRecorder_RecordTranslation(t *testing.T) {
	t.Parallel()

	r := newTestRecorder(t)
	r.RecordTranslation(context.Background(), DirectionLocalize, "fr", nil)
	r.RecordTranslation(context.Background(), DirectionCanonical, "fr", errors.New("no page"))

	out := text(t, r)
	assert.Contains(t, out, "i18nroutes_translations_total")
	assert.Contains(t, out, `direction="localize"`)
	assert.Contains(t, out, `direction="canonical"`)
	assert.Contains(t, out, `locale="fr"`)
}

func TestRecorder_Handler(t *testing.T) {
	t.Parallel()

	r := newTestRecorder(t)
	r.OnDiagnostic(diag.Event{Kind: diag.KindPassThrough})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `kind="link_pass_through"`)
}

func TestRecorder_Shutdown(t *testing.T) {
	t.Parallel()

	r, err := New()
	require.NoError(t, err)
	require.NoError(t, r.Shutdown(context.Background()))
	require.NoError(t, r.Shutdown(context.Background()), "second shutdown is a no-op")

	r.OnDiagnostic(diag.Event{Kind: diag.KindRuleDropped})
	r.RecordBuild(context.Background(), 1, 1, time.Millisecond, nil)
	assert.ErrorIs(t, r.WriteText(&bytes.Buffer{}), ErrShutdown)
}

func TestRecorder_Independent(t *testing.T) {
	t.Parallel()

	a := newTestRecorder(t)
	b := newTestRecorder(t)
	a.OnDiagnostic(diag.Event{Kind: diag.KindNoPageFound})

	assert.Contains(t, text(t, a), "no_page_found")
	assert.NotContains(t, text(t, b), "no_page_found")
}
