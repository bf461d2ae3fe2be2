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

// Package metrics records OpenTelemetry metrics about rule synthesis and
// address translation, exported in the Prometheus format.
//
// # Basic Usage
//
//	recorder := metrics.MustNew(metrics.WithServiceName("i18nroutes"))
//	defer recorder.Shutdown(context.Background())
//
//	start := time.Now()
//	rules, err := reroute.Build(root, i18n, reroute.WithDiagnostics(recorder))
//	recorder.RecordBuild(ctx, len(rules.Redirects), len(rules.Rewrites), time.Since(start), err)
//
//	_ = recorder.WriteText(os.Stderr)
//
// A [Recorder] is a diag.Handler: every diagnostic event it receives
// increments i18nroutes_diagnostics_total for the event kind.
//
// # Global State
//
// This package never sets the global OpenTelemetry meter provider. Every
// [Recorder] owns its meter provider and Prometheus registry, so several
// recorders can coexist in the same process.
package metrics
