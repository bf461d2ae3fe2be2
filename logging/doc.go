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

// Package logging configures the structured loggers of the i18nroutes tool.
//
// Every package of the module accepts a plain [*slog.Logger]; this package
// builds one from the configured handler type and level:
//
//	logger := logging.MustNew(
//	    logging.WithConsoleHandler(),
//	    logging.WithLevel(logging.LevelDebug),
//	)
//	rules, err := reroute.Build(root, i18n, reroute.WithLogger(logger.Logger()))
//
// Three handlers are available: JSON, key=value text and a colored console
// handler for terminals. The level can be changed at runtime with
// [Logger.SetLevel].
//
// # Diagnostics
//
// [Logger.Diagnostics] returns a diag.Handler that writes the diagnostics
// raised while building rules or translating addresses to the log.
//
// # Testing
//
// [NewTestLogger] and [ParseJSONLogEntries] capture and decode log output:
//
//	logger, buf := logging.NewTestLogger()
//	// ...
//	entries, err := logging.ParseJSONLogEntries(buf)
package logging
