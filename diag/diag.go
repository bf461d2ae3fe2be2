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

// Package diag defines the diagnostic events emitted while translating
// addresses and synthesizing redirect and rewrite rules.
//
// Diagnostic events are optional: translation and synthesis produce the
// same results whether they are collected or not. They give observability
// systems visibility into decisions such as a rejected redirect merge or a
// link passed through untranslated.
package diag

import "log/slog"

// Event represents a diagnostic or anomaly.
type Event struct {
	Kind    Kind
	Message string
	Fields  map[string]any // Structured context
}

// Kind categorizes diagnostic events.
type Kind string

const (
	// Synthesis diagnostics
	KindRedirectLoopRejected Kind = "redirect_loop_rejected"
	KindRuleDropped          Kind = "rule_dropped"
	KindPageSkipped          Kind = "page_skipped"

	// Translation diagnostics
	KindNoPageFound     Kind = "no_page_found"
	KindExternalAddress Kind = "external_address"
	KindPassThrough     Kind = "link_pass_through"

	// Tree building diagnostics
	KindRoutesFileIgnored Kind = "routes_file_ignored"
)

// Handler receives diagnostic events.
// Implementations may log, emit metrics, or ignore them.
//
// Example with logging:
//
//	handler := diag.HandlerFunc(func(e diag.Event) {
//	    slog.Warn(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	tr, err := translate.New(root, i18n, translate.WithDiagnostics(handler))
type Handler interface {
	OnDiagnostic(Event)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(Event)

// OnDiagnostic calls f(e).
func (f HandlerFunc) OnDiagnostic(e Event) {
	f(e)
}

// Emit sends e to h. A nil handler drops the event.
func Emit(h Handler, kind Kind, msg string, fields map[string]any) {
	if h == nil {
		return
	}
	h.OnDiagnostic(Event{Kind: kind, Message: msg, Fields: fields})
}

// Multi fans events out to every non-nil handler, in order.
func Multi(handlers ...Handler) Handler {
	list := make([]Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			list = append(list, h)
		}
	}
	return HandlerFunc(func(e Event) {
		for _, h := range list {
			h.OnDiagnostic(e)
		}
	})
}

// LogHandler returns a Handler writing every event to logger at debug level.
func LogHandler(logger *slog.Logger) Handler {
	return HandlerFunc(func(e Event) {
		attrs := make([]any, 0, 2+2*len(e.Fields))
		attrs = append(attrs, "kind", string(e.Kind))
		for k, v := range e.Fields {
			attrs = append(attrs, k, v)
		}
		logger.Debug(e.Message, attrs...)
	})
}
