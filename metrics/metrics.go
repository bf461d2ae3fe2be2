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
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/i18nroutes/diag"
)

const meterName = "rivaas.dev/i18nroutes"

// Translation directions.
const (
	DirectionLocalize  = "localize"
	DirectionCanonical = "canonical"
)

// DefaultDurationBuckets are the histogram buckets of the build duration,
// in seconds.
var DefaultDurationBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// ErrShutdown is returned when exporting from a recorder that was shut down.
var ErrShutdown = errors.New("metrics recorder is shut down")

// Recorder holds the meter provider and instruments.
// All methods are safe for concurrent use.
type Recorder struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	handler       http.Handler
	logger        *slog.Logger

	diagnostics   metric.Int64Counter
	translations  metric.Int64Counter
	builds        metric.Int64Counter
	buildDuration metric.Float64Histogram
	rules         metric.Int64Gauge

	serviceName     string
	serviceVersion  string
	durationBuckets []float64
	serviceAttrs    []attribute.KeyValue

	isShuttingDown atomic.Bool
}

// Option configures a Recorder.
type Option func(*Recorder)

// WithServiceName sets the service.name attribute of every measurement.
func WithServiceName(name string) Option {
	return func(r *Recorder) {
		if name != "" {
			r.serviceName = name
		}
	}
}

// WithServiceVersion sets the service.version attribute of every measurement.
func WithServiceVersion(version string) Option {
	return func(r *Recorder) {
		if version != "" {
			r.serviceVersion = version
		}
	}
}

// WithDurationBuckets overrides [DefaultDurationBuckets].
func WithDurationBuckets(buckets ...float64) Option {
	return func(r *Recorder) {
		if len(buckets) > 0 {
			r.durationBuckets = buckets
		}
	}
}

// WithLogger sets the logger for export failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Recorder backed by a private Prometheus registry.
//
// Errors:
//   - the exporter or an instrument cannot be created
func New(opts ...Option) (*Recorder, error) {
	r := &Recorder{
		serviceName:     "i18nroutes",
		serviceVersion:  "unknown",
		durationBuckets: DefaultDurationBuckets,
		logger:          slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.serviceAttrs = []attribute.KeyValue{
		attribute.String("service.name", r.serviceName),
		attribute.String("service.version", r.serviceVersion),
	}

	r.registry = promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(r.registry))
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})

	if err := r.initializeMetrics(r.meterProvider.Meter(meterName)); err != nil {
		return nil, err
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Recorder {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("metrics initialization failed: %v", err))
	}
	return r
}

func (r *Recorder) initializeMetrics(meter metric.Meter) error {
	var err error
	if r.diagnostics, err = meter.Int64Counter(
		"i18nroutes.diagnostics",
		metric.WithDescription("Diagnostic events by kind"),
	); err != nil {
		return fmt.Errorf("failed to create diagnostics counter: %w", err)
	}
	if r.translations, err = meter.Int64Counter(
		"i18nroutes.translations",
		metric.WithDescription("Address translations by direction and outcome"),
	); err != nil {
		return fmt.Errorf("failed to create translations counter: %w", err)
	}
	if r.builds, err = meter.Int64Counter(
		"i18nroutes.builds",
		metric.WithDescription("Rule synthesis runs by outcome"),
	); err != nil {
		return fmt.Errorf("failed to create builds counter: %w", err)
	}
	if r.buildDuration, err = meter.Float64Histogram(
		"i18nroutes.build.duration",
		metric.WithDescription("Rule synthesis duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(r.durationBuckets...),
	); err != nil {
		return fmt.Errorf("failed to create build duration histogram: %w", err)
	}
	if r.rules, err = meter.Int64Gauge(
		"i18nroutes.rules",
		metric.WithDescription("Rules produced by the last synthesis, by type"),
	); err != nil {
		return fmt.Errorf("failed to create rules gauge: %w", err)
	}
	return nil
}

func (r *Recorder) attrs(extra ...attribute.KeyValue) metric.MeasurementOption {
	all := make([]attribute.KeyValue, 0, len(r.serviceAttrs)+len(extra))
	all = append(all, r.serviceAttrs...)
	return metric.WithAttributes(append(all, extra...)...)
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("outcome", "error")
	}
	return attribute.String("outcome", "success")
}

// OnDiagnostic counts e by kind.
func (r *Recorder) OnDiagnostic(e diag.Event) {
	if r.isShuttingDown.Load() {
		return
	}
	r.diagnostics.Add(context.Background(), 1, r.attrs(attribute.String("kind", string(e.Kind))))
}

// RecordBuild records a synthesis run. The rule counts are recorded only
// for successful runs.
func (r *Recorder) RecordBuild(ctx context.Context, redirects, rewrites int, d time.Duration, err error) {
	if r.isShuttingDown.Load() {
		return
	}
	r.builds.Add(ctx, 1, r.attrs(outcome(err)))
	r.buildDuration.Record(ctx, d.Seconds(), r.attrs(outcome(err)))
	if err != nil {
		return
	}
	r.rules.Record(ctx, int64(redirects), r.attrs(attribute.String("type", "redirect")))
	r.rules.Record(ctx, int64(rewrites), r.attrs(attribute.String("type", "rewrite")))
}

// RecordTranslation records one translation in direction
// ([DirectionLocalize] or [DirectionCanonical]) for locale.
func (r *Recorder) RecordTranslation(ctx context.Context, direction, locale string, err error) {
	if r.isShuttingDown.Load() {
		return
	}
	r.translations.Add(ctx, 1, r.attrs(
		attribute.String("direction", direction),
		attribute.String("locale", locale),
		outcome(err),
	))
}

// Handler serves the metrics in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return r.handler
}

// WriteText writes the current metrics in the Prometheus text format.
//
// Errors:
//   - ErrShutdown after Shutdown
//   - the registry cannot be gathered or w fails
func (r *Recorder) WriteText(w io.Writer) error {
	if r.isShuttingDown.Load() {
		return ErrShutdown
	}
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// Shutdown stops the meter provider. Later measurements are dropped.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if !r.isShuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	if err := r.meterProvider.Shutdown(ctx); err != nil {
		r.logger.Error("metrics shutdown failed", "error", err)
		return fmt.Errorf("shutdown meter provider: %w", err)
	}
	return nil
}
