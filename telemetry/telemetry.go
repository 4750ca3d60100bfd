// Package telemetry sets up tracing and metrics for outbound management and agent service calls.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/awantoch/foundryflow/config"
	"github.com/awantoch/foundryflow/constants"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
)

// ShutdownFunc flushes and stops the tracer provider.
type ShutdownFunc func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// Init installs a global tracer provider according to cfg.Tracing.
// Supported exporters: "stdout", "otlp". With no tracing config nothing is installed.
func Init(ctx context.Context, cfg *config.Config) (ShutdownFunc, error) {
	if cfg == nil || cfg.Tracing == nil || cfg.Tracing.Exporter == "" {
		return noopShutdown, nil
	}
	serviceName := constants.DefaultServiceName
	if cfg.Tracing.ServiceName != "" {
		serviceName = cfg.Tracing.ServiceName
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		return nil, err
	}

	var exp sdktrace.SpanExporter
	switch cfg.Tracing.Exporter {
	case constants.TracingExporterOTLP:
		var opts []otlptracehttp.Option
		if cfg.Tracing.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Tracing.Endpoint))
		}
		exp, err = otlptracehttp.New(ctx, opts...)
	case constants.TracingExporterStdout:
		exp, err = stdouttrace.New(stdouttrace.WithWriter(os.Stderr), stdouttrace.WithPrettyPrint())
	default:
		return nil, errors.New("unknown tracing exporter: " + cfg.Tracing.Exporter)
	}
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// Metrics counts outbound calls and agent upserts on a private registry.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	upsertsTotal    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foundryflow_http_requests_total",
				Help: "Total number of outbound HTTP requests.",
			},
			[]string{"client", "method", "code"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "foundryflow_http_request_duration_seconds",
				Help:    "Duration of outbound HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"client", "method"},
		),
		upsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "foundryflow_agent_upserts_total",
				Help: "Agent upserts by resulting action.",
			},
			[]string{"action"},
		),
	}
	m.registry.MustRegister(m.requestsTotal, m.requestDuration, m.upsertsTotal)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// InstrumentTransport wraps base with tracing and request metrics. base may be nil.
func (m *Metrics) InstrumentTransport(name string, base http.RoundTripper) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	traced := otelhttp.NewTransport(base)
	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		start := time.Now()
		resp, err := traced.RoundTrip(req)
		code := "error"
		if err == nil {
			code = strconv.Itoa(resp.StatusCode)
		}
		m.requestsTotal.WithLabelValues(name, req.Method, code).Inc()
		m.requestDuration.WithLabelValues(name, req.Method).Observe(time.Since(start).Seconds())
		return resp, err
	})
}

// RecordUpsert counts one agent upsert.
func (m *Metrics) RecordUpsert(action string) {
	m.upsertsTotal.WithLabelValues(action).Inc()
}

// Push sends the collected metrics to a Pushgateway. An empty url is a no-op.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if job == "" {
		job = constants.DefaultServiceName
	}
	return push.New(url, job).Gatherer(m.registry).PushContext(ctx)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
