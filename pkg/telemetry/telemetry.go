// Package telemetry wires OpenTelemetry tracing and metrics for both binaries.
//
// Exporter selection: OTLP over gRPC when an endpoint is configured, pretty
// stdout when requested, otherwise the global no-op providers stay in place.
// Metrics follow the same choice and are pushed on a fixed interval.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const metricInterval = 30 * time.Second

type Options struct {
	Service      string
	Env          string
	OTLPEndpoint string
	Stdout       bool

	// MetricReader, when set, is attached to the meter provider next to the
	// configured exporter.
	MetricReader sdkmetric.Reader
}

// Init installs global tracer and meter providers and returns a func that
// flushes and shuts both down. The returned func is always non-nil.
func Init(ctx context.Context, opts Options) (func(context.Context) error, error) {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	noop := func(context.Context) error { return nil }
	if opts.OTLPEndpoint == "" && !opts.Stdout && opts.MetricReader == nil {
		return noop, nil
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceNameKey.String(opts.Service),
			semconv.DeploymentEnvironmentKey.String(opts.Env),
		),
	)
	if err != nil {
		return noop, fmt.Errorf("telemetry resource: %w", err)
	}

	var shutdowns []func(context.Context) error
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	spans, err := spanExporter(ctx, opts)
	if err != nil {
		return noop, fmt.Errorf("trace exporter: %w", err)
	}
	if spans != nil {
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(spans),
			sdktrace.WithResource(res),
		)
		otel.SetTracerProvider(tp)
		shutdowns = append(shutdowns, tp.Shutdown)
	}

	readers, err := metricReaders(ctx, opts)
	if err != nil {
		_ = shutdown(ctx)
		return noop, fmt.Errorf("metric exporter: %w", err)
	}
	if len(readers) > 0 {
		mpOpts := []sdkmetric.Option{sdkmetric.WithResource(res)}
		for _, r := range readers {
			mpOpts = append(mpOpts, sdkmetric.WithReader(r))
		}
		mp := sdkmetric.NewMeterProvider(mpOpts...)
		otel.SetMeterProvider(mp)
		shutdowns = append(shutdowns, mp.Shutdown)
	}

	return shutdown, nil
}

func spanExporter(ctx context.Context, opts Options) (sdktrace.SpanExporter, error) {
	switch {
	case opts.OTLPEndpoint != "":
		return otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(opts.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
	case opts.Stdout:
		return stdouttrace.New(stdouttrace.WithPrettyPrint())
	}
	return nil, nil
}

func metricReaders(ctx context.Context, opts Options) ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader
	if opts.MetricReader != nil {
		readers = append(readers, opts.MetricReader)
	}

	var exporter sdkmetric.Exporter
	var err error
	switch {
	case opts.OTLPEndpoint != "":
		exporter, err = otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(opts.OTLPEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case opts.Stdout:
		exporter, err = stdoutmetric.New(stdoutmetric.WithPrettyPrint())
	default:
		return readers, nil
	}
	if err != nil {
		return nil, err
	}
	return append(readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(metricInterval))), nil
}

// Middleware wraps h with otelhttp, skipping probe paths.
func Middleware(service string, h http.Handler) http.Handler {
	return otelhttp.NewHandler(h, service,
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/readyz"
		}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "HTTP " + r.Method + " " + r.URL.Path
		}),
	)
}
