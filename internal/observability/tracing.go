// Package observability sets up OpenTelemetry tracing for the relay.
package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ServiceName is reported as service.name on every span.
const ServiceName = "relay"

// Option configures SetupTracing.
type Option func(*options)

type options struct {
	endpoint string
	insecure bool
	exporter sdktrace.SpanExporter
}

// WithOTLPEndpoint exports spans over OTLP/HTTP to host:port. Empty keeps
// spans in-process only.
func WithOTLPEndpoint(endpoint string) Option {
	return func(o *options) { o.endpoint = endpoint }
}

// WithInsecure disables TLS towards the OTLP endpoint.
func WithInsecure() Option {
	return func(o *options) { o.insecure = true }
}

// WithExporter uses exp instead of building an OTLP exporter.
func WithExporter(exp sdktrace.SpanExporter) Option {
	return func(o *options) { o.exporter = exp }
}

// SetupTracing installs a global TracerProvider and W3C propagators. The
// returned function flushes and stops the provider.
func SetupTracing(ctx context.Context, opts ...Option) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	res := resource.NewSchemaless(attribute.String("service.name", ServiceName))
	tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithResource(res)}

	exp := o.exporter
	if exp == nil && o.endpoint != "" {
		httpOpts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(o.endpoint)}
		if o.insecure {
			httpOpts = append(httpOpts, otlptracehttp.WithInsecure())
		}
		var err error
		exp, err = otlptracehttp.New(ctx, httpOpts...)
		if err != nil {
			return nil, nil, fmt.Errorf("create otlp exporter: %w", err)
		}
	}
	if exp != nil {
		tpOpts = append(tpOpts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(tpOpts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	return tp, tp.Shutdown, nil
}
