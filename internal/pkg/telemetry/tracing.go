// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package telemetry builds the OpenTelemetry tracer provider used by lvmctl.
package telemetry

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"k8s.io/component-base/tracing"
	tracingv1 "k8s.io/component-base/tracing/api/v1"

	"lvm2-cmd/internal/pkg/version"
)

// ServiceName is the service.name resource attribute of every span.
const ServiceName = "lvmctl"

// Options configures span export.
type Options struct {
	// ServiceInstanceID identifies this process in traces. lvmctl uses the
	// host name.
	ServiceInstanceID string
	// Endpoint is the OTLP gRPC collector address.
	Endpoint string
	// SampleRate is the number of spans sampled per million.
	SampleRate int
}

// Enabled reports whether spans are exported. Both an endpoint and a
// positive sample rate are needed.
func (o Options) Enabled() bool {
	return o.Endpoint != "" && o.SampleRate > 0
}

// tracingConfig returns nil when tracing is disabled, which makes
// tracing.NewProvider return a noop provider.
func (o Options) tracingConfig() *tracingv1.TracingConfiguration {
	if !o.Enabled() {
		return nil
	}
	rate := int32(min(o.SampleRate, 1000000))
	return &tracingv1.TracingConfiguration{
		Endpoint:               &o.Endpoint,
		SamplingRatePerMillion: &rate,
	}
}

func (o Options) resourceOptions() []resource.Option {
	return []resource.Option{
		resource.WithFromEnv(),
		resource.WithProcess(),
		resource.WithOS(),
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(ServiceName),
			semconv.ServiceInstanceIDKey.String(o.ServiceInstanceID),
		),
		resource.WithDetectors(version.GetInfo()),
	}
}

// Provider owns the tracer provider for the lifetime of a command.
type Provider struct {
	tp tracing.TracerProvider
}

// New creates the tracer provider and installs it as the global OTel
// provider. It is a noop unless opts are Enabled.
func New(ctx context.Context, log logr.Logger, opts Options) (*Provider, error) {
	var resOpts []resource.Option
	if opts.Enabled() {
		log.V(2).Info("setting up trace exporter", "endpoint", opts.Endpoint, "rate", opts.SampleRate)
		resOpts = opts.resourceOptions()
	} else {
		log.V(2).Info("trace endpoint or sample rate not set, tracing disabled")
	}

	tp, err := tracing.NewProvider(ctx, opts.tracingConfig(), []otlptracegrpc.Option{}, resOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracer provider: %w", err)
	}

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return &Provider{tp: tp}, nil
}

// TraceProvider returns the OpenTelemetry TracerProvider. It should be used to
// create tracers for the application.
func (p *Provider) TraceProvider() tracing.TracerProvider {
	return p.tp
}

// Shutdown flushes pending spans. It is safe to call on a nil Provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.tp == nil {
		return nil
	}
	if err := p.tp.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown trace provider: %w", err)
	}
	return nil
}

// NewNoopTracerProvider creates a new no-op tracing provider.
func NewNoopTracerProvider() tracing.TracerProvider {
	return tracing.NewNoopTracerProvider()
}
