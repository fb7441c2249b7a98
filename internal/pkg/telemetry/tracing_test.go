// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package telemetry

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	"k8s.io/component-base/tracing"
)

func TestNewNoop(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{
			name: "without endpoint",
			opts: Options{SampleRate: 1},
		},
		{
			name: "without sample rate",
			opts: Options{Endpoint: "otel-collector.observability.svc.cluster.local:4317"},
		},
		{
			name: "negative sample rate",
			opts: Options{Endpoint: "localhost:4317", SampleRate: -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.Enabled() {
				t.Fatalf("Enabled() = true for %+v", tt.opts)
			}
			if cfg := tt.opts.tracingConfig(); cfg != nil {
				t.Fatalf("tracingConfig() = %+v, want nil", cfg)
			}
			p, err := New(context.Background(), logr.Discard(), tt.opts)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if !reflect.DeepEqual(p.TraceProvider(), tracing.NewNoopTracerProvider()) {
				t.Errorf("expected noop tracer provider, got %v", p.TraceProvider())
			}
			if err := p.Shutdown(context.Background()); err != nil {
				t.Errorf("Shutdown() error = %v", err)
			}
		})
	}
}

func TestTracingConfig(t *testing.T) {
	tests := []struct {
		rate int
		want int32
	}{
		{rate: 1, want: 1},
		{rate: 1000000, want: 1000000},
		{rate: 5000000, want: 1000000},
	}
	for _, tt := range tests {
		cfg := Options{Endpoint: "localhost:4317", SampleRate: tt.rate}.tracingConfig()
		if cfg == nil {
			t.Fatalf("tracingConfig() = nil for rate %d", tt.rate)
		}
		if *cfg.Endpoint != "localhost:4317" || *cfg.SamplingRatePerMillion != tt.want {
			t.Errorf("tracingConfig() = %s @ %d, want rate %d", *cfg.Endpoint, *cfg.SamplingRatePerMillion, tt.want)
		}
	}
}

func TestResourceOptions(t *testing.T) {
	res, err := resource.New(context.Background(), Options{ServiceInstanceID: "node-1"}.resourceOptions()...)
	// Host and process detectors may only partially succeed in containers.
	if err != nil && !errors.Is(err, resource.ErrPartialResource) {
		t.Fatalf("resource.New() error = %v", err)
	}
	for key, want := range map[attribute.Key]string{
		"service.name":        ServiceName,
		"service.instance.id": "node-1",
	} {
		v, ok := res.Set().Value(key)
		if !ok || v.AsString() != want {
			t.Errorf("%s = %q, want %q", key, v.AsString(), want)
		}
	}
	if _, ok := res.Set().Value("service.version"); !ok {
		t.Errorf("expected version attributes on the resource")
	}
}

func TestShutdownNil(t *testing.T) {
	var p *Provider
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() on nil provider error = %v", err)
	}
}
