// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package config loads the lvmctl configuration file.
package config

import (
	"errors"
	"fmt"
	"os"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/validation/field"
	"sigs.k8s.io/yaml"
)

var (
	// ErrInvalid is returned when the configuration fails validation.
	ErrInvalid = errors.New("invalid configuration")
)

// Config is the lvmctl configuration. Zero values fall back to the defaults.
type Config struct {
	// LVMPath is the lvm binary. Relative names are looked up in PATH.
	LVMPath string `json:"lvmPath,omitempty"`
	// Output is the default output format: table, json or yaml.
	Output string `json:"output,omitempty"`
	// NoHeaders omits table headers.
	NoHeaders bool `json:"noHeaders,omitempty"`
	// Timeout bounds each command.
	Timeout metav1.Duration `json:"timeout,omitempty"`

	Trace   TraceConfig   `json:"trace,omitempty"`
	Metrics MetricsConfig `json:"metrics,omitempty"`
}

// TraceConfig configures span export.
type TraceConfig struct {
	// Endpoint is the OTLP gRPC collector address. Tracing is off when empty.
	Endpoint string `json:"endpoint,omitempty"`
	// SampleRate is the number of spans sampled per million.
	SampleRate int `json:"sampleRate,omitempty"`
}

// MetricsConfig configures `lvmctl metrics serve`.
type MetricsConfig struct {
	Address string `json:"address,omitempty"`
	// NodeName is added as a constant label to every collected metric.
	NodeName string `json:"nodeName,omitempty"`
}

// Load reads the configuration at path on top of the defaults. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := yaml.UnmarshalStrict(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, errs.ToAggregate())
	}
	return cfg, nil
}

// Validate checks the configuration.
func (c *Config) Validate() field.ErrorList {
	var errs field.ErrorList

	if c.LVMPath == "" {
		errs = append(errs, field.Required(field.NewPath("lvmPath"), ""))
	}
	switch c.Output {
	case "table", "json", "yaml":
	default:
		errs = append(errs, field.NotSupported(field.NewPath("output"), c.Output, []string{"table", "json", "yaml"}))
	}
	if c.Timeout.Duration < 0 {
		errs = append(errs, field.Invalid(field.NewPath("timeout"), c.Timeout.Duration.String(), "must not be negative"))
	}

	tracePath := field.NewPath("trace")
	if c.Trace.SampleRate < 0 || c.Trace.SampleRate > 1000000 {
		errs = append(errs, field.Invalid(tracePath.Child("sampleRate"), c.Trace.SampleRate, "must be between 0 and 1000000"))
	}
	return errs
}
