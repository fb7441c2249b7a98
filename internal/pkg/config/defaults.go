// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package config

import (
	"time"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"

	"lvm2-cmd/internal/pkg/lvm"
)

// Defaults are un-exported so that they can't be used directly. Since they are
// settable via config, the config values must be used instead.
const (
	defaultOutput         = "table"
	defaultTimeout        = 2 * time.Minute
	defaultMetricsAddress = ":9100"
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LVMPath: lvm.DefaultLVMPath,
		Output:  defaultOutput,
		Timeout: metav1.Duration{Duration: defaultTimeout},
		Metrics: MetricsConfig{
			Address: defaultMetricsAddress,
		},
	}
}
