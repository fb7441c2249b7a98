// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package lvm

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess  = "success"
	resultNotFound = "not_found"
	resultCommand  = "command_error"
	resultInternal = "internal_error"
)

// commandMetrics records how long lvm invocations take. A nil receiver is a
// no-op so the client works without a registry.
type commandMetrics struct {
	duration *prometheus.HistogramVec
}

func newCommandMetrics(reg prometheus.Registerer) (*commandMetrics, error) {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lvm",
		Name:      "command_duration_seconds",
		Help:      "Duration of lvm command invocations.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"subcommand", "result"})

	if err := reg.Register(duration); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			return nil, err
		}
		existing, ok := are.ExistingCollector.(*prometheus.HistogramVec)
		if !ok {
			return nil, err
		}
		duration = existing
	}
	return &commandMetrics{duration: duration}, nil
}

func (m *commandMetrics) observe(subcommand, result string, start time.Time) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(subcommand, result).Observe(time.Since(start).Seconds())
}
