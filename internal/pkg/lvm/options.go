// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

/* SPDX-License-Identifier: Apache-2.0
 *
 * Copyright 2023 Damian Peckett <damian@pecke.tt>.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package lvm

import (
	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"
	utilexec "k8s.io/utils/exec"
)

// TracerName is the instrumentation name used for lvm spans.
const TracerName = "lvm2-cmd/internal/pkg/lvm"

// ClientOption is an option for configuring the lvm2 client.
type ClientOption func(*Client)

// Set the path to the lvm executable. Relative names are resolved against
// PATH when the client is constructed.
func WithLVM(path string) ClientOption {
	return func(c *Client) {
		c.lvmPath = path
	}
}

// Set the process executor. Tests use k8s.io/utils/exec/testing.
func WithExec(e utilexec.Interface) ClientOption {
	return func(c *Client) {
		c.exec = e
	}
}

// Set the tracer.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *Client) {
		c.tracer = tp.Tracer(TracerName)
	}
}

// Set the logger.
func WithLogger(log logr.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// Register command duration metrics with reg.
func WithMetricsRegisterer(reg prometheus.Registerer) ClientOption {
	return func(c *Client) {
		c.registerer = reg
	}
}
