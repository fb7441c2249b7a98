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
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/mod/semver"
	utilexec "k8s.io/utils/exec"

	"lvm2-cmd/internal/pkg/telemetry"
)

const (
	// DefaultLVMPath is where lvm is installed on most distributions.
	DefaultLVMPath = "/sbin/lvm"

	// exitCodeNotFound is the lvm exit status treated as "no such object".
	exitCodeNotFound = 5
)

var (
	// ErrUnsupportedVersion is returned when lvm is older than required.
	ErrUnsupportedVersion = errors.New("lvm version not supported")

	lvmVersionRegexp = regexp.MustCompile(`LVM version:\s*(\d+)\.(\d+)\.(\d+)`)
)

// Client runs lvm commands and decodes their reports.
//
// A Client holds no state between calls: every method spawns a fresh lvm
// process, so it is safe for concurrent use.
type Client struct {
	lvmPath    string
	exec       utilexec.Interface
	tracer     trace.Tracer
	log        logr.Logger
	registerer prometheus.Registerer
	metrics    *commandMetrics
}

var _ Manager = &Client{}

// Construct a new lvm2 client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		lvmPath: DefaultLVMPath,
		exec:    utilexec.New(),
		tracer:  telemetry.NewNoopTracerProvider().Tracer(TracerName),
		log:     logr.Discard(),
	}

	for _, opt := range opts {
		opt(c)
	}

	if !filepath.IsAbs(c.lvmPath) {
		if path, err := c.exec.LookPath(c.lvmPath); err == nil {
			c.lvmPath = path
		} else {
			c.log.V(1).Info("lvm binary not found in PATH, using as given", "lvm", c.lvmPath, "error", err.Error())
		}
	}

	if c.registerer != nil {
		m, err := newCommandMetrics(c.registerer)
		if err != nil {
			c.log.Error(err, "failed to register lvm command metrics")
		}
		c.metrics = m
	}

	return c
}

// IsSupported returns true if lvm2 is supported on the current node.
func (c *Client) IsSupported() bool {
	output, err := c.runPlain(context.Background(), "formats")
	if err != nil {
		return false
	}

	return strings.Contains(string(output), SupportedFormat)
}

// Version returns the lvm tool version in semver form, e.g. "v2.3.16" for
// "2.03.16(2)".
func (c *Client) Version(ctx context.Context) (string, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/Version")
	defer span.End()

	output, err := c.runPlain(ctx, "version")
	if err != nil {
		return "", err
	}

	v, err := parseVersion(output)
	if err != nil {
		return "", err
	}
	span.SetAttributes(attribute.String("lvm.version", v))
	return v, nil
}

// CheckVersion returns ErrUnsupportedVersion if lvm is older than minimum,
// which must be a semver string such as "v2.2.158".
func (c *Client) CheckVersion(ctx context.Context, minimum string) error {
	if !semver.IsValid(minimum) {
		return fmt.Errorf("%w: minimum version %q is not semver", ErrInvalidInput, minimum)
	}
	v, err := c.Version(ctx)
	if err != nil {
		return err
	}
	return compareVersion(v, minimum)
}

func compareVersion(found, minimum string) error {
	if !semver.IsValid(minimum) {
		return fmt.Errorf("%w: minimum version %q is not semver", ErrInvalidInput, minimum)
	}
	if semver.Compare(found, minimum) < 0 {
		return fmt.Errorf("%w: found %s, need %s", ErrUnsupportedVersion, found, minimum)
	}
	return nil
}

func parseVersion(output []byte) (string, error) {
	m := lvmVersionRegexp.FindSubmatch(output)
	if m == nil {
		return "", &MalformedOutputError{Cause: "no LVM version line", Fragment: fragment(output)}
	}
	parts := make([]string, 0, 3)
	for _, p := range m[1:] {
		n, err := strconv.Atoi(string(p))
		if err != nil {
			return "", &MalformedOutputError{Cause: "invalid version number", Fragment: string(m[0]), Err: err}
		}
		parts = append(parts, strconv.Itoa(n))
	}
	return "v" + strings.Join(parts, "."), nil
}

// mutate runs a command that produces no report. Success is signalled only by
// the exit status.
func (c *Client) mutate(ctx context.Context, subcommand string, args ...string) error {
	_, err := query[string](ctx, c, subcommand, "", args...)
	return err
}

// run invokes lvm with JSON report formatting ahead of args.
func (c *Client) run(ctx context.Context, subcommand string, args ...string) ([]byte, error) {
	cmdArgs := append([]string{subcommand, "--reportformat", "json"}, args...)
	return c.invoke(ctx, subcommand, cmdArgs, args)
}

// runPlain invokes lvm without asking for a JSON report.
func (c *Client) runPlain(ctx context.Context, subcommand string, args ...string) ([]byte, error) {
	cmdArgs := append([]string{subcommand}, args...)
	return c.invoke(ctx, subcommand, cmdArgs, args)
}

func (c *Client) invoke(ctx context.Context, subcommand string, cmdArgs, args []string) ([]byte, error) {
	ctx, span := c.tracer.Start(ctx, "lvm/run", trace.WithAttributes(
		attribute.String("cmd.name", c.lvmPath),
		attribute.StringSlice("cmd.args", cmdArgs),
	))
	defer span.End()

	log := c.log.WithValues("cmd", subcommand)
	log.V(4).Info("running lvm command", "args", args)

	cmd := c.exec.CommandContext(ctx, c.lvmPath, cmdArgs...)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.SetStdout(&stdout)
	cmd.SetStderr(&stderr)

	defer func(stdout, stderr *bytes.Buffer) {
		span.SetAttributes(
			attribute.String("cmd.stdout", strings.TrimSpace(stdout.String())),
			attribute.String("cmd.stderr", strings.TrimSpace(stderr.String())),
		)
	}(&stdout, &stderr)

	start := time.Now()
	if err := cmd.Run(); err != nil {
		// Let caller decide whether to set span status to error since it may
		// treat not found as absence.
		span.RecordError(err)

		var exitErr utilexec.ExitError
		if !errors.As(err, &exitErr) {
			c.metrics.observe(subcommand, resultInternal, start)
			log.V(2).Info("lvm command could not be started", "error", err.Error())
			return nil, &InternalError{Err: err}
		}

		code := exitErr.ExitStatus()
		msg := strings.TrimSpace(stderr.String())
		log.V(2).Info("lvm command failed", "exitCode", code, "stderr", msg)

		if code == exitCodeNotFound {
			c.metrics.observe(subcommand, resultNotFound, start)
			var resource string
			if len(args) > 0 {
				resource = args[len(args)-1]
			}
			return nil, &NotFoundError{Resource: resource}
		}

		c.metrics.observe(subcommand, resultCommand, start)
		return nil, &CommandError{
			Command:  subcommand,
			Args:     cmdArgs,
			ExitCode: code,
			Stderr:   msg,
		}
	}
	c.metrics.observe(subcommand, resultSuccess, start)

	output := stdout.Bytes()
	if !utf8.Valid(output) {
		span.SetStatus(codes.Error, "lvm output is not valid UTF-8")
		return nil, &MalformedOutputError{Cause: "output is not valid UTF-8", Fragment: fragment(bytes.ToValidUTF8(output, []byte("?")))}
	}

	span.SetStatus(codes.Ok, "lvm command succeeded")
	return output, nil
}
