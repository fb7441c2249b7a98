// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

// Package cli implements the lvmctl command tree.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"
	"k8s.io/klog/v2/textlogger"

	"lvm2-cmd/internal/pkg/config"
	"lvm2-cmd/internal/pkg/lvm"
	"lvm2-cmd/internal/pkg/output"
	"lvm2-cmd/internal/pkg/sys"
	"lvm2-cmd/internal/pkg/telemetry"
)

// tracerName is the instrumentation name of command spans.
const tracerName = "lvm2-cmd/internal/cli"

// ManagerFactory builds the lvm manager once flags and configuration are
// resolved.
type ManagerFactory func(cfg *config.Config, tp trace.TracerProvider, log logr.Logger, reg prometheus.Registerer) lvm.Manager

// NewClientManager returns an lvm.Client configured from cfg.
func NewClientManager(cfg *config.Config, tp trace.TracerProvider, log logr.Logger, reg prometheus.Registerer) lvm.Manager {
	return lvm.NewClient(
		lvm.WithLVM(cfg.LVMPath),
		lvm.WithTracerProvider(tp),
		lvm.WithLogger(log.WithName("lvm")),
		lvm.WithMetricsRegisterer(reg),
	)
}

// Option configures the root command.
type Option func(*app)

// WithManagerFactory replaces the factory used to build the lvm manager.
func WithManagerFactory(f ManagerFactory) Option {
	return func(a *app) {
		a.newManager = f
	}
}

// WithDeviceUtils replaces the block device checks run before vg create.
func WithDeviceUtils(u sys.Utils) Option {
	return func(a *app) {
		a.devices = u
	}
}

// WithManager makes every command use m.
func WithManager(m lvm.Manager) Option {
	return WithManagerFactory(func(*config.Config, trace.TracerProvider, logr.Logger, prometheus.Registerer) lvm.Manager {
		return m
	})
}

// app holds the state shared by all commands of one invocation.
type app struct {
	newManager ManagerFactory
	devices    sys.Utils
	logConfig  *textlogger.Config

	// Flags.
	configFile      string
	lvmPath         string
	outputFormat    string
	noHeaders       bool
	timeout         time.Duration
	traceAddress    string
	traceSampleRate int

	// Resolved in PersistentPreRunE.
	cfg      *config.Config
	log      logr.Logger
	registry *prometheus.Registry
	tel      *telemetry.Provider
	tracer   trace.Tracer
	manager  lvm.Manager
}

// NewRootCommand returns the lvmctl command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	cmd, _ := newRootCommand(opts...)
	return cmd
}

func newRootCommand(opts ...Option) (*cobra.Command, *app) {
	a := &app{
		newManager: NewClientManager,
		devices:    sys.New(),
		logConfig:  textlogger.NewConfig(textlogger.VerbosityFlagName("v")),
	}
	for _, opt := range opts {
		opt(a)
	}

	cmd := &cobra.Command{
		Use:   "lvmctl",
		Short: "Inspect and manage lvm volume groups and logical volumes",
		Long: `lvmctl is a command line front end for the lvm2 tools.

It lists, creates and removes volume groups and logical volumes, and can
serve their state as prometheus metrics.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	fs := cmd.PersistentFlags()
	fs.StringVar(&a.configFile, "config", "", "Path to the lvmctl configuration file.")
	fs.StringVar(&a.lvmPath, "lvm", "", "The lvm binary. Overrides lvmPath from the configuration file.")
	fs.StringVarP(&a.outputFormat, "output", "o", "", "Output format. One of: table, json, yaml.")
	fs.BoolVar(&a.noHeaders, "no-headers", false, "Omit table headers.")
	fs.DurationVar(&a.timeout, "timeout", 0, "Bound each command, e.g. 30s. 0 disables the bound.")
	fs.StringVar(&a.traceAddress, "trace-address", "",
		"The address to send traces to. Disables tracing if not set.")
	fs.IntVar(&a.traceSampleRate, "trace-sample-rate", 0,
		"Sample rate per million. 0 to disable tracing, 1000000 to trace everything.")

	logFlags := flag.NewFlagSet("klog", flag.ContinueOnError)
	a.logConfig.AddFlags(logFlags)
	fs.AddGoFlagSet(logFlags)

	cmd.AddCommand(
		newLVCommand(a),
		newVGCommand(a),
		newMetricsCommand(a),
		newVersionCommand(a),
	)
	return cmd, a
}

// setup resolves configuration, logging, tracing and the lvm manager.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}
	if err := a.applyFlags(cmd, cfg); err != nil {
		return err
	}
	a.cfg = cfg

	a.log = textlogger.NewLogger(a.logConfig)
	klog.SetLoggerWithOptions(a.log, klog.ContextualLogger(true))
	ctx := klog.NewContext(cmd.Context(), a.log)
	cmd.SetContext(ctx)

	hostname, _ := os.Hostname()
	a.tel, err = telemetry.New(ctx, a.log, telemetry.Options{
		ServiceInstanceID: hostname,
		Endpoint:          cfg.Trace.Endpoint,
		SampleRate:        cfg.Trace.SampleRate,
	})
	if err != nil {
		return err
	}
	tp := a.tel.TraceProvider()
	a.tracer = tp.Tracer(tracerName)

	a.registry = prometheus.NewRegistry()
	a.manager = a.newManager(cfg, tp, a.log, a.registry)
	return nil
}

// applyFlags overrides file values with the flags that were set.
func (a *app) applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	fs := cmd.Flags()
	if fs.Changed("lvm") {
		cfg.LVMPath = a.lvmPath
	}
	if fs.Changed("output") {
		cfg.Output = a.outputFormat
	}
	if fs.Changed("no-headers") {
		cfg.NoHeaders = a.noHeaders
	}
	if fs.Changed("timeout") {
		cfg.Timeout = metav1.Duration{Duration: a.timeout}
	}
	if fs.Changed("trace-address") {
		cfg.Trace.Endpoint = a.traceAddress
	}
	if fs.Changed("trace-sample-rate") {
		cfg.Trace.SampleRate = a.traceSampleRate
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return fmt.Errorf("%w: %v", config.ErrInvalid, errs.ToAggregate())
	}
	return nil
}

// run executes fn with the command timeout and a span named after the
// command.
func (a *app) run(cmd *cobra.Command, fn func(ctx context.Context, f output.Formatter) error) error {
	f, err := output.NewFormatter(output.Options{
		Format:    output.Format(a.cfg.Output),
		NoHeaders: a.cfg.NoHeaders,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if d := a.cfg.Timeout.Duration; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	ctx, span := a.tracer.Start(ctx, cmd.CommandPath())
	defer span.End()

	if err := fn(ctx, f); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// write prints s to the command's output.
func write(cmd *cobra.Command, s string) {
	_, _ = io.WriteString(cmd.OutOrStdout(), s)
}

// ErrorMessage renders err for the terminal.
func ErrorMessage(err error) string {
	var nf *lvm.NotFoundError
	if errors.As(err, &nf) {
		return "not found: " + nf.Resource
	}
	return "Error: " + err.Error()
}

// Execute runs the command tree and returns the process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer, opts ...Option) int {
	cmd, a := newRootCommand(opts...)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	err := cmd.ExecuteContext(ctx)
	if shutdownErr := a.tel.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
		a.log.Error(shutdownErr, "failed to flush traces")
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, ErrorMessage(err))
		return 1
	}
	return 0
}
