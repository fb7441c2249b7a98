// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"lvm2-cmd/internal/pkg/collector"
)

const shutdownTimeout = 5 * time.Second

func newMetricsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Export lvm state as prometheus metrics",
	}
	cmd.AddCommand(newMetricsServeCommand(a))
	return cmd
}

func newMetricsServeCommand(a *app) *cobra.Command {
	var (
		address  string
		nodeName string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve metrics over HTTP until interrupted",
		Long: `Serve lvm volume group and logical volume gauges on /metrics.

lvm is queried on every scrape. The --timeout flag bounds each scrape.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.Metrics.Address = address
			}
			if cmd.Flags().Changed("node-name") {
				a.cfg.Metrics.NodeName = nodeName
			}
			if err := a.registerCollectors(); err != nil {
				return err
			}
			return serve(cmd.Context(), a, a.cfg.Metrics.Address, newMetricsHandler(a.registry))
		},
	}
	cmd.Flags().StringVar(&address, "address", "", "The address the metrics endpoint binds to. Defaults to metrics.address from the configuration.")
	cmd.Flags().StringVar(&nodeName, "node-name", "", "Add a node label with this value to every lvm metric.")
	return cmd
}

// registerCollectors adds the lvm collector along with the go and process
// collectors to the registry.
func (a *app) registerCollectors() error {
	lvmCollector := collector.New(a.manager,
		collector.WithTimeout(a.cfg.Timeout.Duration),
		collector.WithNodeName(a.cfg.Metrics.NodeName),
		collector.WithLogger(a.log.WithName("collector")),
	)
	for _, c := range []prometheus.Collector{
		lvmCollector,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		if err := a.registry.Register(c); err != nil {
			return fmt.Errorf("failed to register collector: %w", err)
		}
	}
	return nil
}

// newMetricsHandler serves reg on /metrics and a liveness check on /healthz.
func newMetricsHandler(reg *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	return mux
}

// serve runs the HTTP server until ctx is done.
func serve(ctx context.Context, a *app, address string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("serving metrics", "address", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("metrics server failed: %w", err)
	case <-ctx.Done():
	}

	a.log.Info("shutting down metrics server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server failed: %w", err)
	}
	return nil
}
