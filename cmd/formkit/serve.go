package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/httpserver"
	"github.com/dmitrymomot/formkit/pkg/metrics"
	"github.com/dmitrymomot/formkit/pkg/schema"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		src         sources
		addr        string
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the loaded schemas as an HTTP validation API",
		Long: `Starts an HTTP server exposing the schemas:

  GET  /schemas          list schemas
  GET  /schemas/{name}   describe a schema
  POST /schemas/{name}   process a JSON or form body
  GET  /metrics          Prometheus metrics
  GET  /healthz          liveness probe

Listener settings come from FORMKIT_HTTP_* variables; --addr overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, a, &src, addr, withMetrics)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from FORMKIT_HTTP_ADDR)")
	cmd.Flags().BoolVar(&withMetrics, "metrics", true, "expose Prometheus metrics on /metrics")
	return cmd
}

func runServe(ctx context.Context, a *app, src *sources, addr string, withMetrics bool) error {
	var cfg httpserver.Config
	var err error
	if a.envFile != "" {
		err = config.LoadFrom(&cfg, a.envFile)
	} else {
		err = config.Load(&cfg)
	}
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Addr = addr
	}

	var (
		schemaOpts  []schema.Option
		handlerOpts = []httpserver.HandlerOption{httpserver.WithRequestLogger(a.log)}
	)
	if withMetrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		obs, err := metrics.New(reg)
		if err != nil {
			return err
		}
		schemaOpts = append(schemaOpts, schema.WithObserver(obs))
		handlerOpts = append(handlerOpts, httpserver.WithMetrics(reg))
	}

	catalog, err := src.load(ctx, a, schemaOpts...)
	if err != nil {
		return err
	}
	names := catalog.Names()
	for _, name := range names {
		if _, err := catalog.Schema(name); err != nil {
			return err
		}
	}
	a.log.InfoContext(ctx, "schemas loaded", slog.Int("count", len(names)), slog.Any("schemas", names))

	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(a.log))
	return srv.Run(ctx, httpserver.NewHandler(catalog, handlerOpts...))
}
