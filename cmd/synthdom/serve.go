package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/vango-dev/synthdom/internal/config"
	"github.com/vango-dev/synthdom/pkg/middleware"
	"github.com/vango-dev/synthdom/pkg/render"
	"github.com/vango-dev/synthdom/pkg/server"
)

func serveCmd() *cobra.Command {
	var (
		configPath string
		addr       string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the render server",
		Long: `Start an HTTP server that renders tree documents.

Endpoints:
  POST /render    render the request body (JSON or YAML)
  GET  /healthz   liveness check
  GET  /metrics   Prometheus metrics

Examples:
  synthdom serve
  synthdom serve --addr :9000
  curl -d '{"kind":"element","name":"br"}' localhost:8080/render?xhtml=1`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Address = addr
			}
			return runServe(cfg, verbose)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to "+config.ConfigFileName)
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every request")

	return cmd
}

func runServe(cfg *config.Config, verbose bool) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	serverConfig := server.DefaultServerConfig()
	serverConfig.Address = cfg.Address()
	serverConfig.Logger = logger
	serverConfig.Middleware = append(serverConfig.Middleware, middleware.OpenTelemetry(
		middleware.WithRequestFilter(func(r *http.Request) bool {
			return r.URL.Path != "/healthz" && r.URL.Path != "/metrics"
		}),
	))

	opts := []render.Option{render.WithLogger(logger.With("component", "render"))}
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opts = append(opts, render.WithMetrics(render.NewMetrics(
			render.WithNamespace(cfg.Metrics.Namespace),
			render.WithRegistry(reg),
		)))
		serverConfig.Middleware = append(serverConfig.Middleware, middleware.Prometheus(
			middleware.WithNamespace(cfg.Metrics.Namespace),
			middleware.WithRegistry(reg),
		))
		serverConfig.Gatherer = reg
	}

	srv := server.New(serverConfig, render.RendererConfig{
		XHTML:   cfg.Render.XHTML,
		Doctype: cfg.Render.Doctype,
	}, opts...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info("Listening on %s", serverConfig.Address)
	return srv.Run(ctx)
}
