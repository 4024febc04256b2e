package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/dropzone"
	"github.com/aretw0/dropzone/internal/presentation/tui"
	httpAdapter "github.com/aretw0/dropzone/pkg/adapters/http"
	"github.com/aretw0/dropzone/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the component catalog and builder sessions as a JSON API with a
server-sent event stream per session. Prometheus metrics are served on /metrics,
or on a separate listener when --metrics-listen is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)
		hooks := observability.Compose(metrics.Hooks(), observability.LoggingHooks(logger))

		mgr, closeStore, err := newManager(cfg, hooks)
		if err != nil {
			return err
		}
		defer closeStore()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		api := httpAdapter.NewServer(mgr, cat,
			httpAdapter.WithLogger(logger),
			httpAdapter.WithVersion(dropzone.Version),
		)
		metricsHandler := promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})

		router := chi.NewRouter()
		router.Mount("/", api.Handler())
		if cfg.MetricsListen == "" {
			router.Handle("/metrics", metricsHandler)
		}
		servers := []*http.Server{{Addr: cfg.Listen, Handler: router}}
		if cfg.MetricsListen != "" {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metricsHandler)
			servers = append(servers, &http.Server{Addr: cfg.MetricsListen, Handler: mux})
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServers(ctx, servers...)
	},
}

// runServers serves until ctx is done or one server fails, then shuts all down.
func runServers(ctx context.Context, servers ...*http.Server) error {
	serverErrors := make(chan error, len(servers))
	for _, srv := range servers {
		go func(srv *http.Server) {
			logger.Info("Starting Dropzone server", "address", srv.Addr, "store", cfg.Store.Backend)
			serverErrors <- srv.ListenAndServe()
		}(srv)
	}

	var runErr error
	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("Graceful shutdown did not complete", "address", srv.Addr, "err", err)
			_ = srv.Close()
		}
	}
	logger.Info("Dropzone server stopped")
	return runErr
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", "", "Address to listen on (default :8080)")
	serveCmd.Flags().String("metrics-listen", "", "Separate address for /metrics")
}
