package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sawpanic/stockpulse/internal/analysis"
	"github.com/sawpanic/stockpulse/internal/config"
	httpapi "github.com/sawpanic/stockpulse/internal/interfaces/http"
	"github.com/sawpanic/stockpulse/internal/metrics"
	"github.com/sawpanic/stockpulse/internal/pipeline"
)

// serveCmd implements the 'stockpulse serve' command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sentiment HTTP API",
	Long: `Serve the read-only sentiment API. Endpoints:

  GET /health                  credential and liveness status
  GET /metrics                 Prometheus metrics
  GET /v1/sentiment/{ticker}   collect and score sentiment for a ticker

Responses are cached in memory for the configured TTL.

Examples:
  stockpulse serve
  stockpulse serve --host 0.0.0.0 --port 9090`,
	RunE: runServe,
}

// Serve command flags
var (
	serveHost string
	servePort int
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveHost, "host", "", "Listen host (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Server.Host = serveHost
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}
	keys := config.LoadKeys()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	p := pipeline.New(keys, cfg.Collection)
	p.SetMetrics(collector)

	serverCfg := httpapi.ConfigFrom(cfg.Server)
	cache := httpapi.NewResponseCache(serverCfg.CacheTTL)
	handlers := httpapi.NewHandlers(p, analysis.NewLexiconScorer(), keys, cache)

	srv, err := httpapi.NewServer(serverCfg, handlers, registry)
	if err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	stop := make(chan struct{})
	defer close(stop)
	cache.StartCleanupWorker(time.Minute, stop)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server stopped: %w", err)
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
