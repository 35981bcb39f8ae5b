package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docseg/internal/api"
	"github.com/dgallion1/docseg/internal/config"
	"github.com/dgallion1/docseg/internal/indexer"
	"github.com/dgallion1/docseg/internal/oracle"
	"github.com/dgallion1/docseg/internal/pipeline"
	"github.com/dgallion1/docseg/internal/search"
	"github.com/dgallion1/docseg/internal/segment"
	"github.com/dgallion1/docseg/internal/token"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize collaborators.
	store := indexer.NewClient(cfg.IndexerURL, cfg.IndexerAPIKey)

	var oracleClient *oracle.Client
	var engineOracle segment.Oracle
	if cfg.OracleEnabled {
		oracleClient = oracle.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		engineOracle = &pipeline.RetryingOracle{Inner: oracleClient, Log: log}
	}

	idx, err := search.Open(cfg.SearchIndexDir)
	if err != nil {
		log.Error("failed to open search index", "error", err)
		os.Exit(1)
	}

	// Initialize the segmentation engine and pipeline.
	engine := segment.New(token.Estimator{}, engineOracle, log, cfg.SegmentWorkers)
	orch := pipeline.NewOrchestrator(cfg, engine, store, idx, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, oracleClient, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if oracleClient != nil {
			oracleClient.Close()
		}
		store.Close()
		idx.Close()
	}()

	log.Info("starting docseg", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
