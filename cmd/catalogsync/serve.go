package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shopworks/catalogsync"
	"github.com/shopworks/catalogsync/internal/config"
	"github.com/shopworks/catalogsync/internal/log"
)

func serveCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the reconciliation worker",
		Long: `Run the reconciliation worker.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables

Environment variables:
  RECORD_STORE_TOKEN           Record store integration token (required)
  RECORD_STORE_DATABASE_ID     Record store database to poll (required)
  RECORD_STORE_BASE_URL        Record store API base URL (default: https://api.notion.com)
  DB_URL                       Catalog database URL, postgres:// or sqlite:/// (required)
  OPENAI_API_KEY               Enrichment service API key (required)
  OPENAI_BASE_URL              Enrichment service base URL override
  CHAT_MODEL                   Text generation model (default: gpt-3.5-turbo)
  EMBEDDING_MODEL              Embedding model (default: text-embedding-3-small)
  VECTOR_INDEX_URL             Vector index base URL; empty disables indexing
  VECTOR_COLLECTION            Vector index collection (default: products)
  POLL_INTERVAL_SECONDS        Pause between poll cycles (default: 30)
  REQUEST_TIMEOUT_SECONDS      Per-call timeout for external services (default: 15)
  OPS_ADDR                     Ops endpoint listen address (default: 0.0.0.0:8080)
  OPS_ENABLED                  Serve the ops endpoint (default: true)
  LOG_LEVEL                    Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT                   Log format: pretty, json (default: pretty)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runServe(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New(log.ParseFormat(cfg.LogFormat), cfg.LogLevel)
	logger.Info("starting catalogsync", slog.String("version", version))

	worker, err := catalogsync.New(cfg, catalogsync.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("create worker: %w", err)
	}
	defer func() {
		if err := worker.Close(); err != nil {
			logger.Error("failed to close worker", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return worker.Run(ctx)
}
