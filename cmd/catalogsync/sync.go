package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shopworks/catalogsync"
	"github.com/shopworks/catalogsync/internal/config"
	"github.com/shopworks/catalogsync/internal/log"
)

func syncCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run a single reconciliation cycle and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runSync(envFile string) error {
	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := log.New(log.ParseFormat(cfg.LogFormat), cfg.LogLevel)

	worker, err := catalogsync.New(cfg,
		catalogsync.WithLogger(logger),
		catalogsync.WithoutOpsServer(),
	)
	if err != nil {
		return fmt.Errorf("create worker: %w", err)
	}
	defer func() {
		_ = worker.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return worker.RunCycle(ctx)
}
