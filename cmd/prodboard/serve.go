package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dfagundes/prodboard/internal/dashboard"
	"github.com/dfagundes/prodboard/internal/db"
	"github.com/dfagundes/prodboard/internal/scheduler"
	"github.com/dfagundes/prodboard/pkg/logger"
)

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the production dashboard",
		Long:  "Launches the web dashboard for recording and reporting production counts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, configPath, port)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", defaultConfigPath, "path to prodboard config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, configPath string, port int) error {
	cfg, gormDB, st, err := openStore(configPath)
	if err != nil {
		return err
	}
	defer db.Close(gormDB)

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Fprintf(cmd.OutOrStdout(), "\nReceived %s, shutting down...\n", sig)
		cancel()
	}()

	if cfg.Digest.Schedule != "" {
		digest := scheduler.New(st, logger.Named(baseLogger, "digest"))
		if err := digest.Start(cfg.Digest.Schedule); err != nil {
			return fmt.Errorf("start digest: %w", err)
		}
		defer digest.Stop()
	}

	baseLogger.Info("starting prodboard",
		zap.String("database", describeDatabase(cfg)),
		zap.Int("port", effectivePort(cfg.Port, port)))

	return dashboard.Start(ctx, dashboard.StartOpts{
		Store:  st,
		Config: cfg,
		Logger: logger.Named(baseLogger, "dashboard"),
		Port:   effectivePort(cfg.Port, port),
	})
}

func effectivePort(configured, flag int) int {
	if flag > 0 {
		return flag
	}
	return configured
}
