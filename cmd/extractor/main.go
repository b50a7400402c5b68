package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"eulerScope/internal/chain"
	"eulerScope/internal/config"
	"eulerScope/internal/runner"
	"eulerScope/internal/storage"
	"eulerScope/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "extractor",
		Short:        "EulerSwap state-change extractor",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	processCmd := &cobra.Command{
		Use:   "process",
		Short: "Process a block stream into change-sets",
		RunE:  runProcess,
	}

	processCmd.Flags().String("in", "", "input blocks JSONL path")
	processCmd.Flags().String("out", "./data/changes.jsonl", "output change-sets JSONL path")
	processCmd.Flags().String("pg-dsn", "", "Postgres DSN (writes to Postgres instead of JSONL)")
	processCmd.Flags().String("checkpoint", "./data/checkpoint.json", "checkpoint file path")
	processCmd.Flags().Bool("checkpoint-enabled", true, "enable checkpointing")
	processCmd.Flags().String("factory", "", "factory address override")
	processCmd.Flags().String("protocol-type", "", "protocol type name override")
	processCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(processCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runProcess(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.Input == "" {
		return fmt.Errorf("input path is required")
	}

	proto, err := cfg.Protocol()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := chain.OpenJsonlStream(cfg.Input)
	if err != nil {
		return err
	}
	defer source.Close()

	var sink storage.Storage
	if cfg.PGDSN != "" {
		store, err := postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		sink = store
	} else {
		sink = storage.NewJsonlStorage(cfg.Out)
	}

	r := runner.NewRunner(runner.RunConfig{
		CheckpointPath:    cfg.Checkpoint,
		CheckpointEnabled: cfg.CheckpointEnabled,
	}, proto, source, sink, logger)

	logger.Info("extractor start",
		zap.String("in", cfg.Input),
		zap.String("out", cfg.Out),
		zap.Bool("postgres", cfg.PGDSN != ""),
		zap.String("factory", proto.FactoryID()),
		zap.String("protocol_type", proto.ProtocolTypeName),
		zap.Bool("checkpoint_enabled", cfg.CheckpointEnabled),
		zap.String("checkpoint", cfg.Checkpoint),
	)

	return r.Run(ctx)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
