package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"go-content-cache/internal/config"
	"go-content-cache/internal/graphql"
	"go-content-cache/internal/retry"
	"go-content-cache/internal/snapshot"
)

// snapshot-warmup captures the whole origin dataset into the snapshot file.
// Run once (the default) it exits non-zero on failure, so a deploy pipeline
// can gate on it. With -schedule it keeps running and refreshes the snapshot
// on the given cron expression.
func main() {
	schedule := flag.String("schedule", "", "cron expression; when set, keep running and refresh the snapshot on this schedule")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(logger)
	if err != nil {
		logger.Error("Failed to load configuration", zap.Error(err))
		os.Exit(1)
	}

	source := graphql.NewClient(cfg.ContentAPIURL, cfg.ContentAPIToken, logger)
	store := snapshot.NewStore(cfg.SnapshotFile, logger)
	builder := snapshot.NewBuilder(source, retry.WarmupConfig, logger)

	run := func(ctx context.Context) error {
		snap, err := builder.Build(ctx)
		if err != nil {
			return err
		}
		return store.Write(snap)
	}

	if *schedule == "" {
		if err := run(context.Background()); err != nil {
			logger.Error("Snapshot warm-up failed", zap.Error(err))
			os.Exit(1)
		}
		return
	}

	// Scheduled mode: build immediately, then refresh on the cron schedule.
	if err := run(context.Background()); err != nil {
		logger.Error("Initial snapshot build failed, will retry on schedule", zap.Error(err))
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(*schedule, func() {
		if err := run(context.Background()); err != nil {
			logger.Error("Scheduled snapshot refresh failed", zap.Error(err))
		}
	}); err != nil {
		logger.Error("Invalid schedule", zap.String("schedule", *schedule), zap.Error(err))
		os.Exit(1)
	}
	scheduler.Start()
	logger.Info("Snapshot refresh scheduled", zap.String("schedule", *schedule))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Stopping snapshot scheduler...")
	<-scheduler.Stop().Done()
}
