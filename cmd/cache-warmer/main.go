package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"go-content-cache/internal/config"
	"go-content-cache/internal/graphql"
	"go-content-cache/internal/warmer"
)

// cache-warmer visits every cacheable page of a running server so its page
// cache is populated before real traffic arrives. The base URL can be given
// as the first argument; it defaults to the configured public base URL.
func main() {
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

	baseURL := cfg.PublicBaseURL
	if flag.Arg(0) != "" {
		baseURL = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source := graphql.NewClient(cfg.ContentAPIURL, cfg.ContentAPIToken, logger)
	summary, err := warmer.New(source, logger).Run(ctx, baseURL)
	if err != nil {
		logger.Error("Cache warm-up failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Cache warm-up complete",
		zap.Int("total", summary.Total),
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed))
}
