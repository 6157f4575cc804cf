package main

import (
	"fmt"

	"go.uber.org/zap"

	"go-content-cache/internal/cache/l1"
	"go-content-cache/internal/cache/l2"
	"go-content-cache/internal/cache/multi"
	"go-content-cache/internal/cache/noop"
	"go-content-cache/internal/config"
	"go-content-cache/internal/content"
	"go-content-cache/internal/freshness"
	"go-content-cache/internal/graphql"
	"go-content-cache/internal/httpserver"
	"go-content-cache/internal/interfaces"
	"go-content-cache/internal/snapshot"
)

// CompositionRoot holds all application dependencies and provides a
// centralized place for dependency injection and service initialization.
type CompositionRoot struct {
	Config *config.Config
	Logger *zap.Logger

	// Cache levels
	L1Cache   interfaces.Cache
	L2Cache   interfaces.Cache
	PageCache interfaces.Cache

	// Content pipeline
	Source        *graphql.Client
	SnapshotStore *snapshot.Store
	Generator     *content.Generator

	// Freshness policy and serving
	Rules      *freshness.Rules
	Policy     *freshness.Policy
	HTTPServer *httpserver.Server
}

// NewCompositionRoot creates and wires all application dependencies.
//
// Initialization order:
// 1. Logger (needed by all other components)
// 2. Configuration
// 3. Cache levels (L1 in-process, L2 shared, composite)
// 4. Content pipeline (origin client, snapshot store, page generator)
// 5. Freshness policy
// 6. HTTP server
func NewCompositionRoot() (*CompositionRoot, error) {
	root := &CompositionRoot{}

	if err := root.initLogger(); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := root.loadConfig(); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := root.initCaches(); err != nil {
		return nil, fmt.Errorf("failed to initialize caches: %w", err)
	}
	root.initContentPipeline()
	if err := root.initPolicy(); err != nil {
		return nil, fmt.Errorf("failed to initialize freshness policy: %w", err)
	}
	root.HTTPServer = httpserver.NewServer(root.Policy, root.Logger)

	return root, nil
}

func (r *CompositionRoot) initLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	r.Logger = logger
	return nil
}

func (r *CompositionRoot) loadConfig() error {
	cfg, err := config.Load(r.Logger)
	if err != nil {
		return err
	}
	r.Config = cfg
	return nil
}

func (r *CompositionRoot) initCaches() error {
	l1Cache, err := l1.NewMemoryCache(r.Config.MemoryCacheMB, freshness.DefaultStaleWindow, r.Logger)
	if err != nil {
		return err
	}
	r.L1Cache = l1Cache
	r.Logger.Info("Memory cache (L1) initialized", zap.Int("size_mb", r.Config.MemoryCacheMB))

	if r.Config.RedisURL != "" {
		client, err := l2.NewRedisClient(r.Config.RedisURL, r.Logger)
		if err != nil {
			// A missing shared level degrades capacity, not correctness.
			r.Logger.Warn("Failed to connect to Redis, running without L2 cache", zap.Error(err))
			r.L2Cache = noop.NewNoOpCache()
		} else {
			r.L2Cache = l2.NewRedisCache(client, r.Logger)
			r.Logger.Info("Redis cache (L2) initialized")
		}
	} else {
		r.L2Cache = noop.NewNoOpCache()
		r.Logger.Info("Redis cache (L2) disabled")
	}

	r.PageCache = multi.NewMultiCache([]interfaces.Cache{r.L1Cache, r.L2Cache}, r.Logger)
	return nil
}

func (r *CompositionRoot) initContentPipeline() {
	r.Source = graphql.NewClient(r.Config.ContentAPIURL, r.Config.ContentAPIToken, r.Logger)
	r.SnapshotStore = snapshot.NewStore(r.Config.SnapshotFile, r.Logger)
	r.Generator = content.NewGenerator(r.Source, r.SnapshotStore, r.Logger)

	if r.SnapshotStore.IsValid(snapshot.DefaultTTL) {
		r.Logger.Info("Snapshot fallback available", zap.String("path", r.Config.SnapshotFile))
	} else {
		r.Logger.Warn("No valid snapshot; degraded pages will be placeholders until warm-up runs",
			zap.String("path", r.Config.SnapshotFile))
	}
}

func (r *CompositionRoot) initPolicy() error {
	rules, err := freshness.LoadRules(r.Config.FreshnessRulesFile, r.Logger)
	if err != nil {
		return err
	}
	r.Rules = rules
	r.Policy = freshness.NewPolicy(r.PageCache, r.Generator, rules, r.Config.RevalidationSecret, r.Logger)
	return nil
}

// Cleanup releases all resources.
func (r *CompositionRoot) Cleanup() error {
	var errs []error

	if r.Logger != nil {
		if err := r.Logger.Sync(); err != nil {
			errs = append(errs, fmt.Errorf("failed to sync logger: %w", err))
		}
	}
	if memCache, ok := r.L1Cache.(*l1.MemoryCache); ok {
		if err := memCache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L1 cache: %w", err))
		}
	}
	if redisCache, ok := r.L2Cache.(*l2.RedisCache); ok {
		if err := redisCache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close L2 cache: %w", err))
		}
	}

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
