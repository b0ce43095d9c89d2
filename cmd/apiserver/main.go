// API server entry point for BioGround.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/biotext/bioground/internal/application/bootstrap"
	"github.com/biotext/bioground/internal/config"
	"github.com/biotext/bioground/internal/infrastructure/database/neo4j"
	"github.com/biotext/bioground/internal/infrastructure/database/postgres"
	"github.com/biotext/bioground/internal/infrastructure/database/redis"
	"github.com/biotext/bioground/internal/infrastructure/messaging/kafka"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/logging"
	"github.com/biotext/bioground/internal/infrastructure/monitoring/prometheus"
	"github.com/biotext/bioground/internal/infrastructure/remote/ebi"
	miniostore "github.com/biotext/bioground/internal/infrastructure/storage/minio"
	httpserver "github.com/biotext/bioground/internal/interfaces/http"
	"github.com/biotext/bioground/internal/interfaces/http/handlers"
)

const defaultConfigPath = "configs/config.yaml"

var version = "dev"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides config)")
	xrefSource := flag.String("xref-source", "files", "bulk table source: files | postgres")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:            cfg.Log.Level,
		Format:           cfg.Log.Format,
		OutputPaths:      cfg.Log.OutputPaths,
		ErrorOutputPaths: cfg.Log.ErrorOutputPaths,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting bioground api server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *xrefSource, logger); err != nil {
		logger.Error("server exited with error", logging.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, xrefSource string, logger logging.Logger) error {
	metrics := prometheus.New()

	opts := bootstrap.Options{Metrics: metrics}
	var checkers []handlers.HealthChecker

	// Lookup cache.  The server degrades to uncached operation when Redis is
	// unreachable; only the remote ChEBI fallback depends on it.
	var cache redis.Cache
	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		logger.Warn("redis unavailable; running without lookup cache", logging.Err(err))
	} else {
		defer redisClient.Close()
		cache = redis.NewCache(redisClient, logger, redis.WithPrefix(cfg.Redis.KeyPrefix))
		checkers = append(checkers, redisChecker(redisClient))
	}

	// Remote ChEBI fallback.
	if cfg.Remote.Enabled {
		client := ebi.NewClient(ebi.Config{
			BaseURL:       cfg.Remote.ChEBIBaseURL,
			Timeout:       cfg.Remote.Timeout,
			RatePerSecond: cfg.Remote.RatePerSecond,
			Observer:      metrics,
		}, logger)
		defer client.Close()
		if cache != nil {
			opts.Remote = ebi.NewCachedClient(client, cache, cfg.Redis.DefaultTTL, metrics)
		} else {
			opts.Remote = client
		}
	}

	// Bulk lookup tables from the relational xref store when requested.
	if xrefSource == "postgres" {
		if err := postgres.Migrate(cfg.Database, logger); err != nil {
			return err
		}
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		checkers = append(checkers, handlers.HealthCheckFunc{
			Component: "postgres",
			Fn:        pool.Ping,
		})

		repo := postgres.NewXrefRepository(pool, logger)
		if opts.Genes, err = repo.LoadGeneTable(ctx); err != nil {
			return err
		}
		if opts.Chems, err = repo.LoadChemTable(ctx); err != nil {
			return err
		}
		if opts.Terms, err = repo.LoadTermTable(ctx); err != nil {
			return err
		}
	}

	// Resource store for curated maps and, with file-sourced tables, the TSVs.
	if cfg.Resources.Source == "minio" {
		client, err := miniostore.NewClient(cfg.MinIO)
		if err != nil {
			return err
		}
		opts.Store = miniostore.NewStore(client, cfg.MinIO.Bucket, cfg.Resources.Dir)
	}

	// Graph-backed hierarchy when a Neo4j endpoint is configured; otherwise
	// bootstrap builds the in-memory hierarchy from the relation tables.
	if cfg.Neo4j.URI != "" {
		driver, err := neo4j.NewDriver(ctx, cfg.Neo4j)
		if err != nil {
			return err
		}
		defer driver.Close(context.Background())
		opts.Hierarchy = neo4j.NewHierarchyOracle(driver, cfg.Neo4j.Database, logger)
		checkers = append(checkers, handlers.HealthCheckFunc{
			Component: "neo4j",
			Fn:        driver.VerifyConnectivity,
		})
	}

	// Pipeline events.  The writer connects lazily, so construction is safe
	// even before the broker is up.
	producer := kafka.NewProducer(cfg.Kafka, logger)
	defer producer.Close()
	opts.Producer = producer

	comps, err := bootstrap.New(ctx, cfg, logger, opts)
	if err != nil {
		return err
	}
	defer comps.Close()
	if comps.Watcher != nil {
		go comps.Watcher.Run(ctx)
	}

	router := httpserver.NewRouter(httpserver.RouterConfig{
		GroundingHandler: handlers.NewGroundingHandler(comps.Mapping, logger),
		StatementHandler: handlers.NewStatementHandler(comps.Mapping, logger),
		ReportHandler:    handlers.NewReportHandler(comps.Reporting, logger),
		HealthHandler:    handlers.NewHealthHandler(version, checkers...),
		MetricsHandler:   metrics.Handler(),
		Logger:           logger,
	})
	srv := httpserver.NewServer("", cfg.Server.Port, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server stopped")
	return nil
}

// redisChecker adapts the redis client to the health probe interface.
func redisChecker(client *goredis.Client) handlers.HealthChecker {
	return handlers.HealthCheckFunc{
		Component: "redis",
		Fn: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return client.Ping(ctx).Err()
		},
	}
}

// loadConfig loads the configuration file, falling back to environment-only
// configuration when the file does not exist.
func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "config file %s not found, using environment configuration\n", path)
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

//Personal.AI order the ending
