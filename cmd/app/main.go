package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/scrapworks/reclaimer/internal/aggregate"
	"github.com/scrapworks/reclaimer/internal/bookmark"
	"github.com/scrapworks/reclaimer/internal/catalog"
	"github.com/scrapworks/reclaimer/internal/concurrency"
	"github.com/scrapworks/reclaimer/internal/config"
	"github.com/scrapworks/reclaimer/internal/database"
	"github.com/scrapworks/reclaimer/internal/database/postgres"
	"github.com/scrapworks/reclaimer/internal/handler"
	"github.com/scrapworks/reclaimer/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)
	handler.InitValidator()

	pool, err := database.NewPool(cfg.GetDBConnString(), database.DefaultMaxConnections, 5*time.Minute, 30*time.Minute)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, pool); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	catalogRepo := postgres.NewCatalogRepository(pool)
	bookmarkRepo := postgres.NewBookmarkRepository(pool)

	// Item lookups are read-heavy during aggregation; a read-through cache
	// keeps pressure off the database between catalog syncs.
	cachedCatalog := catalog.NewCachedCatalog(catalogRepo, cfg.ItemCacheSize, cfg.ItemCacheTTL)

	aggregateService := aggregate.NewService(cachedCatalog)
	bookmarkService := bookmark.NewService(bookmarkRepo, cachedCatalog, concurrency.NewLockManager())

	srv := server.NewServer(cfg.Port, cfg.APIKey, nil, pool, aggregateService, bookmarkService, cachedCatalog)

	// Run the server until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := srv.Stop(shutdownCtx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Server stopped")
	}
}
