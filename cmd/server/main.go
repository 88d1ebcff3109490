package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/opeyemi/lenddesk/internal/cache"
	"github.com/opeyemi/lenddesk/internal/config"
	"github.com/opeyemi/lenddesk/internal/generator"
	"github.com/opeyemi/lenddesk/internal/logging"
	"github.com/opeyemi/lenddesk/internal/server"
	"github.com/opeyemi/lenddesk/internal/service"
	"github.com/opeyemi/lenddesk/internal/source"
	"github.com/opeyemi/lenddesk/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging)

	records := store.NewLayered(logger,
		store.NewSQLiteStore(cfg.Store.SQLitePath),
		store.NewBoltStore(cfg.Store.BoltPath),
	)
	defer func() {
		if err := records.Close(); err != nil {
			logger.Warn("closing record store failed", "error", err)
		}
	}()

	chain, usersCache, fallback, err := buildSourceChain(logger, cfg)
	if err != nil {
		logger.Error("failed to build user source", "error", err)
		os.Exit(1)
	}

	userService := service.NewUsers(logger, chain, usersCache, fallback, records)
	apiHandlers := server.NewAPIHandlers(logger, userService, records)

	router := server.NewRouter(logger, server.RouterDependencies{
		Health:           server.StoreHealthService{Pinger: records},
		API:              apiHandlers,
		AllowedOrigins:   parseAllowedOrigins(cfg.HTTP.AllowedOriginsCSV),
		AllowCredentials: true,
	})

	srv := server.New(logger, cfg.HTTP, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", "signal", sig.String())
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// buildSourceChain assembles the remote-then-synthetic provider chain. The
// remote source sits behind a TTL cache; the synthetic fallback memoizes its
// own collection so it never occupies the remote cache slot.
func buildSourceChain(logger *slog.Logger, cfg config.Config) (source.Provider, *cache.Users, *source.SyntheticSource, error) {
	remote, err := source.NewHTTPSource(source.Options{
		URL:     cfg.Source.URL,
		Timeout: cfg.Source.FetchTimeout,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	usersCache := cache.New(cfg.Source.CacheTTL)
	fallback := source.NewSyntheticSource(generator.Config{
		NumUsers: cfg.Source.FallbackUsers,
		Seed:     cfg.Source.FallbackSeed,
	})

	chain := source.NewChain(logger, source.NewCached(remote, usersCache), fallback)
	return chain, usersCache, fallback, nil
}

func parseAllowedOrigins(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	var origins []string
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin == "" {
			continue
		}
		origins = append(origins, origin)
	}
	return origins
}
