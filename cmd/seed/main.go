package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/opeyemi/lenddesk/internal/config"
	"github.com/opeyemi/lenddesk/internal/domain"
	"github.com/opeyemi/lenddesk/internal/logging"
	"github.com/opeyemi/lenddesk/internal/store"
)

var errMissingDataset = errors.New("dataset not found")

func main() {
	var (
		datasetDir = flag.String("dataset-dir", "./seed-data", "Directory containing users.json")
		usersPath  = flag.String("users", "", "Path to users.json (overrides dataset-dir)")
		workers    = flag.Int("workers", 4, "Number of concurrent workers for loading")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg.Logging).With("component", "seed")

	userFile, err := resolveDatasetPath(*datasetDir, *usersPath)
	if err != nil {
		logger.Error("dataset resolution failed", "error", err)
		os.Exit(1)
	}

	users, err := loadUsers(userFile)
	if err != nil {
		logger.Error("failed to load users", "error", err, "path", userFile)
		os.Exit(1)
	}
	if len(users) == 0 {
		logger.Error("users dataset empty", "path", userFile)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	records := store.NewLayered(logger,
		store.NewSQLiteStore(cfg.Store.SQLitePath),
		store.NewBoltStore(cfg.Store.BoltPath),
	)
	defer func() {
		if err := records.Close(); err != nil {
			logger.Warn("closing record store failed", "error", err)
		}
	}()

	loader := store.NewBulkLoader(records, *workers)

	start := time.Now()
	logger.Info("loading users", "count", len(users), "workers", *workers)
	if err := loader.LoadUsers(ctx, users); err != nil {
		logger.Error("user loading failed", "error", err)
		os.Exit(1)
	}

	logger.Info("loading complete", "duration", time.Since(start).String(), "users", len(users))
}

func resolveDatasetPath(baseDir, usersPath string) (string, error) {
	if usersPath != "" {
		if _, err := os.Stat(usersPath); err != nil {
			return "", fmt.Errorf("stat %s: %w", usersPath, err)
		}
		return usersPath, nil
	}
	path := filepath.Join(baseDir, "users.json")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", errMissingDataset, path)
	}
	return path, nil
}

func loadUsers(path string) ([]domain.User, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	var users []domain.User
	if err := json.NewDecoder(file).Decode(&users); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return users, nil
}
