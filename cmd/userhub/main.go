package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"userhub/internal/auth"
	"userhub/internal/config"
	"userhub/internal/httpserver"
	"userhub/internal/logging"
	"userhub/internal/users"
)

func main() {
	commandFlag := flag.String("command", "serve", "Command to run (serve | seed)")
	flag.Parse()

	// A missing .env is fine; config falls back to the environment.
	_ = godotenv.Load()

	logger := logging.New()
	defer func() { _ = logger.Sync() }()

	cfg := config.Load()
	store := newStore(cfg, logger)

	switch *commandFlag {
	case "serve":
		serve(cfg, store, logger)
	case "seed":
		seed(cfg, store, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (expected serve or seed)\n", *commandFlag)
		os.Exit(1)
	}
}

func newStore(cfg config.Config, logger *zap.Logger) users.Store {
	if cfg.StorePath == "" {
		logger.Info("using in-memory user store")
		return users.NewMemoryStore(defaultUsers())
	}
	logger.Info("using file user store", zap.String("path", cfg.StorePath))
	return users.NewFileStore(cfg.StorePath, logger)
}

// defaultUsers mirrors the records the service shipped with before the
// file store existed, so a memory-backed process is immediately usable.
func defaultUsers() []users.User {
	return []users.User{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: users.RoleAdmin},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", Role: users.RoleUser},
	}
}

func serve(cfg config.Config, store users.Store, logger *zap.Logger) {
	authSvc := auth.NewService(cfg.JWTSecret)
	userHandler := users.NewHandler(store, authSvc, logger)

	handler := httpserver.NewRouter(logger, authSvc, userHandler)
	server := httpserver.New(cfg.HTTPAddr, handler, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("http server", zap.Error(err))
		}
		return
	case sig := <-sigCh:
		logger.Info("signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func seed(cfg config.Config, store users.Store, logger *zap.Logger) {
	spec, err := users.LoadSeedSpec(cfg.SeedPath)
	if err != nil {
		logger.Fatal("load seed spec", zap.Error(err))
	}
	total, err := users.Seed(context.Background(), store, spec)
	if err != nil {
		logger.Fatal("seed users", zap.Error(err))
	}
	logger.Info("seeded users", zap.Int("added", spec.Count), zap.Int("total", total))
}
