package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	appcfg "github.com/mgrz/fog-chess-server/internal/config"
	"github.com/mgrz/fog-chess-server/internal/httpapi"
	"github.com/mgrz/fog-chess-server/internal/obslog"
	"github.com/mgrz/fog-chess-server/internal/session"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()

	// Session store: Redis when configured, process memory otherwise.
	var store session.Store
	if cfg.RedisURL != "" {
		store, err = session.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
		if err != nil {
			logger.Fatal("redis store init", zap.Error(err))
		}
		logger.Info("session_store", zap.String("kind", "redis"))
	} else {
		store = session.NewMemoryStore()
		logger.Info("session_store", zap.String("kind", "memory"))
	}

	manager := session.NewManager(store, logger)

	// Finished-game persistence: Postgres when configured.
	var repo session.Repository
	if cfg.DatabaseURL != "" {
		repo, err = session.NewPQRepository(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("results repository init", zap.Error(err))
		}
		logger.Info("results_repository", zap.String("kind", "postgres"))
	} else {
		repo = session.NewMemoryRepository()
		logger.Info("results_repository", zap.String("kind", "memory"))
	}
	manager.AttachRepository(repo)

	srv := httpapi.NewServer(manager, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(cfg.ListenAddr) }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info("shutdown_signal", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			logger.Error("server_error", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Close(ctx)
	_ = manager.Close()
	_ = repo.Close()
	_ = logger.Sync()
}
