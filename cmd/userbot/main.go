package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/larriantoniy/tg_support_watcher/internal/adapters/tg"
	"github.com/larriantoniy/tg_support_watcher/internal/clock"
	"github.com/larriantoniy/tg_support_watcher/internal/config"
	"github.com/larriantoniy/tg_support_watcher/internal/cooldown"
	"github.com/larriantoniy/tg_support_watcher/internal/keywords"
	"github.com/larriantoniy/tg_support_watcher/internal/metrics"
	"github.com/larriantoniy/tg_support_watcher/internal/ports"
	"github.com/larriantoniy/tg_support_watcher/internal/ticket"
	"github.com/larriantoniy/tg_support_watcher/internal/useCases"
)

const (
	envDev  = "dev"
	envProd = "prod"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Env)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	matcher := keywords.Default()
	if cfg.KeywordsFile != "" {
		matcher, err = keywords.LoadFile(cfg.KeywordsFile)
		if err != nil {
			logger.Error("load keywords", "error", err)
			os.Exit(1)
		}
	}
	urgent, mild := matcher.Sizes()
	logger.Info("keywords loaded", "urgent", urgent, "mild", mild)

	store, closeStore, err := newCooldownStore(ctx, cfg)
	if err != nil {
		logger.Error("cooldown store", "error", err)
		os.Exit(1)
	}
	defer closeStore()
	logger.Info("cooldown store ready", "backend", cfg.Cooldown.Backend, "window", store.Window())

	m := metrics.New()
	if cfg.Metrics.Addr != "" {
		go m.Serve(ctx, cfg.Metrics.Addr, logger)
	}

	cfgRepo := config.NewJSONSessionConfigRepo(cfg.BaseDir)

	factory := func(sc *ports.SessionConfig, l *slog.Logger) (ports.TelegramClient, error) {
		return tg.NewClient(cfg.ApiID, cfg.ApiHash, cfg.BaseDir, sc, l, tg.ClientModeRuntime)
	}

	runner := useCases.NewRunner(cfgRepo, logger, factory, useCases.Pipeline{
		OwnerID:       cfg.Owner.ID,
		OwnerUsername: cfg.Owner.Username,
		Matcher:       matcher,
		Cooldown:      store,
		Tickets:       &ticket.Random{},
		Clock:         clock.Real{},
		Metrics:       m,
		NotifyRate:    cfg.Notify.Rate,
		NotifyBurst:   cfg.Notify.Burst,
	})

	logger.Info("support watcher running", "base_dir", cfg.BaseDir)
	if err := runner.Run(ctx); err != nil {
		logger.Error("runner.Run error", "error", err)
		os.Exit(1)
	}

	logger.Info("exit")
}

type cooldownStore interface {
	ports.CooldownStore
	Window() time.Duration
}

// newCooldownStore: memory — общий на процесс, redis — общий на все процессы.
func newCooldownStore(ctx context.Context, cfg *config.AppConfig) (cooldownStore, func(), error) {
	if cfg.Cooldown.Backend != config.CooldownRedis {
		return cooldown.NewMemory(cfg.Cooldown.Window, clock.Real{}), func() {}, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
	}
	return cooldown.NewRedis(rdb, cfg.Cooldown.Window, clock.Real{}), func() { _ = rdb.Close() }, nil
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
}
