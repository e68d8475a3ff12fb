package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"DashboardPro/internal/catalog"
	"DashboardPro/internal/config"
	"DashboardPro/internal/customer"
	"DashboardPro/internal/dashboard"
	"DashboardPro/internal/events"
	"DashboardPro/internal/inbox"
	"DashboardPro/internal/order"
	"DashboardPro/internal/release"
	"DashboardPro/internal/settings"
	"DashboardPro/internal/theme"
	"DashboardPro/internal/web"
	"DashboardPro/pkg/kit"
)

func main() {
	service := "dashboard"

	cfg, err := config.Load(getenv("CONFIG_PATH", "."))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	log := kit.NewLogger(service, cfg.Logger.Level)
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prefs, closePrefs, err := openPreferenceStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("open preference store failed", zap.Error(err))
	}
	defer closePrefs()

	publisher, closePublisher := openPublisher(cfg, log)
	defer closePublisher()

	banner := release.NewBanner(cfg.Release.Version, func(_ context.Context, version string) error {
		log.Info("clients instructed to reload", zap.String("version", version))
		return nil
	})

	if cfg.Release.ManifestURL != "" {
		watcher := release.NewWatcher(cfg.Release.ManifestURL, banner, log)
		sched, err := watcher.Start(cfg.Release.Schedule)
		if err != nil {
			log.Fatal("start release watcher failed", zap.Error(err))
		}
		defer sched.Stop()
	}

	reg := prometheus.NewRegistry()
	app := dashboard.New(dashboard.Deps{
		Log:       log,
		Theme:     theme.NewService(prefs, theme.Theme(cfg.Theme.Default), log),
		Customers: customer.NewStore(),
		Products:  catalog.NewStore(),
		Orders:    order.NewStore(),
		Inbox:     inbox.NewStore(inbox.Seed()...),
		Settings:  settings.NewStore(settings.Default()),
		Banner:    banner,
		Publisher: publisher,
		Registry:  reg,
		ToastTTL:  cfg.Toast.TTL,
	})
	if err := app.Start(ctx); err != nil {
		log.Fatal("start dashboard failed", zap.Error(err))
	}
	defer app.Close()

	h := web.NewHandler(app, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		RateLimiter:    kit.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
	})

	opts := kit.ServerOptions{
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout,
	}
	if err := kit.RunHTTPServer(ctx, cfg.Addr(), h, opts, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
	}
}

func openPreferenceStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (theme.Store, func(), error) {
	switch cfg.Theme.Store {
	case config.StorePostgres:
		pool, err := pgxpool.New(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := theme.NewPostgresStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure preferences schema: %w", err)
		}
		log.Info("theme preference store", zap.String("backend", "postgres"))
		return store, pool.Close, nil

	case config.StoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		log.Info("theme preference store", zap.String("backend", "redis"), zap.String("addr", cfg.Redis.Addr))
		return theme.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil

	default:
		log.Info("theme preference store", zap.String("backend", "memory"))
		return theme.NewMemStore(), func() {}, nil
	}
}

// openPublisher falls back to dropping events when the broker is not
// configured or unreachable.
func openPublisher(cfg *config.Config, log *zap.Logger) (events.Publisher, func()) {
	if cfg.Events.AMQPURL == "" {
		return events.Nop{}, func() {}
	}

	p, closeConn, err := events.Dial(cfg.Events.AMQPURL, cfg.Events.Exchange, log)
	if err != nil {
		log.Warn("amqp unavailable, entity events disabled", zap.Error(err))
		return events.Nop{}, func() {}
	}
	return p, func() {
		if err := closeConn(); err != nil {
			log.Warn("close amqp connection", zap.Error(err))
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
