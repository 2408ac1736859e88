package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/weather-card/internal/api/http"
	"github.com/i474232898/weather-card/internal/card"
	"github.com/i474232898/weather-card/internal/config"
	"github.com/i474232898/weather-card/internal/metrics"
	"github.com/i474232898/weather-card/internal/scheduler"
	"github.com/i474232898/weather-card/internal/store"
	"github.com/i474232898/weather-card/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	c := card.New(
		providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey),
		providers.NewIPAPILocator(httpClient),
		store.NewMemoryStore(),
		card.Options{
			DefaultCity:  cfg.DefaultCity,
			FetchTimeout: cfg.FetchTimeout,
			StaleGuard:   cfg.StaleResponseGuard,
			Logger:       zl.Named("card"),
			Metrics:      metrics.New(reg),
		},
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c.Start(ctx)

	sched := scheduler.New(cfg.RefreshInterval, c, zl.Named("scheduler"))
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := httpapi.NewApp()
	app.Use(logger.New())
	httpapi.RegisterRoutes(app, c, httpapi.Options{
		BackgroundsDir: cfg.BackgroundsDir,
		Gatherer:       reg,
	})

	go func() {
		zl.Info("listening", zap.String("port", cfg.Port), zap.String("city", c.ActiveCity()))
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("fiber server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
	sched.Stop()
	c.Wait()
}

func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	lvl, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	if lvl == zap.DebugLevel {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}
