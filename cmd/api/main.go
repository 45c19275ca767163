package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-banners/internal/core/cache"
	"storefront-banners/internal/core/config"
	"storefront-banners/internal/core/logger"
	"storefront-banners/internal/core/metrics"
	"storefront-banners/internal/core/proxy"
	"storefront-banners/internal/core/server"
	adminhandler "storefront-banners/internal/features/admin/handler"
	banneradapter "storefront-banners/internal/features/banners/adapters"
	bannerhandler "storefront-banners/internal/features/banners/handler"
	bannerservice "storefront-banners/internal/features/banners/service"
	carouselhandler "storefront-banners/internal/features/carousel/handler"
	carouselservice "storefront-banners/internal/features/carousel/service"

	"go.uber.org/zap"
)

// @title Storefront Banners API
// @version 1.0
// @description Serves the storefront hero carousel and the admin banner console on top of the banner REST API.
// @contact.name API Support
// @contact.email support@storefront.example.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	m := metrics.New()

	queryCache, err := newCache(cfg.Cache)
	if err != nil {
		l.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer queryCache.Close()

	// Initialize Banner API Adapter and run Health Check
	api := banneradapter.NewHTTPBannerAPI(cfg.BannerAPI, proxy.FromConfig(cfg.Proxy))
	checkCtx, cancel := context.WithTimeout(context.Background(), cfg.BannerAPI.Timeout())
	if err := api.HealthCheck(checkCtx); err != nil {
		l.Warn("Banner API Health Check Failed", zap.Error(err))
	} else {
		l.Info("Banner API connection verified")
	}
	cancel()

	// Initialize Banner Data Layer & Handler
	store := bannerservice.NewBannerStore(api, banneradapter.NewCacheQueryStore(queryCache, cfg.Cache.TTL(), m))
	bannerHdl := bannerhandler.NewBannerHandler(store)

	// Initialize Carousel
	carousel := carouselservice.NewCarousel(store,
		carouselservice.WithInterval(cfg.Carousel.Interval()),
		carouselservice.WithMetrics(m),
	)
	refreshCtx, cancel := context.WithTimeout(context.Background(), cfg.BannerAPI.Timeout())
	if err := carousel.Refresh(refreshCtx); err != nil {
		l.Warn("Carousel starts without banners", zap.Error(err))
	}
	cancel()
	carousel.Mount()
	defer carousel.Unmount()

	renderer, err := carouselhandler.NewRenderer()
	if err != nil {
		l.Fatal("Failed to load carousel templates", zap.Error(err))
	}
	carouselHdl := carouselhandler.NewCarouselHandler(carousel, renderer)

	// Initialize Admin Console
	adminHdl := adminhandler.NewConsoleHandler(store, cfg.Admin)

	srv := server.New(cfg, m)
	srv.AddHealthCheck("cache", queryCache)

	// Register Routes
	bannerHdl.Register(srv.App.Group("/api"))
	carouselHdl.Register(srv.App)
	adminHdl.Register(srv.App)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		l.Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}

// newCache selects Redis when REDIS_URL is set and the in-memory cache otherwise.
func newCache(cfg config.CacheConfig) (cache.Cache, error) {
	if cfg.RedisURL == "" {
		logger.Get().Info("Using in-memory query cache")
		return cache.NewMemoryAdapter(cfg.TTL()), nil
	}

	redisCache, err := cache.NewRedisAdapter(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("Using Redis query cache")
	return redisCache, nil
}
