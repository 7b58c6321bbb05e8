package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/teohome/storefront-backend/api"
	"github.com/teohome/storefront-backend/api/routes"
	cartsvc "github.com/teohome/storefront-backend/internal/cart"
	"github.com/teohome/storefront-backend/internal/catalog"
	checkoutsvc "github.com/teohome/storefront-backend/internal/checkout"
	"github.com/teohome/storefront-backend/pkg/config"
	"github.com/teohome/storefront-backend/pkg/logger"
	"github.com/teohome/storefront-backend/pkg/metrics"
	"github.com/teohome/storefront-backend/pkg/redis"
	"github.com/teohome/storefront-backend/pkg/woo"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	var commerceClient *woo.Client
	catalogSource := catalog.SourceFixture
	if cfg.Commerce.LiveCredentials() {
		commerceClient, err = woo.NewClient(
			cfg.Commerce.APIURL,
			cfg.Commerce.ConsumerKey,
			cfg.Commerce.ConsumerSecret,
			woo.WithTimeout(cfg.Commerce.Timeout),
		)
		if err != nil {
			logg.Error(context.Background(), "failed to build commerce client", err)
			os.Exit(1)
		}
		catalogSource = catalog.SourceLive
	}
	ctx := logg.WithField(context.Background(), "catalog_source", string(catalogSource))
	logg.Info(ctx, "catalog source selected")

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	stats := metrics.NewStorefrontMetrics(registry)

	catalogService, err := catalog.NewService(catalogSource, commerceClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartStore, err := cartsvc.NewRedisStore(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, logg, stats)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	var checkoutService checkoutsvc.Service
	if commerceClient != nil {
		checkoutService, err = checkoutsvc.NewService(cartService, commerceClient, cfg.Shipping, logg, stats)
	} else {
		checkoutService, err = checkoutsvc.NewService(cartService, nil, cfg.Shipping, logg, stats)
	}
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx = logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	router := routes.NewRouter(cfg, logg, redisClient, catalogService, cartService, checkoutService, stats, registry)
	server := api.NewServer(addr, router)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := api.Run(runCtx, server, logg); err != nil {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
