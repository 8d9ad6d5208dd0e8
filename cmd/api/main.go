package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/paketshop/storefront-backend/api/routes"
	cartsvc "github.com/paketshop/storefront-backend/internal/cart"
	"github.com/paketshop/storefront-backend/internal/catalog"
	checkoutsvc "github.com/paketshop/storefront-backend/internal/checkout"
	"github.com/paketshop/storefront-backend/internal/orders"
	"github.com/paketshop/storefront-backend/pkg/config"
	"github.com/paketshop/storefront-backend/pkg/db"
	"github.com/paketshop/storefront-backend/pkg/logger"
	"github.com/paketshop/storefront-backend/pkg/metrics"
	"github.com/paketshop/storefront-backend/pkg/migrate"
	"github.com/paketshop/storefront-backend/pkg/payment"
	"github.com/paketshop/storefront-backend/pkg/pixel"
	"github.com/paketshop/storefront-backend/pkg/redis"
	"github.com/paketshop/storefront-backend/pkg/telegram"
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

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

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

	telegramClient := telegram.NewClient(context.Background(), cfg.Telegram, logg)
	pixelClient := pixel.NewClient(context.Background(), cfg.Pixel, logg)

	linkBuilder, err := payment.NewBuilder(cfg.Payment)
	if err != nil {
		logg.Error(context.Background(), "failed to configure payment links", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo, pixelClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	snapshots, err := cartsvc.NewSnapshotStore(redisClient, cfg.Cart.SnapshotTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart snapshot store", err)
		os.Exit(1)
	}
	cartService, err := cartsvc.NewService(snapshots, catalogRepo, pixelClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	coordinator, err := checkoutsvc.NewCoordinator(checkoutsvc.CoordinatorOptions{
		Orders:     orders.NewRepository(dbClient.DB()),
		Telegram:   telegramClient,
		Pixel:      pixelClient,
		Cart:       cartService,
		Links:      linkBuilder,
		Metrics:    checkoutMetrics,
		Logger:     logg,
		MobileWait: cfg.Payment.MobileRedirectWait,
		CashWait:   cfg.Payment.CashProcessingWait,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout coordinator", err)
		os.Exit(1)
	}

	flowStore, err := checkoutsvc.NewFlowStore(redisClient, cfg.Checkout.FlowTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout flow store", err)
		os.Exit(1)
	}
	checkoutManager, err := checkoutsvc.NewManager(flowStore, coordinator, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout manager", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			catalogService,
			cartService,
			checkoutManager,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
