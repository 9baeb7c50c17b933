package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mercatus-labs/mercatus-backend/api/routes"
	"github.com/mercatus-labs/mercatus-backend/internal/cart"
	"github.com/mercatus-labs/mercatus-backend/internal/categories"
	"github.com/mercatus-labs/mercatus-backend/internal/checkout"
	"github.com/mercatus-labs/mercatus-backend/internal/customers"
	"github.com/mercatus-labs/mercatus-backend/internal/expenses"
	"github.com/mercatus-labs/mercatus-backend/internal/invoices"
	"github.com/mercatus-labs/mercatus-backend/internal/products"
	"github.com/mercatus-labs/mercatus-backend/internal/stores"
	"github.com/mercatus-labs/mercatus-backend/internal/suppliers"
	"github.com/mercatus-labs/mercatus-backend/pkg/config"
	"github.com/mercatus-labs/mercatus-backend/pkg/db"
	"github.com/mercatus-labs/mercatus-backend/pkg/logger"
	"github.com/mercatus-labs/mercatus-backend/pkg/metrics"
	"github.com/mercatus-labs/mercatus-backend/pkg/migrate"
	"github.com/mercatus-labs/mercatus-backend/pkg/outbox"
	"github.com/mercatus-labs/mercatus-backend/pkg/redis"
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

	registry := prometheus.NewRegistry()
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	outboxService := outbox.NewService(outbox.NewRepository(dbClient.DB()), logg)

	storeService, err := stores.NewService(stores.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create store service", err)
		os.Exit(1)
	}

	productRepo := products.NewRepository(dbClient.DB())
	productService, err := products.NewService(productRepo, dbClient, outboxService, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	categoryService, err := categories.NewService(categories.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create category service", err)
		os.Exit(1)
	}

	supplierService, err := suppliers.NewService(suppliers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create supplier service", err)
		os.Exit(1)
	}

	customerService, err := customers.NewService(customers.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create customer service", err)
		os.Exit(1)
	}

	invoiceService, err := invoices.NewService(invoices.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create invoice service", err)
		os.Exit(1)
	}

	expenseService, err := expenses.NewService(expenses.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create expense service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cartStore, productRepo, storeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(checkout.Params{
		Carts:     cartStore,
		Stores:    storeService,
		Invoices:  checkout.NewRepository(dbClient.DB()),
		Customers: customerService,
		Locks:     redisClient,
		LockTTL:   cfg.Cart.CheckoutTTL,
		Tx:        dbClient,
		Outbox:    outboxService,
		Metrics:   checkoutMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	id := os.Getenv("DYNO")
	if id == "" {
		id = "local"
	}
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, registry, routes.Services{
			Stores:     storeService,
			Products:   productService,
			Categories: categoryService,
			Suppliers:  supplierService,
			Customers:  customerService,
			Invoices:   invoiceService,
			Expenses:   expenseService,
			Cart:       cartService,
			Checkout:   checkoutService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
