package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/angelmondragon/storefront-backend/api/routes"
	"github.com/angelmondragon/storefront-backend/internal/address"
	"github.com/angelmondragon/storefront-backend/internal/analytics"
	"github.com/angelmondragon/storefront-backend/internal/analytics/query"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/categories"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/content"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/migrate"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	requireResource(context.Background(), logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	requireResource(ctx, logg, "database", err)

	requireResource(ctx, logg, "dev migrations", migrate.MaybeRunDev(ctx, cfg, logg, dbClient))

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	requireResource(ctx, logg, "redis", err)

	defer func() {
		if err := multierr.Combine(dbClient.Close(), redisClient.Close()); err != nil {
			logg.Error(context.Background(), "error closing resources", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	requireResource(ctx, logg, "session manager", err)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps, err := buildDependencies(cfg, logg, dbClient, sessionManager, registry)
	requireResource(ctx, logg, "services", err)
	deps.Redis = redisClient
	deps.RateLimiter = redisClient
	deps.Idempotency = redisClient

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	logCtx := logg.WithFields(ctx, map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}
}

func buildDependencies(cfg *config.Config, logg *logger.Logger, dbClient *db.Client, sessions *session.Manager, registry *prometheus.Registry) (routes.Dependencies, error) {
	conn := dbClient.DB()
	usersRepo := users.NewRepository(conn)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       usersRepo,
		SessionManager: sessions,
		TxRunner:       dbClient,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("auth service: %w", err)
	}
	usersService, err := users.NewService(usersRepo)
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("users service: %w", err)
	}
	addressService, err := address.NewService(address.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("address service: %w", err)
	}
	categoryService, err := categories.NewService(categories.NewRepository(conn))
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("category service: %w", err)
	}
	productService, err := products.NewService(products.NewRepository(conn))
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("product service: %w", err)
	}
	contentService, err := content.NewService(content.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("content service: %w", err)
	}
	cartService, err := cart.NewService(cart.NewRepository(conn), dbClient)
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("cart service: %w", err)
	}
	checkoutService, err := checkout.NewService(checkout.ServiceParams{
		Tx:      dbClient,
		Repo:    checkout.NewRepository(conn),
		Config:  cfg.Checkout,
		Metrics: metrics.NewCheckoutMetrics(registry),
		Logger:  logg,
	})
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("checkout service: %w", err)
	}
	ordersService, err := orders.NewService(orders.NewRepository(conn), logg)
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("orders service: %w", err)
	}
	store, err := query.NewStore(conn)
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("analytics store: %w", err)
	}
	analyticsService, err := analytics.NewService(store)
	if err != nil {
		return routes.Dependencies{}, fmt.Errorf("analytics service: %w", err)
	}

	return routes.Dependencies{
		DB:          dbClient,
		Sessions:    sessions,
		Gatherer:    registry,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),
		Auth:        authService,
		Users:       usersService,
		Addresses:   addressService,
		Categories:  categoryService,
		Products:    productService,
		Content:     contentService,
		Cart:        cartService,
		Checkout:    checkoutService,
		Orders:      ordersService,
		Analytics:   analyticsService,
	}, nil
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
