// main.go
package main

import (
	"context"
	"errors"
	"fl350-gear-hub/catalog"
	"fl350-gear-hub/controllers"
	"fl350-gear-hub/middleware"
	"fl350-gear-hub/payments"
	"fl350-gear-hub/routes"
	"fl350-gear-hub/store"
	"fl350-gear-hub/utils"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func main() {
	cfg, envLoaded := utils.LoadConfig()

	logger, err := utils.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if !envLoaded {
		logger.Info("No .env file found. Proceeding with environment variables.")
	}

	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	startCtx, cancelStart := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelStart()

	// Orders: MongoDB when configured, in-process otherwise
	var (
		db     *mongo.Database
		orders store.OrderStore
	)
	if cfg.MongoURI != "" {
		client, err := utils.ConnectDB(startCtx, cfg.MongoURI)
		if err != nil {
			logger.Fatal("mongo connection failed", zap.Error(err))
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				logger.Error("mongo disconnect failed", zap.Error(err))
			}
		}()

		db = client.Database(cfg.MongoDatabase)
		mongoOrders := store.NewMongoOrderStore(db)
		if err := mongoOrders.CreateIndexes(startCtx); err != nil {
			logger.Fatal("order index creation failed", zap.Error(err))
		}
		orders = mongoOrders
		logger.Info("connected to MongoDB", zap.String("database", cfg.MongoDatabase))
	} else {
		orders = store.NewMemoryOrderStore()
		logger.Warn("MONGO_URI not set, orders are kept in memory")
	}

	// Webhook idempotency ledger: Redis when configured
	var ledger store.Ledger
	if cfg.RedisAddr != "" {
		rdb, err := utils.ConnectRedis(startCtx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		ledger = store.NewRedisLedger(rdb, cfg.LedgerTTL)
		logger.Info("connected to Redis", zap.String("addr", cfg.RedisAddr))
	} else {
		ledger = store.NewMemoryLedger()
	}

	productCatalog := catalog.Resolve(catalog.Config{Source: cfg.CatalogSource, DB: db}, logger)
	logger.Info("catalog resolved", zap.String("kind", string(productCatalog.Kind())))

	if cfg.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, checkout will fail")
	}
	if cfg.StripeWebhookSecret == "" {
		logger.Warn("STRIPE_WEBHOOK_SECRET not set, webhook signatures are not verified")
	}
	if len(cfg.IdentitySecret) == 0 {
		logger.Warn("IDENTITY_JWT_SECRET not set, every request is signed out")
	}

	gateway := payments.NewStripeGateway(payments.StripeConfig{
		SecretKey: cfg.StripeSecretKey,
		APIURL:    cfg.StripeAPIURL,
		Timeout:   cfg.CheckoutTimeout,
	}, logger)
	emailService := utils.NewEmailService(cfg, logger)

	// Initialize controllers
	productController := controllers.NewProductController(productCatalog)
	checkoutController := controllers.NewCheckoutController(gateway, cfg, logger)
	webhookController := controllers.NewWebhookController(payments.NewVerifier(cfg.StripeWebhookSecret), ledger, orders, emailService, logger)
	userController := controllers.NewUserController()

	router := mux.NewRouter()
	routes.RegisterRoutes(router, productController, checkoutController, webhookController, userController)

	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.RecoverMiddleware(logger))
	router.Use(middleware.AccessLogMiddleware(logger))
	router.Use(middleware.IdentityMiddleware([]byte(cfg.IdentitySecret)))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.CheckoutTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server is running", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server exited")
}
