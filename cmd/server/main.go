package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/goldsmith/backend/internal/application/finance"
	tradeapp "github.com/goldsmith/backend/internal/application/trade"
	"github.com/goldsmith/backend/internal/infrastructure/config"
	"github.com/goldsmith/backend/internal/infrastructure/logger"
	"github.com/goldsmith/backend/internal/infrastructure/persistence"
	"github.com/goldsmith/backend/internal/interfaces/http/handler"
	"github.com/goldsmith/backend/internal/interfaces/http/middleware"
	"github.com/goldsmith/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Goldsmith Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	bankAccountRepo := persistence.NewGormBankAccountRepository(db.DB)
	accountPayableRepo := persistence.NewGormAccountPayableRepository(db.DB)
	purchaseRepo := persistence.NewGormPurchaseRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)

	// Transaction scopes bind cross-aggregate flows (payments, receiving,
	// return completion) to a single database transaction
	financeTxScope := persistence.NewGormFinanceTransactionScope(db.DB)
	tradeTxScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Initialize application services
	bankAccountService := financeapp.NewBankAccountService(bankAccountRepo, financeTxScope)
	payableService := financeapp.NewPayableService(accountPayableRepo, financeTxScope)
	purchaseService := tradeapp.NewPurchaseService(purchaseRepo, tradeTxScope)
	returnService := tradeapp.NewReturnService(returnRepo, saleRepo, purchaseRepo, tradeTxScope)

	// Initialize HTTP handlers
	bankAccountHandler := handler.NewBankAccountHandler(bankAccountService)
	payableHandler := handler.NewPayableHandler(payableService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	returnHandler := handler.NewReturnHandler(returnService)
	systemHandler := handler.NewSystemHandler(db)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Report validation failures against json/form field names
	middleware.SetupValidator()

	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack: request ID first so recovery and request logs carry it
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Register API routes
	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(bankAccountHandler).
		Register(payableHandler).
		Register(purchaseHandler).
		Register(returnHandler).
		Register(systemHandler).
		Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
