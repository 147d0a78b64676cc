package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jadara-labs.backend/internal/config"
	"jadara-labs.backend/internal/infrastructure/gateways"
	"jadara-labs.backend/internal/infrastructure/jobs"
	"jadara-labs.backend/internal/infrastructure/repositories"
	"jadara-labs.backend/internal/interfaces/http/handlers"
	"jadara-labs.backend/internal/interfaces/http/middleware"
	"jadara-labs.backend/internal/usecases"
	"jadara-labs.backend/pkg/jwt"
	"jadara-labs.backend/pkg/logger"
	"jadara-labs.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := loadCfg()

	// Initialize Logger
	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Initialize Redis
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	// Set Gin mode
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	dsn := cfg.Database.URL()
	db, err := openDB(dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	smsLogRepo := repositories.NewSmsLogRepository(db)
	apiKeyRepo := repositories.NewApiKeyRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize gateways
	termiiClient := gateways.NewTermiiClient(cfg.Termii.BaseURL, cfg.Termii.ApiKey, cfg.Termii.Channel)
	paystackClient := gateways.NewPaystackClient(cfg.Paystack.BaseURL, cfg.Paystack.SecretKey)

	var mailer usecases.Mailer
	if cfg.Resend.ApiKey != "" {
		mailer = gateways.NewResendClient(cfg.Resend.BaseURL, cfg.Resend.ApiKey, cfg.Resend.From)
	} else {
		log.Println("⚠️ RESEND_API_KEY not set, payment receipt emails disabled")
	}

	// Initialize usecases
	balanceCache := redis.NewBalanceCache()
	ledgerUsecase := usecases.NewLedgerUsecase(uow, walletRepo, txnRepo, balanceCache)
	dispatchUsecase := usecases.NewDispatchUsecase(ledgerUsecase, walletRepo, smsLogRepo, termiiClient, usecases.DispatchConfig{
		UnitCost:        cfg.Billing.UnitCost,
		DefaultSenderID: cfg.Billing.DefaultSenderID,
		SendConcurrency: cfg.Billing.SendConcurrency,
	})
	topUpUsecase := usecases.NewTopUpUsecase(ledgerUsecase, userRepo, paystackClient, mailer, usecases.TopUpConfig{
		Currency:    cfg.Billing.Currency,
		CallbackURL: cfg.Paystack.CallbackURL,
	})
	apiKeyUsecase := usecases.NewApiKeyUsecase(apiKeyRepo, userRepo)
	authUsecase := usecases.NewAuthUsecase(uow, userRepo, walletRepo, jwtService, cfg.Billing.Currency)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	walletHandler := handlers.NewWalletHandler(ledgerUsecase, topUpUsecase)
	smsHandler := handlers.NewSmsHandler(dispatchUsecase)
	webhookHandler := handlers.NewWebhookHandler(topUpUsecase)
	apiKeyHandler := handlers.NewApiKeyHandler(apiKeyUsecase)

	// Auth middlewares
	jwtAuthMiddleware := middleware.AuthMiddleware(jwtService)
	dualAuthMiddleware := middleware.DualAuthMiddleware(jwtAuthMiddleware, apiKeyUsecase)

	// Start background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	expiryJob := jobs.NewApiKeyExpiryJob(apiKeyRepo)
	go expiryJob.Start(ctx)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:        authHandler,
		walletHandler:      walletHandler,
		smsHandler:         smsHandler,
		webhookHandler:     webhookHandler,
		apiKeyHandler:      apiKeyHandler,
		jwtAuthMiddleware:  jwtAuthMiddleware,
		dualAuthMiddleware: dualAuthMiddleware,
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("🛑 Shutting down server...")
		expiryJob.Stop()
		cancel()
	}()

	// Start server
	log.Printf("🚀 Jadara Labs Backend starting on port %s", cfg.Server.Port)
	log.Printf("📚 API: http://localhost:%s/api/v1", cfg.Server.Port)
	log.Printf("❤️ Health: http://localhost:%s/health", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
