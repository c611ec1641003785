package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"campusride/internal/app"
	"campusride/internal/auth"
	"campusride/internal/broker"
	"campusride/internal/config"
	"campusride/internal/handler"
	"campusride/internal/middleware"
	internalRedis "campusride/internal/redis"
	"campusride/internal/repository/postgres"
	"campusride/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
			nrApp = nil
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		log.Println("Database schema is up to date")
	}

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp != nil)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Events go to RabbitMQ when enabled; otherwise they are only logged.
	var publisher service.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := broker.NewPublisher(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatalf("failed to connect to rabbitmq: %v", err)
		}
		defer p.Close()
		publisher = p
		log.Println("Connected to RabbitMQ")
	}

	// Wire dependencies.
	server := wireServer(db, redisClient, publisher, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	if nrApp != nil {
		nrApp.Shutdown(5 * time.Second)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(
	db *sqlx.DB,
	redisClient *redis.Client,
	publisher service.EventPublisher,
	nrApp *newrelic.Application,
	cfg *config.Config,
) *http.Server {
	feeRate, err := decimal.NewFromString(cfg.Fare.PlatformFeeRate)
	if err != nil {
		log.Printf("invalid PLATFORM_FEE_RATE %q, using default: %v", cfg.Fare.PlatformFeeRate, err)
		feeRate = decimal.Zero
	}

	// Initialize Redis stores.
	lockStore := internalRedis.NewLockStore(redisClient)

	// Initialize repositories.
	userRepo := postgres.NewUserRepository(db)
	rideRepo := postgres.NewRideRepository(db)
	captainRepo := postgres.NewCaptainRepository(db)
	walletRepo := postgres.NewWalletRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)

	// Initialize services.
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	notificationService := service.NewNotificationService(publisher)
	authService := service.NewAuthService(userRepo, tokens, 0)
	rideService := service.NewRideService(rideRepo, captainRepo, userRepo, notificationService, service.FareConfig{
		BaseFare:       cfg.Fare.BaseFare,
		PerKmRate:      cfg.Fare.PerKmRate,
		SearchRadiusKm: cfg.Fare.SearchRadiusKm,
	})
	captainService := service.NewCaptainService(captainRepo, userRepo)
	paymentService := service.NewPaymentService(paymentRepo, walletRepo, rideRepo, lockStore, notificationService, feeRate)
	adminService := service.NewAdminService(userRepo, captainRepo, paymentRepo, notificationService)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		AuthHandler:    handler.NewAuthHandler(authService),
		RideHandler:    handler.NewRideHandler(rideService),
		CaptainHandler: handler.NewCaptainHandler(captainService, rideService),
		PaymentHandler: handler.NewPaymentHandler(paymentService),
		AdminHandler:   handler.NewAdminHandler(adminService),
		Tokens:         tokens,
		Users:          userRepo,
		RateLimiter:    middleware.NewRateLimiter(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window),
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
