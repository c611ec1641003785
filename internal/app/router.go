package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"campusride/internal/auth"
	"campusride/internal/domain"
	"campusride/internal/handler"
	"campusride/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	AuthHandler    *handler.AuthHandler
	RideHandler    *handler.RideHandler
	CaptainHandler *handler.CaptainHandler
	PaymentHandler *handler.PaymentHandler
	AdminHandler   *handler.AdminHandler
	Tokens         *auth.TokenManager
	Users          middleware.UserLookup
	RateLimiter    *middleware.RateLimiter
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
	AllowedOrigins []string
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	handler.RegisterValidators()

	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware(deps.AllowedOrigins))

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
	})

	authenticated := middleware.Authenticate(deps.Tokens)
	active := middleware.RequireActiveAccount(deps.Users)
	idempotent := middleware.IdempotencyMiddleware(deps.RedisClient)

	api := router.Group("/api")
	{
		// Auth routes.
		authRoutes := api.Group("/auth")
		{
			if deps.RateLimiter != nil {
				authRoutes.POST("/signup", deps.RateLimiter.Handler(), deps.AuthHandler.Signup)
				authRoutes.POST("/login", deps.RateLimiter.Handler(), deps.AuthHandler.Login)
			} else {
				authRoutes.POST("/signup", deps.AuthHandler.Signup)
				authRoutes.POST("/login", deps.AuthHandler.Login)
			}
			authRoutes.GET("/me", authenticated, active, deps.AuthHandler.Me)
		}

		// Ride routes.
		rides := api.Group("/rides")
		{
			rides.POST("/calculate-fare", deps.RideHandler.CalculateFare)

			protected := rides.Group("", authenticated, active, idempotent)
			protected.POST("/request", middleware.RequireRole(domain.RoleStudent), deps.RideHandler.RequestRide)
			protected.GET("/available", middleware.RequireRole(domain.RoleCaptain), deps.RideHandler.AvailableRides)
			protected.GET("/history", deps.RideHandler.History)
			protected.GET("/:rideId", deps.RideHandler.GetRide)
			protected.POST("/:rideId/accept", middleware.RequireRole(domain.RoleCaptain), deps.RideHandler.AcceptRide)
			protected.PUT("/:rideId/status", middleware.RequireRole(domain.RoleStudent, domain.RoleCaptain), deps.RideHandler.UpdateStatus)
		}

		// Captain routes.
		captains := api.Group("/captains", authenticated, active, idempotent)
		{
			captains.GET("/nearby", deps.CaptainHandler.Nearby)

			own := captains.Group("", middleware.RequireRole(domain.RoleCaptain))
			own.GET("/status", deps.CaptainHandler.GetStatus)
			own.PUT("/status", deps.CaptainHandler.UpdateStatus)
			own.PUT("/location", deps.CaptainHandler.UpdateLocation)
		}

		// Payment routes.
		payments := api.Group("/payments", authenticated, active, idempotent)
		{
			payments.POST("/process", middleware.RequireRole(domain.RoleStudent), deps.PaymentHandler.ProcessPayment)
			payments.GET("/wallet", deps.PaymentHandler.Wallet)
			payments.POST("/wallet/add", deps.PaymentHandler.AddToWallet)
			payments.GET("/history", deps.PaymentHandler.History)
			payments.POST("/:id/refund", deps.PaymentHandler.Refund)
		}

		// Admin routes.
		admin := api.Group("/admin", middleware.Authenticate(deps.Tokens, domain.RoleAdmin), active, idempotent)
		{
			admin.GET("/captains/pending", deps.AdminHandler.PendingCaptains)
			admin.PUT("/captains/:id/kyc", deps.AdminHandler.ReviewKYC)
			admin.PUT("/users/:id/deactivate", deps.AdminHandler.DeactivateUser)
			admin.GET("/earnings", deps.AdminHandler.Earnings)
		}
	}

	return router
}
