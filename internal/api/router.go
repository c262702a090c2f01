package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"gorm.io/gorm"

	"github.com/ratehub/store-ratings/internal/api/handler"
	"github.com/ratehub/store-ratings/internal/api/middleware"
	"github.com/ratehub/store-ratings/internal/core/domain"
	"github.com/ratehub/store-ratings/internal/core/service"
	"github.com/ratehub/store-ratings/internal/infrastructure/config"
	"github.com/ratehub/store-ratings/internal/infrastructure/db/postgres"
	"github.com/ratehub/store-ratings/internal/infrastructure/ratelimit"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *gorm.DB, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Secure())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{cfg.CORSOrigin},
	}))
	e.Use(echoprometheus.NewMiddleware("ratings"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	storeRepo := postgres.NewStoreRepository(db)
	ratingRepo := postgres.NewRatingRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost, log)
	storeService := service.NewStoreService(storeRepo, ratingRepo, log)
	adminService := service.NewAdminService(userRepo, storeRepo, ratingRepo, cfg.BcryptCost, log)
	ownerService := service.NewOwnerService(storeRepo, ratingRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	storeHandler := handler.NewStoreHandler(storeService)
	adminHandler := handler.NewAdminHandler(adminService)
	ownerHandler := handler.NewOwnerHandler(ownerService)

	authMW := middleware.Auth(cfg.JWTSecret)
	limiter := ratelimit.NewFixedWindow(rdb, "ratings:ratelimit", cfg.RateLimit.Limit, cfg.RateLimit.Window)
	limitMW := middleware.RateLimit(limiter)

	// --- Health probes (no auth, no rate limit) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/api/health", healthHandler.Liveness)
	e.GET("/api/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Auth routes ---
	auth := e.Group("/api/auth", limitMW)
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/change-password", authHandler.ChangePassword, authMW)

	// --- Public store views (any authenticated role) ---
	stores := e.Group("/api/stores", limitMW, authMW)
	stores.GET("", storeHandler.List)
	stores.GET("/:id", storeHandler.Get)
	stores.POST("/:id/ratings", storeHandler.Rate)

	// --- Admin ---
	admin := e.Group("/api/admin", limitMW, authMW, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/metrics", adminHandler.Metrics)
	admin.GET("/users", adminHandler.ListUsers)
	admin.POST("/users", adminHandler.CreateUser)
	admin.GET("/users/:id", adminHandler.GetUser)
	admin.GET("/stores", adminHandler.ListStores)
	admin.POST("/stores", adminHandler.CreateStore)
	admin.GET("/stores/:id", adminHandler.GetStore)
	admin.PATCH("/stores/:id", adminHandler.UpdateStore)
	admin.DELETE("/stores/:id", adminHandler.DeleteStore)

	// --- Owner ---
	owner := e.Group("/api/owner", limitMW, authMW, middleware.RBAC(domain.RoleOwner))
	owner.GET("/dashboard", ownerHandler.Dashboard)

	return e
}
