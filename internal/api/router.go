package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/foodhub/ordering-system/internal/api/handler"
	"github.com/foodhub/ordering-system/internal/api/middleware"
	"github.com/foodhub/ordering-system/internal/core/domain"
	"github.com/foodhub/ordering-system/internal/core/ports"
	"github.com/foodhub/ordering-system/internal/core/service"
	"github.com/foodhub/ordering-system/internal/infrastructure/config"
	mongorepo "github.com/foodhub/ordering-system/internal/infrastructure/db/mongo"
	httpserver "github.com/foodhub/ordering-system/internal/infrastructure/http"
)

// Deps are the process-wide resources the router wires into handlers.
type Deps struct {
	Config *config.Config
	Logger zerolog.Logger
	DB     *mongo.Database
	// Redis is nil when the in-memory rate limiter is used.
	Redis          *redis.Client
	RateLimitStore ports.RateLimitStore
	// Registry is optional; nil uses the default Prometheus registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	cfg, log := deps.Config, deps.Logger

	e := httpserver.NewEcho(httpserver.Options{
		Logger:       log,
		AllowOrigins: cfg.CORS.AllowOrigins,
		DB:           deps.DB,
		Redis:        deps.Redis,
		Registry:     deps.Registry,
	})
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()
	e.Use(middleware.RateLimit(deps.RateLimitStore, middleware.RateLimitConfig{
		Skipper:  httpserver.IsPlatformPath,
		Requests: cfg.RateLimit.Requests,
		Window:   cfg.RateLimit.Window,
	}, log))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(deps.DB)
	categoryRepo := mongorepo.NewCategoryRepository(deps.DB)
	productRepo := mongorepo.NewProductRepository(deps.DB)

	tokens := service.NewTokenService(service.TokenConfig{
		AccessSecret:  cfg.Auth.AccessTokenSecret,
		RefreshSecret: cfg.Auth.RefreshTokenSecret,
		AccessTTL:     cfg.Auth.AccessTokenTTL,
		RefreshTTL:    cfg.Auth.RefreshTokenTTL,
	})
	authService := service.NewAuthService(userRepo, tokens, log.With().Str("component", "auth").Logger())
	userService := service.NewUserService(userRepo, log.With().Str("component", "users").Logger())
	categoryService := service.NewCategoryService(categoryRepo, log.With().Str("component", "categories").Logger())
	productService := service.NewProductService(productRepo, categoryRepo, log.With().Str("component", "products").Logger())

	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(userService, log)
	categoryHandler := handler.NewCategoryHandler(categoryService, log)
	productHandler := handler.NewProductHandler(productService, log)

	requireAdmin := middleware.Authorize(tokens, authService, domain.RoleAdmin, log)
	requireUser := middleware.Authorize(tokens, authService, domain.RoleUser, log)

	// Domain routes live under /api; platform routes stay at the root.
	root := e.Group("/api")

	// --- Admin routes ---
	admin := root.Group("/admin")
	admin.POST("/login", authHandler.AdminLogin)
	admin.POST("/refreshToken", authHandler.AdminRefresh)

	admin.POST("/productCategory", categoryHandler.Create, requireAdmin)
	admin.GET("/getProductCategory", categoryHandler.List, requireAdmin)
	admin.PUT("/updateProductCategory/:id", categoryHandler.Update, requireAdmin)
	admin.PUT("/deleteProductCategory/:id", categoryHandler.Delete, requireAdmin)

	admin.POST("/productAdd", productHandler.Create, requireAdmin)
	admin.GET("/getAllProduct", productHandler.List, requireAdmin)
	admin.GET("/getProduct/:id", productHandler.ListByCategory, requireAdmin)
	admin.GET("/getProductByID/:id", productHandler.Get, requireAdmin)
	admin.PUT("/productUpdate/:id", productHandler.Update, requireAdmin)
	admin.PUT("/deleteProduct/:id", productHandler.Delete, requireAdmin)

	admin.GET("/getUsers", userHandler.ListUsers, requireAdmin)
	admin.PUT("/promoteUser/:id", userHandler.PromoteUser, requireAdmin)

	// --- User routes ---
	user := root.Group("/user")
	user.POST("/login", authHandler.UserLogin)
	user.POST("/refreshToken", authHandler.UserRefresh)
	user.POST("/userRegister", authHandler.Register)

	user.PUT("/updateProfile", userHandler.UpdateProfile, requireUser)
	user.GET("/getProductCategory", categoryHandler.List, requireUser)
	user.GET("/getProduct/:id", productHandler.ListByCategory, requireUser)

	return e
}
