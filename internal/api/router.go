package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/expensio/expense-tracker/internal/api/handler"
	"github.com/expensio/expense-tracker/internal/api/middleware"
	"github.com/expensio/expense-tracker/internal/core/service"
	"github.com/expensio/expense-tracker/internal/infrastructure/config"
	mongorepo "github.com/expensio/expense-tracker/internal/infrastructure/db/mongo"
	redisrepo "github.com/expensio/expense-tracker/internal/infrastructure/db/redis"
	"github.com/expensio/expense-tracker/internal/infrastructure/security"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *goredis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("expense_tracker"))
	// Blanket request deadline: requests exceeding it fail regardless of how
	// far the underlying store call got.
	e.Use(echomiddleware.TimeoutWithConfig(echomiddleware.TimeoutConfig{
		Timeout: cfg.RequestTimeout,
	}))

	// --- Dependencies ---
	hasher := security.NewBcryptHasher(0)
	issuer := security.NewJWTIssuer(cfg.JWTSecret, cfg.TokenTTL)

	userRepo := mongorepo.NewUserRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)
	expenseRepo := mongorepo.NewExpenseRepository(db)
	reportCache := redisrepo.NewReportCache(rdb, log)

	userService := service.NewUserService(userRepo, hasher, log)
	categoryService := service.NewCategoryService(categoryRepo, log)
	expenseService := service.NewExpenseService(expenseRepo, categoryService, userService, reportCache, log)
	authService := service.NewAuthService(userService, hasher, issuer, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	expenseHandler := handler.NewExpenseHandler(expenseService)

	guard := middleware.Auth(issuer)

	// --- Health probes and metrics (no auth required, outside /api) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- API routes ---
	apiGroup := e.Group("/api")

	// Sign-in and sign-up are the only unguarded API routes.
	apiGroup.POST("/auth/login", authHandler.Login)
	apiGroup.POST("/users", userHandler.Create)

	apiGroup.GET("/users", userHandler.List, guard)
	apiGroup.PATCH("/users/:id", userHandler.Update, guard)
	apiGroup.DELETE("/users/:id", userHandler.Delete, guard)

	apiGroup.POST("/categories", categoryHandler.Create, guard)
	apiGroup.GET("/categories", categoryHandler.List, guard)
	apiGroup.PATCH("/categories/:id", categoryHandler.Update, guard)

	apiGroup.POST("/expenses", expenseHandler.Create, guard)
	apiGroup.GET("/expenses", expenseHandler.List, guard)
	apiGroup.GET("/expenses/:id", expenseHandler.Get, guard)
	apiGroup.DELETE("/expenses/:id", expenseHandler.Delete, guard)

	return e
}
