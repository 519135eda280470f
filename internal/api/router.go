package api

import (
	"database/sql"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/cognitodo/todo-system/internal/api/handler"
	"github.com/cognitodo/todo-system/internal/api/middleware"
	"github.com/cognitodo/todo-system/internal/core/ports"
	"github.com/cognitodo/todo-system/internal/core/service"
	"github.com/cognitodo/todo-system/internal/infrastructure/config"
	"github.com/cognitodo/todo-system/internal/infrastructure/db/postgres"
	redisdb "github.com/cognitodo/todo-system/internal/infrastructure/db/redis"
	"github.com/cognitodo/todo-system/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *sql.DB, rdb *redis.Client, idp ports.IdentityProvider, verifier ports.TokenVerifier, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todo"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	todoRepo := postgres.NewTodoRepository(pool)
	todoCache := redisdb.NewTodoCache(rdb, cfg.Cache.TodoTTL)

	authService := service.NewAuthService(userRepo, idp, log)
	userService := service.NewUserService(userRepo, idp, log)
	todoService := service.NewTodoService(todoRepo, todoCache, log)

	production := cfg.IsProduction()
	authHandler := handler.NewAuthHandler(authService, production)
	userHandler := handler.NewUserHandler(userService, production)
	todoHandler := handler.NewTodoHandler(todoService)
	authMiddleware := middleware.Auth(verifier)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refreshSession", authHandler.RefreshSession)
	e.POST("/auth/logout", authHandler.Logout)

	// --- User routes (bearer) ---
	users := e.Group("/users", authMiddleware)
	users.GET("/me", userHandler.Me)
	users.PATCH("/update-name", userHandler.UpdateName)
	users.PATCH("/update-email", userHandler.UpdateEmail)
	users.PATCH("/update-password", userHandler.UpdatePassword)
	users.DELETE("/delete-me", userHandler.DeleteMe)
	users.POST("/validate-email", userHandler.ValidateEmail)

	// --- Todo routes (bearer) ---
	todos := e.Group("/todos", authMiddleware)
	todos.GET("/me", todoHandler.ListMine)
	todos.POST("", todoHandler.Create)
	todos.PATCH("/toggleIsCompleted/:id", todoHandler.ToggleCompleted)
	todos.PATCH("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
