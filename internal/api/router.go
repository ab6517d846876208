package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/myproject/todo-management/internal/api/handler"
	"github.com/myproject/todo-management/internal/api/middleware"
	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/service"
	"github.com/myproject/todo-management/internal/infrastructure/config"
	"github.com/myproject/todo-management/internal/infrastructure/db/postgres"
	redisinfra "github.com/myproject/todo-management/internal/infrastructure/db/redis"
	"github.com/myproject/todo-management/internal/infrastructure/storage"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(pool *pgxpool.Pool, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
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
	photoStore, err := storage.NewLocalPhotoStore(cfg.UploadDir, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise photo storage")
	}
	limiter := redisinfra.NewLoginLimiter(rdb)
	tokens := service.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)

	authService := service.NewAuthService(userRepo, photoStore, tokens, limiter, log)
	todoService := service.NewTodoService(todoRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)

	authMW := middleware.Auth(tokens)
	anyRole := middleware.RBAC(domain.RoleAdmin, domain.RoleUser)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	authed := auth.Group("", authMW)
	authed.GET("/users", authHandler.ListUsers, adminOnly)
	authed.GET("/users/:id", authHandler.GetUser, anyRole)
	authed.GET("/users/username/:usernameOrEmail", authHandler.GetUserByName, anyRole)
	authed.PUT("/update/:id", authHandler.Update, anyRole)
	authed.DELETE("/delete/:id", authHandler.Delete, adminOnly)
	authed.PUT("/update-password", authHandler.UpdatePassword, anyRole)

	// --- Todo routes ---
	todos := e.Group("/api/todos", authMW, anyRole)
	todos.POST("", todoHandler.Add)
	todos.GET("", todoHandler.List)
	todos.GET("/:id", todoHandler.Get)
	todos.PUT("/:id", todoHandler.Update)
	todos.DELETE("/:id", todoHandler.Delete)
	todos.PATCH("/:id/complete", todoHandler.Complete)
	todos.PATCH("/:id/in-complete", todoHandler.Incomplete)

	// --- Stored photos (public) ---
	e.Static("/uploads", cfg.UploadDir)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(pool, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
