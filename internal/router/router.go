package router

import (
	"firebase.google.com/go/v4/auth"
	"github.com/go-redis/redis"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/okanv/likeledger/internal/handlers"
	"github.com/okanv/likeledger/internal/ledger"
	"github.com/okanv/likeledger/internal/middleware"
	"github.com/okanv/likeledger/internal/models"
	"github.com/okanv/likeledger/internal/repositories"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, log zerolog.Logger) {
	e.Use(eMiddleware.RequestLoggerWithConfig(eMiddleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v eMiddleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Msg("request")
			return nil
		},
	}))
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, registry *ledger.Registry, pgdb *gorm.DB, mgClient *mongo.Client, redisClient *redis.Client, firebaseAuthClient *auth.Client, log zerolog.Logger) error {
	// AutoMigrate PostgreSQL models
	if err := pgdb.AutoMigrate(
		&models.Account{},
		&models.Like{},
	); err != nil {
		return err
	}
	log.Info().Msg("postgres auto-migrations completed")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize repositories ---
	accountRepo := repositories.NewPostgresAccountRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database("likeledger"))
	likeRepo := repositories.NewPostgresLikeRepository(pgdb)
	likeCache := repositories.NewRedisLikeCache(redisClient)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(accountRepo, firebaseAuthClient)
	authHandler.RegisterAuthRoutes(authGroup)

	// --- Protected routes (require an authenticated signer) ---
	api := e.Group("/api/v1")
	api.Use(middleware.SignerAuth())

	accountHandler := handlers.NewAccountHandler(accountRepo)
	accountHandler.RegisterAccountRoutes(api)

	postHandler := handlers.NewPostHandler(registry, postRepo, log)
	postHandler.RegisterPostRoutes(api)

	likeHandler := handlers.NewLikeHandler(registry, likeRepo, postRepo, likeCache, log)
	likeHandler.RegisterLikeRoutes(api)

	log.Info().Msg("all routes configured")
	return nil
}
