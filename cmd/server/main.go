package main

import (
	"context"
	"os"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
	"github.com/okanv/likeledger/internal/ledger"
	"github.com/okanv/likeledger/internal/router"
	"github.com/okanv/likeledger/pkg/config"
	"github.com/okanv/likeledger/pkg/firebase"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize databases")
	}
	defer db.CloseDB()

	// Initialize Redis for the like cache
	redisClient, err := config.InitRedis(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize redis")
	}
	defer redisClient.Close()

	// Initialize Firebase; the local JWT flow works without it
	var firebaseAuthClient *auth.Client
	ctx := context.Background()
	firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
	if err != nil {
		log.Warn().Err(err).Msg("firebase disabled")
	} else {
		firebaseAuthClient = firebaseApp.AuthClient
	}

	// The in-process ledger: authoritative post/like state
	registry := ledger.NewRegistry()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e, log)

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, registry, db.Postgres, db.Mongo, redisClient, firebaseAuthClient, log); err != nil {
		log.Fatal().Err(err).Msg("failed to set up routes")
	}

	// Start server
	log.Fatal().Err(e.Start(":" + cfg.Port)).Msg("server stopped")
}
