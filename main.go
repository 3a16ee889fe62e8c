// main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"movie-discovery/cmd"
	"movie-discovery/internal/data/repository"
	"movie-discovery/internal/wire"
	"movie-discovery/pkg/database"
	"movie-discovery/pkg/omdb"
	"movie-discovery/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	migrateCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	err = database.Migrate(migrateCtx, db)
	cancel()
	if err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	provider, err := omdb.NewClient(omdb.Config{
		BaseURL: config.OMDB.BaseURL,
		APIKey:  config.OMDB.APIKey,
		Timeout: config.OMDB.Timeout(),
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create OMDb client", zap.Error(err))
	}
	if config.OMDB.APIKey == "" {
		logger.Warn("OMDB_API_KEY is empty, movie lookups will fail")
	}

	tokens := utils.NewTokenManager(config.JWT.Secret, config.JWT.Expiry(), config.App.Name)

	// Wire all dependencies
	app := wire.Wiring(repos, provider, tokens, config, logger)

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
	}
}
