package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"vintrack/db"
	"vintrack/internal/auth"
	"vintrack/internal/config"
	"vintrack/internal/listing"
	"vintrack/internal/provider"
	"vintrack/internal/scheduler"
	"vintrack/internal/settings"
	"vintrack/internal/vin"
	"vintrack/internal/web"
	"vintrack/middleware"
)

// Global loggers for different output streams
var (
	infoLogger  = log.New(os.Stdout, "", log.LstdFlags)
	errorLogger = log.New(os.Stderr, "", log.LstdFlags)
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		errorLogger.Fatalf("Failed to load configuration: %v", err)
	}

	var sqliteDB *sql.DB
	var mongoClient *mongo.Client

	switch cfg.DatabaseType {
	case config.SQLite:
		infoLogger.Println("Using SQLite database")
		sqliteDB, err = db.ConnectToSQLite(cfg.SQLitePath)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to SQLite: %v", err)
		}
		if err := db.InitializeSchema(sqliteDB); err != nil {
			errorLogger.Fatalf("Failed to initialize database schema: %v", err)
		}
	case config.MongoDB:
		infoLogger.Println("Using MongoDB database")
		mongoClient, err = db.ConnectToMongo(cfg.MongoURI)
		if err != nil {
			errorLogger.Fatalf("Failed to connect to MongoDB: %v", err)
		}
	}

	repoFactory := db.NewRepositoryFactory(sqliteDB, mongoClient, cfg.DatabaseName)
	vinRepo := repoFactory.NewVINRepository()
	cacheRepo := repoFactory.NewListingCacheRepository()
	settingsRepo := repoFactory.NewSettingsRepository()

	// Create database manager for concurrent access control
	dbManager := db.NewDBManager()

	if cfg.ProviderAPIKey == "" {
		infoLogger.Println("Warning: MARKETCHECK_API_KEY is not set, listing refreshes will fail until it is configured")
	}
	providerClient := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey)

	listingService := listing.NewListingService(providerClient, vinRepo, cacheRepo, dbManager, cfg.HistoryWindowMonths)
	vinService := vin.NewVINService(providerClient, vinRepo, dbManager)
	settingsService := settings.NewSettingsService(settingsRepo)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refreshScheduler := scheduler.New(listingService, settingsService, vinRepo)
	if err := refreshScheduler.Start(ctx); err != nil {
		errorLogger.Fatalf("Failed to start refresh scheduler: %v", err)
	}

	authHandlers := auth.NewAuthHandlers(cfg)
	listingHandlers := listing.NewListingHandlers(listingService)
	vinHandlers := vin.NewVINHandlers(vinService)
	settingsHandlers := settings.NewSettingsHandlers(settingsService)
	mw := middleware.NewMiddleware(cfg)

	router := web.NewRouter(authHandlers, listingHandlers, vinHandlers, settingsHandlers, mw)
	handler := middleware.LoggingMiddleware(middleware.SetupCORS()(router.SetupRoutes()))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		infoLogger.Printf("Server is starting on port %s...", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errorLogger.Fatalf("Server ListenAndServe error: %v", err)
		}
	}()

	waitForShutdown(server, func() {
		refreshScheduler.Stop()
		dbManager.Stop()
		cancel()
		if sqliteDB != nil {
			sqliteDB.Close()
		}
		if mongoClient != nil {
			mongoClient.Disconnect(context.Background())
		}
	})
}

func waitForShutdown(server *http.Server, cleanup func()) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	sig := <-stop
	infoLogger.Printf("Received shutdown signal: %v", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	infoLogger.Println("Shutting down the server...")
	if err := server.Shutdown(shutdownCtx); err != nil {
		errorLogger.Printf("Server Shutdown error: %v", err)
	}

	cleanup()
	infoLogger.Println("[SUCCESS] Services stopped")
}
