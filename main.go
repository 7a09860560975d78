package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/config"
	"github.com/jobpath-io/jobpath-engine/pkg/database"
	"github.com/jobpath-io/jobpath-engine/pkg/handlers"
	"github.com/jobpath-io/jobpath-engine/pkg/logging"
	"github.com/jobpath-io/jobpath-engine/pkg/repositories"
	"github.com/jobpath-io/jobpath-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck // stderr sync errors are harmless at exit

	ctx := context.Background()

	// Migrations run over database/sql as golang-migrate requires.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	appRepo := repositories.NewApplicationRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	interviewRepo := repositories.NewInterviewRepository(db)
	historyRepo := repositories.NewPipelineHistoryRepository(db)
	linkRepo := repositories.NewApplicationContactRepository(db)

	appService := services.NewApplicationService(appRepo, historyRepo, linkRepo, interviewRepo, db, logger)
	pipelineService := services.NewPipelineService(appRepo, historyRepo, db, logger)
	relService := services.NewRelationshipService(appRepo, contactRepo, linkRepo, db, logger)
	contactService := services.NewContactService(contactRepo, linkRepo, logger)
	interviewService := services.NewInterviewService(interviewRepo, appRepo, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewApplicationHandler(appService, pipelineService, relService, logger).RegisterRoutes(mux)
	handlers.NewContactHandler(contactService, logger).RegisterRoutes(mux)
	handlers.NewInterviewHandler(interviewService, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting jobpath-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env))

	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
