package main

import (
	"context"
	"database/sql"
	"log"
	"net"
	"net/http"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/config"
	"github.com/tracklight-io/tracklight-engine/pkg/database"
	"github.com/tracklight-io/tracklight-engine/pkg/handlers"
	"github.com/tracklight-io/tracklight-engine/pkg/logging"
	"github.com/tracklight-io/tracklight-engine/pkg/middleware"
	"github.com/tracklight-io/tracklight-engine/pkg/repositories"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("version", cfg.Version),
		zap.Bool("auth_verification", cfg.Auth.EnableVerification),
		zap.String("database", cfg.Database.Database),
		zap.String("database_host", cfg.Database.Host))

	ctx := context.Background()

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Migrations run over database/sql; the pgx stdlib driver shares the
	// connection string with the pool.
	sqlDB, err := sql.Open("pgx", cfg.Database.ConnectionString())
	if err != nil {
		logger.Fatal("Failed to open migration connection", zap.Error(err))
	}
	if err := database.RunMigrations(sqlDB, cfg.Database.MigrationsPath, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close migration connection", zap.Error(err))
	}

	jwksClient, err := auth.NewJWKSClient(&auth.JWKSConfig{
		EnableVerification: cfg.Auth.EnableVerification,
		JWKSEndpoints:      cfg.Auth.JWKSEndpoints,
	})
	if err != nil {
		logger.Fatal("Failed to create JWKS client", zap.Error(err))
	}
	authService := auth.NewAuthService(jwksClient, logger)
	authMiddleware := auth.NewMiddleware(authService, logger)

	tenantMiddleware := database.WithTenantContext(db, logger)
	globalMiddleware := database.WithGlobalContext(db, logger)

	statusTaxonomy, err := cfg.StatusTaxonomy()
	if err != nil {
		logger.Fatal("Failed to load status taxonomy", zap.Error(err))
	}

	userRepo := repositories.NewUserRepository()
	projectRepo := repositories.NewProjectRepository()
	membershipRepo := repositories.NewMembershipRepository()
	statusRepo := repositories.NewStatusRepository()
	storyRepo := repositories.NewStoryRepository()

	userService := services.NewUserService(userRepo, logger)
	projectService := services.NewProjectService(db, projectRepo, membershipRepo, statusRepo, statusTaxonomy, logger)
	membershipService := services.NewMembershipService(membershipRepo, userRepo, logger)
	statusService := services.NewStatusService(statusRepo, membershipRepo, logger)
	storyService := services.NewStoryService(storyRepo, statusRepo, membershipRepo, logger)
	permissionService := services.NewPermissionService(membershipRepo)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(cfg, logger)
	healthHandler.RegisterRoutes(mux)

	usersHandler := handlers.NewUsersHandler(userService, logger)
	usersHandler.RegisterRoutes(mux, authMiddleware, globalMiddleware)

	projectsHandler := handlers.NewProjectsHandler(projectService, logger)
	projectsHandler.RegisterRoutes(mux, authMiddleware, tenantMiddleware, globalMiddleware)

	membershipsHandler := handlers.NewMembershipsHandler(membershipService, logger)
	membershipsHandler.RegisterRoutes(mux, authMiddleware, tenantMiddleware)

	statusesHandler := handlers.NewStatusesHandler(statusService, logger)
	statusesHandler.RegisterRoutes(mux, authMiddleware, tenantMiddleware)

	storiesHandler := handlers.NewStoriesHandler(storyService, logger)
	storiesHandler.RegisterRoutes(mux, authMiddleware, tenantMiddleware)

	permissionsHandler := handlers.NewPermissionsHandler(permissionService, logger)
	permissionsHandler.RegisterRoutes(mux, authMiddleware, tenantMiddleware)

	addr := net.JoinHostPort(cfg.BindAddr, cfg.Port)
	logger.Info("Starting tracklight-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, middleware.RequestLogger(logger)(mux)); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
