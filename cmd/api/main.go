package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tecnimaq/maintenance-api/internal/auth"
	"github.com/tecnimaq/maintenance-api/internal/config"
	"github.com/tecnimaq/maintenance-api/internal/database"
	"github.com/tecnimaq/maintenance-api/internal/http/handler"
	"github.com/tecnimaq/maintenance-api/internal/http/middleware"
	"github.com/tecnimaq/maintenance-api/internal/http/router"
	"github.com/tecnimaq/maintenance-api/internal/jobs"
	"github.com/tecnimaq/maintenance-api/internal/logger"
	"github.com/tecnimaq/maintenance-api/internal/repository"
	"github.com/tecnimaq/maintenance-api/internal/service"
	"github.com/tecnimaq/maintenance-api/internal/storage"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Development convenience; deployed environments run cmd/migrate instead
	if cfg.App.Environment == "development" || cfg.App.Environment == "local" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	// Initialize storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	typeRepo := repository.NewMachineryTypeRepository(db)
	procedureRepo := repository.NewProcedureRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	repRepo := repository.NewRepresentativeRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	itemRepo := repository.NewRequestItemRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	userRepo := repository.NewUserRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize services
	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL())

	categoryService := service.NewCategoryService(categoryRepo, log)
	typeService := service.NewMachineryTypeService(typeRepo, categoryRepo, log)
	procedureService := service.NewProcedureService(procedureRepo, typeRepo, log)
	companyService := service.NewCompanyService(companyRepo, log)
	repService := service.NewRepresentativeService(repRepo, companyRepo, log)
	employeeService := service.NewEmployeeService(employeeRepo, log)
	requestService := service.NewRequestService(requestRepo, companyRepo, log)
	itemService := service.NewRequestItemService(itemRepo, requestRepo, procedureRepo, fileStorage, log)
	assignmentService := service.NewAssignmentService(assignmentRepo, requestRepo, employeeRepo, log)
	authService := service.NewAuthService(userRepo, tokenManager, log)
	reportService := service.NewReportService(reportRepo, requestRepo, log)
	dashboardService := service.NewDashboardService(
		companyRepo, repRepo, categoryRepo, typeRepo, procedureRepo,
		requestRepo, itemRepo, employeeRepo, assignmentRepo, reportRepo, log)

	// Initialize middleware
	authMiddleware := auth.NewMiddleware(tokenManager, userRepo, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	categoryHandler := handler.NewCategoryHandler(categoryService, log)
	typeHandler := handler.NewMachineryTypeHandler(typeService, log)
	procedureHandler := handler.NewProcedureHandler(procedureService, log)
	companyHandler := handler.NewCompanyHandler(companyService, log)
	repHandler := handler.NewRepresentativeHandler(repService, log)
	employeeHandler := handler.NewEmployeeHandler(employeeService, log)
	requestHandler := handler.NewRequestHandler(requestService, log)
	itemHandler := handler.NewRequestItemHandler(itemService, fileStorage, cfg.Storage.MaxUploadSizeMB, log)
	assignmentHandler := handler.NewAssignmentHandler(assignmentService, log)
	reportHandler := handler.NewReportHandler(reportService, log)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		categoryHandler,
		typeHandler,
		procedureHandler,
		companyHandler,
		repHandler,
		employeeHandler,
		requestHandler,
		itemHandler,
		assignmentHandler,
		reportHandler,
		dashboardHandler,
	)

	// Start scheduler for background jobs
	scheduler := jobs.NewScheduler(log)
	tokenCleanup := jobs.NewTokenCleanupJob(authService, log)
	if err := scheduler.AddJob(jobs.TokenCleanupJobName, cfg.Jobs.TokenCleanupSchedule, tokenCleanup.Run); err != nil {
		log.Error("Failed to register token cleanup job", zap.Error(err))
	} else {
		scheduler.Start()
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		stopCtx := scheduler.Stop()
		<-stopCtx.Done()
		log.Info("Scheduler stopped")

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
