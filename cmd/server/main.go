package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/handler"
	"github.com/yanuaran892/perpusmpn1sedati/internal/logging"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	"github.com/yanuaran892/perpusmpn1sedati/internal/service"
	"github.com/yanuaran892/perpusmpn1sedati/internal/session"
	"github.com/yanuaran892/perpusmpn1sedati/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging)
	slog.SetDefault(logger)

	// Initialize database
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Redis
	redisClient := initRedis(cfg)
	defer redisClient.Close()

	// Initialize repositories
	procedures := repository.NewProcedures(db)
	loanRepo := repository.NewLoanRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	bookRepo := repository.NewBookRepository(db)
	paymentRepo := repository.NewFinePaymentRepository(db)
	visitorRepo := repository.NewVisitorRepository(db)
	adminRepo := repository.NewAdminRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	libraryService := service.NewLibraryService(settingsRepo, adminRepo, redisClient, cfg.Business.LibraryStatusTTL, logger)
	visitorService := service.NewVisitorService(visitorRepo, cfg, logger)
	circulationService := service.NewCirculationService(procedures, loanRepo, studentRepo, bookRepo, adminRepo, libraryService, cfg, logger)
	fineService := service.NewFineService(procedures, paymentRepo, studentRepo, adminRepo, cfg, logger)
	studentService := service.NewStudentService(studentRepo, adminRepo, cfg, logger)
	catalogService := service.NewCatalogService(bookRepo, adminRepo, cfg, logger)
	reportService := service.NewReportService(loanRepo, studentRepo, visitorRepo, paymentRepo, adminRepo, cfg, logger)
	authService := service.NewAuthService(studentRepo, adminRepo, session.NewRedisStore(redisClient), visitorService, cfg, logger)

	router := handler.NewRouter(
		handler.NewHealthHandler(db, redisClient, cfg.GetHealthTimeout()),
		handler.NewAuthMiddleware(authService),
		handler.NewAuthHandler(authService),
		handler.NewCirculationHandler(circulationService),
		handler.NewFineHandler(fineService),
		handler.NewStudentHandler(studentService),
		handler.NewVisitorHandler(visitorService),
		handler.NewCatalogHandler(catalogService),
		handler.NewLibraryHandler(libraryService),
		handler.NewReportHandler(reportService),
	)
	router.Use(response.LoggingMiddleware(logger))

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      handler.WithCORS(router, cfg.Server.AllowOrigin),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting", "addr", server.Addr, "env", cfg.Server.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("server exited")
}

func initDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}

func initRedis(cfg *config.Config) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
