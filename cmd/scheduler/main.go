package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/yanuaran892/perpusmpn1sedati/internal/config"
	"github.com/yanuaran892/perpusmpn1sedati/internal/domain"
	"github.com/yanuaran892/perpusmpn1sedati/internal/logging"
	"github.com/yanuaran892/perpusmpn1sedati/internal/repository"
	"github.com/yanuaran892/perpusmpn1sedati/internal/service"
)

type FineCalculator interface {
	CalculateOverdueFines(ctx context.Context, actor *domain.Actor) error
}

type VisitorSweeper interface {
	SweepStale(ctx context.Context) (int64, error)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Logging).With("component", "scheduler")
	slog.SetDefault(logger)
	logger.Info("starting library scheduler")

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	studentRepo := repository.NewStudentRepository(db)
	adminRepo := repository.NewAdminRepository(db)

	// The fine batch never consults the library status.
	circulation := service.NewCirculationService(
		repository.NewProcedures(db),
		repository.NewLoanRepository(db),
		studentRepo,
		repository.NewBookRepository(db),
		adminRepo,
		nil,
		cfg,
		logger,
	)
	visitors := service.NewVisitorService(repository.NewVisitorRepository(db), cfg, logger)

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.SchedulerLocation()))

	// Schedule tasks
	if err := setupCronJobs(c, cfg, circulation, visitors, logger); err != nil {
		log.Fatalf("Failed to schedule jobs: %v", err)
	}

	// Start the scheduler
	c.Start()
	logger.Info("scheduler started", "timezone", cfg.Scheduler.Timezone, "jobs", len(c.Entries()))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down scheduler")
	<-c.Stop().Done()
	logger.Info("scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, fines FineCalculator, visitors VisitorSweeper, logger *slog.Logger) error {
	timeout := cfg.GetJobTimeout()

	// Daily overdue fine batch
	if _, err := c.AddFunc(cfg.Scheduler.FineCron, func() {
		runOverdueFines(fines, timeout, logger)
	}); err != nil {
		return err
	}

	// Close visits left open from previous days
	if _, err := c.AddFunc(cfg.Scheduler.VisitorSweep, func() {
		runVisitorSweep(visitors, timeout, logger)
	}); err != nil {
		return err
	}

	logger.Info("cron jobs scheduled", "fine_cron", cfg.Scheduler.FineCron, "visitor_sweep_cron", cfg.Scheduler.VisitorSweep)
	return nil
}

func runOverdueFines(fines FineCalculator, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logger.Info("running overdue fine calculation")
	if err := fines.CalculateOverdueFines(ctx, nil); err != nil {
		logger.Error("overdue fine calculation failed", "error", err)
	}
}

func runVisitorSweep(visitors VisitorSweeper, timeout time.Duration, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	closed, err := visitors.SweepStale(ctx)
	if err != nil {
		logger.Error("visitor sweep failed", "error", err)
		return
	}
	logger.Info("visitor sweep finished", "closed", closed)
}
