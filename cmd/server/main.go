package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"entrydesk/internal/config"
	"entrydesk/internal/email/noop"
	"entrydesk/internal/email/ses"
	"entrydesk/internal/handler"
	"entrydesk/internal/port"
	"entrydesk/internal/repository/postgres"
	"entrydesk/internal/router"
	"entrydesk/internal/service"
	s3storage "entrydesk/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	entryRepo := postgres.NewEntryRepo(db)
	scheduleRepo := postgres.NewScheduleRepo(db)
	runRepo := postgres.NewReportRunRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize report mailer
	var mailer port.ReportMailer
	switch cfg.Email.Provider {
	case "ses":
		mailer, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		mailer = noop.NewNoopSender()
	}

	// Initialize services
	reportSvc := service.NewReportService(entryRepo, s3Client, mailer, &cfg.S3)
	scheduleSvc := service.NewScheduleService(scheduleRepo, runRepo)

	// Start the schedule worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := service.NewScheduleWorker(scheduleRepo, runRepo, reportSvc, service.ScheduleWorkerConfig{
		PollInterval: time.Duration(cfg.Worker.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Worker.Concurrency,
		RunTimeout:   time.Duration(cfg.Worker.RunTimeoutSecs) * time.Second,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(workerCtx)
	}()

	// Initialize handlers
	reportH := handler.NewReportHandler(reportSvc)
	scheduleH := handler.NewScheduleHandler(scheduleSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, reportH, scheduleH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		stopWorker()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Printf("received %s, shutting down", sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}

	stopWorker()
	<-workerDone

	return nil
}
