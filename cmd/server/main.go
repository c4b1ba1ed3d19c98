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

	"beanvault/internal/config"
	"beanvault/internal/email/noop"
	"beanvault/internal/email/ses"
	"beanvault/internal/handler"
	"beanvault/internal/parser"
	_ "beanvault/internal/parser/deepseek"
	"beanvault/internal/port"
	"beanvault/internal/repository/postgres"
	"beanvault/internal/router"
	"beanvault/internal/service"
	s3storage "beanvault/internal/storage/s3"
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
	beanRepo := postgres.NewBeanRepo(db)
	priceListRepo := postgres.NewPriceListRepo(db)
	latestRepo := postgres.NewLatestDataRepo(db)
	queryRunner := postgres.NewQueryRunner(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize LLM parser
	priceListParser, err := parser.NewParser(&cfg.Parser)
	if err != nil {
		return fmt.Errorf("failed to initialize parser: %w", err)
	}
	categorizer, _ := priceListParser.(port.FlavorCategorizer)
	if categorizer == nil {
		return fmt.Errorf("parser provider %s does not support flavor categorization", cfg.Parser.Provider)
	}
	generator, _ := priceListParser.(port.QueryGenerator)
	if generator == nil {
		return fmt.Errorf("parser provider %s does not support query generation", cfg.Parser.Provider)
	}

	// Initialize services
	authSvc := service.NewAuthService(cfg.JWT, cfg.Auth)
	beanSvc := service.NewBeanService(beanRepo, latestRepo)
	ingestSvc := service.NewIngestService(
		priceListRepo, beanRepo, latestRepo, beanSvc,
		priceListParser, s3Client, emailSender,
		cfg.S3, cfg.Email.NotifyAddress,
	)
	flavorSvc := service.NewFlavorService(beanRepo, categorizer)
	agentSvc := service.NewAgentService(generator, queryRunner, cfg.Agent.MaxRows)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	beanH := handler.NewBeanHandler(beanSvc)
	priceListH := handler.NewPriceListHandler(ingestSvc, flavorSvc)
	agentH := handler.NewAgentHandler(agentSvc)
	exportH := handler.NewExportHandler(beanRepo)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, beanH, priceListH, agentH, exportH, healthH)

	// Start the parse queue worker
	workerCtx, stopWorker := context.WithCancel(context.Background())
	worker := service.NewParseQueueWorker(priceListRepo, ingestSvc, service.ParseQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		MaxRetries:   cfg.Queue.MaxRetries,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		worker.Start(workerCtx)
	}()

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
