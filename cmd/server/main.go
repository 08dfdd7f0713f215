package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "gstbill/docs"
	"gstbill/internal/config"
	openaidrafter "gstbill/internal/drafter/openai"
	"gstbill/internal/email/noop"
	"gstbill/internal/email/ses"
	"gstbill/internal/handler"
	"gstbill/internal/pdf"
	"gstbill/internal/port"
	mongorepo "gstbill/internal/repository/mongo"
	"gstbill/internal/repository/postgres"
	"gstbill/internal/router"
	"gstbill/internal/service"
	"gstbill/internal/sheets"
	s3storage "gstbill/internal/storage/s3"
)

// @title gstbill API
// @version 1.0
// @description GST invoices, quotations and purchase orders with live totals, numbering and catalogs.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// repositories is the storage backend selected by db.driver.
type repositories struct {
	users     port.UserRepository
	documents port.DocumentRepository
	catalogs  port.CatalogRepository
	finder    port.DuplicateNumberFinder
	pinger    handler.Pinger
	close     func() error
}

func openRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.DB.Driver == "mongo" {
		db, err := mongorepo.Connect(&cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		return &repositories{
			users:     mongorepo.NewUserRepo(db.Database),
			documents: mongorepo.NewDocumentRepo(db.Database),
			catalogs:  mongorepo.NewCatalogRepo(db.Database),
			finder:    mongorepo.NewDuplicateFinder(db.Database),
			pinger:    db,
			close:     db.Close,
		}, nil
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &repositories{
		users:     postgres.NewUserRepo(db),
		documents: postgres.NewDocumentRepo(db),
		catalogs:  postgres.NewCatalogRepo(db),
		finder:    postgres.NewDuplicateFinderRepo(db),
		pinger:    handler.PingFunc(db.PingContext),
		close:     db.Close,
	}, nil
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := openRepositories(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = repos.close() }()

	// Optional infrastructure
	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	var sender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		sender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		sender = noop.NewNoopSender()
	}

	var drafter port.EmailDrafter
	if cfg.AI.Provider == "openai" {
		d, err := openaidrafter.NewDrafter(cfg.AI)
		if err != nil {
			return fmt.Errorf("failed to initialize email drafter: %w", err)
		}
		drafter = d
	}

	var renderer port.DocumentRenderer
	if cfg.PDF.Enabled {
		renderer = pdf.NewRenderer(cfg.PDF)
	}

	// Initialize services
	authSvc := service.NewAuthService(repos.users, cfg.JWT)
	userSvc := service.NewUserService(repos.users)
	numberingSvc := service.NewNumberingService(repos.documents, repos.finder, cfg.Numbering)
	documentSvc := service.NewDocumentService(repos.documents, numberingSvc, renderer, storage, cfg)
	emailSvc := service.NewEmailService(repos.documents, sender, drafter)
	catalogSvc := service.NewCatalogService(repos.catalogs, sheets.NewFetcher())
	reportSvc := service.NewReportService(repos.documents, renderer)
	backupSvc := service.NewBackupService(repos.documents, repos.catalogs, storage, cfg.S3, cfg.Defaults.AppVersion)

	// Setup router
	r := router.Setup(authSvc, router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		User:      handler.NewUserHandler(userSvc),
		Document:  handler.NewDocumentHandler(documentSvc),
		Numbering: handler.NewNumberingHandler(numberingSvc),
		Email:     handler.NewEmailHandler(emailSvc),
		Catalog:   handler.NewCatalogHandler(catalogSvc),
		Report:    handler.NewReportHandler(reportSvc),
		Backup:    handler.NewBackupHandler(backupSvc),
		Health:    handler.NewHealthHandler(repos.pinger),
	}, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s (driver=%s)", cfg.Server.Port, cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("Server exited gracefully")
	return nil
}
