package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"nfimport/internal/config"
	"nfimport/internal/email/noop"
	"nfimport/internal/email/ses"
	"nfimport/internal/handler"
	"nfimport/internal/logger"
	"nfimport/internal/port"
	"nfimport/internal/repository/postgres"
	"nfimport/internal/router"
	"nfimport/internal/service"
	s3storage "nfimport/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	tenantRepo := postgres.NewTenantRepo(db)
	userRepo := postgres.NewUserRepo(db)
	supplierRepo := postgres.NewSupplierRepo(db)
	payableRepo := postgres.NewPayableRepo(db)
	itemRepo := postgres.NewPayableItemRepo(db)

	// Initialize storage, only needed when the XML is archived
	var storage port.ObjectStorage
	if cfg.Archive.Enabled {
		storage, err = s3storage.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	emailSender, err := newEmailSender(ctx, cfg.Email)
	if err != nil {
		return err
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, tenantRepo, cfg.JWT)
	resolver := service.NewSupplierResolver(supplierRepo)
	builder := service.NewPayableBuilder(payableRepo, itemRepo, cfg.Import)
	importSvc := service.NewImportService(payableRepo, resolver, builder, storage, emailSender, cfg.S3, cfg.Archive)
	payableSvc := service.NewPayableService(payableRepo, itemRepo, storage, cfg.S3)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	importH := handler.NewImportHandler(importSvc, cfg.Import)
	payableH := handler.NewPayableHandler(payableSvc)
	healthH := handler.NewHealthHandler(db)

	r := router.Setup(cfg, authSvc, authH, importH, payableH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Bool("archive", cfg.Archive.Enabled).
			Str("email", cfg.Email.Provider).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newEmailSender(ctx context.Context, cfg config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		sender, err := ses.NewSESSender(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SES sender: %w", err)
		}
		return sender, nil
	case "", "noop":
		return noop.NewNoopSender(), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
