package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"nfimport/internal/config"
	"nfimport/internal/domain"
	"nfimport/internal/logger"
	"nfimport/internal/repository/postgres"
	"nfimport/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run() error {
	_ = godotenv.Load()

	var input service.ProvisionInput
	flag.StringVar(&input.TenantName, "tenant-name", "", "display name of the tenant")
	flag.StringVar(&input.TenantSlug, "tenant", "", "tenant slug used at login")
	flag.StringVar(&input.AdminEmail, "email", "", "admin email")
	flag.StringVar(&input.AdminName, "name", "Administrador", "admin full name")
	flag.Parse()
	input.AdminPassword = os.Getenv("NFIMPORT_SEED_PASSWORD")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Setup(cfg.Log); err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	if input.AdminPassword == "" {
		return errors.New("NFIMPORT_SEED_PASSWORD must be set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	svc := service.NewProvisioningService(postgres.NewTenantRepo(db), postgres.NewUserRepo(db))
	out, err := svc.Provision(ctx, input)
	if errors.Is(err, domain.ErrDuplicateEmail) {
		log.Info().Str("tenant", input.TenantSlug).Str("email", input.AdminEmail).Msg("admin already exists")
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().
		Str("tenant_id", out.Tenant.ID.String()).
		Str("tenant", out.Tenant.Slug).
		Bool("tenant_created", out.TenantCreated).
		Str("admin_id", out.Admin.ID.String()).
		Msg("tenant provisioned")
	return nil
}
