// Command createadmin (re)creates the bootstrap Admin account. Any existing
// account at the same email is replaced.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/nexus-care/complaint-service/internal/auth"
	"github.com/nexus-care/complaint-service/internal/config"
	"github.com/nexus-care/complaint-service/internal/domain"
	"github.com/nexus-care/complaint-service/internal/observability"
	"github.com/nexus-care/complaint-service/internal/persistence"
	"github.com/nexus-care/complaint-service/internal/repository"
)

func main() {
	email := flag.String("email", "admin@nexus.com", "admin email")
	username := flag.String("username", "AdminUser", "admin display name")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if *password == "" {
		log.Fatal("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx := context.Background()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	users := repository.NewUserRepository(pg.PoolHandle())

	if err := users.DeleteByEmail(ctx, *email); err != nil {
		logger.Fatal("failed to remove existing account", zap.Error(err))
	}

	hash, err := auth.HashPassword(*password, cfg.Auth.BcryptCost)
	if err != nil {
		logger.Fatal("failed to hash password", zap.Error(err))
	}

	admin := &domain.Principal{
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		logger.Fatal("failed to create admin", zap.Error(err))
	}

	logger.Info("admin account created",
		zap.String("id", admin.ID),
		zap.String("email", admin.Email),
	)
}
