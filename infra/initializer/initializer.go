// Package initializer wires configuration into live dependencies:
// logger, database connection, schema migration, admin seeding.
package initializer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/unknownhumanoid/pelicoin/infra"
	"github.com/unknownhumanoid/pelicoin/pkg/config"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
)

// Deps contains the shared dependencies handed to the application.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// InitializeDependencies builds every dependency from the config.
func InitializeDependencies(cfg *config.App) (*Deps, error) {
	logger := setupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	if err := infra.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	uow := infra.NewUoW(db)
	if err := seedAdmin(context.Background(), uow, cfg.Admin, logger); err != nil {
		return nil, fmt.Errorf("failed to seed admin: %w", err)
	}

	return &Deps{Uow: uow, Logger: logger}, nil
}

// seedAdmin ensures the configured administrator credential exists. A
// missing password skips seeding so tests and read-only tooling can run
// without one.
func seedAdmin(
	ctx context.Context,
	uow repository.UnitOfWork,
	cfg *config.Admin,
	logger *slog.Logger,
) error {
	if cfg == nil || cfg.Password == "" {
		logger.Warn("No admin password configured, skipping admin seed")
		return nil
	}
	return uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AdminRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByEmail(ctx, cfg.Email); err == nil {
			return nil
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		admin, err := user.NewAdmin(cfg.Email, cfg.Password)
		if err != nil {
			return err
		}
		logger.Info("Seeding admin credential", "email", cfg.Email)
		return repo.Create(ctx, admin)
	})
}
