// Package app assembles the services from their shared dependencies.
package app

import (
	"log/slog"

	"github.com/unknownhumanoid/pelicoin/pkg/config"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"github.com/unknownhumanoid/pelicoin/pkg/service/auth"
	ledgersvc "github.com/unknownhumanoid/pelicoin/pkg/service/ledger"
	usersvc "github.com/unknownhumanoid/pelicoin/pkg/service/user"
)

// Deps contains the dependencies shared by every service.
type Deps struct {
	Uow    repository.UnitOfWork
	Logger *slog.Logger
}

// App holds the wired services.
type App struct {
	Deps          *Deps
	Config        *config.App
	AuthService   *auth.Service
	UserService   *usersvc.Service
	LedgerService *ledgersvc.Service
}

// New wires the services.
func New(deps *Deps, cfg *config.App) *App {
	return &App{
		Deps:          deps,
		Config:        cfg,
		AuthService:   auth.New(deps.Uow, cfg.Auth.Jwt, deps.Logger),
		UserService:   usersvc.New(deps.Uow, cfg.SignUp, deps.Logger),
		LedgerService: ledgersvc.New(deps.Uow, deps.Logger),
	}
}
