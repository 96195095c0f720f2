package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/unknownhumanoid/pelicoin/infra/initializer"
	"github.com/unknownhumanoid/pelicoin/pkg/app"
	"github.com/unknownhumanoid/pelicoin/pkg/config"
	"github.com/unknownhumanoid/pelicoin/webapi"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		log.Fatal("Failed to initialize dependencies", "error", err)
	}

	a := app.New(&app.Deps{Uow: deps.Uow, Logger: deps.Logger}, cfg)
	fa := webapi.NewApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	deps.Logger.Info("Starting server", "addr", addr)
	if err := fa.Listen(addr); err != nil {
		log.Fatal("Server stopped", "error", err)
	}
}
