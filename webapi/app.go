// Package webapi exposes the banking service over HTTP with fiber.
package webapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/unknownhumanoid/pelicoin/pkg/app"
	"github.com/unknownhumanoid/pelicoin/pkg/middleware"
)

// NewApp builds the fiber application with middleware and routes.
func NewApp(a *app.App) *fiber.App {
	fa := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return ErrorResponseJSON(c, code, "Request failed", err.Error())
		},
	})

	fa.Use(recover.New())
	if rl := a.Config.RateLimit; rl != nil {
		fa.Use(limiter.New(limiter.Config{
			Max:        rl.MaxRequests,
			Expiration: rl.Window,
		}))
	}

	fa.Get("/health", func(c *fiber.Ctx) error {
		return SuccessResponseJSON(c, fiber.StatusOK, "ok", nil)
	})

	jwt := middleware.JwtProtected(a.Config.Auth.Jwt)

	AuthRoutes(fa, a)
	UserRoutes(fa, a, jwt)
	AccountRoutes(fa, a, jwt)
	AdminRoutes(fa, a, jwt)

	return fa
}
