package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unknownhumanoid/pelicoin/pkg/app"
	"github.com/unknownhumanoid/pelicoin/pkg/dto"
	"github.com/unknownhumanoid/pelicoin/pkg/service/auth"
)

// LoginRequest carries a credential pair.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthRoutes registers the login endpoints.
func AuthRoutes(fa *fiber.App, a *app.App) {
	grp := fa.Group("/auth")
	grp.Post("/login", Login(a))
	grp.Post("/admin/login", AdminLogin(a))
}

// Login checks a user credential pair and returns a signed token with
// the user's public view.
func Login(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if err != nil {
			return nil
		}
		u, err := a.AuthService.Login(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		token, err := a.AuthService.GenerateToken(u.Email, u.Name, auth.RoleUser)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", fiber.Map{
			"token": token,
			"user":  dto.NewUserRead(u),
		})
	}
}

// AdminLogin checks an administrator credential pair and returns a
// token carrying the admin role.
func AdminLogin(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[LoginRequest](c)
		if err != nil {
			return nil
		}
		adm, err := a.AuthService.AdminLogin(c.UserContext(), input.Email, input.Password)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		token, err := a.AuthService.GenerateToken(adm.Email, "", auth.RoleAdmin)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Login successful", fiber.Map{
			"token": token,
		})
	}
}
