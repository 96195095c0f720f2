package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/unknownhumanoid/pelicoin/pkg/app"
	"github.com/unknownhumanoid/pelicoin/pkg/dto"
	"github.com/unknownhumanoid/pelicoin/pkg/middleware"
	"github.com/unknownhumanoid/pelicoin/pkg/service/auth"
	usersvc "github.com/unknownhumanoid/pelicoin/pkg/service/user"
)

// SignUpRequest carries the sign-up form fields.
type SignUpRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=4"`
	Name       string `json:"name" validate:"required"`
	Graduation int    `json:"graduation" validate:"required"`
	Dorm       string `json:"dorm"`
}

// UserRoutes registers sign-up and the authenticated profile endpoint.
func UserRoutes(fa *fiber.App, a *app.App, jwt fiber.Handler) {
	grp := fa.Group("/user")
	grp.Post("/", SignUp(a))
	grp.Get("/me", jwt, Me(a))
}

// SignUp creates a user with zeroed balances and logs them straight in.
func SignUp(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[SignUpRequest](c)
		if err != nil {
			return nil
		}
		u, err := a.UserService.SignUp(c.UserContext(), usersvc.SignUpInput{
			Email:      input.Email,
			Password:   input.Password,
			Name:       input.Name,
			Graduation: input.Graduation,
			Dorm:       input.Dorm,
		})
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		token, err := a.AuthService.GenerateToken(u.Email, u.Name, auth.RoleUser)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusCreated, "User created", fiber.Map{
			"token": token,
			"user":  dto.NewUserRead(u),
		})
	}
}

// Me returns the authenticated caller's public view.
func Me(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.CurrentEmail(c)
		u, err := a.UserService.GetByEmail(c.UserContext(), email)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "User retrieved", dto.NewUserRead(u))
	}
}
