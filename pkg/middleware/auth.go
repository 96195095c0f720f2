// Package middleware provides route protection for the fiber app.
package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/unknownhumanoid/pelicoin/pkg/config"
	"github.com/unknownhumanoid/pelicoin/pkg/service/auth"
)

// JwtProtected rejects requests without a valid bearer token. The
// parsed token is stored in c.Locals("user").
func JwtProtected(cfg *config.Jwt) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{Key: []byte(cfg.Secret)},
		ErrorHandler: jwtError,
	})
}

// AdminOnly rejects tokens whose role claim is not admin. Must run
// after JwtProtected.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if TokenClaim(c, "role") != auth.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"status":  fiber.StatusForbidden,
				"message": "Admin access required",
			})
		}
		return c.Next()
	}
}

// TokenClaim returns a string claim from the request token, or "".
func TokenClaim(c *fiber.Ctx, claim string) string {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	value, _ := claims[claim].(string)
	return value
}

// CurrentEmail returns the email claim of the authenticated caller.
func CurrentEmail(c *fiber.Ctx) string {
	return TokenClaim(c, "email")
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwtware.ErrJWTMissingOrMalformed) || err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  fiber.StatusBadRequest,
			"message": "Missing or malformed JWT",
		})
	}
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  fiber.StatusUnauthorized,
		"message": "Invalid or expired JWT",
	})
}
