// Package auth provides the user and administrator login flows and JWT
// issuance.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/unknownhumanoid/pelicoin/pkg/config"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"github.com/unknownhumanoid/pelicoin/pkg/utils"
)

// Token roles carried in the "role" claim.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Service provides credential checks against the two credential sets
// and signs tokens for the API.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork, JWT config, and logger.
func New(uow repository.UnitOfWork, cfg *config.Jwt, logger *slog.Logger) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// Login checks a user credential pair. A wrong email and a wrong
// password are indistinguishable to the caller.
func (s *Service) Login(
	ctx context.Context,
	email, password string,
) (u *user.User, err error) {
	log := s.logger.With("email", email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		log.Error("Login failed", "error", err)
		return nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, u.Password) {
		log.Error("Login failed", "error", "password mismatch")
		return nil, user.ErrUserUnauthorized
	}
	log.Info("Login successful", "userID", u.ID)
	return u, nil
}

// AdminLogin checks an administrator credential pair.
func (s *Service) AdminLogin(
	ctx context.Context,
	email, password string,
) (a *user.Admin, err error) {
	log := s.logger.With("email", email)
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.AdminRepository()
		if err != nil {
			return err
		}
		a, err = repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		log.Error("AdminLogin failed", "error", err)
		return nil, user.ErrUserUnauthorized
	}
	if !utils.CheckPasswordHash(password, a.Password) {
		log.Error("AdminLogin failed", "error", "password mismatch")
		return nil, user.ErrUserUnauthorized
	}
	log.Info("AdminLogin successful", "adminID", a.ID)
	return a, nil
}

// GenerateToken signs an HS256 token with the email, name and role
// claims and the configured expiry.
func (s *Service) GenerateToken(email, name, role string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)
	claims := token.Claims.(jwt.MapClaims)
	claims["email"] = email
	claims["name"] = name
	claims["role"] = role
	claims["exp"] = time.Now().Add(s.cfg.Expiry).Unix()
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		s.logger.Error("GenerateToken failed", "email", email, "error", err)
		return "", err
	}
	return tokenString, nil
}
