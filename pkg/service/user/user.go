// Package user provides business logic for sign-up and the
// administrative user management operations.
package user

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"

	"github.com/unknownhumanoid/pelicoin/pkg/config"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"github.com/unknownhumanoid/pelicoin/pkg/utils"
)

var (
	// ErrInvalidEmail is returned when the sign-up email fails syntax
	// validation.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrEmailDomainNotAllowed is returned when the sign-up email is not
	// on the configured school domain.
	ErrEmailDomainNotAllowed = errors.New("email domain not allowed")
)

// SignUpInput carries the sign-up form fields.
type SignUpInput struct {
	Email      string
	Password   string
	Name       string
	Graduation int
	Dorm       string
}

// ListOptions controls the admin listing: one of the five fixed sort
// keys (name, current, education, retirement, year), the direction, and
// an optional case-insensitive name filter.
type ListOptions struct {
	SortBy    string
	Ascending bool
	Name      string
}

// Service provides business logic for user operations.
type Service struct {
	uow    repository.UnitOfWork
	cfg    *config.SignUp
	logger *slog.Logger
}

// New creates a Service with a UnitOfWork, sign-up config, and logger.
func New(
	uow repository.UnitOfWork,
	cfg *config.SignUp,
	logger *slog.Logger,
) *Service {
	return &Service{uow: uow, cfg: cfg, logger: logger}
}

// SignUp validates the form and creates a user with zeroed balances.
func (s *Service) SignUp(
	ctx context.Context,
	in SignUpInput,
) (u *user.User, err error) {
	log := s.logger.With("email", in.Email)
	if !utils.IsEmail(in.Email) {
		return nil, ErrInvalidEmail
	}
	if s.cfg != nil && s.cfg.EmailDomain != "" &&
		utils.EmailDomain(in.Email) != s.cfg.EmailDomain {
		return nil, ErrEmailDomainNotAllowed
	}
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err := repo.GetByEmail(ctx, in.Email); err == nil {
			return user.ErrEmailTaken
		} else if !errors.Is(err, user.ErrUserNotFound) {
			return err
		}
		u, err = user.New(in.Email, in.Password, in.Name, in.Graduation, in.Dorm)
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		log.Error("SignUp failed", "error", err)
		return nil, err
	}
	log.Info("User signed up", "userID", u.ID)
	return u, nil
}

// GetByEmail retrieves one user with their balances.
func (s *Service) GetByEmail(
	ctx context.Context,
	email string,
) (u *user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.GetByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

// List returns every user, filtered and ordered for the admin table.
func (s *Service) List(
	ctx context.Context,
	opts ListOptions,
) (users []*user.User, err error) {
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		users, err = repo.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	if opts.Name != "" {
		needle := strings.ToLower(opts.Name)
		filtered := users[:0]
		for _, u := range users {
			if strings.Contains(strings.ToLower(u.Name), needle) {
				filtered = append(filtered, u)
			}
		}
		users = filtered
	}

	sortUsers(users, opts.SortBy, opts.Ascending)
	return users, nil
}

// sortUsers orders the admin listing by one of the five fixed keys.
// An unknown key leaves the store order untouched.
func sortUsers(users []*user.User, sortBy string, ascending bool) {
	var less func(a, b *user.User) bool
	switch sortBy {
	case "name":
		less = func(a, b *user.User) bool { return a.Name < b.Name }
	case "current":
		less = func(a, b *user.User) bool {
			return a.Balances.AccountTotal(ledger.AccountCurrent).
				LessThan(b.Balances.AccountTotal(ledger.AccountCurrent))
		}
	case "education":
		less = func(a, b *user.User) bool {
			return a.Balances.AccountTotal(ledger.AccountEducation).
				LessThan(b.Balances.AccountTotal(ledger.AccountEducation))
		}
	case "retirement":
		less = func(a, b *user.User) bool {
			return a.Balances.AccountTotal(ledger.AccountRetirement).
				LessThan(b.Balances.AccountTotal(ledger.AccountRetirement))
		}
	case "year":
		less = func(a, b *user.User) bool { return a.Graduation < b.Graduation }
	default:
		return
	}
	sort.SliceStable(users, func(i, j int) bool {
		if ascending {
			return less(users[i], users[j])
		}
		return less(users[j], users[i])
	})
}

// PurgeByGraduationYear removes every user with that graduation year.
func (s *Service) PurgeByGraduationYear(ctx context.Context, year int) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.DeleteByGraduationYear(ctx, year)
	})
	if err != nil {
		s.logger.Error("PurgeByGraduationYear failed", "year", year, "error", err)
		return err
	}
	s.logger.Info("Purged graduation year", "year", year)
	return nil
}

// PurgeByEmail removes exactly the named user.
func (s *Service) PurgeByEmail(ctx context.Context, email string) error {
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		return repo.DeleteByEmail(ctx, email)
	})
	if err != nil {
		s.logger.Error("PurgeByEmail failed", "email", email, "error", err)
		return err
	}
	s.logger.Info("Purged user", "email", email)
	return nil
}
