package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/unknownhumanoid/pelicoin/pkg/app"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/dto"
	"github.com/unknownhumanoid/pelicoin/pkg/middleware"
	usersvc "github.com/unknownhumanoid/pelicoin/pkg/service/user"
)

// MutateRequest applies one admin mutation to a set of users.
type MutateRequest struct {
	Emails  []string `json:"emails" validate:"required,min=1,dive,email"`
	Amount  string   `json:"amount" validate:"required"`
	Account string   `json:"account" validate:"required"`
	Type    string   `json:"type" validate:"required"`
	Reason  string   `json:"reason"`
}

// YieldRequest grows one bucket of every user by a percentage.
type YieldRequest struct {
	Percent string `json:"percent" validate:"required"`
	Account string `json:"account" validate:"required"`
	Type    string `json:"type" validate:"required"`
}

// PurgeYearRequest removes every user of one graduation year.
type PurgeYearRequest struct {
	Year int `json:"year" validate:"required"`
}

// PurgeRequest removes the named users.
type PurgeRequest struct {
	Emails []string `json:"emails" validate:"required,min=1,dive,email"`
}

// AdminRoutes registers the administrator endpoints. Every route
// requires a token with the admin role.
func AdminRoutes(fa *fiber.App, a *app.App, jwt fiber.Handler) {
	grp := fa.Group("/admin", jwt, middleware.AdminOnly())
	grp.Get("/users", ListUsers(a))
	grp.Post("/deposit", AdminDeposit(a))
	grp.Post("/set", AdminSet(a))
	grp.Post("/yield", AdminYield(a))
	grp.Post("/purge/year", AdminPurgeYear(a))
	grp.Post("/purge", AdminPurge(a))
}

// ListUsers returns every user, filtered by name and ordered by one of
// the five sort keys (name, current, education, retirement, year).
func ListUsers(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		opts := usersvc.ListOptions{
			SortBy:    c.Query("sort", "name"),
			Ascending: c.QueryBool("ascending", true),
			Name:      c.Query("name"),
		}
		users, err := a.UserService.List(c.UserContext(), opts)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		reads := make([]*dto.UserRead, 0, len(users))
		for _, u := range users {
			reads = append(reads, dto.NewUserRead(u))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Users retrieved", reads)
	}
}

// AdminDeposit adds the amount to one bucket of each named user. A
// negative amount subtracts.
func AdminDeposit(a *app.App) fiber.Handler {
	return adminMutation(a, func(c *fiber.Ctx, amount decimal.Decimal, in *MutateRequest, email string) (*ledger.Transaction, error) {
		return a.LedgerService.Deposit(
			c.UserContext(), email, amount,
			ledger.Account(in.Account), ledger.Bucket(in.Type),
			ledger.ExecuterAdmin, in.Reason)
	})
}

// AdminSet overwrites one bucket of each named user with an absolute
// amount.
func AdminSet(a *app.App) fiber.Handler {
	return adminMutation(a, func(c *fiber.Ctx, amount decimal.Decimal, in *MutateRequest, email string) (*ledger.Transaction, error) {
		return a.LedgerService.SetBalance(
			c.UserContext(), email, amount,
			ledger.Account(in.Account), ledger.Bucket(in.Type),
			ledger.ExecuterAdmin, in.Reason)
	})
}

func adminMutation(
	a *app.App,
	apply func(c *fiber.Ctx, amount decimal.Decimal, in *MutateRequest, email string) (*ledger.Transaction, error),
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[MutateRequest](c)
		if err != nil {
			return nil
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return ErrorResponseJSON(
				c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		txs := make([]dto.TransactionRead, 0, len(input.Emails))
		for _, email := range input.Emails {
			tx, err := apply(c, amount, input, email)
			if err != nil {
				return DomainErrorResponseJSON(c, err)
			}
			txs = append(txs, dto.NewTransactionRead(*tx))
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Mutation applied", txs)
	}
}

// AdminYield grows one bucket of every user by the given percentage.
// The logged reason records the rate, e.g. "@ 5%".
func AdminYield(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[YieldRequest](c)
		if err != nil {
			return nil
		}
		percent, err := decimal.NewFromString(input.Percent)
		if err != nil {
			return ErrorResponseJSON(
				c, fiber.StatusBadRequest, "Invalid percent", err.Error())
		}
		reason := "@ " + percent.String() + "%"
		applied, err := a.LedgerService.YieldAll(
			c.UserContext(), percent,
			ledger.Account(input.Account), ledger.Bucket(input.Type),
			ledger.ExecuterAdmin, reason)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Yield applied", fiber.Map{
			"applied": applied,
		})
	}
}

// AdminPurgeYear removes every user with the given graduation year.
func AdminPurgeYear(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[PurgeYearRequest](c)
		if err != nil {
			return nil
		}
		if err := a.UserService.PurgeByGraduationYear(c.UserContext(), input.Year); err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Graduation year purged", nil)
	}
}

// AdminPurge removes exactly the named users.
func AdminPurge(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[PurgeRequest](c)
		if err != nil {
			return nil
		}
		for _, email := range input.Emails {
			if err := a.UserService.PurgeByEmail(c.UserContext(), email); err != nil {
				return DomainErrorResponseJSON(c, err)
			}
		}
		return SuccessResponseJSON(c, fiber.StatusOK, "Users purged", nil)
	}
}
