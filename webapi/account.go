package webapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/unknownhumanoid/pelicoin/pkg/app"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/dto"
	"github.com/unknownhumanoid/pelicoin/pkg/middleware"
)

// TransferRequest moves pelicoins between two of the caller's buckets.
type TransferRequest struct {
	Amount      string `json:"amount" validate:"required"`
	AccountFrom string `json:"accountFrom" validate:"required"`
	TypeFrom    string `json:"typeFrom" validate:"required"`
	AccountTo   string `json:"accountTo" validate:"required"`
	TypeTo      string `json:"typeTo" validate:"required"`
}

// AccountRoutes registers the authenticated balance endpoints.
func AccountRoutes(fa *fiber.App, a *app.App, jwt fiber.Handler) {
	grp := fa.Group("/account", jwt)
	grp.Get("/balances", GetBalances(a))
	grp.Get("/transactions", GetTransactions(a))
	grp.Post("/transfer", Transfer(a))
}

// GetBalances returns the caller's accounts with per-bucket and
// aggregate totals.
func GetBalances(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.CurrentEmail(c)
		u, err := a.LedgerService.Balances(c.UserContext(), email)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(
			c, fiber.StatusOK, "Balances retrieved", dto.NewBalancesRead(u.Balances))
	}
}

// GetTransactions returns the caller's history in insertion order.
func GetTransactions(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := middleware.CurrentEmail(c)
		txs, err := a.LedgerService.Transactions(c.UserContext(), email)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(
			c, fiber.StatusOK, "Transactions retrieved", dto.NewTransactionReads(txs))
	}
}

// Transfer moves a positive amount between two of the caller's buckets.
// The caller is recorded as the executer.
func Transfer(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := BindAndValidate[TransferRequest](c)
		if err != nil {
			return nil
		}
		amount, err := decimal.NewFromString(input.Amount)
		if err != nil {
			return ErrorResponseJSON(
				c, fiber.StatusBadRequest, "Invalid amount", err.Error())
		}
		email := middleware.CurrentEmail(c)
		tx, err := a.LedgerService.Transfer(
			c.UserContext(),
			email,
			amount,
			ledger.Account(input.AccountFrom), ledger.Bucket(input.TypeFrom),
			ledger.Account(input.AccountTo), ledger.Bucket(input.TypeTo),
			email,
		)
		if err != nil {
			return DomainErrorResponseJSON(c, err)
		}
		return SuccessResponseJSON(
			c, fiber.StatusOK, "Transfer applied", dto.NewTransactionRead(*tx))
	}
}
