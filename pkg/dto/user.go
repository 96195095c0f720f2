// Package dto defines the shapes handed across the API boundary.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
)

// AccountRead is one account with its bucket breakdown and derived total.
type AccountRead struct {
	Total   decimal.Decimal            `json:"total"`
	Buckets map[string]decimal.Decimal `json:"buckets"`
}

// BalancesRead groups the three accounts with a derived grand total.
type BalancesRead struct {
	Total    decimal.Decimal        `json:"total"`
	Accounts map[string]AccountRead `json:"accounts"`
}

// UserRead is the public view of a user.
type UserRead struct {
	ID         uuid.UUID    `json:"id"`
	Email      string       `json:"email"`
	Name       string       `json:"name"`
	Graduation int          `json:"graduation"`
	Dorm       string       `json:"dorm,omitempty"`
	Balances   BalancesRead `json:"balances"`
	CreatedAt  time.Time    `json:"created"`
}

// NewBalancesRead derives the read shape, totals included, from the
// domain balance mapping.
func NewBalancesRead(b ledger.Balances) BalancesRead {
	accounts := make(map[string]AccountRead, 3)
	for _, account := range ledger.Accounts() {
		buckets := make(map[string]decimal.Decimal, len(ledger.BucketsFor(account)))
		for _, bucket := range ledger.BucketsFor(account) {
			buckets[string(bucket)] = b.Get(account, bucket)
		}
		accounts[string(account)] = AccountRead{
			Total:   b.AccountTotal(account),
			Buckets: buckets,
		}
	}
	return BalancesRead{Total: b.Total(), Accounts: accounts}
}

// NewUserRead maps a domain user to its public view.
func NewUserRead(u *user.User) *UserRead {
	return &UserRead{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		Graduation: u.Graduation,
		Dorm:       u.Dorm,
		Balances:   NewBalancesRead(u.Balances),
		CreatedAt:  u.CreatedAt,
	}
}
