// Package user holds the account-holder and administrator entities.
package user

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/utils"
)

var (
	// ErrUserNotFound is returned when a user cannot be found in the store.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is returned when signing up with an email already present.
	ErrEmailTaken = errors.New("email already in use")
	// ErrUserUnauthorized is returned when a credential check fails.
	ErrUserUnauthorized = errors.New("user unauthorized")
)

// User represents one account holder. Balances and Transactions are the
// ledger state owned by this user; Transactions is append-only with
// insertion order equal to chronological order.
type User struct {
	ID           uuid.UUID            `json:"id"`
	Email        string               `json:"email"`
	Password     string               `json:"-"`
	Name         string               `json:"name"`
	Graduation   int                  `json:"graduation"`
	Dorm         string               `json:"dorm,omitempty"`
	Balances     ledger.Balances      `json:"balances"`
	Transactions []ledger.Transaction `json:"transactions,omitempty"`
	CreatedAt    time.Time            `json:"created"`
	UpdatedAt    time.Time            `json:"updated"`
}

// New creates a User with a hashed password, zeroed balances across all
// valid buckets, and an empty transaction history.
func New(email, password, name string, graduation int, dorm string) (*User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	if password == "" {
		return nil, errors.New("password cannot be empty")
	}
	if name == "" {
		return nil, errors.New("name cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &User{
		ID:         uuid.New(),
		Email:      email,
		Password:   hashed,
		Name:       name,
		Graduation: graduation,
		Dorm:       dorm,
		Balances:   ledger.NewBalances(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Admin is a member of the parallel administrator credential set.
type Admin struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Password string    `json:"-"`
}

// NewAdmin creates an Admin with a hashed password.
func NewAdmin(email, password string) (*Admin, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty")
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &Admin{ID: uuid.New(), Email: email, Password: hashed}, nil
}
