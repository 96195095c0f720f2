// Package repository defines the data access contracts consumed by the
// services. Implementations live under infra.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/ledger"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
)

// UserRepository defines user data access. GetByEmail and List return
// users with their balance mapping loaded; transaction histories are
// served by TransactionRepository.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Create(ctx context.Context, u *user.User) error
	SaveBalances(ctx context.Context, userID uuid.UUID, b ledger.Balances) error
	DeleteByEmail(ctx context.Context, email string) error
	DeleteByGraduationYear(ctx context.Context, year int) error
}

// AdminRepository defines access to the administrator credential set.
type AdminRepository interface {
	GetByEmail(ctx context.Context, email string) (*user.Admin, error)
	Create(ctx context.Context, a *user.Admin) error
}

// TransactionRepository defines append and read access to the per-user
// transaction log. Entries are never updated or deleted.
type TransactionRepository interface {
	Create(ctx context.Context, userID uuid.UUID, tx *ledger.Transaction) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ledger.Transaction, error)
}
